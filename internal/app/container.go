// Package app wires application dependencies.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hiteshchouriya/rik/internal/assistant/application"
	assistantCommands "github.com/hiteshchouriya/rik/internal/assistant/application/commands"
	assistantQueries "github.com/hiteshchouriya/rik/internal/assistant/application/queries"
	assistantDomain "github.com/hiteshchouriya/rik/internal/assistant/domain"
	"github.com/hiteshchouriya/rik/internal/assistant/infrastructure/llm"
	assistantPersistence "github.com/hiteshchouriya/rik/internal/assistant/infrastructure/persistence"
	habitCommands "github.com/hiteshchouriya/rik/internal/habits/application/commands"
	habitQueries "github.com/hiteshchouriya/rik/internal/habits/application/queries"
	habitsDomain "github.com/hiteshchouriya/rik/internal/habits/domain"
	habitPersistence "github.com/hiteshchouriya/rik/internal/habits/infrastructure/persistence"
	identityCommands "github.com/hiteshchouriya/rik/internal/identity/application/commands"
	identityQueries "github.com/hiteshchouriya/rik/internal/identity/application/queries"
	identityDomain "github.com/hiteshchouriya/rik/internal/identity/domain"
	identityPersistence "github.com/hiteshchouriya/rik/internal/identity/infrastructure/persistence"
	insightsApplication "github.com/hiteshchouriya/rik/internal/insights/application"
	insightsQueries "github.com/hiteshchouriya/rik/internal/insights/application/queries"
	insightsCache "github.com/hiteshchouriya/rik/internal/insights/infrastructure/cache"
	insightsPersistence "github.com/hiteshchouriya/rik/internal/insights/infrastructure/persistence"
	journalCommands "github.com/hiteshchouriya/rik/internal/journal/application/commands"
	journalQueries "github.com/hiteshchouriya/rik/internal/journal/application/queries"
	journalDomain "github.com/hiteshchouriya/rik/internal/journal/domain"
	journalPersistence "github.com/hiteshchouriya/rik/internal/journal/infrastructure/persistence"
	ledgerQueries "github.com/hiteshchouriya/rik/internal/ledger/application/queries"
	ledgerDomain "github.com/hiteshchouriya/rik/internal/ledger/domain"
	ledgerPersistence "github.com/hiteshchouriya/rik/internal/ledger/infrastructure/persistence"
	planningCommands "github.com/hiteshchouriya/rik/internal/planning/application/commands"
	planningQueries "github.com/hiteshchouriya/rik/internal/planning/application/queries"
	planningDomain "github.com/hiteshchouriya/rik/internal/planning/domain"
	planningPersistence "github.com/hiteshchouriya/rik/internal/planning/infrastructure/persistence"
	sharedApplication "github.com/hiteshchouriya/rik/internal/shared/application"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/database"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/eventbus"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/migrations"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
	"github.com/hiteshchouriya/rik/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database. Exactly one of Pool and SQLiteDB is set, per Driver.
	Driver   database.Driver
	Pool     *pgxpool.Pool
	SQLiteDB *sql.DB

	// Redis (optional)
	RedisClient *redis.Client

	// Repositories
	ProfileRepo  identityDomain.Repository
	HabitLogRepo habitsDomain.Repository
	DailyLogRepo journalDomain.Repository
	TaskRepo     planningDomain.TaskRepository
	ScheduleRepo planningDomain.ScheduleRepository
	LedgerRepo   ledgerDomain.Repository
	ChatRepo     assistantDomain.ChatRepository
	AnalysisRepo assistantDomain.AnalysisRepository
	InsightsData insightsApplication.DataSource
	OutboxRepo   outbox.Repository

	// Infrastructure
	UnitOfWork     sharedApplication.UnitOfWork
	EventPublisher eventbus.Publisher
	LLMClient      application.LLMClient

	// Identity handlers
	CreateProfileHandler *identityCommands.CreateProfileHandler
	UpdateProfileHandler *identityCommands.UpdateProfileHandler
	GetProfileHandler    *identityQueries.GetProfileHandler

	// Habit handlers
	LogHabitHandler    *habitCommands.LogHabitHandler
	GetStreaksHandler  *habitQueries.GetStreaksHandler
	ListDayLogsHandler *habitQueries.ListDayLogsHandler

	// Journal handlers
	UpsertDailyLogHandler *journalCommands.UpsertDailyLogHandler
	GetDailyLogHandler    *journalQueries.GetDailyLogHandler
	ListDailyLogsHandler  *journalQueries.ListDailyLogsHandler

	// Planning handlers
	CreateTaskHandler           *planningCommands.CreateTaskHandler
	CompleteTaskHandler         *planningCommands.CompleteTaskHandler
	ReopenTaskHandler           *planningCommands.ReopenTaskHandler
	DeleteTaskHandler           *planningCommands.DeleteTaskHandler
	ReplaceScheduleHandler      *planningCommands.ReplaceScheduleHandler
	CompleteScheduleItemHandler *planningCommands.CompleteScheduleItemHandler
	ListTasksHandler            *planningQueries.ListTasksHandler
	GetScheduleHandler          *planningQueries.GetScheduleHandler

	// Assistant handlers
	SendMessageHandler      *assistantCommands.SendMessageHandler
	GenerateAnalysisHandler *assistantCommands.GenerateAnalysisHandler
	GenerateScheduleHandler *assistantCommands.GenerateScheduleHandler
	GetChatHistoryHandler   *assistantQueries.GetChatHistoryHandler
	GetAnalysisHandler      *assistantQueries.GetAnalysisHandler

	// Insights and ledger handlers
	GetStatsHandler          *insightsQueries.GetStatsHandler
	GetWeeklyInsightsHandler *insightsQueries.GetWeeklyInsightsHandler
	GetBalanceHandler        *ledgerQueries.GetBalanceHandler

	// Outbox processor
	OutboxProcessor *outbox.Processor
}

// NewContainer creates and wires all dependencies. An empty DATABASE_URL
// selects zero-config local SQLite mode.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Driver: database.DetectDriver(cfg.DatabaseURL),
	}

	if err := c.connectDatabase(ctx); err != nil {
		return nil, err
	}

	c.connectRedis(ctx)
	if err := c.connectEventBus(); err != nil {
		c.Close()
		return nil, err
	}

	c.LLMClient = llm.NewClient(llm.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	}, logger)

	c.buildHandlers()

	processorCfg := outbox.DefaultProcessorConfig()
	processorCfg.PollInterval = cfg.OutboxPollInterval
	processorCfg.BatchSize = cfg.OutboxBatchSize
	processorCfg.MaxRetries = cfg.OutboxMaxRetries
	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, processorCfg, logger)

	return c, nil
}

func (c *Container) connectDatabase(ctx context.Context) error {
	switch c.Driver {
	case database.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, c.Config.DatabaseURL, c.Config.DBMaxConns)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := migrations.RunPostgres(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.Pool = pool

		c.ProfileRepo = identityPersistence.NewPostgresProfileRepository(pool)
		c.HabitLogRepo = habitPersistence.NewPostgresHabitLogRepository(pool)
		c.DailyLogRepo = journalPersistence.NewPostgresDailyLogRepository(pool)
		c.TaskRepo = planningPersistence.NewPostgresTaskRepository(pool)
		c.ScheduleRepo = planningPersistence.NewPostgresScheduleRepository(pool)
		c.LedgerRepo = ledgerPersistence.NewPostgresLedgerRepository(pool)
		c.ChatRepo = assistantPersistence.NewPostgresChatRepository(pool)
		c.AnalysisRepo = assistantPersistence.NewPostgresAnalysisRepository(pool)
		c.InsightsData = insightsPersistence.NewPostgresDataSource(pool)
		c.OutboxRepo = outbox.NewPostgresRepository(pool)
		c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)

		c.Logger.Info("connected to database", "driver", c.Driver)
		return nil

	case database.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, database.SQLitePathFromURL(c.Config.DatabaseURL, c.Config.SQLitePath))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		if err := migrations.RunSQLite(ctx, db); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.SQLiteDB = db

		c.ProfileRepo = identityPersistence.NewSQLiteProfileRepository(db)
		c.HabitLogRepo = habitPersistence.NewSQLiteHabitLogRepository(db)
		c.DailyLogRepo = journalPersistence.NewSQLiteDailyLogRepository(db)
		c.TaskRepo = planningPersistence.NewSQLiteTaskRepository(db)
		c.ScheduleRepo = planningPersistence.NewSQLiteScheduleRepository(db)
		c.LedgerRepo = ledgerPersistence.NewSQLiteLedgerRepository(db)
		c.ChatRepo = assistantPersistence.NewSQLiteChatRepository(db)
		c.AnalysisRepo = assistantPersistence.NewSQLiteAnalysisRepository(db)
		c.InsightsData = insightsPersistence.NewSQLiteDataSource(db)
		c.OutboxRepo = outbox.NewSQLiteRepository(db)
		c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(db)

		c.Logger.Info("opened local database", "driver", c.Driver)
		return nil

	default:
		return fmt.Errorf("unsupported database URL: %s", c.Config.DatabaseURL)
	}
}

// connectRedis connects to Redis when configured. Failures disable caching
// rather than aborting startup.
func (c *Container) connectRedis(ctx context.Context) {
	if c.Config.RedisURL == "" {
		return
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid Redis URL, caching disabled", "error", err)
		return
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("Redis not available, caching disabled", "error", err)
		return
	}

	c.RedisClient = client
	c.Logger.Info("connected to Redis")
}

func (c *Container) connectEventBus() error {
	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.Logger.Warn("RabbitMQ not available, using noop publisher")
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return nil
	}
	c.EventPublisher = publisher
	return nil
}

func (c *Container) buildHandlers() {
	// Read-side cache. Typed nil values must stay nil interfaces.
	var statsCache insightsQueries.StatsCache
	var weeklyCache insightsQueries.InsightsCache
	var invalidator sharedApplication.ReadCacheInvalidator
	if c.RedisClient != nil {
		rc := insightsCache.NewRedisCache(c.RedisClient, c.Config.StatsCacheTTL, c.Logger)
		statsCache = rc
		weeklyCache = rc
		invalidator = rc
	}

	// Identity
	c.CreateProfileHandler = identityCommands.NewCreateProfileHandler(c.ProfileRepo, c.OutboxRepo, c.UnitOfWork)
	c.UpdateProfileHandler = identityCommands.NewUpdateProfileHandler(c.ProfileRepo, c.OutboxRepo, c.UnitOfWork)
	c.GetProfileHandler = identityQueries.NewGetProfileHandler(c.ProfileRepo)

	// Habits
	c.LogHabitHandler = habitCommands.NewLogHabitHandler(c.HabitLogRepo, c.LedgerRepo, c.OutboxRepo, c.UnitOfWork, invalidator)
	c.GetStreaksHandler = habitQueries.NewGetStreaksHandler(c.HabitLogRepo, c.ProfileRepo)
	c.ListDayLogsHandler = habitQueries.NewListDayLogsHandler(c.HabitLogRepo)

	// Journal
	c.UpsertDailyLogHandler = journalCommands.NewUpsertDailyLogHandler(c.DailyLogRepo, c.OutboxRepo, c.UnitOfWork, invalidator)
	c.GetDailyLogHandler = journalQueries.NewGetDailyLogHandler(c.DailyLogRepo)
	c.ListDailyLogsHandler = journalQueries.NewListDailyLogsHandler(c.DailyLogRepo)

	// Planning
	c.CreateTaskHandler = planningCommands.NewCreateTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.CompleteTaskHandler = planningCommands.NewCompleteTaskHandler(c.TaskRepo, c.LedgerRepo, c.OutboxRepo, c.UnitOfWork, invalidator)
	c.ReopenTaskHandler = planningCommands.NewReopenTaskHandler(c.TaskRepo, c.UnitOfWork, invalidator)
	c.DeleteTaskHandler = planningCommands.NewDeleteTaskHandler(c.TaskRepo, c.UnitOfWork, invalidator)
	c.ReplaceScheduleHandler = planningCommands.NewReplaceScheduleHandler(c.ScheduleRepo, c.OutboxRepo, c.UnitOfWork, invalidator)
	c.CompleteScheduleItemHandler = planningCommands.NewCompleteScheduleItemHandler(c.ScheduleRepo, c.UnitOfWork, invalidator)
	c.ListTasksHandler = planningQueries.NewListTasksHandler(c.TaskRepo)
	c.GetScheduleHandler = planningQueries.NewGetScheduleHandler(c.ScheduleRepo)

	// Assistant
	c.SendMessageHandler = assistantCommands.NewSendMessageHandler(
		c.ChatRepo, c.ProfileRepo, c.HabitLogRepo, c.TaskRepo, c.DailyLogRepo, c.LLMClient, c.UnitOfWork,
		c.Config.ChatHistoryLimit,
	)
	c.GenerateAnalysisHandler = assistantCommands.NewGenerateAnalysisHandler(
		c.AnalysisRepo, c.ProfileRepo, c.HabitLogRepo, c.TaskRepo, c.DailyLogRepo,
		c.LedgerRepo, c.OutboxRepo, c.LLMClient, c.UnitOfWork, invalidator,
	)
	c.GenerateScheduleHandler = assistantCommands.NewGenerateScheduleHandler(
		c.ProfileRepo, c.TaskRepo, c.ReplaceScheduleHandler, c.LLMClient,
	)
	c.GetChatHistoryHandler = assistantQueries.NewGetChatHistoryHandler(c.ChatRepo)
	c.GetAnalysisHandler = assistantQueries.NewGetAnalysisHandler(c.AnalysisRepo)

	// Insights and ledger.
	c.GetStatsHandler = insightsQueries.NewGetStatsHandler(c.InsightsData, statsCache)
	c.GetWeeklyInsightsHandler = insightsQueries.NewGetWeeklyInsightsHandler(c.InsightsData, weeklyCache)
	c.GetBalanceHandler = ledgerQueries.NewGetBalanceHandler(c.LedgerRepo)
}

// Close releases all held resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("failed to close event publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close Redis client", "error", err)
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("failed to close database", "error", err)
		}
	}
}
