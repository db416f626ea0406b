package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hiteshchouriya/rik/adapter/api"
	"github.com/hiteshchouriya/rik/internal/app"
	"github.com/hiteshchouriya/rik/pkg/config"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		container, err := app.NewContainer(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer container.Close()

		if err := container.OutboxProcessor.Start(ctx); err != nil {
			return fmt.Errorf("failed to start outbox processor: %w", err)
		}
		defer container.OutboxProcessor.Stop()

		serverCfg := api.DefaultServerConfig()
		serverCfg.Addr = cfg.HTTPAddr
		server := api.NewServer(serverCfg, apiHandlers(container), logger)

		errCh := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	},
}

// apiHandlers assembles the HTTP handlers from the container.
func apiHandlers(c *app.Container) api.Handlers {
	return api.Handlers{
		Profiles: api.NewProfileHandler(api.ProfileHandlerConfig{
			CreateProfile: c.CreateProfileHandler,
			UpdateProfile: c.UpdateProfileHandler,
			GetProfile:    c.GetProfileHandler,
			Logger:        c.Logger,
		}),
		Habits: api.NewHabitsHandler(api.HabitsHandlerConfig{
			LogHabit:    c.LogHabitHandler,
			GetStreaks:  c.GetStreaksHandler,
			ListDayLogs: c.ListDayLogsHandler,
			Logger:      c.Logger,
		}),
		Journal: api.NewJournalHandler(api.JournalHandlerConfig{
			UpsertDailyLog: c.UpsertDailyLogHandler,
			GetDailyLog:    c.GetDailyLogHandler,
			ListDailyLogs:  c.ListDailyLogsHandler,
			Logger:         c.Logger,
		}),
		Planning: api.NewPlanningHandler(api.PlanningHandlerConfig{
			CreateTask:       c.CreateTaskHandler,
			CompleteTask:     c.CompleteTaskHandler,
			ReopenTask:       c.ReopenTaskHandler,
			DeleteTask:       c.DeleteTaskHandler,
			CompleteSchedule: c.CompleteScheduleItemHandler,
			ListTasks:        c.ListTasksHandler,
			GetSchedule:      c.GetScheduleHandler,
			TaskRepo:         c.TaskRepo,
			ScheduleRepo:     c.ScheduleRepo,
			Logger:           c.Logger,
		}),
		Assistant: api.NewAssistantHandler(api.AssistantHandlerConfig{
			SendMessage:      c.SendMessageHandler,
			GenerateAnalysis: c.GenerateAnalysisHandler,
			GenerateSchedule: c.GenerateScheduleHandler,
			GetChatHistory:   c.GetChatHistoryHandler,
			GetAnalysis:      c.GetAnalysisHandler,
			Logger:           c.Logger,
		}),
		Insights: api.NewInsightsHandler(api.InsightsHandlerConfig{
			GetStats:    c.GetStatsHandler,
			GetInsights: c.GetWeeklyInsightsHandler,
			GetBalance:  c.GetBalanceHandler,
			Logger:      c.Logger,
		}),
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
