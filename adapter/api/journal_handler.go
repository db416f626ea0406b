package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hiteshchouriya/rik/internal/journal/application/commands"
	"github.com/hiteshchouriya/rik/internal/journal/application/queries"
)

// JournalHandler handles daily log API requests.
type JournalHandler struct {
	upsertDailyLog *commands.UpsertDailyLogHandler
	getDailyLog    *queries.GetDailyLogHandler
	listDailyLogs  *queries.ListDailyLogsHandler
	logger         *slog.Logger
}

// JournalHandlerConfig holds dependencies for the journal handler.
type JournalHandlerConfig struct {
	UpsertDailyLog *commands.UpsertDailyLogHandler
	GetDailyLog    *queries.GetDailyLogHandler
	ListDailyLogs  *queries.ListDailyLogsHandler
	Logger         *slog.Logger
}

// NewJournalHandler creates a new journal handler.
func NewJournalHandler(cfg JournalHandlerConfig) *JournalHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &JournalHandler{
		upsertDailyLog: cfg.UpsertDailyLog,
		getDailyLog:    cfg.GetDailyLog,
		listDailyLogs:  cfg.ListDailyLogs,
		logger:         cfg.Logger,
	}
}

// dailyLogRequest is the request body for recording a daily log.
// Ratings are 1-5; zero or omitted means "not recorded".
type dailyLogRequest struct {
	UserID          uuid.UUID `json:"user_id"`
	Date            string    `json:"date"`
	Mood            int       `json:"mood"`
	EnergyLevel     int       `json:"energy_level"`
	Productivity    int       `json:"productivity_score"`
	Activities      []string  `json:"activities"`
	Notes           string    `json:"notes"`
	WakeTimeActual  string    `json:"wake_time_actual"`
	SleepTimeActual string    `json:"sleep_time_actual"`
}

// UpsertDailyLog handles POST /api/daily-log
func (h *JournalHandler) UpsertDailyLog(w http.ResponseWriter, r *http.Request) {
	var req dailyLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.upsertDailyLog.Handle(r.Context(), commands.UpsertDailyLogCommand{
		UserID:          req.UserID,
		Day:             req.Date,
		Mood:            req.Mood,
		EnergyLevel:     req.EnergyLevel,
		Productivity:    req.Productivity,
		Activities:      req.Activities,
		Notes:           req.Notes,
		WakeTimeActual:  req.WakeTimeActual,
		SleepTimeActual: req.SleepTimeActual,
	})
	if err != nil {
		h.logger.Error("failed to record daily log", "error", err, "user_id", req.UserID)
		writeDomainError(w, err, "Failed to record daily log")
		return
	}

	dto, err := h.getDailyLog.Handle(r.Context(), queries.GetDailyLogQuery{
		UserID: req.UserID,
		Day:    req.Date,
	})
	if err != nil {
		h.logger.Error("failed to read back daily log", "error", err, "log_id", result.LogID)
		writeDomainError(w, err, "Failed to record daily log")
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// GetDailyLog handles GET /api/daily-log/{userID}/{date}
func (h *JournalHandler) GetDailyLog(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	dto, err := h.getDailyLog.Handle(r.Context(), queries.GetDailyLogQuery{
		UserID: userID,
		Day:    r.PathValue("date"),
	})
	if err != nil {
		h.logger.Error("failed to get daily log", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to get daily log")
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// ListDailyLogs handles GET /api/daily-logs/{userID}
func (h *JournalHandler) ListDailyLogs(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	logs, err := h.listDailyLogs.Handle(r.Context(), queries.ListDailyLogsQuery{
		UserID: userID,
		Limit:  parseIntParam(r, "limit", 7),
	})
	if err != nil {
		h.logger.Error("failed to list daily logs", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to list daily logs")
		return
	}

	writeJSON(w, http.StatusOK, logs)
}
