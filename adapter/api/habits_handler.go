package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hiteshchouriya/rik/internal/habits/application/commands"
	"github.com/hiteshchouriya/rik/internal/habits/application/queries"
)

// HabitsHandler handles habit tracking API requests.
type HabitsHandler struct {
	logHabit    *commands.LogHabitHandler
	getStreaks  *queries.GetStreaksHandler
	listDayLogs *queries.ListDayLogsHandler
	logger      *slog.Logger
}

// HabitsHandlerConfig holds dependencies for the habits handler.
type HabitsHandlerConfig struct {
	LogHabit    *commands.LogHabitHandler
	GetStreaks  *queries.GetStreaksHandler
	ListDayLogs *queries.ListDayLogsHandler
	Logger      *slog.Logger
}

// NewHabitsHandler creates a new habits handler.
func NewHabitsHandler(cfg HabitsHandlerConfig) *HabitsHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &HabitsHandler{
		logHabit:    cfg.LogHabit,
		getStreaks:  cfg.GetStreaks,
		listDayLogs: cfg.ListDayLogs,
		logger:      cfg.Logger,
	}
}

// logHabitRequest is the request body for logging a habit.
type logHabitRequest struct {
	UserID    uuid.UUID `json:"user_id"`
	HabitName string    `json:"habit_name"`
	HabitType string    `json:"habit_type"`
	Completed bool      `json:"completed"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes"`
}

// logHabitResponse is the response body for logging a habit.
type logHabitResponse struct {
	LogID         uuid.UUID `json:"log_id"`
	PointsAwarded int       `json:"points_awarded"`
}

// LogHabit handles POST /api/habits/log
func (h *HabitsHandler) LogHabit(w http.ResponseWriter, r *http.Request) {
	var req logHabitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.logHabit.Handle(r.Context(), commands.LogHabitCommand{
		UserID:    req.UserID,
		HabitName: req.HabitName,
		HabitType: req.HabitType,
		Completed: req.Completed,
		Day:       req.Date,
		Notes:     req.Notes,
	})
	if err != nil {
		h.logger.Error("failed to log habit", "error", err, "user_id", req.UserID)
		writeDomainError(w, err, "Failed to log habit")
		return
	}

	writeJSON(w, http.StatusOK, logHabitResponse{
		LogID:         result.LogID,
		PointsAwarded: result.PointsAwarded,
	})
}

// GetStreaks handles GET /api/habits/{userID}/streaks
func (h *HabitsHandler) GetStreaks(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	dto, err := h.getStreaks.Handle(r.Context(), queries.GetStreaksQuery{UserID: userID})
	if err != nil {
		h.logger.Error("failed to get streaks", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to get streaks")
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// ListDayLogs handles GET /api/habits/{userID}/{date}
func (h *HabitsHandler) ListDayLogs(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	logs, err := h.listDayLogs.Handle(r.Context(), queries.ListDayLogsQuery{
		UserID: userID,
		Day:    r.PathValue("date"),
	})
	if err != nil {
		h.logger.Error("failed to list habit logs", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to list habit logs")
		return
	}

	writeJSON(w, http.StatusOK, logs)
}
