package api

import (
	"log/slog"
	"net/http"

	insightsQueries "github.com/hiteshchouriya/rik/internal/insights/application/queries"
	ledgerQueries "github.com/hiteshchouriya/rik/internal/ledger/application/queries"
)

// defaultRecentPoints bounds how many recent ledger events a points read returns.
const defaultRecentPoints = 20

// InsightsHandler handles stats, insights, and point balance API requests.
type InsightsHandler struct {
	getStats    *insightsQueries.GetStatsHandler
	getInsights *insightsQueries.GetWeeklyInsightsHandler
	getBalance  *ledgerQueries.GetBalanceHandler
	logger      *slog.Logger
}

// InsightsHandlerConfig holds dependencies for the insights handler.
type InsightsHandlerConfig struct {
	GetStats    *insightsQueries.GetStatsHandler
	GetInsights *insightsQueries.GetWeeklyInsightsHandler
	GetBalance  *ledgerQueries.GetBalanceHandler
	Logger      *slog.Logger
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(cfg InsightsHandlerConfig) *InsightsHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &InsightsHandler{
		getStats:    cfg.GetStats,
		getInsights: cfg.GetInsights,
		getBalance:  cfg.GetBalance,
		logger:      cfg.Logger,
	}
}

// GetStats handles GET /api/stats/{userID}
func (h *InsightsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	dto, err := h.getStats.Handle(r.Context(), insightsQueries.GetStatsQuery{UserID: userID})
	if err != nil {
		h.logger.Error("failed to get stats", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to get stats")
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// GetWeeklyInsights handles GET /api/insights/{userID}
func (h *InsightsHandler) GetWeeklyInsights(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	dto, err := h.getInsights.Handle(r.Context(), insightsQueries.GetWeeklyInsightsQuery{UserID: userID})
	if err != nil {
		h.logger.Error("failed to get insights", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to get insights")
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// GetPoints handles GET /api/points/{userID}
func (h *InsightsHandler) GetPoints(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	dto, err := h.getBalance.Handle(r.Context(), ledgerQueries.GetBalanceQuery{
		UserID:      userID,
		RecentLimit: parseIntParam(r, "limit", defaultRecentPoints),
	})
	if err != nil {
		h.logger.Error("failed to get point balance", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to get point balance")
		return
	}

	writeJSON(w, http.StatusOK, dto)
}
