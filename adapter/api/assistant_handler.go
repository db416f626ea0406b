package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hiteshchouriya/rik/internal/assistant/application/commands"
	"github.com/hiteshchouriya/rik/internal/assistant/application/queries"
)

// AssistantHandler handles coaching assistant API requests.
type AssistantHandler struct {
	sendMessage      *commands.SendMessageHandler
	generateAnalysis *commands.GenerateAnalysisHandler
	generateSchedule *commands.GenerateScheduleHandler
	getChatHistory   *queries.GetChatHistoryHandler
	getAnalysis      *queries.GetAnalysisHandler
	logger           *slog.Logger
}

// AssistantHandlerConfig holds dependencies for the assistant handler.
type AssistantHandlerConfig struct {
	SendMessage      *commands.SendMessageHandler
	GenerateAnalysis *commands.GenerateAnalysisHandler
	GenerateSchedule *commands.GenerateScheduleHandler
	GetChatHistory   *queries.GetChatHistoryHandler
	GetAnalysis      *queries.GetAnalysisHandler
	Logger           *slog.Logger
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(cfg AssistantHandlerConfig) *AssistantHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &AssistantHandler{
		sendMessage:      cfg.SendMessage,
		generateAnalysis: cfg.GenerateAnalysis,
		generateSchedule: cfg.GenerateSchedule,
		getChatHistory:   cfg.GetChatHistory,
		getAnalysis:      cfg.GetAnalysis,
		logger:           cfg.Logger,
	}
}

// chatRequest is the request body for a chat message.
type chatRequest struct {
	UserID  uuid.UUID `json:"user_id"`
	Message string    `json:"message"`
}

// chatResponse is the response body for a chat message.
type chatResponse struct {
	Response string `json:"response"`
}

// SendMessage handles POST /api/chat
func (h *AssistantHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.sendMessage.Handle(r.Context(), commands.SendMessageCommand{
		UserID:  req.UserID,
		Message: req.Message,
	})
	if err != nil {
		h.logger.Error("failed to handle chat message", "error", err, "user_id", req.UserID)
		writeDomainError(w, err, "Failed to handle chat message")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: result.Response})
}

// GetChatHistory handles GET /api/chat/{userID}/history
func (h *AssistantHandler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	messages, err := h.getChatHistory.Handle(r.Context(), queries.GetChatHistoryQuery{
		UserID: userID,
		Limit:  parseIntParam(r, "limit", queries.DefaultHistoryLimit),
	})
	if err != nil {
		h.logger.Error("failed to get chat history", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to get chat history")
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// analysisResponse is the response body for a generated analysis.
type analysisResponse struct {
	AnalysisID      uuid.UUID `json:"analysis_id"`
	Summary         string    `json:"summary"`
	Achievements    []string  `json:"achievements"`
	Improvements    []string  `json:"improvements"`
	Recommendations []string  `json:"recommendations"`
	OverallScore    int       `json:"overall_score"`
	PointsAwarded   int       `json:"points_awarded"`
}

// GenerateAnalysis handles POST /api/analysis/{userID}. The optional date
// query parameter defaults to today.
func (h *AssistantHandler) GenerateAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	result, err := h.generateAnalysis.Handle(r.Context(), commands.GenerateAnalysisCommand{
		UserID: userID,
		Day:    r.URL.Query().Get("date"),
	})
	if err != nil {
		h.logger.Error("failed to generate analysis", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to generate analysis")
		return
	}
	if !result.Parsed {
		h.logger.Warn("analysis fell back to raw summary", "user_id", userID)
	}

	writeJSON(w, http.StatusOK, analysisResponse{
		AnalysisID:      result.AnalysisID,
		Summary:         result.Summary,
		Achievements:    result.Achievements,
		Improvements:    result.Improvements,
		Recommendations: result.Recommendations,
		OverallScore:    result.OverallScore,
		PointsAwarded:   result.PointsAwarded,
	})
}

// GetAnalysis handles GET /api/analysis/{userID}/{date}
func (h *AssistantHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	dto, err := h.getAnalysis.Handle(r.Context(), queries.GetAnalysisQuery{
		UserID: userID,
		Day:    r.PathValue("date"),
	})
	if err != nil {
		h.logger.Error("failed to get analysis", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to get analysis")
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// GenerateSchedule handles POST /api/schedule/{userID}/generate. The
// optional date query parameter defaults to today.
func (h *AssistantHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	result, err := h.generateSchedule.Handle(r.Context(), commands.GenerateScheduleCommand{
		UserID: userID,
		Day:    r.URL.Query().Get("date"),
	})
	if err != nil {
		h.logger.Error("failed to generate schedule", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to generate schedule")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":     result.Day,
		"item_ids": result.ItemIDs,
	})
}
