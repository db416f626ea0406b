package api

import (
	"log/slog"
	"net/http"

	"github.com/hiteshchouriya/rik/internal/identity/application/commands"
	"github.com/hiteshchouriya/rik/internal/identity/application/queries"
)

// ProfileHandler handles profile API requests.
type ProfileHandler struct {
	createProfile *commands.CreateProfileHandler
	updateProfile *commands.UpdateProfileHandler
	getProfile    *queries.GetProfileHandler
	logger        *slog.Logger
}

// ProfileHandlerConfig holds dependencies for the profile handler.
type ProfileHandlerConfig struct {
	CreateProfile *commands.CreateProfileHandler
	UpdateProfile *commands.UpdateProfileHandler
	GetProfile    *queries.GetProfileHandler
	Logger        *slog.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(cfg ProfileHandlerConfig) *ProfileHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &ProfileHandler{
		createProfile: cfg.CreateProfile,
		updateProfile: cfg.UpdateProfile,
		getProfile:    cfg.GetProfile,
		logger:        cfg.Logger,
	}
}

// profileRequest is the request body for creating or updating a profile.
type profileRequest struct {
	Name          string   `json:"name"`
	Age           int      `json:"age"`
	CurrentRole   string   `json:"current_role"`
	GoalRole      string   `json:"goal_role"`
	WakeTime      string   `json:"wake_time"`
	SleepTime     string   `json:"sleep_time"`
	WorkStart     string   `json:"work_start"`
	WorkEnd       string   `json:"work_end"`
	Mode          string   `json:"mode"`
	HabitsToBuild []string `json:"habits_to_build"`
	HabitsToQuit  []string `json:"habits_to_quit"`
	Goals         []string `json:"goals"`
}

// CreateProfile handles POST /api/users
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.createProfile.Handle(r.Context(), commands.CreateProfileCommand{
		Name:          req.Name,
		Age:           req.Age,
		CurrentRole:   req.CurrentRole,
		GoalRole:      req.GoalRole,
		WakeTime:      req.WakeTime,
		SleepTime:     req.SleepTime,
		WorkStart:     req.WorkStart,
		WorkEnd:       req.WorkEnd,
		Mode:          req.Mode,
		HabitsToBuild: req.HabitsToBuild,
		HabitsToQuit:  req.HabitsToQuit,
		Goals:         req.Goals,
	})
	if err != nil {
		h.logger.Error("failed to create profile", "error", err)
		writeDomainError(w, err, "Failed to create profile")
		return
	}

	dto, err := h.getProfile.Handle(r.Context(), queries.GetProfileQuery{ProfileID: result.ProfileID})
	if err != nil {
		h.logger.Error("failed to read back profile", "error", err)
		writeDomainError(w, err, "Failed to create profile")
		return
	}

	writeJSON(w, http.StatusCreated, dto)
}

// GetProfile handles GET /api/users/{userID}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	dto, err := h.getProfile.Handle(r.Context(), queries.GetProfileQuery{ProfileID: userID})
	if err != nil {
		h.logger.Error("failed to get profile", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// UpdateProfile handles PUT /api/users/{userID}
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.updateProfile.Handle(r.Context(), commands.UpdateProfileCommand{
		ProfileID:     userID,
		Name:          req.Name,
		Age:           req.Age,
		CurrentRole:   req.CurrentRole,
		GoalRole:      req.GoalRole,
		WakeTime:      req.WakeTime,
		SleepTime:     req.SleepTime,
		WorkStart:     req.WorkStart,
		WorkEnd:       req.WorkEnd,
		Mode:          req.Mode,
		HabitsToBuild: req.HabitsToBuild,
		HabitsToQuit:  req.HabitsToQuit,
		Goals:         req.Goals,
	})
	if err != nil {
		h.logger.Error("failed to update profile", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to update profile")
		return
	}

	dto, err := h.getProfile.Handle(r.Context(), queries.GetProfileQuery{ProfileID: userID})
	if err != nil {
		h.logger.Error("failed to read back profile", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, dto)
}
