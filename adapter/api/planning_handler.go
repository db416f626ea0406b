package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hiteshchouriya/rik/internal/planning/application/commands"
	"github.com/hiteshchouriya/rik/internal/planning/application/queries"
	"github.com/hiteshchouriya/rik/internal/planning/domain"
)

// PlanningHandler handles task and schedule API requests.
type PlanningHandler struct {
	createTask       *commands.CreateTaskHandler
	completeTask     *commands.CompleteTaskHandler
	reopenTask       *commands.ReopenTaskHandler
	deleteTask       *commands.DeleteTaskHandler
	completeSchedule *commands.CompleteScheduleItemHandler
	listTasks        *queries.ListTasksHandler
	getSchedule      *queries.GetScheduleHandler
	taskRepo         domain.TaskRepository
	scheduleRepo     domain.ScheduleRepository
	logger           *slog.Logger
}

// PlanningHandlerConfig holds dependencies for the planning handler.
// TaskRepo and ScheduleRepo resolve the owner of a task or schedule item
// addressed by ID alone.
type PlanningHandlerConfig struct {
	CreateTask       *commands.CreateTaskHandler
	CompleteTask     *commands.CompleteTaskHandler
	ReopenTask       *commands.ReopenTaskHandler
	DeleteTask       *commands.DeleteTaskHandler
	CompleteSchedule *commands.CompleteScheduleItemHandler
	ListTasks        *queries.ListTasksHandler
	GetSchedule      *queries.GetScheduleHandler
	TaskRepo         domain.TaskRepository
	ScheduleRepo     domain.ScheduleRepository
	Logger           *slog.Logger
}

// NewPlanningHandler creates a new planning handler.
func NewPlanningHandler(cfg PlanningHandlerConfig) *PlanningHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &PlanningHandler{
		createTask:       cfg.CreateTask,
		completeTask:     cfg.CompleteTask,
		reopenTask:       cfg.ReopenTask,
		deleteTask:       cfg.DeleteTask,
		completeSchedule: cfg.CompleteSchedule,
		listTasks:        cfg.ListTasks,
		getSchedule:      cfg.GetSchedule,
		taskRepo:         cfg.TaskRepo,
		scheduleRepo:     cfg.ScheduleRepo,
		logger:           cfg.Logger,
	}
}

// createTaskRequest is the request body for creating a task.
type createTaskRequest struct {
	UserID        uuid.UUID `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ScheduledTime string    `json:"scheduled_time"`
	Date          string    `json:"date"`
	Priority      string    `json:"priority"`
}

// CreateTask handles POST /api/tasks
func (h *PlanningHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.createTask.Handle(r.Context(), commands.CreateTaskCommand{
		UserID:        req.UserID,
		Title:         req.Title,
		Description:   req.Description,
		ScheduledTime: req.ScheduledTime,
		Day:           req.Date,
		Priority:      req.Priority,
	})
	if err != nil {
		h.logger.Error("failed to create task", "error", err, "user_id", req.UserID)
		writeDomainError(w, err, "Failed to create task")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"task_id": result.TaskID})
}

// ListTasks handles GET /api/tasks/{userID}/{date}
func (h *PlanningHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	tasks, err := h.listTasks.Handle(r.Context(), queries.ListTasksQuery{
		UserID: userID,
		Day:    r.PathValue("date"),
	})
	if err != nil {
		h.logger.Error("failed to list tasks", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to list tasks")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// completeTaskResponse is the response body for toggling a task.
type completeTaskResponse struct {
	TaskID        uuid.UUID `json:"task_id"`
	Completed     bool      `json:"completed"`
	PointsAwarded int       `json:"points_awarded"`
}

// CompleteTask handles PUT /api/tasks/{taskID}/complete. The optional
// completed query parameter defaults to true; false reopens the task.
func (h *PlanningHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathUUID(r, "taskID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskRepo.FindByID(r.Context(), taskID)
	if err != nil {
		h.logger.Error("failed to find task", "error", err, "task_id", taskID)
		writeError(w, http.StatusInternalServerError, "Failed to complete task")
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, domain.ErrTaskNotFound.Error())
		return
	}

	completed := parseBoolParam(r, "completed", true)
	if !completed {
		err := h.reopenTask.Handle(r.Context(), commands.ReopenTaskCommand{
			TaskID: taskID,
			UserID: task.UserID(),
		})
		if err != nil {
			h.logger.Error("failed to reopen task", "error", err, "task_id", taskID)
			writeDomainError(w, err, "Failed to reopen task")
			return
		}
		writeJSON(w, http.StatusOK, completeTaskResponse{TaskID: taskID, Completed: false})
		return
	}

	result, err := h.completeTask.Handle(r.Context(), commands.CompleteTaskCommand{
		TaskID: taskID,
		UserID: task.UserID(),
	})
	if err != nil {
		h.logger.Error("failed to complete task", "error", err, "task_id", taskID)
		writeDomainError(w, err, "Failed to complete task")
		return
	}

	writeJSON(w, http.StatusOK, completeTaskResponse{
		TaskID:        taskID,
		Completed:     true,
		PointsAwarded: result.PointsAwarded,
	})
}

// DeleteTask handles DELETE /api/tasks/{taskID}
func (h *PlanningHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathUUID(r, "taskID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskRepo.FindByID(r.Context(), taskID)
	if err != nil {
		h.logger.Error("failed to find task", "error", err, "task_id", taskID)
		writeError(w, http.StatusInternalServerError, "Failed to delete task")
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, domain.ErrTaskNotFound.Error())
		return
	}

	err = h.deleteTask.Handle(r.Context(), commands.DeleteTaskCommand{
		TaskID: taskID,
		UserID: task.UserID(),
	})
	if err != nil {
		h.logger.Error("failed to delete task", "error", err, "task_id", taskID)
		writeDomainError(w, err, "Failed to delete task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetSchedule handles GET /api/schedule/{userID}/{date}
func (h *PlanningHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	items, err := h.getSchedule.Handle(r.Context(), queries.GetScheduleQuery{
		UserID: userID,
		Day:    r.PathValue("date"),
	})
	if err != nil {
		h.logger.Error("failed to get schedule", "error", err, "user_id", userID)
		writeDomainError(w, err, "Failed to get schedule")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// CompleteScheduleItem handles PUT /api/schedule/{itemID}/complete
func (h *PlanningHandler) CompleteScheduleItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathUUID(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid schedule item ID")
		return
	}

	item, err := h.scheduleRepo.FindByID(r.Context(), itemID)
	if err != nil {
		h.logger.Error("failed to find schedule item", "error", err, "item_id", itemID)
		writeError(w, http.StatusInternalServerError, "Failed to complete schedule item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, domain.ErrScheduleItemNotFound.Error())
		return
	}

	err = h.completeSchedule.Handle(r.Context(), commands.CompleteScheduleItemCommand{
		ItemID: itemID,
		UserID: item.UserID(),
	})
	if err != nil {
		h.logger.Error("failed to complete schedule item", "error", err, "item_id", itemID)
		writeDomainError(w, err, "Failed to complete schedule item")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"item_id": itemID, "completed": true})
}
