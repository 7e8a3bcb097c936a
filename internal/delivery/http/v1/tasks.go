package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ImranQ74/todo-phase2/internal/models"
	"github.com/ImranQ74/todo-phase2/internal/services"
)

const taskIDParam = "taskID"

type taskResponse struct {
	ID          int64     `json:"id"`
	ExternalID  string    `json:"external_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		ExternalID:  task.ExternalID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		UserID:      task.OwnerID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

type taskListResponse struct {
	Tasks []taskResponse `json:"tasks"`
	Total int64          `json:"total"`
}

type toggleTaskResponse struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	Completed  bool   `json:"completed"`
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// updateTaskRequest is a partial update: an omitted field leaves the task
// untouched, a present field overwrites it, including "" and false.
type updateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		abort(c, newUnauthorizedError("not authenticated"))
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.abortWithTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		abort(c, newUnauthorizedError("not authenticated"))
		return
	}

	skip, err := strconv.ParseUint(c.DefaultQuery("skip", "0"), 10, 64)
	if err != nil {
		abort(c, newBadRequestError("invalid skip parameter"))
		return
	}
	// An absent limit falls back to the default page size; an explicit
	// limit=0 is passed through and yields an empty page.
	limit, err := strconv.ParseUint(c.DefaultQuery("limit", "100"), 10, 64)
	if err != nil {
		abort(c, newBadRequestError("invalid limit parameter"))
		return
	}

	list, err := h.tasks.ListTasks(c, services.ListTasksParams{
		OwnerID: userID,
		Offset:  skip,
		Limit:   limit,
	})
	if err != nil {
		h.abortWithTaskError(c, err)
		return
	}

	response := taskListResponse{
		Tasks: make([]taskResponse, len(list.Tasks)),
		Total: list.Total,
	}
	for i, task := range list.Tasks {
		response.Tasks[i] = newTaskResponse(task)
	}

	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		abort(c, newUnauthorizedError("not authenticated"))
		return
	}

	taskID, ok := taskIDFromPath(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c, taskID, userID)
	if err != nil {
		h.abortWithTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		abort(c, newUnauthorizedError("not authenticated"))
		return
	}

	taskID, ok := taskIDFromPath(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:          taskID,
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.abortWithTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		abort(c, newUnauthorizedError("not authenticated"))
		return
	}

	taskID, ok := taskIDFromPath(c)
	if !ok {
		return
	}

	err := h.tasks.DeleteTask(c, taskID, userID)
	if err != nil {
		h.abortWithTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleToggleTaskComplete(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		abort(c, newUnauthorizedError("not authenticated"))
		return
	}

	taskID, ok := taskIDFromPath(c)
	if !ok {
		return
	}

	task, err := h.tasks.ToggleTaskComplete(c, taskID, userID)
	if err != nil {
		h.abortWithTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, toggleTaskResponse{
		ID:         task.ID,
		ExternalID: task.ExternalID,
		Completed:  task.Completed,
	})
}

func taskIDFromPath(c *gin.Context) (int64, bool) {
	taskID, err := strconv.ParseInt(c.Param(taskIDParam), 10, 64)
	if err != nil {
		abort(c, newBadRequestError("invalid task id"))
		return 0, false
	}

	return taskID, true
}

// abortWithTaskError translates service errors to status codes. Store I/O
// faults fall through to a 500 so they are never mistaken for a missing
// task.
func (h *handlerImpl) abortWithTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError("task not found"))
	case errors.Is(err, services.ErrEmptyTaskTitle),
		errors.Is(err, services.ErrTaskTitleTooLong):
		abort(c, newValidationError(err.Error()))
	default:
		h.logger.Error().
			Err(err).
			Msg("task operation failed")
		abort(c, newAPIError(http.StatusInternalServerError, "internal server error"))
	}
}
