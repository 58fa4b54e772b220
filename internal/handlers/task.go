package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evotodo/task-tracker-api/internal/dto"
	apierrors "github.com/evotodo/task-tracker-api/internal/errors"
	"github.com/evotodo/task-tracker-api/internal/middleware"
	"github.com/evotodo/task-tracker-api/internal/models"
	"github.com/evotodo/task-tracker-api/internal/services"
	"github.com/evotodo/task-tracker-api/internal/utils"
)

// TaskHandler maps HTTP requests onto the task service.
type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the current user's tasks, filtered, sorted and paginated
// by query parameters.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params, err := utils.GetPaginationParams(c)
	if err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	input := services.ListTasksInput{
		Search:    c.Query("search"),
		Priority:  c.Query("priority"),
		Tag:       c.Query("tag"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      params.Page,
		PageSize:  params.PageSize,
	}

	if raw := c.Query("is_completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.UnprocessableEntity(c, "is_completed must be true or false")
			return
		}
		input.IsCompleted = &completed
	}

	tasks, total, err := h.taskService.List(userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.PageSize, total))
}

// DailyTasks returns every recurring task of the current user.
func (h *TaskHandler) DailyTasks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListDaily(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a single task by id.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	task, err := h.taskService.Get(userID, c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task owned by the current user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Description string     `json:"description"`
		Priority    string     `json:"priority"`
		Tags        []string   `json:"tags"`
		DueDate     *time.Time `json:"due_date"`
		IsDaily     bool       `json:"is_daily"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(userID, services.CreateTaskInput{
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		Tags:        req.Tags,
		DueDate:     req.DueDate,
		IsDaily:     req.IsDaily,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. The raw body is inspected so an
// explicit null due_date clears the field while an absent one leaves it.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.UnprocessableEntity(c, "Invalid request body")
		return
	}

	input, err := buildUpdateInput(raw)
	if err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	task, err := h.taskService.Update(userID, c.Param("id"), input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func buildUpdateInput(raw map[string]any) (services.UpdateTaskInput, error) {
	var input services.UpdateTaskInput

	if value, ok := raw["description"]; ok {
		description, ok := value.(string)
		if !ok {
			return input, errors.New("description must be a string")
		}
		input.Description = &description
	}
	if value, ok := raw["priority"]; ok {
		str, ok := value.(string)
		if !ok {
			return input, errors.New("priority must be a string")
		}
		priority := models.TaskPriority(str)
		input.Priority = &priority
	}
	if value, ok := raw["tags"]; ok {
		list, ok := value.([]any)
		if !ok {
			return input, errors.New("tags must be an array of strings")
		}
		tags := make([]string, 0, len(list))
		for _, item := range list {
			tag, ok := item.(string)
			if !ok {
				return input, errors.New("tags must be an array of strings")
			}
			tags = append(tags, tag)
		}
		input.Tags = tags
		input.TagsSet = true
	}
	if value, ok := raw["due_date"]; ok {
		if value == nil {
			input.ClearDueDate = true
		} else {
			str, ok := value.(string)
			if !ok {
				return input, errors.New("due_date must be an RFC3339 timestamp or null")
			}
			parsed, err := time.Parse(time.RFC3339, str)
			if err != nil {
				return input, errors.New("due_date must be an RFC3339 timestamp or null")
			}
			input.DueDate = &parsed
		}
	}
	if value, ok := raw["is_daily"]; ok {
		flag, ok := value.(bool)
		if !ok {
			return input, errors.New("is_daily must be a boolean")
		}
		input.IsDaily = &flag
	}
	if value, ok := raw["is_completed"]; ok {
		flag, ok := value.(bool)
		if !ok {
			return input, errors.New("is_completed must be a boolean")
		}
		input.IsCompleted = &flag
	}

	return input, nil
}

// ToggleComplete flips a task's completion flag.
func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	task, err := h.taskService.ToggleComplete(userID, c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task permanently. A retry after a successful delete
// sees 404, which callers treat as the same end state.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.taskService.Delete(userID, c.Param("id")); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrDescriptionTooLong),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidSortField),
		errors.Is(err, services.ErrInvalidSortOrder):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
