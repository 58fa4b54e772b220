package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/evotodo/task-tracker-api/internal/constants"
	"github.com/evotodo/task-tracker-api/internal/models"
	"github.com/evotodo/task-tracker-api/internal/repository"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrDescriptionRequired = errors.New("description is required")
	ErrDescriptionTooLong  = errors.New("description is too long")
	ErrInvalidPriority     = errors.New("priority must be one of low, medium, high")
	ErrInvalidSortField    = errors.New("sort_by must be one of created_at, due_date, priority")
	ErrInvalidSortOrder    = errors.New("sort_order must be asc or desc")
)

// TaskService owns task mutations and list composition. Ownership always
// comes from the resolved identity, never from input.
type TaskService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Description string
	Priority    models.TaskPriority
	Tags        []string
	DueDate     *time.Time
	IsDaily     bool
}

// UpdateTaskInput represents input for partially updating a task. Nil fields
// are left untouched.
type UpdateTaskInput struct {
	Description  *string
	Priority     *models.TaskPriority
	Tags         []string
	TagsSet      bool
	DueDate      *time.Time
	ClearDueDate bool
	IsDaily      *bool
	IsCompleted  *bool
}

// ListTasksInput represents the criteria for listing tasks
type ListTasksInput struct {
	Search      string
	Priority    string
	Tag         string
	IsCompleted *bool
	SortBy      string
	SortOrder   string
	Page        int
	PageSize    int
}

// Create validates and stores a new task with defaults applied.
func (s *TaskService) Create(userID string, input CreateTaskInput) (*models.Task, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if len(description) > constants.MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		UserID:      userID,
		Description: description,
		Priority:    priority,
		DueDate:     input.DueDate,
		IsDaily:     input.IsDaily,
	}
	task.SetTags(input.Tags)

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Get returns a single task for the owner.
func (s *TaskService) Get(userID, id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Update applies the supplied fields to an existing task. Owner and id are
// immutable; updated_at is refreshed on every call.
func (s *TaskService) Update(userID, id string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, ErrDescriptionRequired
		}
		if len(description) > constants.MaxDescriptionLength {
			return nil, ErrDescriptionTooLong
		}
		task.Description = description
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.TagsSet {
		task.SetTags(input.Tags)
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.IsDaily != nil {
		task.IsDaily = *input.IsDaily
	}
	if input.IsCompleted != nil && *input.IsCompleted != task.IsCompleted {
		s.setCompleted(task, *input.IsCompleted)
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// ToggleComplete flips the completion flag. Toggling twice restores the
// original state in every field except updated_at.
func (s *TaskService) ToggleComplete(userID, id string) (*models.Task, error) {
	task, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	s.setCompleted(task, !task.IsCompleted)

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to toggle completion: %w", err)
	}

	return task, nil
}

func (s *TaskService) setCompleted(task *models.Task, completed bool) {
	task.IsCompleted = completed
	if completed {
		now := s.now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
}

// Delete removes a task permanently. A repeated delete is ErrTaskNotFound,
// which callers treat as the successful end state.
func (s *TaskService) Delete(userID, id string) error {
	if err := s.taskRepo.Delete(userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// List composes the filtered, sorted, paginated view of the owner's tasks.
func (s *TaskService) List(userID string, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Search:      input.Search,
		Tag:         input.Tag,
		IsCompleted: input.IsCompleted,
		Page:        input.Page,
		PageSize:    input.PageSize,
	}

	if input.Priority != "" {
		priority := models.TaskPriority(input.Priority)
		if !priority.Valid() {
			return nil, 0, ErrInvalidPriority
		}
		filter.Priority = &priority
	}

	switch input.SortBy {
	case "", repository.SortByCreatedAt:
		filter.SortBy = repository.SortByCreatedAt
	case repository.SortByDueDate, repository.SortByPriority:
		filter.SortBy = input.SortBy
	default:
		return nil, 0, ErrInvalidSortField
	}

	switch input.SortOrder {
	case "", repository.SortOrderDesc:
		filter.SortOrder = repository.SortOrderDesc
	case repository.SortOrderAsc:
		filter.SortOrder = repository.SortOrderAsc
	default:
		return nil, 0, ErrInvalidSortOrder
	}

	if filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.MaxPageSize
	}

	tasks, total, err := s.taskRepo.List(userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// ListDaily returns all recurring tasks for the owner. This is a distinct
// operation from List, not a filter value: the daily set is tracked as a
// whole, unfiltered and unpaginated.
func (s *TaskService) ListDaily(userID string) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListDaily(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily tasks: %w", err)
	}
	return tasks, nil
}
