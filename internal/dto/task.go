package dto

import (
	"time"

	"github.com/evotodo/task-tracker-api/internal/models"
)

// TaskDTO represents a task in API responses. Tags are exposed as a set
// regardless of how they are stored.
type TaskDTO struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	IsCompleted bool                `json:"is_completed"`
	Priority    models.TaskPriority `json:"priority"`
	Tags        []string            `json:"tags"`
	DueDate     *time.Time          `json:"due_date"`
	IsDaily     bool                `json:"is_daily"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Description: task.Description,
		IsCompleted: task.IsCompleted,
		Priority:    task.Priority,
		Tags:        task.TagList(),
		DueDate:     task.DueDate,
		IsDaily:     task.IsDaily,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, total int64) TaskListResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}

	return TaskListResponse{
		Tasks:      ToTaskDTOs(tasks),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
