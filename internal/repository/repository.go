package repository

import (
	"github.com/evotodo/task-tracker-api/internal/models"
)

// Sort fields accepted by TaskFilter
const (
	SortByCreatedAt = "created_at"
	SortByDueDate   = "due_date"
	SortByPriority  = "priority"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// TaskFilter holds the combinable criteria for listing tasks. All fields are
// optional and combine with AND semantics.
type TaskFilter struct {
	Search      string
	Priority    *models.TaskPriority
	Tag         string
	IsCompleted *bool
	SortBy      string
	SortOrder   string
	Page        int
	PageSize    int
}

// TaskRepository defines the interface for task data access. Every lookup is
// scoped to the owning user; an id that exists but belongs to someone else
// is indistinguishable from one that does not exist.
type TaskRepository interface {
	// Create inserts a new task
	Create(task *models.Task) error

	// FindByID finds a task by id for the given owner
	FindByID(userID, id string) (*models.Task, error)

	// List retrieves the owner's tasks with filtering, sorting and pagination
	List(userID string, filter TaskFilter) ([]models.Task, int64, error)

	// ListDaily retrieves all of the owner's recurring tasks, unpaginated
	ListDaily(userID string) ([]models.Task, error)

	// ListAll retrieves every task of the owner (statistics input)
	ListAll(userID string) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete permanently removes a task for the given owner
	Delete(userID, id string) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}
