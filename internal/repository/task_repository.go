package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/evotodo/task-tracker-api/internal/database"
	"github.com/evotodo/task-tracker-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by id for the given owner
func (r *GormTaskRepository) FindByID(userID, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves the owner's tasks with filtering, sorting and pagination
func (r *GormTaskRepository) List(userID string, filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("user_id = ?", userID)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(description) LIKE ?", pattern)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Tag != "" {
		// Set membership over comma-delimited storage. The four shapes cover
		// only-tag, first, last and middle positions without matching
		// "workout" for tag "work".
		query = query.Where(
			"(tags = ? OR tags LIKE ? OR tags LIKE ? OR tags LIKE ?)",
			filter.Tag,
			filter.Tag+",%",
			"%,"+filter.Tag,
			"%,"+filter.Tag+",%",
		)
	}
	if filter.IsCompleted != nil {
		query = query.Where("is_completed = ?", *filter.IsCompleted)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.
		Order(orderClause(filter.SortBy, filter.SortOrder)).
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	var tasks []models.Task
	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// orderClause builds the ORDER BY for a validated sort field and order.
// Priority ranks high > medium > low, never lexically. Tasks without a due
// date always sort after tasks that have one. The id tiebreak keeps page
// boundaries stable.
func orderClause(sortBy, sortOrder string) string {
	direction := "DESC"
	if sortOrder == SortOrderAsc {
		direction = "ASC"
	}

	switch sortBy {
	case SortByDueDate:
		return "CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date " + direction + ", id ASC"
	case SortByPriority:
		return "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END " + direction + ", id ASC"
	default:
		return "created_at " + direction + ", id ASC"
	}
}

// ListDaily retrieves all of the owner's recurring tasks, unpaginated
func (r *GormTaskRepository) ListDaily(userID string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ? AND is_daily = ?", userID, true).
		Order("created_at DESC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAll retrieves every task of the owner
func (r *GormTaskRepository) ListAll(userID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("user_id = ?", userID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete permanently removes a task for the given owner. A second delete of
// the same id reports ErrRecordNotFound.
func (r *GormTaskRepository) Delete(userID, id string) error {
	result := r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
