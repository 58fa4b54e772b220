package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/evotodo/task-tracker-api/internal/models"
)

func newTestRepo(t *testing.T) (TaskRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	return NewTaskRepository(db), db
}

func seedTask(t *testing.T, db *gorm.DB, userID, description string, mutate func(*models.Task)) *models.Task {
	t.Helper()

	task := &models.Task{
		UserID:      userID,
		Description: description,
		Priority:    models.PriorityMedium,
	}
	if mutate != nil {
		mutate(task)
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func descriptions(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Description
	}
	return out
}

func TestTaskRepository_FindByID_ScopedToOwner(t *testing.T) {
	repo, db := newTestRepo(t)
	task := seedTask(t, db, "owner", "private", nil)

	found, err := repo.FindByID("owner", task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, found.ID)

	_, err = repo.FindByID("intruder", task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByID("owner", "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskRepository_List_OwnerIsolation(t *testing.T) {
	repo, db := newTestRepo(t)
	seedTask(t, db, "alice", "hers", nil)
	seedTask(t, db, "bob", "his", nil)

	tasks, total, err := repo.List("alice", TaskFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "hers", tasks[0].Description)
}

func TestTaskRepository_List_TagMembershipShapes(t *testing.T) {
	repo, db := newTestRepo(t)

	seedTask(t, db, "u", "only", func(task *models.Task) { task.Tags = "work" })
	seedTask(t, db, "u", "first", func(task *models.Task) { task.Tags = "work,home" })
	seedTask(t, db, "u", "last", func(task *models.Task) { task.Tags = "home,work" })
	seedTask(t, db, "u", "middle", func(task *models.Task) { task.Tags = "home,work,gym" })
	seedTask(t, db, "u", "superstring", func(task *models.Task) { task.Tags = "workout" })
	seedTask(t, db, "u", "untagged", nil)

	tasks, total, err := repo.List("u", TaskFilter{Tag: "work"})
	require.NoError(t, err)

	assert.Equal(t, int64(4), total)
	assert.ElementsMatch(t, []string{"only", "first", "last", "middle"}, descriptions(tasks))
}

func TestTaskRepository_List_SearchCaseInsensitive(t *testing.T) {
	repo, db := newTestRepo(t)
	seedTask(t, db, "u", "Write REPORT", nil)
	seedTask(t, db, "u", "buy milk", nil)

	tasks, _, err := repo.List("u", TaskFilter{Search: "RePoRt"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Write REPORT"}, descriptions(tasks))
}

func TestTaskRepository_List_PrioritySortRanksSemantically(t *testing.T) {
	repo, db := newTestRepo(t)
	seedTask(t, db, "u", "mid", func(task *models.Task) { task.Priority = models.PriorityMedium })
	seedTask(t, db, "u", "low", func(task *models.Task) { task.Priority = models.PriorityLow })
	seedTask(t, db, "u", "high", func(task *models.Task) { task.Priority = models.PriorityHigh })

	tasks, _, err := repo.List("u", TaskFilter{SortBy: SortByPriority, SortOrder: SortOrderDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "mid", "low"}, descriptions(tasks))

	tasks, _, err = repo.List("u", TaskFilter{SortBy: SortByPriority, SortOrder: SortOrderAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "mid", "high"}, descriptions(tasks))
}

func TestTaskRepository_List_NullDueDatesSortLast(t *testing.T) {
	repo, db := newTestRepo(t)

	early := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	seedTask(t, db, "u", "undated", nil)
	seedTask(t, db, "u", "late", func(task *models.Task) { task.DueDate = &late })
	seedTask(t, db, "u", "early", func(task *models.Task) { task.DueDate = &early })

	tasks, _, err := repo.List("u", TaskFilter{SortBy: SortByDueDate, SortOrder: SortOrderAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late", "undated"}, descriptions(tasks))

	tasks, _, err = repo.List("u", TaskFilter{SortBy: SortByDueDate, SortOrder: SortOrderDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"late", "early", "undated"}, descriptions(tasks))
}

func TestTaskRepository_List_PagesReconstructTheFullSet(t *testing.T) {
	repo, db := newTestRepo(t)

	for i := 0; i < 7; i++ {
		seedTask(t, db, "u", fmt.Sprintf("task %d", i), func(task *models.Task) {
			task.CreatedAt = time.Date(2026, 9, 1, i, 0, 0, 0, time.UTC)
		})
	}

	full, total, err := repo.List("u", TaskFilter{SortBy: SortByCreatedAt, SortOrder: SortOrderDesc})
	require.NoError(t, err)
	require.Equal(t, int64(7), total)

	var paged []models.Task
	for page := 1; page <= 3; page++ {
		chunk, chunkTotal, err := repo.List("u", TaskFilter{
			SortBy:    SortByCreatedAt,
			SortOrder: SortOrderDesc,
			Page:      page,
			PageSize:  3,
		})
		require.NoError(t, err)
		assert.Equal(t, total, chunkTotal)
		paged = append(paged, chunk...)
	}

	assert.Equal(t, descriptions(full), descriptions(paged))
}

func TestTaskRepository_ListDaily_OnlyRecurring(t *testing.T) {
	repo, db := newTestRepo(t)
	seedTask(t, db, "u", "daily", func(task *models.Task) { task.IsDaily = true })
	seedTask(t, db, "u", "one-off", nil)
	seedTask(t, db, "other", "their daily", func(task *models.Task) { task.IsDaily = true })

	tasks, err := repo.ListDaily("u")
	require.NoError(t, err)

	assert.Equal(t, []string{"daily"}, descriptions(tasks))
}

func TestTaskRepository_Delete_OwnerScopedAndFinal(t *testing.T) {
	repo, db := newTestRepo(t)
	task := seedTask(t, db, "owner", "target", nil)

	assert.ErrorIs(t, repo.Delete("intruder", task.ID), gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete("owner", task.ID))
	assert.ErrorIs(t, repo.Delete("owner", task.ID), gorm.ErrRecordNotFound)

	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
