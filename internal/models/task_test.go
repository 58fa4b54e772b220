package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskPriority_Valid(t *testing.T) {
	assert.True(t, PriorityLow.Valid())
	assert.True(t, PriorityMedium.Valid())
	assert.True(t, PriorityHigh.Valid())
	assert.False(t, TaskPriority("urgent").Valid())
	assert.False(t, TaskPriority("").Valid())
}

func TestTask_SetTags_CleansInput(t *testing.T) {
	var task Task
	task.SetTags([]string{" work ", "home", "work", "", "  "})

	assert.Equal(t, "work,home", task.Tags)
	assert.Equal(t, []string{"work", "home"}, task.TagList())
}

func TestTask_TagList_EmptyStorage(t *testing.T) {
	var task Task
	assert.Empty(t, task.TagList())

	task.SetTags(nil)
	assert.Equal(t, "", task.Tags)
	assert.Empty(t, task.TagList())
}
