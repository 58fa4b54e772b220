package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is one of the three known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single unit of work owned by exactly one user. Tags are stored
// as comma-delimited text but exposed as a set through TagList/SetTags, so
// the storage strategy can change without touching callers.
type Task struct {
	ID          string       `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      string       `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Description string       `gorm:"type:varchar(500);not null" json:"description"`
	IsCompleted bool         `gorm:"not null;default:false;index" json:"is_completed"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'medium';index" json:"priority"`
	Tags        string       `gorm:"type:text" json:"-"`
	DueDate     *time.Time   `gorm:"index" json:"due_date"`
	IsDaily     bool         `gorm:"not null;default:false;index" json:"is_daily"`
	CompletedAt *time.Time   `json:"completed_at"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TagList returns the tags as a slice, empty when no tags are set.
func (t *Task) TagList() []string {
	if t.Tags == "" {
		return []string{}
	}
	parts := strings.Split(t.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// SetTags stores the given tags, dropping empties and duplicates.
func (t *Task) SetTags(tags []string) {
	seen := make(map[string]struct{}, len(tags))
	clean := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		clean = append(clean, tag)
	}
	t.Tags = strings.Join(clean, ",")
}
