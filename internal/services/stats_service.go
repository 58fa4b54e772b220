package services

import (
	"fmt"
	"math"
	"time"

	"github.com/evotodo/task-tracker-api/internal/models"
	"github.com/evotodo/task-tracker-api/internal/repository"
)

// UnknownDay is reported when no completion has ever happened.
const UnknownDay = "Unknown"

// Stats is the derived, recomputed-on-read view of a user's task history.
type Stats struct {
	TotalTasks           int     `json:"total_tasks"`
	CompletedTasks       int     `json:"completed_tasks"`
	PendingTasks         int     `json:"pending_tasks"`
	CompletionRate       float64 `json:"completion_rate"`
	OverdueTasks         int     `json:"overdue_tasks"`
	TasksDueThisWeek     int     `json:"tasks_due_this_week"`
	HighPriorityPending  int     `json:"high_priority_pending"`
	MostProductiveDay    string  `json:"most_productive_day"`
	WeeklyCompletionRate float64 `json:"weekly_completion_rate"`
}

// StatsService computes aggregate metrics by scanning the owner's tasks.
// Nothing is cached; every call reflects the store at that moment. The week
// boundary and timezone are explicit configuration, not an implicit server
// assumption.
type StatsService struct {
	taskRepo  repository.TaskRepository
	weekStart time.Weekday
	loc       *time.Location
	now       func() time.Time
}

// NewStatsService creates a StatsService with the given week convention.
func NewStatsService(taskRepo repository.TaskRepository, weekStart time.Weekday, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsService{
		taskRepo:  taskRepo,
		weekStart: weekStart,
		loc:       loc,
		now:       time.Now,
	}
}

// ComputeStats loads the owner's tasks and derives the metrics.
func (s *StatsService) ComputeStats(userID string) (*Stats, error) {
	tasks, err := s.taskRepo.ListAll(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for stats: %w", err)
	}
	stats := s.compute(tasks, s.now())
	return &stats, nil
}

func (s *StatsService) compute(tasks []models.Task, now time.Time) Stats {
	stats := Stats{
		TotalTasks:        len(tasks),
		MostProductiveDay: UnknownDay,
	}

	weekStart := s.startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	var weekTotal, weekCompleted int
	completionsByDay := make(map[time.Weekday]int)

	for _, task := range tasks {
		if task.IsCompleted {
			stats.CompletedTasks++
			if task.CompletedAt != nil {
				completionsByDay[task.CompletedAt.In(s.loc).Weekday()]++
			}
		} else {
			if task.Priority == models.PriorityHigh {
				stats.HighPriorityPending++
			}
			if task.DueDate != nil && task.DueDate.Before(now) {
				stats.OverdueTasks++
			}
		}

		if task.DueDate != nil && inWindow(*task.DueDate, weekStart, weekEnd) {
			weekTotal++
			if task.IsCompleted {
				weekCompleted++
			} else {
				stats.TasksDueThisWeek++
			}
		}
	}

	stats.PendingTasks = stats.TotalTasks - stats.CompletedTasks
	stats.CompletionRate = percentage(stats.CompletedTasks, stats.TotalTasks)
	stats.WeeklyCompletionRate = percentage(weekCompleted, weekTotal)

	if day, ok := s.mostProductiveDay(completionsByDay); ok {
		stats.MostProductiveDay = day.String()
	}

	return stats
}

// startOfWeek returns the most recent configured week-start at midnight in
// the configured timezone.
func (s *StatsService) startOfWeek(now time.Time) time.Time {
	now = now.In(s.loc)
	offset := (int(now.Weekday()) - int(s.weekStart) + 7) % 7
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	return midnight.AddDate(0, 0, -offset)
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// percentage is a rounded completion rate, 0 when total is 0.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

// mostProductiveDay picks the weekday with the highest completion count,
// breaking ties by earliest weekday counted from the configured week start.
func (s *StatsService) mostProductiveDay(completions map[time.Weekday]int) (time.Weekday, bool) {
	best := time.Weekday(0)
	bestCount := 0
	for i := 0; i < 7; i++ {
		day := time.Weekday((int(s.weekStart) + i) % 7)
		if count := completions[day]; count > bestCount {
			best = day
			bestCount = count
		}
	}
	return best, bestCount > 0
}
