// Package habit defines recurring habits and their streak state.
package habit

import (
	"time"

	"github.com/ascendapp/ascend/internal/app/domain/area"
)

// Step is one checklist item inside a habit. CompletedAt records the last
// calendar day the step was marked done; the zero value means never.
type Step struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habitId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CompletedAt time.Time `json:"completedAt"`
}

// Habit is a recurring reward-bearing activity bound to exactly one area.
// Streak counts consecutive days with at least one registered completion.
type Habit struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Area          area.ID   `json:"area"`
	ObjectiveID   string    `json:"objectiveId"`
	Reward        int       `json:"reward"`
	MinimumStreak int       `json:"minimumStreak"`
	Streak        int       `json:"streak"`
	Completed     bool      `json:"completed"`
	LastCompleted time.Time `json:"lastCompleted"`
	Steps         []Step    `json:"steps"`
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns whole calendar days from a to b. Both arguments are
// truncated to UTC days first, so 23:59 yesterday to 00:01 today is one day.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

// LatestStepCompletion returns the most recent step completion date. The
// second return is false when no step has ever been completed.
func (h Habit) LatestStepCompletion() (time.Time, bool) {
	var latest time.Time
	found := false
	for _, s := range h.Steps {
		if s.CompletedAt.IsZero() {
			continue
		}
		if !found || s.CompletedAt.After(latest) {
			latest = s.CompletedAt
			found = true
		}
	}
	return latest, found
}

// StepsCompletedOn lists the IDs of steps completed on the given calendar day.
func (h Habit) StepsCompletedOn(day time.Time) []string {
	target := Day(day)
	var ids []string
	for _, s := range h.Steps {
		if !s.CompletedAt.IsZero() && Day(s.CompletedAt).Equal(target) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
