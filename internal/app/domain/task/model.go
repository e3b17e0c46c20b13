// Package task defines one-off dated tasks.
package task

import (
	"time"

	"github.com/ascendapp/ascend/internal/app/domain/area"
)

// Task is a single dated item. Completing it credits its reward to the area
// score; un-completing it reverses the credit through the points ledger.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Area        area.ID   `json:"area"`
	ObjectiveID string    `json:"objectiveId"`
	Reward      int       `json:"reward"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed"`
}
