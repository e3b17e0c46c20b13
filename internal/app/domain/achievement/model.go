// Package achievement defines unlocked achievement records.
package achievement

import (
	"time"

	"github.com/ascendapp/ascend/internal/app/domain/area"
)

// Achievement records a milestone the user has unlocked.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Points      int       `json:"points"`
	Area        area.ID   `json:"area"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}
