// Package objective defines long-term objectives spanning multiple areas.
package objective

import (
	"time"

	"github.com/ascendapp/ascend/internal/app/domain/area"
)

// QuadrantStep is one checklist item inside a quadrant.
type QuadrantStep struct {
	ID          string `json:"id"`
	QuadrantID  string `json:"quadrantId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Quadrant is a named sub-goal checklist attached to an objective. Each
// quadrant completes independently of the objective itself.
type Quadrant struct {
	ID          string         `json:"id"`
	ObjectiveID string         `json:"objectiveId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Completed   bool           `json:"completed"`
	Steps       []QuadrantStep `json:"steps"`
}

// Objective is a multi-area goal. On completion it contributes its full
// configured reward to every listed area; rewards are never divided.
type Objective struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Why           string          `json:"why"`
	Benefits      []string        `json:"benefits"`
	Areas         []area.ID       `json:"areas"`
	RewardsByArea map[area.ID]int `json:"rewardsByArea"`
	Date          time.Time       `json:"date"`
	Completed     bool            `json:"completed"`
	Quadrants     []Quadrant      `json:"quadrants"`
}

// RewardFor returns the configured reward for one area. Areas without a
// configured reward contribute zero; this is never an error.
func (o Objective) RewardFor(id area.ID) int {
	return o.RewardsByArea[id]
}

// Includes reports whether the objective spans the given area.
func (o Objective) Includes(id area.ID) bool {
	for _, a := range o.Areas {
		if a == id {
			return true
		}
	}
	return false
}
