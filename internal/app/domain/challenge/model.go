// Package challenge defines one-off reward-bearing challenges.
package challenge

import (
	"time"

	"github.com/ascendapp/ascend/internal/app/domain/area"
)

// Step is one checklist item inside a challenge.
type Step struct {
	ID          string `json:"id"`
	ChallengeID string `json:"challengeId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Challenge represents a single reward-bearing goal bound to exactly one
// area. The reward counts toward the area score only once, when the whole
// challenge is marked completed.
type Challenge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Level       int       `json:"level"`
	Description string    `json:"description"`
	Achievement string    `json:"achievement"`
	Area        area.ID   `json:"area"`
	ObjectiveID string    `json:"objectiveId"`
	Reward      int       `json:"reward"`
	Date        time.Time `json:"date"`
	Completed   bool      `json:"completed"`
	Steps       []Step    `json:"steps"`
}
