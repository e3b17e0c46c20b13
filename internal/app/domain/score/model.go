// Package score defines derived scoring aggregates. Nothing here is
// persisted; scores are recomputed from completion flags on every read.
package score

import (
	"github.com/ascendapp/ascend/internal/app/domain/achievement"
	"github.com/ascendapp/ascend/internal/app/domain/area"
)

// PointsPerLevel is the XP span of one level.
const PointsPerLevel = 100

// AreaScore aggregates points, counts and the derived level for one area.
type AreaScore struct {
	Area           area.ID  `json:"area"`
	TotalPoints    int      `json:"totalPoints"`
	CompletedItems int      `json:"completedItems"`
	TotalItems     int      `json:"totalItems"`
	Achievements   []string `json:"achievements"`
	Level          int      `json:"level"`
}

// Dashboard is the read payload exposed to callers.
type Dashboard struct {
	AreaScores   []AreaScore               `json:"areaScores"`
	Achievements []achievement.Achievement `json:"achievements"`
	TotalXP      int                       `json:"totalXP"`
}

// Level derives a level from a points total: 100 points per level, starting
// at level 1.
func Level(totalPoints int) int {
	if totalPoints < 0 {
		totalPoints = 0
	}
	return totalPoints/PointsPerLevel + 1
}
