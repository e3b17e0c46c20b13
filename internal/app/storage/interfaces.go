// Package storage defines persistence contracts for tracker records.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ascendapp/ascend/internal/app/domain/achievement"
	"github.com/ascendapp/ascend/internal/app/domain/area"
	"github.com/ascendapp/ascend/internal/app/domain/challenge"
	"github.com/ascendapp/ascend/internal/app/domain/habit"
	"github.com/ascendapp/ascend/internal/app/domain/ledger"
	"github.com/ascendapp/ascend/internal/app/domain/objective"
	"github.com/ascendapp/ascend/internal/app/domain/task"
)

// ErrNotFound indicates a requested record is missing. Services surface it
// distinctly from validation failures.
var ErrNotFound = errors.New("record not found")

// ChallengeStore persists challenges and their steps.
type ChallengeStore interface {
	CreateChallenge(ctx context.Context, ch challenge.Challenge) (challenge.Challenge, error)
	UpdateChallenge(ctx context.Context, ch challenge.Challenge) (challenge.Challenge, error)
	GetChallenge(ctx context.Context, id string) (challenge.Challenge, error)
	ListChallenges(ctx context.Context) ([]challenge.Challenge, error)
	DeleteChallenge(ctx context.Context, id string) error
	SetChallengeStepCompleted(ctx context.Context, challengeID, stepID string, completed bool) (challenge.Step, error)
}

// ObjectiveStore persists objectives with their areas, rewards and quadrants.
type ObjectiveStore interface {
	CreateObjective(ctx context.Context, obj objective.Objective) (objective.Objective, error)
	UpdateObjective(ctx context.Context, obj objective.Objective) (objective.Objective, error)
	GetObjective(ctx context.Context, id string) (objective.Objective, error)
	ListObjectives(ctx context.Context) ([]objective.Objective, error)
	DeleteObjective(ctx context.Context, id string) error
	SetQuadrantStepCompleted(ctx context.Context, objectiveID, stepID string, completed bool) (objective.QuadrantStep, error)
}

// HabitStore persists habits, their steps, and streak state.
type HabitStore interface {
	CreateHabit(ctx context.Context, h habit.Habit) (habit.Habit, error)
	UpdateHabit(ctx context.Context, h habit.Habit) (habit.Habit, error)
	GetHabit(ctx context.Context, id string) (habit.Habit, error)
	ListHabits(ctx context.Context) ([]habit.Habit, error)
	DeleteHabit(ctx context.Context, id string) error

	// ResetStreak forces the habit's streak to zero, independent of dates.
	ResetStreak(ctx context.Context, id string) error

	// RecordHabitCompletion applies one day's completion: it increments the
	// streak and stamps the habit and the listed steps with the given date,
	// but only when the habit's last completion is strictly earlier than the
	// date. A same-day repeat returns the unchanged habit and no error.
	RecordHabitCompletion(ctx context.Context, id string, stepIDs []string, date time.Time) (habit.Habit, error)
}

// TaskStore persists tasks.
type TaskStore interface {
	CreateTask(ctx context.Context, t task.Task) (task.Task, error)
	UpdateTask(ctx context.Context, t task.Task) (task.Task, error)
	GetTask(ctx context.Context, id string) (task.Task, error)
	ListTasks(ctx context.Context) ([]task.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// AchievementStore persists unlocked achievements.
type AchievementStore interface {
	CreateAchievement(ctx context.Context, a achievement.Achievement) (achievement.Achievement, error)
	ListAchievements(ctx context.Context) ([]achievement.Achievement, error)
}

// CustomAreaStore persists user-created areas.
type CustomAreaStore interface {
	CreateCustomArea(ctx context.Context, c area.CustomArea) (area.CustomArea, error)
	UpdateCustomArea(ctx context.Context, c area.CustomArea) (area.CustomArea, error)
	ListCustomAreas(ctx context.Context) ([]area.CustomArea, error)
}

// LedgerStore appends and reads signed points transactions. The log is
// append-only; nothing updates or deletes entries.
type LedgerStore interface {
	AppendTransaction(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]ledger.Transaction, error)
}
