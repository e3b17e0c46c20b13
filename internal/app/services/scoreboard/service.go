// Package scoreboard derives area scores and XP totals from completion flags.
// Nothing here is cached or persisted: every read recomputes from a fresh
// snapshot of the stores.
package scoreboard

import (
	"context"

	"github.com/ascendapp/ascend/internal/app/domain/achievement"
	"github.com/ascendapp/ascend/internal/app/domain/area"
	"github.com/ascendapp/ascend/internal/app/domain/challenge"
	"github.com/ascendapp/ascend/internal/app/domain/habit"
	"github.com/ascendapp/ascend/internal/app/domain/objective"
	"github.com/ascendapp/ascend/internal/app/domain/score"
	"github.com/ascendapp/ascend/internal/app/domain/task"
	"github.com/ascendapp/ascend/internal/app/storage"
	"github.com/ascendapp/ascend/pkg/logger"
)

// HabitLister supplies the habit snapshot. Wiring the habit service here
// (instead of the raw store) keeps the at-read streak reconciliation in the
// dashboard path.
type HabitLister interface {
	List(ctx context.Context) ([]habit.Habit, error)
}

// Service aggregates scores across all tracked record kinds.
type Service struct {
	challenges   storage.ChallengeStore
	objectives   storage.ObjectiveStore
	habits       HabitLister
	tasks        storage.TaskStore
	achievements storage.AchievementStore
	customAreas  storage.CustomAreaStore
	log          *logger.Logger
}

// New constructs a scoreboard service.
func New(
	challenges storage.ChallengeStore,
	objectives storage.ObjectiveStore,
	habits HabitLister,
	tasks storage.TaskStore,
	achievements storage.AchievementStore,
	customAreas storage.CustomAreaStore,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.NewDefault("scoreboard")
	}
	return &Service{
		challenges:   challenges,
		objectives:   objectives,
		habits:       habits,
		tasks:        tasks,
		achievements: achievements,
		customAreas:  customAreas,
		log:          log,
	}
}

// snapshot is one request's view of the collections. All aggregation runs
// over it; nothing re-reads the stores mid-computation.
type snapshot struct {
	challenges []challenge.Challenge
	objectives []objective.Objective
	habits     []habit.Habit
	tasks      []task.Task
}

func (s *Service) load(ctx context.Context) (snapshot, error) {
	var (
		snap snapshot
		err  error
	)
	if snap.challenges, err = s.challenges.ListChallenges(ctx); err != nil {
		return snapshot{}, err
	}
	if snap.objectives, err = s.objectives.ListObjectives(ctx); err != nil {
		return snapshot{}, err
	}
	if snap.habits, err = s.habits.List(ctx); err != nil {
		return snapshot{}, err
	}
	if snap.tasks, err = s.tasks.ListTasks(ctx); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

func (s *Service) registry(ctx context.Context) (*area.Registry, error) {
	var customs []area.CustomArea
	if s.customAreas != nil {
		var err error
		customs, err = s.customAreas.ListCustomAreas(ctx)
		if err != nil {
			return nil, err
		}
	}
	return area.NewRegistry(customs), nil
}

// Dashboard builds the externally visible payload: scores for areas with at
// least one attached item, the unlocked achievements, and the total XP over
// the universal item set.
func (s *Service) Dashboard(ctx context.Context) (score.Dashboard, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return score.Dashboard{}, err
	}
	reg, err := s.registry(ctx)
	if err != nil {
		return score.Dashboard{}, err
	}

	all := scoreAll(reg.All(), snap)
	visible := make([]score.AreaScore, 0, len(all))
	for _, sc := range all {
		if sc.TotalItems > 0 {
			visible = append(visible, sc)
		}
	}

	var unlocked []achievement.Achievement
	if s.achievements != nil {
		unlocked, err = s.achievements.ListAchievements(ctx)
		if err != nil {
			return score.Dashboard{}, err
		}
	}
	if unlocked == nil {
		unlocked = []achievement.Achievement{}
	}

	return score.Dashboard{
		AreaScores:   visible,
		Achievements: unlocked,
		TotalXP:      totalXP(snap),
	}, nil
}

// AreaScores computes one score per known area, including areas with no
// items. Callers needing the dashboard's filtered view use Dashboard.
func (s *Service) AreaScores(ctx context.Context) ([]score.AreaScore, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	reg, err := s.registry(ctx)
	if err != nil {
		return nil, err
	}
	return scoreAll(reg.All(), snap), nil
}

// TotalXP sums completed-item rewards over every kind, independent of any
// area filtering.
func (s *Service) TotalXP(ctx context.Context) (int, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return totalXP(snap), nil
}

// AreaXP returns the points total for one area.
func (s *Service) AreaXP(ctx context.Context, id area.ID) (int, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return scoreArea(id, snap).TotalPoints, nil
}

func scoreAll(defs []area.Definition, snap snapshot) []score.AreaScore {
	out := make([]score.AreaScore, 0, len(defs))
	for _, def := range defs {
		out = append(out, scoreArea(def.Value, snap))
	}
	return out
}

// scoreArea runs the per-area tally. A multi-area objective contributes its
// full configured reward to each listed area; a missing per-area reward is
// zero, never an error. Rewards count only when the completed flag is set,
// and never negatively.
func scoreArea(id area.ID, snap snapshot) score.AreaScore {
	sc := score.AreaScore{Area: id, Achievements: []string{}}

	for _, c := range snap.challenges {
		if c.Area != id {
			continue
		}
		sc.TotalItems++
		if c.Completed {
			sc.CompletedItems++
			sc.TotalPoints += c.Reward
		}
	}
	for _, o := range snap.objectives {
		if !o.Includes(id) {
			continue
		}
		sc.TotalItems++
		if o.Completed {
			sc.CompletedItems++
			sc.TotalPoints += o.RewardFor(id)
		}
	}
	for _, h := range snap.habits {
		if h.Area != id {
			continue
		}
		sc.TotalItems++
		if h.Completed {
			sc.CompletedItems++
			sc.TotalPoints += h.Reward
		}
	}
	for _, t := range snap.tasks {
		if t.Area != id {
			continue
		}
		sc.TotalItems++
		if t.Completed {
			sc.CompletedItems++
			sc.TotalPoints += t.Reward
		}
	}

	sc.Level = score.Level(sc.TotalPoints)
	return sc
}

// totalXP is the aggregator run over the universal set: completed challenge,
// task and habit rewards, plus every per-area reward of each completed
// objective.
func totalXP(snap snapshot) int {
	total := 0
	for _, c := range snap.challenges {
		if c.Completed {
			total += c.Reward
		}
	}
	for _, t := range snap.tasks {
		if t.Completed {
			total += t.Reward
		}
	}
	for _, h := range snap.habits {
		if h.Completed {
			total += h.Reward
		}
	}
	for _, o := range snap.objectives {
		if !o.Completed {
			continue
		}
		for _, reward := range o.RewardsByArea {
			total += reward
		}
	}
	return total
}
