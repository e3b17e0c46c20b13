// Package memory provides an in-memory implementation of the storage
// interfaces. It is safe for concurrent use and is primarily intended for
// tests and local development.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ascendapp/ascend/internal/app/domain/achievement"
	"github.com/ascendapp/ascend/internal/app/domain/area"
	"github.com/ascendapp/ascend/internal/app/domain/challenge"
	"github.com/ascendapp/ascend/internal/app/domain/habit"
	"github.com/ascendapp/ascend/internal/app/domain/ledger"
	"github.com/ascendapp/ascend/internal/app/domain/objective"
	"github.com/ascendapp/ascend/internal/app/domain/task"
	"github.com/ascendapp/ascend/internal/app/storage"
)

// Store is an in-memory implementation of every storage interface.
type Store struct {
	mu           sync.RWMutex
	nextID       int64
	challenges   map[string]challenge.Challenge
	objectives   map[string]objective.Objective
	habits       map[string]habit.Habit
	tasks        map[string]task.Task
	achievements map[string]achievement.Achievement
	customAreas  map[string]area.CustomArea
	achOrder     []string
	areaOrder    []string
	transactions []ledger.Transaction
}

var _ storage.ChallengeStore = (*Store)(nil)
var _ storage.ObjectiveStore = (*Store)(nil)
var _ storage.HabitStore = (*Store)(nil)
var _ storage.TaskStore = (*Store)(nil)
var _ storage.AchievementStore = (*Store)(nil)
var _ storage.CustomAreaStore = (*Store)(nil)
var _ storage.LedgerStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:       1,
		challenges:   make(map[string]challenge.Challenge),
		objectives:   make(map[string]objective.Objective),
		habits:       make(map[string]habit.Habit),
		tasks:        make(map[string]task.Task),
		achievements: make(map[string]achievement.Achievement),
		customAreas:  make(map[string]area.CustomArea),
	}
}

func (s *Store) nextIDLocked() string {
	id := s.nextID
	s.nextID++
	return fmt.Sprintf("%d", id)
}

// ChallengeStore implementation ----------------------------------------------

func (s *Store) CreateChallenge(_ context.Context, ch challenge.Challenge) (challenge.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch.ID == "" {
		ch.ID = s.nextIDLocked()
	} else if _, exists := s.challenges[ch.ID]; exists {
		return challenge.Challenge{}, fmt.Errorf("challenge %s already exists", ch.ID)
	}
	for i := range ch.Steps {
		if ch.Steps[i].ID == "" {
			ch.Steps[i].ID = s.nextIDLocked()
		}
		ch.Steps[i].ChallengeID = ch.ID
	}

	s.challenges[ch.ID] = cloneChallenge(ch)
	return cloneChallenge(ch), nil
}

func (s *Store) UpdateChallenge(_ context.Context, ch challenge.Challenge) (challenge.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.challenges[ch.ID]; !ok {
		return challenge.Challenge{}, storage.ErrNotFound
	}
	for i := range ch.Steps {
		if ch.Steps[i].ID == "" {
			ch.Steps[i].ID = s.nextIDLocked()
		}
		ch.Steps[i].ChallengeID = ch.ID
	}
	s.challenges[ch.ID] = cloneChallenge(ch)
	return cloneChallenge(ch), nil
}

func (s *Store) GetChallenge(_ context.Context, id string) (challenge.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ch, ok := s.challenges[id]
	if !ok {
		return challenge.Challenge{}, storage.ErrNotFound
	}
	return cloneChallenge(ch), nil
}

func (s *Store) ListChallenges(_ context.Context) ([]challenge.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]challenge.Challenge, 0, len(s.challenges))
	for _, ch := range s.challenges {
		out = append(out, cloneChallenge(ch))
	}
	return out, nil
}

func (s *Store) DeleteChallenge(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.challenges[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.challenges, id)
	return nil
}

func (s *Store) SetChallengeStepCompleted(_ context.Context, challengeID, stepID string, completed bool) (challenge.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[challengeID]
	if !ok {
		return challenge.Step{}, storage.ErrNotFound
	}
	for i := range ch.Steps {
		if ch.Steps[i].ID == stepID {
			ch.Steps[i].Completed = completed
			s.challenges[challengeID] = ch
			return ch.Steps[i], nil
		}
	}
	return challenge.Step{}, storage.ErrNotFound
}

// ObjectiveStore implementation ----------------------------------------------

func (s *Store) CreateObjective(_ context.Context, obj objective.Objective) (objective.Objective, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if obj.ID == "" {
		obj.ID = s.nextIDLocked()
	} else if _, exists := s.objectives[obj.ID]; exists {
		return objective.Objective{}, fmt.Errorf("objective %s already exists", obj.ID)
	}
	for qi := range obj.Quadrants {
		if obj.Quadrants[qi].ID == "" {
			obj.Quadrants[qi].ID = s.nextIDLocked()
		}
		obj.Quadrants[qi].ObjectiveID = obj.ID
		for si := range obj.Quadrants[qi].Steps {
			if obj.Quadrants[qi].Steps[si].ID == "" {
				obj.Quadrants[qi].Steps[si].ID = s.nextIDLocked()
			}
			obj.Quadrants[qi].Steps[si].QuadrantID = obj.Quadrants[qi].ID
		}
	}

	s.objectives[obj.ID] = cloneObjective(obj)
	return cloneObjective(obj), nil
}

func (s *Store) UpdateObjective(_ context.Context, obj objective.Objective) (objective.Objective, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objectives[obj.ID]; !ok {
		return objective.Objective{}, storage.ErrNotFound
	}
	s.objectives[obj.ID] = cloneObjective(obj)
	return cloneObjective(obj), nil
}

func (s *Store) GetObjective(_ context.Context, id string) (objective.Objective, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objectives[id]
	if !ok {
		return objective.Objective{}, storage.ErrNotFound
	}
	return cloneObjective(obj), nil
}

func (s *Store) ListObjectives(_ context.Context) ([]objective.Objective, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]objective.Objective, 0, len(s.objectives))
	for _, obj := range s.objectives {
		out = append(out, cloneObjective(obj))
	}
	return out, nil
}

func (s *Store) DeleteObjective(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objectives[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.objectives, id)
	return nil
}

func (s *Store) SetQuadrantStepCompleted(_ context.Context, objectiveID, stepID string, completed bool) (objective.QuadrantStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objectives[objectiveID]
	if !ok {
		return objective.QuadrantStep{}, storage.ErrNotFound
	}
	for qi := range obj.Quadrants {
		for si := range obj.Quadrants[qi].Steps {
			if obj.Quadrants[qi].Steps[si].ID == stepID {
				obj.Quadrants[qi].Steps[si].Completed = completed
				s.objectives[objectiveID] = obj
				return obj.Quadrants[qi].Steps[si], nil
			}
		}
	}
	return objective.QuadrantStep{}, storage.ErrNotFound
}

// HabitStore implementation --------------------------------------------------

func (s *Store) CreateHabit(_ context.Context, h habit.Habit) (habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.ID == "" {
		h.ID = s.nextIDLocked()
	} else if _, exists := s.habits[h.ID]; exists {
		return habit.Habit{}, fmt.Errorf("habit %s already exists", h.ID)
	}
	for i := range h.Steps {
		if h.Steps[i].ID == "" {
			h.Steps[i].ID = s.nextIDLocked()
		}
		h.Steps[i].HabitID = h.ID
	}

	s.habits[h.ID] = cloneHabit(h)
	return cloneHabit(h), nil
}

func (s *Store) UpdateHabit(_ context.Context, h habit.Habit) (habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.habits[h.ID]; !ok {
		return habit.Habit{}, storage.ErrNotFound
	}
	for i := range h.Steps {
		if h.Steps[i].ID == "" {
			h.Steps[i].ID = s.nextIDLocked()
		}
		h.Steps[i].HabitID = h.ID
	}
	s.habits[h.ID] = cloneHabit(h)
	return cloneHabit(h), nil
}

func (s *Store) GetHabit(_ context.Context, id string) (habit.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.habits[id]
	if !ok {
		return habit.Habit{}, storage.ErrNotFound
	}
	return cloneHabit(h), nil
}

func (s *Store) ListHabits(_ context.Context) ([]habit.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]habit.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		out = append(out, cloneHabit(h))
	}
	return out, nil
}

func (s *Store) DeleteHabit(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.habits[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.habits, id)
	return nil
}

func (s *Store) ResetStreak(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[id]
	if !ok {
		return storage.ErrNotFound
	}
	h.Streak = 0
	s.habits[id] = h
	return nil
}

func (s *Store) RecordHabitCompletion(_ context.Context, id string, stepIDs []string, date time.Time) (habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[id]
	if !ok {
		return habit.Habit{}, storage.ErrNotFound
	}

	day := habit.Day(date)
	// Same-day repeats are silent no-ops; idempotent by date, not call count.
	if !h.LastCompleted.IsZero() && !habit.Day(h.LastCompleted).Before(day) {
		return cloneHabit(h), nil
	}

	h.Streak++
	h.LastCompleted = day
	for _, stepID := range stepIDs {
		for i := range h.Steps {
			if h.Steps[i].ID == stepID {
				h.Steps[i].CompletedAt = day
			}
		}
	}
	s.habits[id] = cloneHabit(h)
	return cloneHabit(h), nil
}

// TaskStore implementation ---------------------------------------------------

func (s *Store) CreateTask(_ context.Context, t task.Task) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = s.nextIDLocked()
	} else if _, exists := s.tasks[t.ID]; exists {
		return task.Task{}, fmt.Errorf("task %s already exists", t.ID)
	}
	s.tasks[t.ID] = t
	return t, nil
}

func (s *Store) UpdateTask(_ context.Context, t task.Task) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; !ok {
		return task.Task{}, storage.ErrNotFound
	}
	s.tasks[t.ID] = t
	return t, nil
}

func (s *Store) GetTask(_ context.Context, id string) (task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return task.Task{}, storage.ErrNotFound
	}
	return t, nil
}

func (s *Store) ListTasks(_ context.Context) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// AchievementStore implementation --------------------------------------------

func (s *Store) CreateAchievement(_ context.Context, a achievement.Achievement) (achievement.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = s.nextIDLocked()
	} else if _, exists := s.achievements[a.ID]; exists {
		return achievement.Achievement{}, fmt.Errorf("achievement %s already exists", a.ID)
	}
	if a.UnlockedAt.IsZero() {
		a.UnlockedAt = time.Now().UTC()
	}
	s.achievements[a.ID] = a
	s.achOrder = append(s.achOrder, a.ID)
	return a, nil
}

func (s *Store) ListAchievements(_ context.Context) ([]achievement.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]achievement.Achievement, 0, len(s.achOrder))
	for _, id := range s.achOrder {
		out = append(out, s.achievements[id])
	}
	return out, nil
}

// CustomAreaStore implementation ---------------------------------------------

func (s *Store) CreateCustomArea(_ context.Context, c area.CustomArea) (area.CustomArea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = s.nextIDLocked()
	} else if _, exists := s.customAreas[c.ID]; exists {
		return area.CustomArea{}, fmt.Errorf("custom area %s already exists", c.ID)
	}
	s.customAreas[c.ID] = c
	s.areaOrder = append(s.areaOrder, c.ID)
	return c, nil
}

func (s *Store) UpdateCustomArea(_ context.Context, c area.CustomArea) (area.CustomArea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customAreas[c.ID]; !ok {
		return area.CustomArea{}, storage.ErrNotFound
	}
	s.customAreas[c.ID] = c
	return c, nil
}

func (s *Store) ListCustomAreas(_ context.Context) ([]area.CustomArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]area.CustomArea, 0, len(s.areaOrder))
	for _, id := range s.areaOrder {
		out = append(out, s.customAreas[id])
	}
	return out, nil
}

// LedgerStore implementation -------------------------------------------------

func (s *Store) AppendTransaction(_ context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == "" {
		tx.ID = s.nextIDLocked()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	s.transactions = append(s.transactions, tx)
	return tx, nil
}

func (s *Store) ListTransactions(_ context.Context, userID string) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ledger.Transaction
	for _, tx := range s.transactions {
		if userID == "" || tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Clone helpers ---------------------------------------------------------------

func cloneChallenge(ch challenge.Challenge) challenge.Challenge {
	out := ch
	out.Steps = make([]challenge.Step, len(ch.Steps))
	copy(out.Steps, ch.Steps)
	return out
}

func cloneObjective(obj objective.Objective) objective.Objective {
	out := obj
	out.Benefits = append([]string(nil), obj.Benefits...)
	out.Areas = append([]area.ID(nil), obj.Areas...)
	out.RewardsByArea = make(map[area.ID]int, len(obj.RewardsByArea))
	for k, v := range obj.RewardsByArea {
		out.RewardsByArea[k] = v
	}
	out.Quadrants = make([]objective.Quadrant, len(obj.Quadrants))
	for i, q := range obj.Quadrants {
		cq := q
		cq.Steps = make([]objective.QuadrantStep, len(q.Steps))
		copy(cq.Steps, q.Steps)
		out.Quadrants[i] = cq
	}
	return out
}

func cloneHabit(h habit.Habit) habit.Habit {
	out := h
	out.Steps = make([]habit.Step, len(h.Steps))
	copy(out.Steps, h.Steps)
	return out
}
