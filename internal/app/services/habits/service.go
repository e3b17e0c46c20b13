// Package habits manages recurring habits and their streak lifecycle.
package habits

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ascendapp/ascend/internal/app/domain/habit"
	"github.com/ascendapp/ascend/internal/app/storage"
	"github.com/ascendapp/ascend/pkg/logger"
)

// Service manages habit records and streak evaluation.
type Service struct {
	store  storage.HabitStore
	resets prometheus.Counter
	log    *logger.Logger
	now    func() time.Time
}

// New constructs a habit service. The resets counter may be nil.
func New(store storage.HabitStore, resets prometheus.Counter, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("habits")
	}
	return &Service{store: store, resets: resets, log: log, now: time.Now}
}

// List returns all habits with streaks reconciled against today. Habits whose
// most recent step completion lapsed by more than one calendar day come back
// with streak zero, and the reset is persisted best-effort: a failed write is
// logged and retried naturally on the next listing.
func (s *Service) List(ctx context.Context) ([]habit.Habit, error) {
	list, err := s.store.ListHabits(ctx)
	if err != nil {
		return nil, err
	}

	reconciled, resets := Reconcile(list, s.now())
	for _, id := range resets {
		if err := s.store.ResetStreak(ctx, id); err != nil {
			s.log.WithError(err).WithField("habit_id", id).Warn("streak reset not persisted")
			continue
		}
		if s.resets != nil {
			s.resets.Inc()
		}
		s.log.WithField("habit_id", id).Info("streak lapsed, reset to zero")
	}
	return reconciled, nil
}

// Get returns one habit by id.
func (s *Service) Get(ctx context.Context, id string) (habit.Habit, error) {
	return s.store.GetHabit(ctx, id)
}

// Create validates and stores a new habit.
func (s *Service) Create(ctx context.Context, h habit.Habit) (habit.Habit, error) {
	if err := validate(h); err != nil {
		return habit.Habit{}, err
	}

	created, err := s.store.CreateHabit(ctx, h)
	if err != nil {
		return habit.Habit{}, err
	}
	s.log.WithField("habit_id", created.ID).
		WithField("area", string(created.Area)).
		Info("habit created")
	return created, nil
}

// Update replaces a habit's stored fields.
func (s *Service) Update(ctx context.Context, h habit.Habit) (habit.Habit, error) {
	if strings.TrimSpace(h.ID) == "" {
		return habit.Habit{}, fmt.Errorf("id is required")
	}
	if err := validate(h); err != nil {
		return habit.Habit{}, err
	}
	return s.store.UpdateHabit(ctx, h)
}

// Delete removes a habit and its steps.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteHabit(ctx, id); err != nil {
		return err
	}
	s.log.WithField("habit_id", id).Info("habit deleted")
	return nil
}

// RegisterCompletion records one day's completion for a habit. The date guard
// lives in the store: a repeat registration on the same calendar day returns
// the unchanged habit without error.
func (s *Service) RegisterCompletion(ctx context.Context, id string, stepIDs []string, date time.Time) (habit.Habit, error) {
	if date.IsZero() {
		date = s.now()
	}
	updated, err := s.store.RecordHabitCompletion(ctx, id, stepIDs, date)
	if err != nil {
		return habit.Habit{}, err
	}
	s.log.WithField("habit_id", id).
		WithField("streak", updated.Streak).
		Info("habit completion registered")
	return updated, nil
}

// ResetStreak forces a habit's streak to zero regardless of dates.
func (s *Service) ResetStreak(ctx context.Context, id string) (habit.Habit, error) {
	if err := s.store.ResetStreak(ctx, id); err != nil {
		return habit.Habit{}, err
	}
	if s.resets != nil {
		s.resets.Inc()
	}
	s.log.WithField("habit_id", id).Info("streak reset requested")
	return s.store.GetHabit(ctx, id)
}

func validate(h habit.Habit) error {
	if strings.TrimSpace(h.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(string(h.Area)) == "" {
		return fmt.Errorf("area is required")
	}
	if h.Reward < 0 {
		return fmt.Errorf("reward must not be negative")
	}
	if h.MinimumStreak < 0 {
		return fmt.Errorf("minimum_streak must not be negative")
	}
	return nil
}
