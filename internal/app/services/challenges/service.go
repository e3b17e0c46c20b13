// Package challenges manages challenge records and their step checklists.
package challenges

import (
	"context"
	"fmt"
	"strings"

	"github.com/ascendapp/ascend/internal/app/domain/challenge"
	"github.com/ascendapp/ascend/internal/app/storage"
	"github.com/ascendapp/ascend/pkg/logger"
)

// Service manages challenge records.
type Service struct {
	store storage.ChallengeStore
	log   *logger.Logger
}

// New constructs a challenge service.
func New(store storage.ChallengeStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("challenges")
	}
	return &Service{store: store, log: log}
}

// List returns all challenges.
func (s *Service) List(ctx context.Context) ([]challenge.Challenge, error) {
	return s.store.ListChallenges(ctx)
}

// Get returns one challenge by id.
func (s *Service) Get(ctx context.Context, id string) (challenge.Challenge, error) {
	return s.store.GetChallenge(ctx, id)
}

// Create validates and stores a new challenge.
func (s *Service) Create(ctx context.Context, ch challenge.Challenge) (challenge.Challenge, error) {
	if err := validate(ch); err != nil {
		return challenge.Challenge{}, err
	}
	created, err := s.store.CreateChallenge(ctx, ch)
	if err != nil {
		return challenge.Challenge{}, err
	}
	s.log.WithField("challenge_id", created.ID).
		WithField("area", string(created.Area)).
		Info("challenge created")
	return created, nil
}

// Update replaces a challenge's stored fields.
func (s *Service) Update(ctx context.Context, ch challenge.Challenge) (challenge.Challenge, error) {
	if strings.TrimSpace(ch.ID) == "" {
		return challenge.Challenge{}, fmt.Errorf("id is required")
	}
	if err := validate(ch); err != nil {
		return challenge.Challenge{}, err
	}
	return s.store.UpdateChallenge(ctx, ch)
}

// Delete removes a challenge and its steps.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteChallenge(ctx, id); err != nil {
		return err
	}
	s.log.WithField("challenge_id", id).Info("challenge deleted")
	return nil
}

// SetCompleted toggles the challenge-level completion flag.
func (s *Service) SetCompleted(ctx context.Context, id string, completed bool) (challenge.Challenge, error) {
	ch, err := s.store.GetChallenge(ctx, id)
	if err != nil {
		return challenge.Challenge{}, err
	}
	if ch.Completed == completed {
		return ch, nil
	}
	ch.Completed = completed
	updated, err := s.store.UpdateChallenge(ctx, ch)
	if err != nil {
		return challenge.Challenge{}, err
	}
	s.log.WithField("challenge_id", id).
		WithField("completed", completed).
		Info("challenge completion changed")
	return updated, nil
}

// SetStepCompleted toggles one step of a challenge.
func (s *Service) SetStepCompleted(ctx context.Context, challengeID, stepID string, completed bool) (challenge.Step, error) {
	return s.store.SetChallengeStepCompleted(ctx, challengeID, stepID, completed)
}

func validate(ch challenge.Challenge) error {
	if strings.TrimSpace(ch.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(string(ch.Area)) == "" {
		return fmt.Errorf("area is required")
	}
	if ch.Reward < 0 {
		return fmt.Errorf("reward must not be negative")
	}
	return nil
}
