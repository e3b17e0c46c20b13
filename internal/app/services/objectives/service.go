// Package objectives manages multi-area objectives and their quadrants.
package objectives

import (
	"context"
	"fmt"
	"strings"

	"github.com/ascendapp/ascend/internal/app/domain/objective"
	"github.com/ascendapp/ascend/internal/app/storage"
	"github.com/ascendapp/ascend/pkg/logger"
)

// Service manages objective records.
type Service struct {
	store storage.ObjectiveStore
	log   *logger.Logger
}

// New constructs an objective service.
func New(store storage.ObjectiveStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("objectives")
	}
	return &Service{store: store, log: log}
}

// List returns all objectives.
func (s *Service) List(ctx context.Context) ([]objective.Objective, error) {
	return s.store.ListObjectives(ctx)
}

// Get returns one objective by id.
func (s *Service) Get(ctx context.Context, id string) (objective.Objective, error) {
	return s.store.GetObjective(ctx, id)
}

// Create validates and stores a new objective. Reward keys for areas the
// objective does not span are tolerated; they simply never score.
func (s *Service) Create(ctx context.Context, obj objective.Objective) (objective.Objective, error) {
	if err := validate(obj); err != nil {
		return objective.Objective{}, err
	}
	created, err := s.store.CreateObjective(ctx, obj)
	if err != nil {
		return objective.Objective{}, err
	}
	s.log.WithField("objective_id", created.ID).
		WithField("areas", len(created.Areas)).
		Info("objective created")
	return created, nil
}

// Update replaces an objective's stored fields, including its relations.
func (s *Service) Update(ctx context.Context, obj objective.Objective) (objective.Objective, error) {
	if strings.TrimSpace(obj.ID) == "" {
		return objective.Objective{}, fmt.Errorf("id is required")
	}
	if err := validate(obj); err != nil {
		return objective.Objective{}, err
	}
	return s.store.UpdateObjective(ctx, obj)
}

// Delete removes an objective with its quadrants and rewards.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteObjective(ctx, id); err != nil {
		return err
	}
	s.log.WithField("objective_id", id).Info("objective deleted")
	return nil
}

// SetCompleted toggles the objective-level completion flag.
func (s *Service) SetCompleted(ctx context.Context, id string, completed bool) (objective.Objective, error) {
	obj, err := s.store.GetObjective(ctx, id)
	if err != nil {
		return objective.Objective{}, err
	}
	if obj.Completed == completed {
		return obj, nil
	}
	obj.Completed = completed
	updated, err := s.store.UpdateObjective(ctx, obj)
	if err != nil {
		return objective.Objective{}, err
	}
	s.log.WithField("objective_id", id).
		WithField("completed", completed).
		Info("objective completion changed")
	return updated, nil
}

// SetQuadrantStepCompleted toggles one quadrant step of an objective.
func (s *Service) SetQuadrantStepCompleted(ctx context.Context, objectiveID, stepID string, completed bool) (objective.QuadrantStep, error) {
	return s.store.SetQuadrantStepCompleted(ctx, objectiveID, stepID, completed)
}

func validate(obj objective.Objective) error {
	if strings.TrimSpace(obj.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(obj.Areas) == 0 {
		return fmt.Errorf("at least one area is required")
	}
	for _, reward := range obj.RewardsByArea {
		if reward < 0 {
			return fmt.Errorf("rewards must not be negative")
		}
	}
	return nil
}
