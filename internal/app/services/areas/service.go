// Package areas manages the area registry and unlocked achievements.
package areas

import (
	"context"
	"fmt"
	"strings"

	"github.com/ascendapp/ascend/internal/app/domain/achievement"
	"github.com/ascendapp/ascend/internal/app/domain/area"
	"github.com/ascendapp/ascend/internal/app/storage"
	"github.com/ascendapp/ascend/pkg/logger"
)

// Service manages custom areas and achievements. Built-in areas are fixed;
// customs extend the registry at read time.
type Service struct {
	areas        storage.CustomAreaStore
	achievements storage.AchievementStore
	log          *logger.Logger
}

// New constructs an area service.
func New(areas storage.CustomAreaStore, achievements storage.AchievementStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("areas")
	}
	return &Service{areas: areas, achievements: achievements, log: log}
}

// Registry returns the merged built-in plus custom area registry.
func (s *Service) Registry(ctx context.Context) (*area.Registry, error) {
	customs, err := s.areas.ListCustomAreas(ctx)
	if err != nil {
		return nil, err
	}
	return area.NewRegistry(customs), nil
}

// List returns every known area definition in display order.
func (s *Service) List(ctx context.Context) ([]area.Definition, error) {
	reg, err := s.Registry(ctx)
	if err != nil {
		return nil, err
	}
	return reg.All(), nil
}

// CreateCustom stores a user-defined area.
func (s *Service) CreateCustom(ctx context.Context, c area.CustomArea) (area.CustomArea, error) {
	if strings.TrimSpace(c.Name) == "" {
		return area.CustomArea{}, fmt.Errorf("name is required")
	}
	created, err := s.areas.CreateCustomArea(ctx, c)
	if err != nil {
		return area.CustomArea{}, err
	}
	s.log.WithField("area_id", created.ID).
		WithField("name", created.Name).
		Info("custom area created")
	return created, nil
}

// UpdateCustom replaces a custom area's stored fields.
func (s *Service) UpdateCustom(ctx context.Context, c area.CustomArea) (area.CustomArea, error) {
	if strings.TrimSpace(c.ID) == "" {
		return area.CustomArea{}, fmt.Errorf("id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return area.CustomArea{}, fmt.Errorf("name is required")
	}
	return s.areas.UpdateCustomArea(ctx, c)
}

// ListAchievements returns unlocked achievements, newest first.
func (s *Service) ListAchievements(ctx context.Context) ([]achievement.Achievement, error) {
	return s.achievements.ListAchievements(ctx)
}

// Unlock records an achievement.
func (s *Service) Unlock(ctx context.Context, a achievement.Achievement) (achievement.Achievement, error) {
	if strings.TrimSpace(a.Title) == "" {
		return achievement.Achievement{}, fmt.Errorf("title is required")
	}
	created, err := s.achievements.CreateAchievement(ctx, a)
	if err != nil {
		return achievement.Achievement{}, err
	}
	s.log.WithField("achievement_id", created.ID).
		WithField("title", created.Title).
		Info("achievement unlocked")
	return created, nil
}
