package objectives

import (
	"context"
	"testing"

	"github.com/ascendapp/ascend/internal/app/domain/area"
	"github.com/ascendapp/ascend/internal/app/domain/objective"
	"github.com/ascendapp/ascend/internal/app/storage/memory"
)

func TestCreateRequiresArea(t *testing.T) {
	svc := New(memory.New(), nil)

	_, err := svc.Create(context.Background(), objective.Objective{Title: "Drift"})
	if err == nil {
		t.Fatal("expected error for objective without areas")
	}
}

func TestCreateToleratesUnknownRewardKeys(t *testing.T) {
	svc := New(memory.New(), nil)

	created, err := svc.Create(context.Background(), objective.Objective{
		Title: "Save for a house",
		Areas: []area.ID{area.Finance},
		RewardsByArea: map[area.ID]int{
			area.Finance: 80,
			area.Fitness: 10,
		},
	})
	if err != nil {
		t.Fatalf("create objective: %v", err)
	}
	if created.RewardFor(area.Finance) != 80 {
		t.Fatalf("finance reward = %d, want 80", created.RewardFor(area.Finance))
	}
	// The stray key stays stored but never scores: the objective does not
	// span fitness.
	if created.Includes(area.Fitness) {
		t.Fatal("objective must not span fitness")
	}
}

func TestQuadrantStepToggle(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, objective.Objective{
		Title: "Learn Spanish",
		Areas: []area.ID{area.Education},
		Quadrants: []objective.Quadrant{{
			Title: "Vocabulary",
			Steps: []objective.QuadrantStep{{Title: "First 500 words"}},
		}},
	})
	if err != nil {
		t.Fatalf("create objective: %v", err)
	}

	stepID := created.Quadrants[0].Steps[0].ID
	step, err := svc.SetQuadrantStepCompleted(ctx, created.ID, stepID, true)
	if err != nil {
		t.Fatalf("set quadrant step: %v", err)
	}
	if !step.Completed {
		t.Fatal("quadrant step not marked completed")
	}
}
