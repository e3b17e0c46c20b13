package challenges

import (
	"context"
	"errors"
	"testing"

	"github.com/ascendapp/ascend/internal/app/domain/area"
	"github.com/ascendapp/ascend/internal/app/domain/challenge"
	"github.com/ascendapp/ascend/internal/app/storage"
	"github.com/ascendapp/ascend/internal/app/storage/memory"
)

func TestStepToggle(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, challenge.Challenge{
		Title:  "Write daily",
		Area:   area.Creativity,
		Reward: 20,
		Steps:  []challenge.Step{{Title: "Outline"}, {Title: "Draft"}},
	})
	if err != nil {
		t.Fatalf("create challenge: %v", err)
	}

	step, err := svc.SetStepCompleted(ctx, created.ID, created.Steps[0].ID, true)
	if err != nil {
		t.Fatalf("set step completed: %v", err)
	}
	if !step.Completed {
		t.Fatal("step not marked completed")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get challenge: %v", err)
	}
	if !got.Steps[0].Completed || got.Steps[1].Completed {
		t.Fatalf("steps = %+v, want only first completed", got.Steps)
	}
}

func TestSetCompletedMissingChallenge(t *testing.T) {
	svc := New(memory.New(), nil)

	_, err := svc.SetCompleted(context.Background(), "missing", true)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(memory.New(), nil)

	if _, err := svc.Create(context.Background(), challenge.Challenge{Area: area.Fitness}); err == nil {
		t.Fatal("expected error for missing title")
	}
	if _, err := svc.Create(context.Background(), challenge.Challenge{Title: "Plank"}); err == nil {
		t.Fatal("expected error for missing area")
	}
}
