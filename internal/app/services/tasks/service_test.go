package tasks

import (
	"context"
	"testing"

	"github.com/ascendapp/ascend/internal/app/domain/area"
	"github.com/ascendapp/ascend/internal/app/domain/ledger"
	"github.com/ascendapp/ascend/internal/app/domain/task"
	"github.com/ascendapp/ascend/internal/app/storage/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return New(store, store, nil, nil), store
}

func TestSetCompletedWritesSignedLedgerEntries(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), task.Task{
		Title:  "Ship report",
		Area:   area.Productivity,
		Reward: 40,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	updated, err := svc.SetCompleted(context.Background(), created.ID, true)
	if err != nil {
		t.Fatalf("complete task: %v", err)
	}
	if !updated.Completed {
		t.Fatal("task not marked completed")
	}

	if _, err := svc.SetCompleted(context.Background(), created.ID, false); err != nil {
		t.Fatalf("uncomplete task: %v", err)
	}

	entries, err := svc.Ledger(context.Background())
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ledger entries = %d, want 2", len(entries))
	}
	if entries[0].Points != 40 || entries[0].Source != ledger.SourceTask {
		t.Fatalf("first entry = %+v, want +40 from task", entries[0])
	}
	if entries[1].Points != -40 {
		t.Fatalf("second entry points = %d, want -40", entries[1].Points)
	}
}

func TestSetCompletedSameValueIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), task.Task{
		Title:  "Water plants",
		Area:   area.Health,
		Reward: 5,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := svc.SetCompleted(context.Background(), created.ID, false); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	entries, err := svc.Ledger(context.Background())
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("ledger entries = %d, want none for a no-op toggle", len(entries))
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create(context.Background(), task.Task{Area: area.Finance}); err == nil {
		t.Fatal("expected error for missing title")
	}
	if _, err := svc.Create(context.Background(), task.Task{Title: "Budget"}); err == nil {
		t.Fatal("expected error for missing area")
	}
}
