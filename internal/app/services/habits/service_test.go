package habits

import (
	"context"
	"testing"
	"time"

	"github.com/ascendapp/ascend/internal/app/domain/area"
	"github.com/ascendapp/ascend/internal/app/domain/habit"
	"github.com/ascendapp/ascend/internal/app/storage/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, now time.Time) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	svc := New(store, nil, nil)
	svc.now = func() time.Time { return now }
	return svc, store
}

func TestListResetsLapsedStreak(t *testing.T) {
	today := day(2025, 3, 10)
	svc, store := newTestService(t, today)

	created, err := store.CreateHabit(context.Background(), habit.Habit{
		Title:  "Meditate",
		Area:   area.Health,
		Streak: 6,
		Steps: []habit.Step{
			{Title: "Sit down", CompletedAt: day(2025, 3, 7)},
		},
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list habits: %v", err)
	}
	if len(list) != 1 || list[0].Streak != 0 {
		t.Fatalf("listed streak = %+v, want 0", list)
	}

	// The reset must also be persisted, not just projected.
	stored, err := store.GetHabit(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get habit: %v", err)
	}
	if stored.Streak != 0 {
		t.Fatalf("stored streak = %d, want 0", stored.Streak)
	}
}

func TestListHoldsStreakWithinOneDay(t *testing.T) {
	today := day(2025, 3, 10)
	svc, store := newTestService(t, today)

	for _, tc := range []struct {
		name      string
		completed time.Time
	}{
		{"completed today", day(2025, 3, 10)},
		{"completed yesterday", day(2025, 3, 9)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			created, err := store.CreateHabit(context.Background(), habit.Habit{
				Title:  "Read",
				Area:   area.Education,
				Streak: 4,
				Steps:  []habit.Step{{Title: "Open book", CompletedAt: tc.completed}},
			})
			if err != nil {
				t.Fatalf("create habit: %v", err)
			}

			if _, err := svc.List(context.Background()); err != nil {
				t.Fatalf("list habits: %v", err)
			}
			stored, err := store.GetHabit(context.Background(), created.ID)
			if err != nil {
				t.Fatalf("get habit: %v", err)
			}
			if stored.Streak != 4 {
				t.Fatalf("streak = %d, want 4 unchanged", stored.Streak)
			}
		})
	}
}

func TestListSkipsHabitsWithoutDatedSteps(t *testing.T) {
	svc, store := newTestService(t, day(2025, 3, 10))

	created, err := store.CreateHabit(context.Background(), habit.Habit{
		Title:  "Stretch",
		Area:   area.Fitness,
		Streak: 9,
		Steps:  []habit.Step{{Title: "Hamstrings"}},
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("list habits: %v", err)
	}
	stored, err := store.GetHabit(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get habit: %v", err)
	}
	if stored.Streak != 9 {
		t.Fatalf("streak = %d, want 9 untouched", stored.Streak)
	}
}

func TestRegisterCompletionIncrementsOncePerDay(t *testing.T) {
	today := day(2025, 3, 10)
	svc, store := newTestService(t, today)

	created, err := store.CreateHabit(context.Background(), habit.Habit{
		Title:         "Run",
		Area:          area.Fitness,
		Streak:        2,
		LastCompleted: day(2025, 3, 9),
		Steps:         []habit.Step{{Title: "5k"}},
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	stepID := created.Steps[0].ID

	updated, err := svc.RegisterCompletion(context.Background(), created.ID, []string{stepID}, today)
	if err != nil {
		t.Fatalf("register completion: %v", err)
	}
	if updated.Streak != 3 {
		t.Fatalf("streak = %d, want 3", updated.Streak)
	}
	if !updated.LastCompleted.Equal(today) {
		t.Fatalf("last completed = %v, want %v", updated.LastCompleted, today)
	}
	if updated.Steps[0].CompletedAt.IsZero() || !habit.Day(updated.Steps[0].CompletedAt).Equal(today) {
		t.Fatalf("step completed at = %v, want %v", updated.Steps[0].CompletedAt, today)
	}

	// A repeat on the same calendar day is a silent no-op.
	repeat, err := svc.RegisterCompletion(context.Background(), created.ID, []string{stepID}, today.Add(8*time.Hour))
	if err != nil {
		t.Fatalf("repeat registration: %v", err)
	}
	if repeat.Streak != 3 {
		t.Fatalf("streak after repeat = %d, want 3", repeat.Streak)
	}
}

func TestResetStreakForcesZero(t *testing.T) {
	svc, store := newTestService(t, day(2025, 3, 10))

	created, err := store.CreateHabit(context.Background(), habit.Habit{
		Title:  "Journal",
		Area:   area.Creativity,
		Streak: 12,
		Steps:  []habit.Step{{Title: "One page", CompletedAt: day(2025, 3, 10)}},
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	h, err := svc.ResetStreak(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("reset streak: %v", err)
	}
	if h.Streak != 0 {
		t.Fatalf("streak = %d, want 0", h.Streak)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t, day(2025, 3, 10))

	if _, err := svc.Create(context.Background(), habit.Habit{Area: area.Fitness}); err == nil {
		t.Fatal("expected error for missing title")
	}
	if _, err := svc.Create(context.Background(), habit.Habit{Title: "Run"}); err == nil {
		t.Fatal("expected error for missing area")
	}
	if _, err := svc.Create(context.Background(), habit.Habit{Title: "Run", Area: area.Fitness, Reward: -5}); err == nil {
		t.Fatal("expected error for negative reward")
	}
}

func TestReconcilePureDoesNotMutateInput(t *testing.T) {
	in := []habit.Habit{{
		ID:     "h1",
		Streak: 5,
		Steps:  []habit.Step{{ID: "s1", CompletedAt: day(2025, 3, 1)}},
	}}

	out, resets := Reconcile(in, day(2025, 3, 10))
	if in[0].Streak != 5 {
		t.Fatalf("input mutated: streak = %d", in[0].Streak)
	}
	if out[0].Streak != 0 {
		t.Fatalf("output streak = %d, want 0", out[0].Streak)
	}
	if len(resets) != 1 || resets[0] != "h1" {
		t.Fatalf("resets = %v, want [h1]", resets)
	}
}
