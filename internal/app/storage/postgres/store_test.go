package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ascendapp/ascend/internal/app/storage"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestEnsureSchemaAppliesDDL(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS challenges").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRecordHabitCompletionIncrementsOnNewDay(t *testing.T) {
	store, mock := newMockStore(t)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE habits").
		WithArgs("h1", day).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE habit_steps").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, title, description, area, objective_id, reward, minimum_streak, streak, completed, last_completed").
		WithArgs("h1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "area", "objective_id", "reward",
			"minimum_streak", "streak", "completed", "last_completed",
		}).AddRow("h1", "Run", "", "fitness", "", 10, 3, 4, false, day))
	mock.ExpectQuery("SELECT id, habit_id, title, description, completed_at").
		WithArgs("h1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "habit_id", "title", "description", "completed_at"}))

	h, err := store.RecordHabitCompletion(context.Background(), "h1", []string{"s1"}, day.Add(9*time.Hour))
	if err != nil {
		t.Fatalf("record completion: %v", err)
	}
	if h.Streak != 4 {
		t.Fatalf("streak = %d, want 4", h.Streak)
	}
	if !h.LastCompleted.Equal(day) {
		t.Fatalf("last completed = %v, want %v", h.LastCompleted, day)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRecordHabitCompletionSameDaySkipsSteps(t *testing.T) {
	store, mock := newMockStore(t)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// Guarded update matches no rows; the step update must not run.
	mock.ExpectExec("UPDATE habits").
		WithArgs("h1", day).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, title, description, area, objective_id, reward, minimum_streak, streak, completed, last_completed").
		WithArgs("h1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "area", "objective_id", "reward",
			"minimum_streak", "streak", "completed", "last_completed",
		}).AddRow("h1", "Run", "", "fitness", "", 10, 3, 4, false, day))
	mock.ExpectQuery("SELECT id, habit_id, title, description, completed_at").
		WithArgs("h1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "habit_id", "title", "description", "completed_at"}))

	h, err := store.RecordHabitCompletion(context.Background(), "h1", []string{"s1"}, day)
	if err != nil {
		t.Fatalf("record completion: %v", err)
	}
	if h.Streak != 4 {
		t.Fatalf("streak = %d, want unchanged 4", h.Streak)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestResetStreakMissingHabit(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE habits SET streak = 0").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.ResetStreak(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetTaskMissingMapsToNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, title, description, area, objective_id, reward, due_date, completed").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "area", "objective_id", "reward", "due_date", "completed",
		}))

	_, err := store.GetTask(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteChallengeMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM challenges").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteChallenge(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
