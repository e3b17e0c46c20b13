// Package tasks manages one-off tasks and the signed points ledger.
package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ascendapp/ascend/internal/app/domain/ledger"
	"github.com/ascendapp/ascend/internal/app/domain/task"
	"github.com/ascendapp/ascend/internal/app/storage"
	"github.com/ascendapp/ascend/pkg/logger"
)

// DefaultUserID tags ledger entries in single-user deployments.
const DefaultUserID = "default"

// Service manages task records. Completion toggles append signed entries to
// the points ledger; the ledger is an audit side channel and is never read
// back into scoring.
type Service struct {
	store   storage.TaskStore
	ledger  storage.LedgerStore
	entries prometheus.Counter
	log     *logger.Logger
}

// New constructs a task service. The ledger store and counter may be nil.
func New(store storage.TaskStore, ledgerStore storage.LedgerStore, entries prometheus.Counter, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("tasks")
	}
	return &Service{store: store, ledger: ledgerStore, entries: entries, log: log}
}

// List returns all tasks.
func (s *Service) List(ctx context.Context) ([]task.Task, error) {
	return s.store.ListTasks(ctx)
}

// Get returns one task by id.
func (s *Service) Get(ctx context.Context, id string) (task.Task, error) {
	return s.store.GetTask(ctx, id)
}

// Create validates and stores a new task.
func (s *Service) Create(ctx context.Context, t task.Task) (task.Task, error) {
	if err := validate(t); err != nil {
		return task.Task{}, err
	}
	created, err := s.store.CreateTask(ctx, t)
	if err != nil {
		return task.Task{}, err
	}
	s.log.WithField("task_id", created.ID).
		WithField("area", string(created.Area)).
		Info("task created")
	return created, nil
}

// Update replaces a task's stored fields. Completion transitions flow through
// SetCompleted so the ledger sees them; Update applies the flag as-is only
// when it does not change.
func (s *Service) Update(ctx context.Context, t task.Task) (task.Task, error) {
	if strings.TrimSpace(t.ID) == "" {
		return task.Task{}, fmt.Errorf("id is required")
	}
	if err := validate(t); err != nil {
		return task.Task{}, err
	}

	current, err := s.store.GetTask(ctx, t.ID)
	if err != nil {
		return task.Task{}, err
	}
	updated, err := s.store.UpdateTask(ctx, t)
	if err != nil {
		return task.Task{}, err
	}
	if current.Completed != updated.Completed {
		s.appendLedgerEntry(ctx, updated)
	}
	return updated, nil
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.log.WithField("task_id", id).Info("task deleted")
	return nil
}

// SetCompleted toggles a task's completion flag. Only an actual transition
// writes a ledger entry: positive reward on completion, full negative
// reversal on un-completion. Setting the flag to its current value is a
// no-op.
func (s *Service) SetCompleted(ctx context.Context, id string, completed bool) (task.Task, error) {
	current, err := s.store.GetTask(ctx, id)
	if err != nil {
		return task.Task{}, err
	}
	if current.Completed == completed {
		return current, nil
	}

	current.Completed = completed
	updated, err := s.store.UpdateTask(ctx, current)
	if err != nil {
		return task.Task{}, err
	}
	s.appendLedgerEntry(ctx, updated)
	return updated, nil
}

// Ledger returns the recorded points transactions in append order.
func (s *Service) Ledger(ctx context.Context) ([]ledger.Transaction, error) {
	if s.ledger == nil {
		return nil, nil
	}
	return s.ledger.ListTransactions(ctx, "")
}

// appendLedgerEntry records the signed delta for a completion transition.
// The write is best-effort: scoring reads completion flags, never the
// ledger, so a failed append costs only audit history.
func (s *Service) appendLedgerEntry(ctx context.Context, t task.Task) {
	if s.ledger == nil {
		return
	}
	points := t.Reward
	if !t.Completed {
		points = -t.Reward
	}
	_, err := s.ledger.AppendTransaction(ctx, ledger.Transaction{
		UserID: DefaultUserID,
		Points: points,
		Source: ledger.SourceTask,
	})
	if err != nil {
		s.log.WithError(err).WithField("task_id", t.ID).Warn("points transaction not recorded")
		return
	}
	if s.entries != nil {
		s.entries.Inc()
	}
	s.log.WithField("task_id", t.ID).
		WithField("points", points).
		Info("points transaction recorded")
}

func validate(t task.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(string(t.Area)) == "" {
		return fmt.Errorf("area is required")
	}
	if t.Reward < 0 {
		return fmt.Errorf("reward must not be negative")
	}
	return nil
}
