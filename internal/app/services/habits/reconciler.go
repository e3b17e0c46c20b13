package habits

import (
	"context"
	"sync"
	"time"

	"github.com/ascendapp/ascend/internal/app/system"
	"github.com/ascendapp/ascend/pkg/logger"
)

var _ system.Service = (*Reconciler)(nil)

// Reconciler periodically re-runs the streak reconciliation pass so lapsed
// streaks are zeroed even when nobody lists habits for a while.
type Reconciler struct {
	service  *Service
	log      *logger.Logger
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewReconciler creates a lifecycle-managed streak reconciler.
func NewReconciler(service *Service, log *logger.Logger) *Reconciler {
	if log == nil {
		log = logger.NewDefault("habits-runner")
	}
	return &Reconciler{
		service:  service,
		log:      log,
		interval: time.Hour,
	}
}

// WithInterval overrides the tick interval. Zero or negative keeps the default.
func (r *Reconciler) WithInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	r.mu.Lock()
	r.interval = d
	r.mu.Unlock()
}

func (r *Reconciler) Name() string { return "habit-streak-reconciler" }

func (r *Reconciler) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.running = true
	interval := r.interval
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				r.tick(runCtx)
			}
		}
	}()

	r.log.Info("habit streak reconciler started")
	return nil
}

func (r *Reconciler) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	cancel := r.cancel
	r.running = false
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.wg.Wait()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	r.log.Info("habit streak reconciler stopped")
	return nil
}

func (r *Reconciler) tick(ctx context.Context) {
	if r.service == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Listing already persists any pending resets.
	if _, err := r.service.List(ctx); err != nil {
		r.log.WithError(err).Warn("streak reconciliation tick failed")
	}
}
