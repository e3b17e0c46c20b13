package app

import (
	"context"
	"fmt"

	"github.com/ascendapp/ascend/internal/app/metrics"
	areassvc "github.com/ascendapp/ascend/internal/app/services/areas"
	challengessvc "github.com/ascendapp/ascend/internal/app/services/challenges"
	habitssvc "github.com/ascendapp/ascend/internal/app/services/habits"
	objectivessvc "github.com/ascendapp/ascend/internal/app/services/objectives"
	scoreboardsvc "github.com/ascendapp/ascend/internal/app/services/scoreboard"
	taskssvc "github.com/ascendapp/ascend/internal/app/services/tasks"
	"github.com/ascendapp/ascend/internal/app/storage"
	"github.com/ascendapp/ascend/internal/app/storage/memory"
	"github.com/ascendapp/ascend/internal/app/system"
	"github.com/ascendapp/ascend/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Challenges   storage.ChallengeStore
	Objectives   storage.ObjectiveStore
	Habits       storage.HabitStore
	Tasks        storage.TaskStore
	Achievements storage.AchievementStore
	CustomAreas  storage.CustomAreaStore
	Ledger       storage.LedgerStore
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Challenges *challengessvc.Service
	Objectives *objectivessvc.Service
	Habits     *habitssvc.Service
	Tasks      *taskssvc.Service
	Areas      *areassvc.Service
	Scoreboard *scoreboardsvc.Service

	// Reconciler is exported so callers can tune its interval before Start.
	Reconciler *habitssvc.Reconciler
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Challenges == nil {
		stores.Challenges = mem
	}
	if stores.Objectives == nil {
		stores.Objectives = mem
	}
	if stores.Habits == nil {
		stores.Habits = mem
	}
	if stores.Tasks == nil {
		stores.Tasks = mem
	}
	if stores.Achievements == nil {
		stores.Achievements = mem
	}
	if stores.CustomAreas == nil {
		stores.CustomAreas = mem
	}
	if stores.Ledger == nil {
		stores.Ledger = mem
	}

	manager := system.NewManager()

	challengeService := challengessvc.New(stores.Challenges, log)
	objectiveService := objectivessvc.New(stores.Objectives, log)
	habitService := habitssvc.New(stores.Habits, metrics.StreakResets, log)
	taskService := taskssvc.New(stores.Tasks, stores.Ledger, metrics.LedgerEntries, log)
	areaService := areassvc.New(stores.CustomAreas, stores.Achievements, log)
	scoreboardService := scoreboardsvc.New(
		stores.Challenges,
		stores.Objectives,
		habitService,
		stores.Tasks,
		stores.Achievements,
		stores.CustomAreas,
		log,
	)

	for _, name := range []string{"challenges", "objectives", "tasks", "areas", "scoreboard"} {
		if err := manager.Register(system.NoopService{ServiceName: name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", name, err)
		}
	}

	reconciler := habitssvc.NewReconciler(habitService, log)
	if err := manager.Register(reconciler); err != nil {
		return nil, fmt.Errorf("register %s: %w", reconciler.Name(), err)
	}

	return &Application{
		manager:    manager,
		log:        log,
		Challenges: challengeService,
		Objectives: objectiveService,
		Habits:     habitService,
		Tasks:      taskService,
		Areas:      areaService,
		Scoreboard: scoreboardService,
		Reconciler: reconciler,
	}, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
