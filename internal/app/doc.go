// Package app composes the tracker into a running application.
//
// The layering keeps business logic out of the composition root:
//
//	internal/app/
//	├── application.go   # wiring and lifecycle
//	├── domain/          # plain data models, one package per entity
//	├── storage/         # store interfaces plus memory and postgres backends
//	├── services/        # business logic (scoreboard, habits, tasks, ...)
//	├── httpapi/         # REST handlers over the services
//	├── metrics/         # Prometheus registry and HTTP instrumentation
//	└── system/          # lifecycle-managed background services
//
// Services depend on storage interfaces, never on a concrete backend; the
// application struct decides which backend each deployment gets.
package app
