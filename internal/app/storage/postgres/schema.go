package postgres

import "context"

// Schema bootstraps the tracker tables. Statements are idempotent so the
// server can apply them on startup against a fresh or existing database.
const Schema = `
CREATE TABLE IF NOT EXISTS challenges (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    level INTEGER NOT NULL DEFAULT 0,
    description TEXT NOT NULL DEFAULT '',
    achievement TEXT NOT NULL DEFAULT '',
    area TEXT NOT NULL,
    objective_id TEXT NOT NULL DEFAULT '',
    reward INTEGER NOT NULL DEFAULT 0,
    date TIMESTAMPTZ,
    completed BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS challenge_steps (
    id TEXT PRIMARY KEY,
    challenge_id TEXT NOT NULL REFERENCES challenges(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    completed BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS objectives (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    why TEXT NOT NULL DEFAULT '',
    date TIMESTAMPTZ,
    completed BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS objective_benefits (
    objective_id TEXT NOT NULL REFERENCES objectives(id) ON DELETE CASCADE,
    benefit TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS objective_areas (
    objective_id TEXT NOT NULL REFERENCES objectives(id) ON DELETE CASCADE,
    area TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS objective_rewards_per_area (
    objective_id TEXT NOT NULL REFERENCES objectives(id) ON DELETE CASCADE,
    area TEXT NOT NULL,
    reward INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS objective_quadrants (
    id TEXT PRIMARY KEY,
    objective_id TEXT NOT NULL REFERENCES objectives(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    completed BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS objective_quadrant_steps (
    id TEXT PRIMARY KEY,
    quadrant_id TEXT NOT NULL REFERENCES objective_quadrants(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    completed BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS habits (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    area TEXT NOT NULL,
    objective_id TEXT NOT NULL DEFAULT '',
    reward INTEGER NOT NULL DEFAULT 0,
    minimum_streak INTEGER NOT NULL DEFAULT 0,
    streak INTEGER NOT NULL DEFAULT 0,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    last_completed DATE
);

CREATE TABLE IF NOT EXISTS habit_steps (
    id TEXT PRIMARY KEY,
    habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    completed_at DATE
);

CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    area TEXT NOT NULL,
    objective_id TEXT NOT NULL DEFAULT '',
    reward INTEGER NOT NULL DEFAULT 0,
    due_date TIMESTAMPTZ,
    completed BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS achievements (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    icon TEXT NOT NULL DEFAULT '',
    points INTEGER NOT NULL DEFAULT 0,
    area TEXT NOT NULL DEFAULT '',
    unlocked_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS custom_areas (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    color TEXT NOT NULL DEFAULT '',
    icon TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS points_transactions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    points INTEGER NOT NULL,
    source TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema applies the bootstrap DDL.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, Schema)
	return err
}
