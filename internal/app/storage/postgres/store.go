// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ascendapp/ascend/internal/app/domain/achievement"
	"github.com/ascendapp/ascend/internal/app/domain/area"
	"github.com/ascendapp/ascend/internal/app/domain/challenge"
	"github.com/ascendapp/ascend/internal/app/domain/habit"
	"github.com/ascendapp/ascend/internal/app/domain/ledger"
	"github.com/ascendapp/ascend/internal/app/domain/objective"
	"github.com/ascendapp/ascend/internal/app/domain/task"
	"github.com/ascendapp/ascend/internal/app/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ storage.ChallengeStore = (*Store)(nil)
var _ storage.ObjectiveStore = (*Store)(nil)
var _ storage.HabitStore = (*Store)(nil)
var _ storage.TaskStore = (*Store)(nil)
var _ storage.AchievementStore = (*Store)(nil)
var _ storage.CustomAreaStore = (*Store)(nil)
var _ storage.LedgerStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

// --- ChallengeStore ---------------------------------------------------------

func (s *Store) CreateChallenge(ctx context.Context, ch challenge.Challenge) (challenge.Challenge, error) {
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO challenges (id, title, level, description, achievement, area, objective_id, reward, date, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, ch.ID, ch.Title, ch.Level, ch.Description, ch.Achievement, string(ch.Area), ch.ObjectiveID, ch.Reward, toNullTime(ch.Date), ch.Completed)
	if err != nil {
		return challenge.Challenge{}, err
	}

	for i := range ch.Steps {
		if ch.Steps[i].ID == "" {
			ch.Steps[i].ID = uuid.NewString()
		}
		ch.Steps[i].ChallengeID = ch.ID
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO challenge_steps (id, challenge_id, title, description, completed)
			VALUES ($1, $2, $3, $4, $5)
		`, ch.Steps[i].ID, ch.ID, ch.Steps[i].Title, ch.Steps[i].Description, ch.Steps[i].Completed)
		if err != nil {
			return challenge.Challenge{}, err
		}
	}
	return ch, nil
}

func (s *Store) UpdateChallenge(ctx context.Context, ch challenge.Challenge) (challenge.Challenge, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE challenges
		SET title = $2, level = $3, description = $4, achievement = $5, area = $6, objective_id = $7, reward = $8, date = $9, completed = $10
		WHERE id = $1
	`, ch.ID, ch.Title, ch.Level, ch.Description, ch.Achievement, string(ch.Area), ch.ObjectiveID, ch.Reward, toNullTime(ch.Date), ch.Completed)
	if err != nil {
		return challenge.Challenge{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return challenge.Challenge{}, storage.ErrNotFound
	}
	return s.GetChallenge(ctx, ch.ID)
}

func (s *Store) GetChallenge(ctx context.Context, id string) (challenge.Challenge, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, level, description, achievement, area, objective_id, reward, date, completed
		FROM challenges
		WHERE id = $1
	`, id)

	ch, err := scanChallenge(row)
	if err != nil {
		return challenge.Challenge{}, notFound(err)
	}

	steps, err := s.challengeSteps(ctx, id)
	if err != nil {
		return challenge.Challenge{}, err
	}
	ch.Steps = steps
	return ch, nil
}

func (s *Store) ListChallenges(ctx context.Context) ([]challenge.Challenge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, level, description, achievement, area, objective_id, reward, date, completed
		FROM challenges
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []challenge.Challenge
	for rows.Next() {
		ch, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		steps, err := s.challengeSteps(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Steps = steps
	}
	return result, nil
}

func (s *Store) DeleteChallenge(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) SetChallengeStepCompleted(ctx context.Context, challengeID, stepID string, completed bool) (challenge.Step, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE challenge_steps
		SET completed = $3
		WHERE challenge_id = $1 AND id = $2
	`, challengeID, stepID, completed)
	if err != nil {
		return challenge.Step{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return challenge.Step{}, storage.ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, challenge_id, title, description, completed
		FROM challenge_steps
		WHERE challenge_id = $1 AND id = $2
	`, challengeID, stepID)

	var step challenge.Step
	if err := row.Scan(&step.ID, &step.ChallengeID, &step.Title, &step.Description, &step.Completed); err != nil {
		return challenge.Step{}, notFound(err)
	}
	return step, nil
}

func (s *Store) challengeSteps(ctx context.Context, challengeID string) ([]challenge.Step, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, challenge_id, title, description, completed
		FROM challenge_steps
		WHERE challenge_id = $1
		ORDER BY id
	`, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []challenge.Step
	for rows.Next() {
		var step challenge.Step
		if err := rows.Scan(&step.ID, &step.ChallengeID, &step.Title, &step.Description, &step.Completed); err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChallenge(row rowScanner) (challenge.Challenge, error) {
	var (
		ch      challenge.Challenge
		areaRaw string
		date    sql.NullTime
	)
	if err := row.Scan(&ch.ID, &ch.Title, &ch.Level, &ch.Description, &ch.Achievement, &areaRaw, &ch.ObjectiveID, &ch.Reward, &date, &ch.Completed); err != nil {
		return challenge.Challenge{}, err
	}
	ch.Area = area.ID(areaRaw)
	if date.Valid {
		ch.Date = date.Time.UTC()
	}
	return ch, nil
}

// --- ObjectiveStore ---------------------------------------------------------

func (s *Store) CreateObjective(ctx context.Context, obj objective.Objective) (objective.Objective, error) {
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO objectives (id, title, description, why, date, completed)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, obj.ID, obj.Title, obj.Description, obj.Why, toNullTime(obj.Date), obj.Completed)
	if err != nil {
		return objective.Objective{}, err
	}

	if err := s.insertObjectiveRelations(ctx, &obj); err != nil {
		return objective.Objective{}, err
	}
	return obj, nil
}

func (s *Store) UpdateObjective(ctx context.Context, obj objective.Objective) (objective.Objective, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE objectives
		SET title = $2, description = $3, why = $4, date = $5, completed = $6
		WHERE id = $1
	`, obj.ID, obj.Title, obj.Description, obj.Why, toNullTime(obj.Date), obj.Completed)
	if err != nil {
		return objective.Objective{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return objective.Objective{}, storage.ErrNotFound
	}

	// Relation rows are replaced wholesale; each write is independent.
	for _, stmt := range []string{
		`DELETE FROM objective_benefits WHERE objective_id = $1`,
		`DELETE FROM objective_areas WHERE objective_id = $1`,
		`DELETE FROM objective_rewards_per_area WHERE objective_id = $1`,
		`DELETE FROM objective_quadrants WHERE objective_id = $1`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt, obj.ID); err != nil {
			return objective.Objective{}, err
		}
	}
	if err := s.insertObjectiveRelations(ctx, &obj); err != nil {
		return objective.Objective{}, err
	}
	return obj, nil
}

func (s *Store) insertObjectiveRelations(ctx context.Context, obj *objective.Objective) error {
	for _, b := range obj.Benefits {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO objective_benefits (objective_id, benefit) VALUES ($1, $2)
		`, obj.ID, b); err != nil {
			return err
		}
	}
	for _, a := range obj.Areas {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO objective_areas (objective_id, area) VALUES ($1, $2)
		`, obj.ID, string(a)); err != nil {
			return err
		}
	}
	for a, reward := range obj.RewardsByArea {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO objective_rewards_per_area (objective_id, area, reward) VALUES ($1, $2, $3)
		`, obj.ID, string(a), reward); err != nil {
			return err
		}
	}
	for qi := range obj.Quadrants {
		q := &obj.Quadrants[qi]
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		q.ObjectiveID = obj.ID
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO objective_quadrants (id, objective_id, title, description, completed)
			VALUES ($1, $2, $3, $4, $5)
		`, q.ID, obj.ID, q.Title, q.Description, q.Completed); err != nil {
			return err
		}
		for si := range q.Steps {
			step := &q.Steps[si]
			if step.ID == "" {
				step.ID = uuid.NewString()
			}
			step.QuadrantID = q.ID
			if _, err := s.db.ExecContext(ctx, `
				INSERT INTO objective_quadrant_steps (id, quadrant_id, title, description, completed)
				VALUES ($1, $2, $3, $4, $5)
			`, step.ID, q.ID, step.Title, step.Description, step.Completed); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Store) GetObjective(ctx context.Context, id string) (objective.Objective, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, why, date, completed
		FROM objectives
		WHERE id = $1
	`, id)

	obj, err := scanObjective(row)
	if err != nil {
		return objective.Objective{}, notFound(err)
	}
	if err := s.loadObjectiveRelations(ctx, &obj); err != nil {
		return objective.Objective{}, err
	}
	return obj, nil
}

func (s *Store) ListObjectives(ctx context.Context) ([]objective.Objective, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, why, date, completed
		FROM objectives
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []objective.Objective
	for rows.Next() {
		obj, err := scanObjective(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if err := s.loadObjectiveRelations(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *Store) DeleteObjective(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM objectives WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) SetQuadrantStepCompleted(ctx context.Context, objectiveID, stepID string, completed bool) (objective.QuadrantStep, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE objective_quadrant_steps
		SET completed = $3
		WHERE id = $2 AND quadrant_id IN (SELECT id FROM objective_quadrants WHERE objective_id = $1)
	`, objectiveID, stepID, completed)
	if err != nil {
		return objective.QuadrantStep{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return objective.QuadrantStep{}, storage.ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, quadrant_id, title, description, completed
		FROM objective_quadrant_steps
		WHERE id = $1
	`, stepID)

	var step objective.QuadrantStep
	if err := row.Scan(&step.ID, &step.QuadrantID, &step.Title, &step.Description, &step.Completed); err != nil {
		return objective.QuadrantStep{}, notFound(err)
	}
	return step, nil
}

func (s *Store) loadObjectiveRelations(ctx context.Context, obj *objective.Objective) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT benefit FROM objective_benefits WHERE objective_id = $1
	`, obj.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			rows.Close()
			return err
		}
		obj.Benefits = append(obj.Benefits, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT area FROM objective_areas WHERE objective_id = $1
	`, obj.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			rows.Close()
			return err
		}
		obj.Areas = append(obj.Areas, area.ID(a))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	obj.RewardsByArea = make(map[area.ID]int)
	rows, err = s.db.QueryContext(ctx, `
		SELECT area, reward FROM objective_rewards_per_area WHERE objective_id = $1
	`, obj.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var (
			a      string
			reward int
		)
		if err := rows.Scan(&a, &reward); err != nil {
			rows.Close()
			return err
		}
		obj.RewardsByArea[area.ID(a)] = reward
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT id, objective_id, title, description, completed
		FROM objective_quadrants
		WHERE objective_id = $1
		ORDER BY id
	`, obj.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var q objective.Quadrant
		if err := rows.Scan(&q.ID, &q.ObjectiveID, &q.Title, &q.Description, &q.Completed); err != nil {
			rows.Close()
			return err
		}
		obj.Quadrants = append(obj.Quadrants, q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for qi := range obj.Quadrants {
		q := &obj.Quadrants[qi]
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, quadrant_id, title, description, completed
			FROM objective_quadrant_steps
			WHERE quadrant_id = $1
			ORDER BY id
		`, q.ID)
		if err != nil {
			return err
		}
		for rows.Next() {
			var step objective.QuadrantStep
			if err := rows.Scan(&step.ID, &step.QuadrantID, &step.Title, &step.Description, &step.Completed); err != nil {
				rows.Close()
				return err
			}
			q.Steps = append(q.Steps, step)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
	}
	return nil
}

func scanObjective(row rowScanner) (objective.Objective, error) {
	var (
		obj  objective.Objective
		date sql.NullTime
	)
	if err := row.Scan(&obj.ID, &obj.Title, &obj.Description, &obj.Why, &date, &obj.Completed); err != nil {
		return objective.Objective{}, err
	}
	if date.Valid {
		obj.Date = date.Time.UTC()
	}
	return obj, nil
}

// --- HabitStore -------------------------------------------------------------

func (s *Store) CreateHabit(ctx context.Context, h habit.Habit) (habit.Habit, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habits (id, title, description, area, objective_id, reward, minimum_streak, streak, completed, last_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, h.ID, h.Title, h.Description, string(h.Area), h.ObjectiveID, h.Reward, h.MinimumStreak, h.Streak, h.Completed, toNullTime(h.LastCompleted))
	if err != nil {
		return habit.Habit{}, err
	}

	for i := range h.Steps {
		if h.Steps[i].ID == "" {
			h.Steps[i].ID = uuid.NewString()
		}
		h.Steps[i].HabitID = h.ID
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO habit_steps (id, habit_id, title, description, completed_at)
			VALUES ($1, $2, $3, $4, $5)
		`, h.Steps[i].ID, h.ID, h.Steps[i].Title, h.Steps[i].Description, toNullTime(h.Steps[i].CompletedAt))
		if err != nil {
			return habit.Habit{}, err
		}
	}
	return h, nil
}

func (s *Store) UpdateHabit(ctx context.Context, h habit.Habit) (habit.Habit, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE habits
		SET title = $2, description = $3, area = $4, objective_id = $5, reward = $6, minimum_streak = $7, streak = $8, completed = $9, last_completed = $10
		WHERE id = $1
	`, h.ID, h.Title, h.Description, string(h.Area), h.ObjectiveID, h.Reward, h.MinimumStreak, h.Streak, h.Completed, toNullTime(h.LastCompleted))
	if err != nil {
		return habit.Habit{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return habit.Habit{}, storage.ErrNotFound
	}
	return s.GetHabit(ctx, h.ID)
}

func (s *Store) GetHabit(ctx context.Context, id string) (habit.Habit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, area, objective_id, reward, minimum_streak, streak, completed, last_completed
		FROM habits
		WHERE id = $1
	`, id)

	h, err := scanHabit(row)
	if err != nil {
		return habit.Habit{}, notFound(err)
	}
	steps, err := s.habitSteps(ctx, id)
	if err != nil {
		return habit.Habit{}, err
	}
	h.Steps = steps
	return h, nil
}

func (s *Store) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, area, objective_id, reward, minimum_streak, streak, completed, last_completed
		FROM habits
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []habit.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		steps, err := s.habitSteps(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Steps = steps
	}
	return result, nil
}

func (s *Store) DeleteHabit(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ResetStreak(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE habits SET streak = 0 WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) RecordHabitCompletion(ctx context.Context, id string, stepIDs []string, date time.Time) (habit.Habit, error) {
	day := habit.Day(date)

	// The date guard lives in the statement itself so a same-day repeat
	// updates zero rows instead of double-incrementing the streak.
	result, err := s.db.ExecContext(ctx, `
		UPDATE habits
		SET streak = streak + 1, last_completed = $2
		WHERE id = $1 AND (last_completed IS NULL OR last_completed < $2)
	`, id, day)
	if err != nil {
		return habit.Habit{}, err
	}

	rows, _ := result.RowsAffected()
	if rows > 0 && len(stepIDs) > 0 {
		_, err = s.db.ExecContext(ctx, `
			UPDATE habit_steps
			SET completed_at = $3
			WHERE habit_id = $1 AND id = ANY($2)
		`, id, pq.Array(stepIDs), day)
		if err != nil {
			return habit.Habit{}, err
		}
	}

	return s.GetHabit(ctx, id)
}

func (s *Store) habitSteps(ctx context.Context, habitID string) ([]habit.Step, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, habit_id, title, description, completed_at
		FROM habit_steps
		WHERE habit_id = $1
		ORDER BY id
	`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []habit.Step
	for rows.Next() {
		var (
			step        habit.Step
			completedAt sql.NullTime
		)
		if err := rows.Scan(&step.ID, &step.HabitID, &step.Title, &step.Description, &completedAt); err != nil {
			return nil, err
		}
		if completedAt.Valid {
			step.CompletedAt = completedAt.Time.UTC()
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

func scanHabit(row rowScanner) (habit.Habit, error) {
	var (
		h             habit.Habit
		areaRaw       string
		lastCompleted sql.NullTime
	)
	if err := row.Scan(&h.ID, &h.Title, &h.Description, &areaRaw, &h.ObjectiveID, &h.Reward, &h.MinimumStreak, &h.Streak, &h.Completed, &lastCompleted); err != nil {
		return habit.Habit{}, err
	}
	h.Area = area.ID(areaRaw)
	if lastCompleted.Valid {
		h.LastCompleted = lastCompleted.Time.UTC()
	}
	return h, nil
}

// --- TaskStore --------------------------------------------------------------

func (s *Store) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, area, objective_id, reward, due_date, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, t.ID, t.Title, t.Description, string(t.Area), t.ObjectiveID, t.Reward, toNullTime(t.DueDate), t.Completed)
	if err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (s *Store) UpdateTask(ctx context.Context, t task.Task) (task.Task, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, area = $4, objective_id = $5, reward = $6, due_date = $7, completed = $8
		WHERE id = $1
	`, t.ID, t.Title, t.Description, string(t.Area), t.ObjectiveID, t.Reward, toNullTime(t.DueDate), t.Completed)
	if err != nil {
		return task.Task{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return task.Task{}, storage.ErrNotFound
	}
	return t, nil
}

func (s *Store) GetTask(ctx context.Context, id string) (task.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, area, objective_id, reward, due_date, completed
		FROM tasks
		WHERE id = $1
	`, id)

	t, err := scanTask(row)
	if err != nil {
		return task.Task{}, notFound(err)
	}
	return t, nil
}

func (s *Store) ListTasks(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, area, objective_id, reward, due_date, completed
		FROM tasks
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanTask(row rowScanner) (task.Task, error) {
	var (
		t       task.Task
		areaRaw string
		due     sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &areaRaw, &t.ObjectiveID, &t.Reward, &due, &t.Completed); err != nil {
		return task.Task{}, err
	}
	t.Area = area.ID(areaRaw)
	if due.Valid {
		t.DueDate = due.Time.UTC()
	}
	return t, nil
}

// --- AchievementStore -------------------------------------------------------

func (s *Store) CreateAchievement(ctx context.Context, a achievement.Achievement) (achievement.Achievement, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.UnlockedAt.IsZero() {
		a.UnlockedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO achievements (id, title, description, icon, points, area, unlocked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.Title, a.Description, a.Icon, a.Points, string(a.Area), a.UnlockedAt)
	if err != nil {
		return achievement.Achievement{}, err
	}
	return a, nil
}

func (s *Store) ListAchievements(ctx context.Context) ([]achievement.Achievement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, icon, points, area, unlocked_at
		FROM achievements
		ORDER BY unlocked_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []achievement.Achievement
	for rows.Next() {
		var (
			a       achievement.Achievement
			areaRaw string
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Icon, &a.Points, &areaRaw, &a.UnlockedAt); err != nil {
			return nil, err
		}
		a.Area = area.ID(areaRaw)
		result = append(result, a)
	}
	return result, rows.Err()
}

// --- CustomAreaStore --------------------------------------------------------

func (s *Store) CreateCustomArea(ctx context.Context, c area.CustomArea) (area.CustomArea, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO custom_areas (id, name, color, icon)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.Name, c.Color, c.Icon)
	if err != nil {
		return area.CustomArea{}, err
	}
	return c, nil
}

func (s *Store) UpdateCustomArea(ctx context.Context, c area.CustomArea) (area.CustomArea, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE custom_areas
		SET name = $2, color = $3, icon = $4
		WHERE id = $1
	`, c.ID, c.Name, c.Color, c.Icon)
	if err != nil {
		return area.CustomArea{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return area.CustomArea{}, storage.ErrNotFound
	}
	return c, nil
}

func (s *Store) ListCustomAreas(ctx context.Context) ([]area.CustomArea, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, color, icon
		FROM custom_areas
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []area.CustomArea
	for rows.Next() {
		var c area.CustomArea
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// --- LedgerStore ------------------------------------------------------------

func (s *Store) AppendTransaction(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO points_transactions (id, user_id, points, source, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, tx.ID, tx.UserID, tx.Points, string(tx.Source), tx.CreatedAt)
	if err != nil {
		return ledger.Transaction{}, err
	}
	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID string) ([]ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, points, source, created_at
		FROM points_transactions
		WHERE $1 = '' OR user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ledger.Transaction
	for rows.Next() {
		var (
			tx        ledger.Transaction
			sourceRaw string
		)
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Points, &sourceRaw, &tx.CreatedAt); err != nil {
			return nil, err
		}
		tx.Source = ledger.Source(sourceRaw)
		result = append(result, tx)
	}
	return result, rows.Err()
}

func toNullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
