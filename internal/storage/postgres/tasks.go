package postgres

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ImranQ74/todo-phase2/internal/models"
	"github.com/ImranQ74/todo-phase2/internal/storage"
)

//go:embed schema.sql
var schemaSQL string

// insertAttempts bounds the retry loop on an external id collision. With
// random uuids a single collision is already next to impossible.
const insertAttempts = 3

type taskStore struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskStore(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) storage.Tasks {
	return &taskStore{
		logger: logger,
		pgPool: pgPool,
	}
}

// Bootstrap creates the tasks table and its indexes if they don't exist yet.
// The schema holds several statements, which the extended protocol refuses,
// so it runs over the simple protocol.
func Bootstrap(ctx context.Context, pgPool *pgxpool.Pool) error {
	_, err := pgPool.Exec(ctx, schemaSQL, pgx.QueryExecModeSimpleProtocol)
	return err
}

func (s *taskStore) Insert(ctx context.Context, task *models.Task) (*models.Task, error) {
	now := time.Now()
	stored := &models.Task{
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	const insertTaskQuery = `
INSERT INTO tasks (external_id,
                   owner_id,
                   title,
                   description,
                   completed,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`
	for attempt := 0; attempt < insertAttempts; attempt++ {
		stored.ExternalID = uuid.NewString()

		err := s.pgPool.QueryRow(
			ctx,
			insertTaskQuery,
			stored.ExternalID,
			stored.OwnerID,
			stored.Title,
			stored.Description,
			stored.Completed,
			stored.CreatedAt,
			stored.UpdatedAt,
		).Scan(&stored.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				s.logger.Warn().
					Str("external_id", stored.ExternalID).
					Msg("external id collision, retrying")
				continue
			}

			s.logger.Error().
				Err(err).
				Msg("failed to insert task")
			return nil, err
		}

		s.logger.Debug().
			Int64("task_id", stored.ID).
			Str("owner_id", stored.OwnerID).
			Msg("inserted task")
		return stored, nil
	}

	err := errors.New("exhausted external id insert attempts")
	s.logger.Error().
		Err(err).
		Msg("failed to insert task")
	return nil, err
}

func (s *taskStore) FindByID(ctx context.Context, id int64, ownerID string) (*models.Task, error) {
	task := &models.Task{
		ID:      id,
		OwnerID: ownerID,
	}

	const selectTaskQuery = `
SELECT external_id,
       title,
       description,
       completed,
       created_at,
       updated_at
FROM tasks
WHERE id = $1
  AND owner_id = $2
`
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskQuery,
		id,
		ownerID,
	).Scan(
		&task.ExternalID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select task")
		return nil, err
	}

	return task, nil
}

func (s *taskStore) ListByOwner(ctx context.Context, ownerID string, offset, limit uint64) ([]*models.Task, int64, error) {
	const countTasksQuery = `
SELECT COUNT(*)
FROM tasks
WHERE owner_id = $1
`
	var total int64
	err := s.pgPool.QueryRow(ctx, countTasksQuery, ownerID).Scan(&total)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("owner_id", ownerID).
			Msg("failed to count tasks")
		return nil, 0, err
	}

	const selectTasksQuery = `
SELECT id,
       external_id,
       title,
       description,
       completed,
       created_at,
       updated_at
FROM tasks
WHERE owner_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`
	rows, err := s.pgPool.Query(
		ctx,
		selectTasksQuery,
		ownerID,
		limit,
		offset,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("owner_id", ownerID).
			Msg("failed to select tasks by owner")
		return nil, 0, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0, limit)
	for rows.Next() {
		task := &models.Task{OwnerID: ownerID}
		err = rows.Scan(
			&task.ID,
			&task.ExternalID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, 0, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, 0, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Int64("total", total).
		Str("owner_id", ownerID).
		Msg("selected tasks by owner")
	return tasks, total, nil
}

func (s *taskStore) Update(ctx context.Context, params storage.UpdateTaskParams) (*models.Task, error) {
	task := &models.Task{
		ID:        params.ID,
		OwnerID:   params.OwnerID,
		UpdatedAt: time.Now(),
	}

	// The whole partial update is one statement: each CASE applies the new
	// value only when its set flag is true, and the owner_id conjunction in
	// the WHERE clause doubles as the ownership check.
	const updateTaskQuery = `
UPDATE tasks
SET title       = CASE WHEN $1 THEN $2 ELSE title END,
    description = CASE WHEN $3 THEN $4 ELSE description END,
    completed   = CASE WHEN $5 THEN $6 ELSE completed END,
    updated_at  = $7
WHERE id = $8
  AND owner_id = $9
RETURNING external_id, title, description, completed, created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		updateTaskQuery,
		params.Title != nil,
		params.Title,
		params.Description != nil,
		params.Description,
		params.Completed != nil,
		params.Completed,
		task.UpdatedAt,
		task.ID,
		task.OwnerID,
	).Scan(
		&task.ExternalID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Debug().
		Int64("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskStore) ToggleComplete(ctx context.Context, id int64, ownerID string) (*models.Task, error) {
	task := &models.Task{
		ID:        id,
		OwnerID:   ownerID,
		UpdatedAt: time.Now(),
	}

	const toggleTaskQuery = `
UPDATE tasks
SET completed  = NOT completed,
    updated_at = $1
WHERE id = $2
  AND owner_id = $3
RETURNING external_id, title, description, completed, created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		toggleTaskQuery,
		task.UpdatedAt,
		task.ID,
		task.OwnerID,
	).Scan(
		&task.ExternalID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to toggle task completion")
		return nil, err
	}

	s.logger.Debug().
		Int64("task_id", task.ID).
		Bool("completed", task.Completed).
		Msg("toggled task completion")
	return task, nil
}

func (s *taskStore) Delete(ctx context.Context, id int64, ownerID string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
  AND owner_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		id,
		ownerID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrTaskNotFound
	}

	s.logger.Debug().
		Int64("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskStore) Close() {
	s.pgPool.Close()
}
