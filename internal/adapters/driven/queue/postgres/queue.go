package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TaskQueue = (*Queue)(nil)

// Queue implements TaskQueue using Postgres.
// This is the fallback for deployments without Redis. It uses
// SELECT ... FOR UPDATE SKIP LOCKED for safe concurrent dequeuing.
type Queue struct {
	db           *sql.DB
	consumerName string
	pollInterval time.Duration
}

// NewQueue creates a new Postgres-backed task queue.
func NewQueue(db *sql.DB, consumerName string) (*Queue, error) {
	if db == nil {
		return nil, errors.New("database connection is required")
	}
	if consumerName == "" {
		consumerName = fmt.Sprintf("worker-%d", time.Now().UnixNano())
	}

	return &Queue{
		db:           db,
		consumerName: consumerName,
		pollInterval: 2 * time.Second,
	}, nil
}

// InitSchema creates the tasks table if it does not exist.
func (q *Queue) InitSchema(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, createTasksTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}
	return nil
}

// Enqueue adds a task to the queue for processing.
func (q *Queue) Enqueue(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return errors.New("task is required")
	}

	payload, err := json.Marshal(task.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	scheduledFor := task.ScheduledFor
	if scheduledFor.IsZero() {
		scheduledFor = time.Now()
	}

	_, err = q.db.ExecContext(ctx, `
		INSERT INTO tasks (id, type, office_id, payload, status, priority,
			attempts, max_attempts, error, created_at, updated_at, scheduled_for)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING`,
		task.ID, string(task.Type), task.OfficeID, payload, string(task.Status),
		task.Priority, task.Attempts, task.MaxAttempts, task.Error,
		task.CreatedAt, task.UpdatedAt, scheduledFor,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	return nil
}

// Dequeue retrieves the next available task, blocking until one arrives
// or the context is cancelled.
func (q *Queue) Dequeue(ctx context.Context) (*domain.Task, error) {
	for {
		task, err := q.tryDequeue(ctx)
		if err != nil {
			return nil, err
		}
		if task != nil {
			return task, nil
		}

		select {
		case <-ctx.Done():
			return nil, nil
		case <-time.After(q.pollInterval):
		}
	}
}

// DequeueWithTimeout retrieves the next available task, waiting up to
// timeout seconds. Returns nil, nil if the timeout expires.
func (q *Queue) DequeueWithTimeout(ctx context.Context, timeout int) (*domain.Task, error) {
	if timeout <= 0 {
		return q.Dequeue(ctx)
	}

	deadline := time.Now().Add(time.Duration(timeout) * time.Second)

	for {
		task, err := q.tryDequeue(ctx)
		if err != nil {
			return nil, err
		}
		if task != nil {
			return task, nil
		}

		if time.Now().After(deadline) {
			return nil, nil
		}

		select {
		case <-ctx.Done():
			return nil, nil
		case <-time.After(q.pollInterval):
		}
	}
}

// tryDequeue attempts to claim one pending task inside a transaction.
// SKIP LOCKED ensures competing workers never block on each other.
func (q *Queue) tryDequeue(ctx context.Context) (*domain.Task, error) {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT id, type, office_id, payload, status, priority,
			attempts, max_attempts, error, created_at, updated_at,
			scheduled_for, started_at, completed_at
		FROM tasks
		WHERE status = 'pending' AND scheduled_for <= NOW()
		ORDER BY priority DESC, created_at ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED`)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue task: %w", err)
	}

	task.MarkProcessing()

	_, err = tx.ExecContext(ctx, `
		UPDATE tasks
		SET status = $1, attempts = $2, started_at = $3, updated_at = $4,
			claimed_by = $5
		WHERE id = $6`,
		string(task.Status), task.Attempts, task.StartedAt, task.UpdatedAt,
		q.consumerName, task.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to claim task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit claim: %w", err)
	}

	return task, nil
}

// Ack acknowledges successful completion of a task.
func (q *Queue) Ack(ctx context.Context, taskID string) error {
	now := time.Now()
	result, err := q.db.ExecContext(ctx, `
		UPDATE tasks
		SET status = 'completed', completed_at = $1, updated_at = $1
		WHERE id = $2`,
		now, taskID,
	)
	if err != nil {
		return fmt.Errorf("failed to ack task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("task not found")
	}

	return nil
}

// Nack indicates task processing failed and should be retried.
func (q *Queue) Nack(ctx context.Context, taskID string, reason string) error {
	task, err := q.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return errors.New("task not found")
	}

	if task.CanRetry() {
		task.Retry(reason)
	} else {
		task.MarkFailed(reason)
	}

	_, err = q.db.ExecContext(ctx, `
		UPDATE tasks
		SET status = $1, error = $2, scheduled_for = $3, updated_at = $4,
			completed_at = $5
		WHERE id = $6`,
		string(task.Status), task.Error, task.ScheduledFor, task.UpdatedAt,
		task.CompletedAt, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to nack task: %w", err)
	}

	return nil
}

// GetTask retrieves a task by ID. Returns nil, nil if not found.
func (q *Queue) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, type, office_id, payload, status, priority,
			attempts, max_attempts, error, created_at, updated_at,
			scheduled_for, started_at, completed_at
		FROM tasks
		WHERE id = $1`,
		taskID,
	)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// Ping checks if the queue backend is healthy.
func (q *Queue) Ping(ctx context.Context) error {
	return q.db.PingContext(ctx)
}

// Close cleans up resources.
func (q *Queue) Close() error {
	// DB connection is shared, don't close it here
	return nil
}

func scanTask(row *sql.Row) (*domain.Task, error) {
	var (
		task        domain.Task
		taskType    string
		status      string
		payload     []byte
		startedAt   sql.NullTime
		completedAt sql.NullTime
	)

	err := row.Scan(
		&task.ID, &taskType, &task.OfficeID, &payload, &status,
		&task.Priority, &task.Attempts, &task.MaxAttempts, &task.Error,
		&task.CreatedAt, &task.UpdatedAt, &task.ScheduledFor,
		&startedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Type = domain.TaskType(taskType)
	task.Status = domain.TaskStatus(status)

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &task.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}
	if startedAt.Valid {
		task.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}

	return &task, nil
}

// createTasksTableSQL is applied by InitSchema on startup.
const createTasksTableSQL = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	office_id TEXT NOT NULL,
	payload JSONB NOT NULL DEFAULT '{}',
	status TEXT NOT NULL DEFAULT 'pending',
	priority INTEGER NOT NULL DEFAULT 0,
	attempts INTEGER NOT NULL DEFAULT 0,
	max_attempts INTEGER NOT NULL DEFAULT 3,
	error TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	scheduled_for TIMESTAMPTZ NOT NULL,
	started_at TIMESTAMPTZ,
	completed_at TIMESTAMPTZ,
	claimed_by TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_tasks_pending
	ON tasks (priority DESC, created_at ASC)
	WHERE status = 'pending';
`
