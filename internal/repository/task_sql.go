package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jaekwang-park/todo-chat-api/internal/model"
)

const taskColumns = `id, user_id, title, status, created_at, updated_at, completed_at`

// SQLTaskRepository works against both the postgres and sqlite drivers; all
// timestamps are bound from Go so no dialect-specific functions are needed.
type SQLTaskRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLTask(db *sql.DB) *SQLTaskRepository {
	return &SQLTaskRepository{db: db, now: utcNow}
}

func (r *SQLTaskRepository) Create(ctx context.Context, userID, title string) (model.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query, userID, title, model.TaskStatusPending, r.now())
	return scanTask(row)
}

func (r *SQLTaskRepository) List(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []any{userID}

	if status := filter.Status(); status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *SQLTaskRepository) GetByID(ctx context.Context, userID string, taskID int64) (model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, taskID))
	if err != nil {
		return model.Task{}, err
	}
	if task.UserID != userID {
		return model.Task{}, fmt.Errorf("task %d: %w", taskID, ErrNotOwned)
	}
	return task, nil
}

func (r *SQLTaskRepository) UpdateTitle(ctx context.Context, userID string, taskID int64, title string) (model.Task, error) {
	query := `
		UPDATE tasks
		SET title = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRowContext(ctx, query, title, r.now(), taskID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, r.missing(ctx, taskID, err)
	}
	return task, err
}

// SetStatus keeps the first completion time when a completed task is
// completed again, and clears it when the task is reopened.
func (r *SQLTaskRepository) SetStatus(ctx context.Context, userID string, taskID int64, status model.TaskStatus) (model.Task, error) {
	if !status.IsValid() {
		return model.Task{}, fmt.Errorf("invalid task status %q", status)
	}

	query := `
		UPDATE tasks
		SET status = $1, completed_at = COALESCE(completed_at, $2), updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING ` + taskColumns
	if status == model.TaskStatusPending {
		query = `
		UPDATE tasks
		SET status = $1, completed_at = NULL, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING ` + taskColumns
	}

	task, err := scanTask(r.db.QueryRowContext(ctx, query, string(status), r.now(), taskID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, r.missing(ctx, taskID, err)
	}
	return task, err
}

func (r *SQLTaskRepository) Delete(ctx context.Context, userID string, taskID int64) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return r.missing(ctx, taskID, sql.ErrNoRows)
	}

	return nil
}

// missing classifies a scoped statement that matched no row: the task either
// does not exist (notFound is returned) or belongs to someone else.
func (r *SQLTaskRepository) missing(ctx context.Context, taskID int64, notFound error) error {
	var owner string
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM tasks WHERE id = $1`, taskID).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("task %d: %w", taskID, notFound)
	case err != nil:
		return fmt.Errorf("failed to look up task owner: %w", err)
	default:
		return fmt.Errorf("task %d: %w", taskID, ErrNotOwned)
	}
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (model.Task, error) {
	var t model.Task
	var createdAt, updatedAt, completedAt timestamp
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Status,
		&createdAt, &updatedAt, &completedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	t.CompletedAt = completedAt.ptr()
	return t, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// ensure compile-time interface compliance
var _ TaskRepository = (*SQLTaskRepository)(nil)
