package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tasklist/core/internal/domain/entities"
	"github.com/tasklist/core/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, name, finish_prevision_date, finish_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.Name, task.FinishPrevisionDate, task.FinishDate,
	).Scan(&task.CreatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := `
		SELECT id, user_id, name, finish_prevision_date, finish_date, created_at
		FROM tasks
		WHERE id = $1`

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET name = $2, finish_prevision_date = $3, finish_date = $4
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		task.ID, task.Name, task.FinishPrevisionDate, task.FinishDate,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	query, args := buildListQuery(filter)

	tasks := []*entities.Task{}
	err := r.db.SelectContext(ctx, &tasks, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

// buildListQuery renders the typed filter into SQL. The owner predicate
// is always present; date bounds are inclusive.
func buildListQuery(filter ports.TaskFilter) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, user_id, name, finish_prevision_date, finish_date, created_at
		FROM tasks
		WHERE user_id = $1`)

	args := []interface{}{filter.UserID}

	if filter.PrevisionStart != nil {
		args = append(args, *filter.PrevisionStart)
		fmt.Fprintf(&sb, " AND finish_prevision_date >= $%d", len(args))
	}

	if filter.PrevisionEnd != nil {
		args = append(args, *filter.PrevisionEnd)
		fmt.Fprintf(&sb, " AND finish_prevision_date <= $%d", len(args))
	}

	switch filter.Status {
	case ports.StatusOpen:
		sb.WriteString(" AND finish_date IS NULL")
	case ports.StatusFinished:
		sb.WriteString(" AND finish_date IS NOT NULL")
	}

	sb.WriteString(" ORDER BY created_at DESC")

	return sb.String(), args
}
