package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

const taskColumns = `id, title, description, category, points, difficulty, deadline, status, created_by, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.Points, &t.Difficulty,
		&t.Deadline, &t.Status, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// ListActiveTasks — задания, видимые кадетам. Неактивные не отдаём никогда.
func ListActiveTasks(ctx context.Context, database *sql.DB) ([]models.Task, error) {
	rows, err := database.QueryContext(ctx, `
SELECT `+taskColumns+` FROM tasks WHERE status = 'active' ORDER BY deadline`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListAllTasks — для админки, включая неактивные.
func ListAllTasks(ctx context.Context, database *sql.DB) ([]models.Task, error) {
	rows, err := database.QueryContext(ctx, `
SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func GetTaskByID(ctx context.Context, database *sql.DB, id string) (*models.Task, error) {
	row := database.QueryRowContext(ctx, `
SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func CreateTask(ctx context.Context, database *sql.DB, t models.Task) (string, error) {
	var id string
	err := database.QueryRowContext(ctx, `
INSERT INTO tasks (title, description, category, points, difficulty, deadline, status, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`, t.Title, t.Description, t.Category, t.Points, t.Difficulty, t.Deadline, t.Status, t.CreatedBy).Scan(&id)
	return id, err
}

func SetTaskStatus(ctx context.Context, database *sql.DB, id string, status models.TaskStatus) error {
	res, err := database.ExecContext(ctx, `
UPDATE tasks SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
