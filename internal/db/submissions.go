package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

const submissionColumns = `id, task_id, cadet_id, status, submission_text, submitted_at, reviewed_at, reviewed_by, feedback, points_awarded, created_at, updated_at`

func scanSubmission(row interface{ Scan(...any) error }) (models.TaskSubmission, error) {
	var s models.TaskSubmission
	err := row.Scan(&s.ID, &s.TaskID, &s.CadetID, &s.Status, &s.SubmissionText, &s.SubmittedAt,
		&s.ReviewedAt, &s.ReviewedBy, &s.Feedback, &s.PointsAwarded, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// ListSubmissionsByCadet — все сдачи кадета, новые сверху.
func ListSubmissionsByCadet(ctx context.Context, database *sql.DB, cadetID string) ([]models.TaskSubmission, error) {
	rows, err := database.QueryContext(ctx, `
SELECT `+submissionColumns+` FROM task_submissions
WHERE cadet_id = $1 ORDER BY created_at DESC`, cadetID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.TaskSubmission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetLatestSubmission — последняя сдача пары (задание, кадет); nil, если их не было.
func GetLatestSubmission(ctx context.Context, database *sql.DB, taskID, cadetID string) (*models.TaskSubmission, error) {
	row := database.QueryRowContext(ctx, `
SELECT `+submissionColumns+` FROM task_submissions
WHERE task_id = $1 AND cadet_id = $2
ORDER BY created_at DESC LIMIT 1`, taskID, cadetID)
	s, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func GetSubmissionByID(ctx context.Context, database *sql.DB, id string) (*models.TaskSubmission, error) {
	row := database.QueryRowContext(ctx, `
SELECT `+submissionColumns+` FROM task_submissions WHERE id = $1`, id)
	s, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateTakenSubmission — кадет берёт задание. Частичный уникальный индекс
// не даст второй живой сдачи на пару.
func CreateTakenSubmission(ctx context.Context, database *sql.DB, taskID, cadetID string) (*models.TaskSubmission, error) {
	row := database.QueryRowContext(ctx, `
INSERT INTO task_submissions (task_id, cadet_id, status)
VALUES ($1, $2, 'taken')
RETURNING `+submissionColumns, taskID, cadetID)
	s, err := scanSubmission(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrActiveSubmissionExists
		}
		return nil, err
	}
	return &s, nil
}

// MarkSubmitted — taken → submitted. Любой другой исходный статус — ErrWrongState.
func MarkSubmitted(ctx context.Context, database *sql.DB, id, text string) error {
	res, err := database.ExecContext(ctx, `
UPDATE task_submissions
SET status = 'submitted', submission_text = $2, submitted_at = now(), updated_at = now()
WHERE id = $1 AND status = 'taken'`, id, text)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWrongState
	}
	return nil
}

// DeleteTaken — отказ от задания. Удаляем только строку в статусе taken:
// журнал баллов строка не несёт, история оценённых сдач не трогается.
func DeleteTaken(ctx context.Context, database *sql.DB, taskID, cadetID string) error {
	res, err := database.ExecContext(ctx, `
DELETE FROM task_submissions
WHERE task_id = $1 AND cadet_id = $2 AND status = 'taken'`, taskID, cadetID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWrongState
	}
	return nil
}

// ReviewSubmission — submitted → completed|rejected. При completed в той же
// транзакции пишем журнал и пересчитываем баллы кадета.
func ReviewSubmission(ctx context.Context, database *sql.DB, id string, decision models.SubmissionStatus, reviewerID string, pointsAwarded *int, feedback *string) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
UPDATE task_submissions
SET status = $2, reviewed_at = now(), reviewed_by = $3, feedback = $4, points_awarded = $5, updated_at = now()
WHERE id = $1 AND status = 'submitted'
RETURNING task_id, cadet_id`, id, decision, reviewerID, feedback, pointsAwarded)

	var taskID, cadetID string
	if err := row.Scan(&taskID, &cadetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWrongState
		}
		return err
	}

	if decision == models.SubmissionCompleted {
		task, err := getTaskTx(ctx, tx, taskID)
		if err != nil {
			return err
		}
		var histID string
		if err := tx.QueryRowContext(ctx, `
INSERT INTO score_history (cadet_id, category, points, description, awarded_by)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`, cadetID, task.Category, *pointsAwarded, "Выполнено задание: "+task.Title, reviewerID).Scan(&histID); err != nil {
			return err
		}
		col, err := categoryColumn(task.Category)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO scores (cadet_id, `+col+`)
VALUES ($1, $2)
ON CONFLICT (cadet_id) DO UPDATE SET `+col+` = scores.`+col+` + EXCLUDED.`+col+`, updated_at = now()`,
			cadetID, *pointsAwarded); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
UPDATE cadets SET
    total_score = (SELECT study_score + discipline_score + events_score FROM scores WHERE cadet_id = $1),
    updated_at = now()
WHERE id = $1`, cadetID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func getTaskTx(ctx context.Context, tx *sql.Tx, id string) (*models.Task, error) {
	row := tx.QueryRowContext(ctx, `
SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListSubmissionsWithDetails — очередь на проверку для админки.
// status == "" — без фильтра.
func ListSubmissionsWithDetails(ctx context.Context, database *sql.DB, status models.SubmissionStatus) ([]models.SubmissionWithDetails, error) {
	query := `
SELECT s.id, s.task_id, s.cadet_id, s.status, s.submission_text, s.submitted_at,
       s.reviewed_at, s.reviewed_by, s.feedback, s.points_awarded, s.created_at, s.updated_at,
       t.title, t.category, t.points,
       c.name, c.platoon, c.squad
FROM task_submissions s
JOIN tasks t ON t.id = s.task_id
JOIN cadets c ON c.id = s.cadet_id`
	args := []any{}
	if status != "" {
		query += ` WHERE s.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY s.created_at DESC`

	rows, err := database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.SubmissionWithDetails
	for rows.Next() {
		var d models.SubmissionWithDetails
		if err := rows.Scan(&d.ID, &d.TaskID, &d.CadetID, &d.Status, &d.SubmissionText, &d.SubmittedAt,
			&d.ReviewedAt, &d.ReviewedBy, &d.Feedback, &d.PointsAwarded, &d.CreatedAt, &d.UpdatedAt,
			&d.TaskTitle, &d.TaskCategory, &d.TaskPoints,
			&d.CadetName, &d.CadetPlatoon, &d.CadetSquad); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountCompletedTasks — сколько заданий кадет довёл до completed.
func CountCompletedTasks(ctx context.Context, database *sql.DB, cadetID string) (int, error) {
	var n int
	err := database.QueryRowContext(ctx, `
SELECT COUNT(*) FROM task_submissions WHERE cadet_id = $1 AND status = 'completed'`, cadetID).Scan(&n)
	return n, err
}
