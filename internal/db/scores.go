package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

// GetScoreByCadet возвращает nil без ошибки, если записи нет —
// вызывающая сторона трактует это как нули по всем категориям.
func GetScoreByCadet(ctx context.Context, database *sql.DB, cadetID string) (*models.Score, error) {
	row := database.QueryRowContext(ctx, `
SELECT id, cadet_id, study_score, discipline_score, events_score, created_at, updated_at
FROM scores WHERE cadet_id = $1`, cadetID)

	var s models.Score
	err := row.Scan(&s.ID, &s.CadetID, &s.StudyScore, &s.DisciplineScore, &s.EventsScore, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func ListScores(ctx context.Context, database *sql.DB) ([]models.Score, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, cadet_id, study_score, discipline_score, events_score, created_at, updated_at
FROM scores`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Score
	for rows.Next() {
		var s models.Score
		if err := rows.Scan(&s.ID, &s.CadetID, &s.StudyScore, &s.DisciplineScore, &s.EventsScore, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// categoryColumn — имя колонки по категории. Белый список, в SQL ничего
// пользовательского не подставляем.
func categoryColumn(cat models.ScoreCategory) (string, error) {
	switch cat {
	case models.CategoryStudy:
		return "study_score", nil
	case models.CategoryDiscipline:
		return "discipline_score", nil
	case models.CategoryEvents:
		return "events_score", nil
	}
	return "", fmt.Errorf("неизвестная категория %q", cat)
}

// AddScoreEntry — единственный путь изменения баллов: запись в журнал,
// дельта в scores и пересчёт total_score у кадета в одной транзакции.
func AddScoreEntry(ctx context.Context, database *sql.DB, entry models.ScoreHistory) (string, error) {
	col, err := categoryColumn(entry.Category)
	if err != nil {
		return "", err
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var id string
	if err := tx.QueryRowContext(ctx, `
INSERT INTO score_history (cadet_id, category, points, description, awarded_by)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`, entry.CadetID, entry.Category, entry.Points, entry.Description, entry.AwardedBy).Scan(&id); err != nil {
		return "", err
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO scores (cadet_id, `+col+`)
VALUES ($1, $2)
ON CONFLICT (cadet_id) DO UPDATE SET `+col+` = scores.`+col+` + EXCLUDED.`+col+`, updated_at = now()`,
		entry.CadetID, entry.Points); err != nil {
		return "", err
	}

	// total_score всегда равен сумме категорий — считаем здесь же.
	if _, err := tx.ExecContext(ctx, `
UPDATE cadets SET
    total_score = (SELECT study_score + discipline_score + events_score FROM scores WHERE cadet_id = $1),
    updated_at = now()
WHERE id = $1`, entry.CadetID); err != nil {
		return "", err
	}

	return id, tx.Commit()
}

// ListScoreHistory — журнал, при cadetID == nil по всем кадетам.
func ListScoreHistory(ctx context.Context, database *sql.DB, cadetID *string) ([]models.ScoreHistoryWithCadet, error) {
	query := `
SELECT h.id, h.cadet_id, h.category, h.points, h.description, h.awarded_by, h.created_at,
       c.name, c.platoon, c.squad
FROM score_history h
JOIN cadets c ON c.id = h.cadet_id`
	args := []any{}
	if cadetID != nil {
		query += ` WHERE h.cadet_id = $1`
		args = append(args, *cadetID)
	}
	query += ` ORDER BY h.created_at DESC`

	rows, err := database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.ScoreHistoryWithCadet
	for rows.Next() {
		var h models.ScoreHistoryWithCadet
		if err := rows.Scan(&h.ID, &h.CadetID, &h.Category, &h.Points, &h.Description, &h.AwardedBy, &h.CreatedAt,
			&h.CadetName, &h.CadetPlatoon, &h.CadetSquad); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
