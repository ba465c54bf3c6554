package db

import (
	"context"
	"database/sql"

	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

func ListAchievements(ctx context.Context, database *sql.DB) ([]models.Achievement, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, title, description, category, icon, color, created_at
FROM achievements ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Category, &a.Icon, &a.Color, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func ListAutoAchievements(ctx context.Context, database *sql.DB) ([]models.AutoAchievement, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, title, description, icon, color, requirement_type, requirement_value, requirement_category, created_at
FROM auto_achievements ORDER BY requirement_value`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.AutoAchievement
	for rows.Next() {
		var a models.AutoAchievement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Icon, &a.Color,
			&a.RequirementType, &a.RequirementValue, &a.RequirementCategory, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListCadetAchievements — значки кадета обоих видов одним списком.
func ListCadetAchievements(ctx context.Context, database *sql.DB, cadetID string) ([]models.CadetAchievement, error) {
	rows, err := database.QueryContext(ctx, `
SELECT ca.id, ca.cadet_id, ca.achievement_id, ca.auto_achievement_id, ca.awarded_date, ca.awarded_by,
       COALESCE(a.title, aa.title), COALESCE(a.description, aa.description),
       COALESCE(a.icon, aa.icon), COALESCE(a.color, aa.color)
FROM cadet_achievements ca
LEFT JOIN achievements a ON a.id = ca.achievement_id
LEFT JOIN auto_achievements aa ON aa.id = ca.auto_achievement_id
WHERE ca.cadet_id = $1
ORDER BY ca.awarded_date DESC`, cadetID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.CadetAchievement
	for rows.Next() {
		var ca models.CadetAchievement
		if err := rows.Scan(&ca.ID, &ca.CadetID, &ca.AchievementID, &ca.AutoAchievementID,
			&ca.AwardedDate, &ca.AwardedBy, &ca.Title, &ca.Description, &ca.Icon, &ca.Color); err != nil {
			return nil, err
		}
		out = append(out, ca)
	}
	return out, rows.Err()
}

// AwardAchievement — ручная выдача значка админом. Повторная выдача того же
// значка молча игнорируется.
func AwardAchievement(ctx context.Context, database *sql.DB, cadetID, achievementID string, awardedBy *string) error {
	_, err := database.ExecContext(ctx, `
INSERT INTO cadet_achievements (cadet_id, achievement_id, awarded_by)
VALUES ($1, $2, $3)
ON CONFLICT DO NOTHING`, cadetID, achievementID, awardedBy)
	return err
}

// GrantAutoAchievement возвращает true, если значок выдан впервые.
func GrantAutoAchievement(ctx context.Context, database *sql.DB, cadetID, autoAchievementID string) (bool, error) {
	res, err := database.ExecContext(ctx, `
INSERT INTO cadet_achievements (cadet_id, auto_achievement_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`, cadetID, autoAchievementID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func CreateAchievement(ctx context.Context, database *sql.DB, a models.Achievement) (string, error) {
	var id string
	err := database.QueryRowContext(ctx, `
INSERT INTO achievements (title, description, category, icon, color)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`, a.Title, a.Description, a.Category, a.Icon, a.Color).Scan(&id)
	return id, err
}
