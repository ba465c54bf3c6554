package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

const cadetColumns = `id, auth_user_id, name, email, phone, platoon, squad, avatar_url, rank, total_score, join_date, created_at, updated_at`

func scanCadet(row interface{ Scan(...any) error }) (models.Cadet, error) {
	var c models.Cadet
	err := row.Scan(&c.ID, &c.AuthUserID, &c.Name, &c.Email, &c.Phone, &c.Platoon, &c.Squad,
		&c.AvatarURL, &c.Rank, &c.TotalScore, &c.JoinDate, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListCadets — все кадеты по убыванию сохранённого total_score.
func ListCadets(ctx context.Context, database *sql.DB) ([]models.Cadet, error) {
	rows, err := database.QueryContext(ctx, `
SELECT `+cadetColumns+` FROM cadets ORDER BY total_score DESC, name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Cadet
	for rows.Next() {
		c, err := scanCadet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func GetCadetByID(ctx context.Context, database *sql.DB, id string) (*models.Cadet, error) {
	row := database.QueryRowContext(ctx, `
SELECT `+cadetColumns+` FROM cadets WHERE id = $1`, id)
	c, err := scanCadet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func GetCadetByAuthUserID(ctx context.Context, database *sql.DB, authUserID string) (*models.Cadet, error) {
	row := database.QueryRowContext(ctx, `
SELECT `+cadetColumns+` FROM cadets WHERE auth_user_id = $1`, authUserID)
	c, err := scanCadet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCadet — частичное обновление анкеты, nil-поля не трогаем.
func UpdateCadet(ctx context.Context, database *sql.DB, id string, upd models.CadetUpdate) error {
	res, err := database.ExecContext(ctx, `
UPDATE cadets SET
    name = COALESCE($2, name),
    email = COALESCE($3, email),
    phone = COALESCE($4, phone),
    platoon = COALESCE($5, platoon),
    squad = COALESCE($6, squad),
    avatar_url = COALESCE($7, avatar_url),
    updated_at = now()
WHERE id = $1`, id, upd.Name, upd.Email, upd.Phone, upd.Platoon, upd.Squad, upd.AvatarURL)
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

func CreateCadet(ctx context.Context, database *sql.DB, c models.Cadet) (string, error) {
	var id string
	err := database.QueryRowContext(ctx, `
INSERT INTO cadets (auth_user_id, name, email, phone, platoon, squad, avatar_url, join_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, CURRENT_DATE))
RETURNING id`, c.AuthUserID, c.Name, c.Email, c.Phone, c.Platoon, c.Squad, c.AvatarURL, c.JoinDate).Scan(&id)
	return id, err
}
