package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

func GetUserByEmail(ctx context.Context, database *sql.DB, email string) (*models.User, error) {
	row := database.QueryRowContext(ctx, `
SELECT id, email, password_hash, role, name, created_at, updated_at
FROM users WHERE lower(email) = lower($1)`, email)

	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByID(ctx context.Context, database *sql.DB, id string) (*models.User, error) {
	row := database.QueryRowContext(ctx, `
SELECT id, email, password_hash, role, name, created_at, updated_at
FROM users WHERE id = $1`, id)

	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateUser(ctx context.Context, database *sql.DB, email, passwordHash string, role models.Role, name string) (string, error) {
	var id string
	err := database.QueryRowContext(ctx, `
INSERT INTO users (email, password_hash, role, name)
VALUES ($1, $2, $3, $4)
RETURNING id`, email, passwordHash, role, name).Scan(&id)
	return id, err
}
