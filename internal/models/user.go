package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleCadet Role = "cadet"
)

// User — учётная запись для входа. PasswordHash наружу не отдаём никогда.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	Name         string    `db:"name" json:"name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
