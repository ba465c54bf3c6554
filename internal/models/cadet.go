package models

import "time"

type Cadet struct {
	ID         string     `db:"id" json:"id"`
	AuthUserID *string    `db:"auth_user_id" json:"auth_user_id,omitempty"`
	Name       string     `db:"name" json:"name"`
	Email      string     `db:"email" json:"email"`
	Phone      *string    `db:"phone" json:"phone,omitempty"`
	Platoon    string     `db:"platoon" json:"platoon"`
	Squad      int        `db:"squad" json:"squad"`
	AvatarURL  *string    `db:"avatar_url" json:"avatar_url,omitempty"`
	Rank       int        `db:"rank" json:"rank"`
	TotalScore int        `db:"total_score" json:"total_score"`
	JoinDate   *time.Time `db:"join_date" json:"join_date,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// CadetUpdate — частичное обновление анкеты кадета из админки.
// nil-поля не трогаем.
type CadetUpdate struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Platoon   *string `json:"platoon,omitempty"`
	Squad     *int    `json:"squad,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
