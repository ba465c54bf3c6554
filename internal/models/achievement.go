package models

import "time"

// Achievement — значок, который вручает админ.
type Achievement struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	Icon        *string   `db:"icon" json:"icon,omitempty"`
	Color       *string   `db:"color" json:"color,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Типы правил автозначков.
const (
	RequirementTotalScore    = "total_score"
	RequirementCategoryScore = "category_score"
	RequirementTasksDone     = "tasks_completed"
)

// AutoAchievement — значок, который выдаётся автоматически по правилу.
type AutoAchievement struct {
	ID                  string    `db:"id" json:"id"`
	Title               string    `db:"title" json:"title"`
	Description         string    `db:"description" json:"description"`
	Icon                *string   `db:"icon" json:"icon,omitempty"`
	Color               *string   `db:"color" json:"color,omitempty"`
	RequirementType     string    `db:"requirement_type" json:"requirement_type"`
	RequirementValue    int       `db:"requirement_value" json:"requirement_value"`
	RequirementCategory *string   `db:"requirement_category" json:"requirement_category,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

// CadetAchievement связывает кадета ровно с одним из двух видов значков.
type CadetAchievement struct {
	ID                string    `db:"id" json:"id"`
	CadetID           string    `db:"cadet_id" json:"cadet_id"`
	AchievementID     *string   `db:"achievement_id" json:"achievement_id,omitempty"`
	AutoAchievementID *string   `db:"auto_achievement_id" json:"auto_achievement_id,omitempty"`
	AwardedDate       time.Time `db:"awarded_date" json:"awarded_date"`
	AwardedBy         *string   `db:"awarded_by" json:"awarded_by,omitempty"`

	// Заполняются запросом при выборке значков кадета.
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description"`
	Icon        *string `db:"icon" json:"icon,omitempty"`
	Color       *string `db:"color" json:"color,omitempty"`
}
