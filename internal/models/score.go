package models

import "time"

// Категории баллов. Совпадают с категориями заданий.
type ScoreCategory string

const (
	CategoryStudy      ScoreCategory = "study"
	CategoryDiscipline ScoreCategory = "discipline"
	CategoryEvents     ScoreCategory = "events"
)

func (c ScoreCategory) Valid() bool {
	switch c {
	case CategoryStudy, CategoryDiscipline, CategoryEvents:
		return true
	}
	return false
}

// Score — срез баллов кадета по категориям, 1:1 с кадетом.
type Score struct {
	ID              string    `db:"id" json:"id"`
	CadetID         string    `db:"cadet_id" json:"cadet_id"`
	StudyScore      int       `db:"study_score" json:"study_score"`
	DisciplineScore int       `db:"discipline_score" json:"discipline_score"`
	EventsScore     int       `db:"events_score" json:"events_score"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

func (s Score) Total() int {
	return s.StudyScore + s.DisciplineScore + s.EventsScore
}

// ScoreHistory — журнал начислений. Только вставка, записи не меняются
// и не удаляются.
type ScoreHistory struct {
	ID          string        `db:"id" json:"id"`
	CadetID     string        `db:"cadet_id" json:"cadet_id"`
	Category    ScoreCategory `db:"category" json:"category"`
	Points      int           `db:"points" json:"points"`
	Description string        `db:"description" json:"description"`
	AwardedBy   *string       `db:"awarded_by" json:"awarded_by,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

// ScoreHistoryWithCadet — запись журнала вместе с данными кадета для админки.
type ScoreHistoryWithCadet struct {
	ScoreHistory
	CadetName    string `db:"cadet_name" json:"cadet_name"`
	CadetPlatoon string `db:"cadet_platoon" json:"cadet_platoon"`
	CadetSquad   int    `db:"cadet_squad" json:"cadet_squad"`
}
