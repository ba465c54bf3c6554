package models

import "time"

type TaskDifficulty string

const (
	DifficultyEasy   TaskDifficulty = "easy"
	DifficultyMedium TaskDifficulty = "medium"
	DifficultyHard   TaskDifficulty = "hard"
)

// Order возвращает порядок сложности для сортировки.
func (d TaskDifficulty) Order() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	}
	return 0
}

type TaskStatus string

const (
	TaskActive   TaskStatus = "active"
	TaskInactive TaskStatus = "inactive"
)

type Task struct {
	ID          string         `db:"id" json:"id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Category    ScoreCategory  `db:"category" json:"category"`
	Points      int            `db:"points" json:"points"`
	Difficulty  TaskDifficulty `db:"difficulty" json:"difficulty"`
	Deadline    time.Time      `db:"deadline" json:"deadline"`
	Status      TaskStatus     `db:"status" json:"status"`
	CreatedBy   *string        `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// Статусы сдачи задания. available — вычисляемый статус "нет активной
// сдачи", в БД не хранится.
type SubmissionStatus string

const (
	SubmissionAvailable SubmissionStatus = "available"
	SubmissionTaken     SubmissionStatus = "taken"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionCompleted SubmissionStatus = "completed"
	SubmissionRejected  SubmissionStatus = "rejected"
)

type TaskSubmission struct {
	ID             string           `db:"id" json:"id"`
	TaskID         string           `db:"task_id" json:"task_id"`
	CadetID        string           `db:"cadet_id" json:"cadet_id"`
	Status         SubmissionStatus `db:"status" json:"status"`
	SubmissionText *string          `db:"submission_text" json:"submission_text,omitempty"`
	SubmittedAt    *time.Time       `db:"submitted_at" json:"submitted_at,omitempty"`
	ReviewedAt     *time.Time       `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ReviewedBy     *string          `db:"reviewed_by" json:"reviewed_by,omitempty"`
	Feedback       *string          `db:"feedback" json:"feedback,omitempty"`
	PointsAwarded  *int             `db:"points_awarded" json:"points_awarded,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`
}

// TaskWithStatus — задание глазами конкретного кадета.
type TaskWithStatus struct {
	Task
	UserStatus SubmissionStatus `json:"user_status"`
	Submission *TaskSubmission  `json:"submission,omitempty"`
}

// SubmissionWithDetails — сдача вместе с заданием и кадетом для админки.
type SubmissionWithDetails struct {
	TaskSubmission
	TaskTitle    string        `db:"task_title" json:"task_title"`
	TaskCategory ScoreCategory `db:"task_category" json:"task_category"`
	TaskPoints   int           `db:"task_points" json:"task_points"`
	CadetName    string        `db:"cadet_name" json:"cadet_name"`
	CadetPlatoon string        `db:"cadet_platoon" json:"cadet_platoon"`
	CadetSquad   int           `db:"cadet_squad" json:"cadet_squad"`
}
