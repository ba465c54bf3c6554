package tasks

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/GogaGogich123/cadet-corps-api/internal/ctxutil"
	"github.com/GogaGogich123/cadet-corps-api/internal/db"
	"github.com/GogaGogich123/cadet-corps-api/internal/metrics"
	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

var (
	ErrTaskNotFound   = errors.New("задание не найдено")
	ErrTaskInactive   = errors.New("задание недоступно")
	ErrAlreadyTaken   = errors.New("задание уже взято")
	ErrNotTaken       = errors.New("задание не находится в работе")
	ErrNotSubmitted   = errors.New("сдача не находится на проверке")
	ErrEmptyText      = errors.New("текст сдачи не может быть пустым")
	ErrBadDecision    = errors.New("решение должно быть completed или rejected")
	ErrPointsRequired = errors.New("для completed обязательны начисляемые баллы")
)

// Service — жизненный цикл задания для кадета и проверка для админа:
// available → taken → submitted → completed|rejected.
type Service struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewService(database *sql.DB, log *zap.Logger) *Service {
	return &Service{DB: database, Log: log}
}

// DeriveUserStatus — статус задания глазами кадета по последней сдаче.
// Нет сдачи — available. Отклонённая сдача показывается как rejected,
// но задание остаётся доступным для повторного взятия (см. Takeable).
func DeriveUserStatus(latest *models.TaskSubmission) models.SubmissionStatus {
	if latest == nil {
		return models.SubmissionAvailable
	}
	return latest.Status
}

// Takeable — можно ли взять задание при данном статусе.
func Takeable(status models.SubmissionStatus) bool {
	return status == models.SubmissionAvailable || status == models.SubmissionRejected
}

// SortByDifficulty — от лёгких к сложным, порядок внутри одной сложности
// сохраняется.
func SortByDifficulty(list []models.TaskWithStatus) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Difficulty.Order() < list[j].Difficulty.Order()
	})
}

// ListForCadet — активные задания, размеченные статусом кадета.
// Неактивные задания в список не попадают, даже если по ним висят
// старые сдачи.
func (s *Service) ListForCadet(ctx context.Context, cadetID string) ([]models.TaskWithStatus, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	active, err := db.ListActiveTasks(dbCtx, s.DB)
	if err != nil {
		return nil, err
	}
	subs, err := db.ListSubmissionsByCadet(dbCtx, s.DB, cadetID)
	if err != nil {
		return nil, err
	}

	// Список отсортирован по убыванию created_at: первая встреченная
	// сдача по заданию и есть последняя.
	latest := make(map[string]*models.TaskSubmission, len(subs))
	for i := range subs {
		if _, ok := latest[subs[i].TaskID]; !ok {
			latest[subs[i].TaskID] = &subs[i]
		}
	}

	out := make([]models.TaskWithStatus, 0, len(active))
	for _, t := range active {
		sub := latest[t.ID]
		out = append(out, models.TaskWithStatus{
			Task:       t,
			UserStatus: DeriveUserStatus(sub),
			Submission: sub,
		})
	}
	return out, nil
}

// Take — кадет берёт задание. Гард на единственную живую сдачу двойной:
// проверка статуса здесь и частичный уникальный индекс в БД.
func (s *Service) Take(ctx context.Context, taskID, cadetID string) (*models.TaskSubmission, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	task, err := db.GetTaskByID(dbCtx, s.DB, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if task.Status != models.TaskActive {
		return nil, ErrTaskInactive
	}

	latest, err := db.GetLatestSubmission(dbCtx, s.DB, taskID, cadetID)
	if err != nil {
		return nil, err
	}
	if !Takeable(DeriveUserStatus(latest)) {
		return nil, ErrAlreadyTaken
	}

	sub, err := db.CreateTakenSubmission(dbCtx, s.DB, taskID, cadetID)
	if err != nil {
		if errors.Is(err, db.ErrActiveSubmissionExists) {
			return nil, ErrAlreadyTaken
		}
		return nil, err
	}
	metrics.SubmissionTransitions.WithLabelValues(string(models.SubmissionTaken)).Inc()
	s.Log.Info("задание взято", zap.String("task_id", taskID), zap.String("cadet_id", cadetID))
	return sub, nil
}

// Submit — сдача выполненного задания. Только из taken и только с текстом.
func (s *Service) Submit(ctx context.Context, taskID, cadetID, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	latest, err := db.GetLatestSubmission(dbCtx, s.DB, taskID, cadetID)
	if err != nil {
		return err
	}
	if latest == nil || latest.Status != models.SubmissionTaken {
		return ErrNotTaken
	}

	if err := db.MarkSubmitted(dbCtx, s.DB, latest.ID, text); err != nil {
		if errors.Is(err, db.ErrWrongState) {
			return ErrNotTaken
		}
		return err
	}
	metrics.SubmissionTransitions.WithLabelValues(string(models.SubmissionSubmitted)).Inc()
	return nil
}

// Abandon — отказ от взятого задания: строка удаляется, задание снова
// available для этого кадета. Допустим только из taken.
func (s *Service) Abandon(ctx context.Context, taskID, cadetID string) error {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	if err := db.DeleteTaken(dbCtx, s.DB, taskID, cadetID); err != nil {
		if errors.Is(err, db.ErrWrongState) {
			return ErrNotTaken
		}
		return err
	}
	metrics.SubmissionTransitions.WithLabelValues(string(models.SubmissionAvailable)).Inc()
	return nil
}

// Review — решение админа по сдаче на проверке. При completed баллы
// обязательны: журнал и пересчёт рейтинга выполняются в одной транзакции
// на стороне БД.
func (s *Service) Review(ctx context.Context, submissionID string, decision models.SubmissionStatus, reviewerID string, pointsAwarded *int, feedback *string) error {
	if decision != models.SubmissionCompleted && decision != models.SubmissionRejected {
		return ErrBadDecision
	}
	if decision == models.SubmissionCompleted && (pointsAwarded == nil || *pointsAwarded <= 0) {
		return ErrPointsRequired
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	if err := db.ReviewSubmission(dbCtx, s.DB, submissionID, decision, reviewerID, pointsAwarded, feedback); err != nil {
		if errors.Is(err, db.ErrWrongState) {
			return ErrNotSubmitted
		}
		return err
	}
	metrics.SubmissionTransitions.WithLabelValues(string(decision)).Inc()
	s.Log.Info("сдача проверена",
		zap.String("submission_id", submissionID),
		zap.String("decision", string(decision)))
	return nil
}
