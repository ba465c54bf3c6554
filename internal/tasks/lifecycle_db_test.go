//go:build testutil
// +build testutil

package tasks_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/GogaGogich123/cadet-corps-api/internal/db"
	"github.com/GogaGogich123/cadet-corps-api/internal/models"
	"github.com/GogaGogich123/cadet-corps-api/internal/tasks"
	"github.com/GogaGogich123/cadet-corps-api/internal/testutil/testdb"
)

func mustSeedUser(t *testing.T, database *sql.DB, name string, role models.Role) string {
	t.Helper()
	id, err := db.CreateUser(context.Background(), database, name+"@test.ru", "x", role, name)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func mustSeedCadet(t *testing.T, database *sql.DB, name, platoon string, squad int) string {
	t.Helper()
	id, err := db.CreateCadet(context.Background(), database, models.Cadet{
		Name: name, Email: name + "@test.ru", Platoon: platoon, Squad: squad,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func mustSeedTask(t *testing.T, database *sql.DB, title string, status models.TaskStatus) string {
	t.Helper()
	id, err := db.CreateTask(context.Background(), database, models.Task{
		Title:      title,
		Category:   models.CategoryStudy,
		Points:     50,
		Difficulty: models.DifficultyMedium,
		Deadline:   time.Now().Add(7 * 24 * time.Hour),
		Status:     status,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestLifecycle_FullFlow(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	ctx := context.Background()
	svc := tasks.NewService(h.DB, zap.NewNop())

	adminID := mustSeedUser(t, h.DB, "admin", models.RoleAdmin)
	cadetID := mustSeedCadet(t, h.DB, "Иванов Иван", "10-1", 1)
	taskID := mustSeedTask(t, h.DB, "Подтянуться 15 раз", models.TaskActive)

	// take
	sub, err := svc.Take(ctx, taskID, cadetID)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Status != models.SubmissionTaken {
		t.Fatalf("после take статус %s", sub.Status)
	}

	// повторный take блокируется
	if _, err := svc.Take(ctx, taskID, cadetID); !errors.Is(err, tasks.ErrAlreadyTaken) {
		t.Fatalf("повторное взятие должно отклоняться: %v", err)
	}

	// submit
	if err := svc.Submit(ctx, taskID, cadetID, "Выполнено, видео приложено"); err != nil {
		t.Fatal(err)
	}

	// abandon из submitted запрещён
	if err := svc.Abandon(ctx, taskID, cadetID); !errors.Is(err, tasks.ErrNotTaken) {
		t.Fatalf("abandon из submitted должен отклоняться: %v", err)
	}

	// submit из submitted запрещён
	if err := svc.Submit(ctx, taskID, cadetID, "ещё раз"); !errors.Is(err, tasks.ErrNotTaken) {
		t.Fatalf("повторный submit должен отклоняться: %v", err)
	}

	// review → completed с баллами
	points := 40
	latest, err := db.GetLatestSubmission(ctx, h.DB, taskID, cadetID)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Review(ctx, latest.ID, models.SubmissionCompleted, adminID, &points, nil); err != nil {
		t.Fatal(err)
	}

	// баллы начислены, total пересчитан
	cadet, err := db.GetCadetByID(ctx, h.DB, cadetID)
	if err != nil {
		t.Fatal(err)
	}
	if cadet.TotalScore != points {
		t.Fatalf("total_score = %d, ожидали %d", cadet.TotalScore, points)
	}
	score, err := db.GetScoreByCadet(ctx, h.DB, cadetID)
	if err != nil {
		t.Fatal(err)
	}
	if score == nil || score.StudyScore != points {
		t.Fatalf("срез баллов не обновился: %+v", score)
	}
	if score.Total() != cadet.TotalScore {
		t.Fatalf("сумма категорий %d разошлась с total_score %d", score.Total(), cadet.TotalScore)
	}
	hist, err := db.ListScoreHistory(ctx, h.DB, &cadetID)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 1 || hist[0].Points != points {
		t.Fatalf("в журнале должна быть одна запись на %d баллов: %+v", points, hist)
	}

	// повторное review по завершённой сдаче запрещено
	if err := svc.Review(ctx, latest.ID, models.SubmissionRejected, adminID, nil, nil); !errors.Is(err, tasks.ErrNotSubmitted) {
		t.Fatalf("review завершённой сдачи должен отклоняться: %v", err)
	}
}

func TestLifecycle_RetakeAfterReject(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	ctx := context.Background()
	svc := tasks.NewService(h.DB, zap.NewNop())

	adminID := mustSeedUser(t, h.DB, "admin", models.RoleAdmin)
	cadetID := mustSeedCadet(t, h.DB, "Петров Пётр", "9-2", 2)
	taskID := mustSeedTask(t, h.DB, "Доклад о форме одежды", models.TaskActive)

	if _, err := svc.Take(ctx, taskID, cadetID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Submit(ctx, taskID, cadetID, "вариант 1"); err != nil {
		t.Fatal(err)
	}
	latest, err := db.GetLatestSubmission(ctx, h.DB, taskID, cadetID)
	if err != nil {
		t.Fatal(err)
	}
	fb := "Доработать"
	if err := svc.Review(ctx, latest.ID, models.SubmissionRejected, adminID, nil, &fb); err != nil {
		t.Fatal(err)
	}

	// после reject задание снова берётся, старая строка остаётся историей
	if _, err := svc.Take(ctx, taskID, cadetID); err != nil {
		t.Fatalf("повторное взятие после reject должно проходить: %v", err)
	}
	subs, err := db.ListSubmissionsByCadet(ctx, h.DB, cadetID)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 2 {
		t.Fatalf("ожидали 2 строки сдач (история + новая), получили %d", len(subs))
	}

	// у кадета без начислений баллов нет
	cadet, _ := db.GetCadetByID(ctx, h.DB, cadetID)
	if cadet.TotalScore != 0 {
		t.Fatalf("reject не должен начислять баллы, total=%d", cadet.TotalScore)
	}
}

func TestLifecycle_AbandonDeletesRow(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	ctx := context.Background()
	svc := tasks.NewService(h.DB, zap.NewNop())

	cadetID := mustSeedCadet(t, h.DB, "Сидоров", "8-1", 3)
	taskID := mustSeedTask(t, h.DB, "Дежурство по роте", models.TaskActive)

	if _, err := svc.Take(ctx, taskID, cadetID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Abandon(ctx, taskID, cadetID); err != nil {
		t.Fatal(err)
	}
	latest, err := db.GetLatestSubmission(ctx, h.DB, taskID, cadetID)
	if err != nil {
		t.Fatal(err)
	}
	if latest != nil {
		t.Fatalf("после abandon строка должна исчезнуть: %+v", latest)
	}

	// и задание снова можно взять
	if _, err := svc.Take(ctx, taskID, cadetID); err != nil {
		t.Fatal(err)
	}
}

func TestListForCadet_HidesInactive(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	ctx := context.Background()
	svc := tasks.NewService(h.DB, zap.NewNop())

	cadetID := mustSeedCadet(t, h.DB, "Козлов", "11-1", 1)
	activeID := mustSeedTask(t, h.DB, "Активное", models.TaskActive)
	inactiveID := mustSeedTask(t, h.DB, "Неактивное", models.TaskInactive)

	// даже висящая сдача не вернёт неактивное задание в список
	if _, err := db.CreateTakenSubmission(ctx, h.DB, inactiveID, cadetID); err != nil {
		t.Fatal(err)
	}

	list, err := svc.ListForCadet(ctx, cadetID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != activeID {
		t.Fatalf("в списке должно быть только активное задание: %+v", list)
	}

	// неактивное и не берётся
	if _, err := svc.Take(ctx, inactiveID, cadetID); !errors.Is(err, tasks.ErrTaskInactive) {
		t.Fatalf("взятие неактивного должно отклоняться: %v", err)
	}
}
