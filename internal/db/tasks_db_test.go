//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/GogaGogich123/cadet-corps-api/internal/db"
	"github.com/GogaGogich123/cadet-corps-api/internal/models"
	"github.com/GogaGogich123/cadet-corps-api/internal/testutil/testdb"
)

func TestTasks_ActiveAndAllLists(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	ctx := context.Background()
	deadline := time.Now().Add(7 * 24 * time.Hour)

	activeID, err := db.CreateTask(ctx, h.DB, models.Task{
		Title: "Доклад о подвиге", Description: "Подготовить доклад",
		Category: models.CategoryStudy, Points: 20,
		Difficulty: models.DifficultyEasy, Deadline: deadline,
		Status: models.TaskActive,
	})
	if err != nil {
		t.Fatal(err)
	}
	inactiveID, err := db.CreateTask(ctx, h.DB, models.Task{
		Title: "Старое задание", Description: "Снято с доски",
		Category: models.CategoryEvents, Points: 10,
		Difficulty: models.DifficultyMedium, Deadline: deadline,
		Status: models.TaskInactive,
	})
	if err != nil {
		t.Fatal(err)
	}

	// кадетам видно только активное
	active, err := db.ListActiveTasks(ctx, h.DB)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].ID != activeID {
		t.Fatalf("активные задания: %+v", active)
	}

	// админка видит всё, включая снятые
	all, err := db.ListAllTasks(ctx, h.DB)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("ожидали 2 задания, получили %d", len(all))
	}
	found := map[string]bool{}
	for _, task := range all {
		found[task.ID] = true
	}
	if !found[activeID] || !found[inactiveID] {
		t.Fatalf("в полном списке нет обоих заданий: %+v", all)
	}
}

func TestAchievements_CreateAndList(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	ctx := context.Background()
	icon := "star"

	id, err := db.CreateAchievement(ctx, h.DB, models.Achievement{
		Title:       "За смотр строя",
		Description: "Лучшее отделение смотра",
		Category:    "discipline",
		Icon:        &icon,
	})
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("пустой id созданного значка")
	}

	list, err := db.ListAchievements(ctx, h.DB)
	if err != nil {
		t.Fatal(err)
	}
	var got *models.Achievement
	for i := range list {
		if list[i].ID == id {
			got = &list[i]
		}
	}
	if got == nil {
		t.Fatalf("созданный значок не найден в списке: %+v", list)
	}
	if got.Title != "За смотр строя" || got.Icon == nil || *got.Icon != "star" {
		t.Fatalf("значок сохранён с искажениями: %+v", got)
	}
}
