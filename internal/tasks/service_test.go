package tasks

import (
	"testing"
	"time"

	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

func TestDeriveUserStatus(t *testing.T) {
	if got := DeriveUserStatus(nil); got != models.SubmissionAvailable {
		t.Fatalf("без сдачи статус должен быть available, got %s", got)
	}
	for _, st := range []models.SubmissionStatus{
		models.SubmissionTaken,
		models.SubmissionSubmitted,
		models.SubmissionCompleted,
		models.SubmissionRejected,
	} {
		sub := &models.TaskSubmission{Status: st, CreatedAt: time.Now()}
		if got := DeriveUserStatus(sub); got != st {
			t.Fatalf("статус последней сдачи %s, получили %s", st, got)
		}
	}
}

func TestTakeable(t *testing.T) {
	cases := map[models.SubmissionStatus]bool{
		models.SubmissionAvailable: true,
		models.SubmissionRejected:  true,
		models.SubmissionTaken:     false,
		models.SubmissionSubmitted: false,
		models.SubmissionCompleted: false,
	}
	for st, want := range cases {
		if got := Takeable(st); got != want {
			t.Fatalf("Takeable(%s) = %v, ожидали %v", st, got, want)
		}
	}
}

func TestSortByDifficulty(t *testing.T) {
	mk := func(id string, d models.TaskDifficulty) models.TaskWithStatus {
		return models.TaskWithStatus{Task: models.Task{ID: id, Difficulty: d}}
	}
	list := []models.TaskWithStatus{
		mk("h1", models.DifficultyHard),
		mk("e1", models.DifficultyEasy),
		mk("m1", models.DifficultyMedium),
		mk("e2", models.DifficultyEasy),
	}
	SortByDifficulty(list)

	want := []string{"e1", "e2", "m1", "h1"} // e1 раньше e2: сортировка стабильная
	for i, id := range want {
		if list[i].ID != id {
			t.Fatalf("позиция %d: %s, ожидали %s", i, list[i].ID, id)
		}
	}
}

func TestDifficultyOrder(t *testing.T) {
	if models.DifficultyEasy.Order() >= models.DifficultyMedium.Order() ||
		models.DifficultyMedium.Order() >= models.DifficultyHard.Order() {
		t.Fatal("порядок сложностей должен расти от easy к hard")
	}
	if models.TaskDifficulty("???").Order() != 0 {
		t.Fatal("неизвестная сложность должна иметь нулевой порядок")
	}
}

func TestReview_Validation(t *testing.T) {
	s := &Service{} // до обращения к БД дело дойти не должно

	if err := s.Review(t.Context(), "sub", models.SubmissionTaken, "admin", nil, nil); err != ErrBadDecision {
		t.Fatalf("решение taken должно отклоняться: %v", err)
	}
	if err := s.Review(t.Context(), "sub", models.SubmissionCompleted, "admin", nil, nil); err != ErrPointsRequired {
		t.Fatalf("completed без баллов должен отклоняться: %v", err)
	}
	zero := 0
	if err := s.Review(t.Context(), "sub", models.SubmissionCompleted, "admin", &zero, nil); err != ErrPointsRequired {
		t.Fatalf("completed с нулём баллов должен отклоняться: %v", err)
	}
}

func TestSubmit_EmptyTextRejected(t *testing.T) {
	s := &Service{}
	if err := s.Submit(t.Context(), "task", "cadet", "   "); err != ErrEmptyText {
		t.Fatalf("пустой текст должен отклоняться до похода в БД: %v", err)
	}
}
