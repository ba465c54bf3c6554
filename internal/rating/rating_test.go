package rating

import (
	"testing"

	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

func testEntries() []Entry {
	cadets := []models.Cadet{
		{ID: "c1", Name: "Иванов Александр", Platoon: "10-1", Squad: 1, TotalScore: 240},
		{ID: "c2", Name: "Петров Михаил", Platoon: "10-1", Squad: 2, TotalScore: 300},
		{ID: "c3", Name: "Сидоров Дмитрий", Platoon: "9-2", Squad: 1, TotalScore: 150},
		{ID: "c4", Name: "Козлов Артём", Platoon: "9-2", Squad: 3, TotalScore: 0},
	}
	scores := []models.Score{
		{CadetID: "c1", StudyScore: 90, DisciplineScore: 80, EventsScore: 70},
		{CadetID: "c2", StudyScore: 85, DisciplineScore: 100, EventsScore: 115},
		{CadetID: "c3", StudyScore: 50, DisciplineScore: 50, EventsScore: 50},
		// c4 без записи scores — нули по категориям
	}
	return Join(cadets, scores)
}

func TestJoin_MissingScoresDefaultToZero(t *testing.T) {
	entries := testEntries()
	for _, e := range entries {
		if e.Cadet.ID == "c4" {
			if e.Scores.Study != 0 || e.Scores.Discipline != 0 || e.Scores.Events != 0 {
				t.Fatalf("кадет без scores должен получить нули, got %+v", e.Scores)
			}
			return
		}
	}
	t.Fatal("c4 не найден")
}

func TestApply_PlatoonFilter(t *testing.T) {
	entries := testEntries()

	got := Apply(entries, Filter{Platoon: "10-1"})
	if len(got) != 2 {
		t.Fatalf("взвод 10-1: ожидали 2, получили %d", len(got))
	}
	for _, r := range got {
		if r.Cadet.Platoon != "10-1" {
			t.Fatalf("чужой взвод в выборке: %s", r.Cadet.Platoon)
		}
	}

	all := Apply(entries, Filter{Platoon: All})
	if len(all) != len(entries) {
		t.Fatalf("фильтр all должен вернуть всех: %d != %d", len(all), len(entries))
	}
}

func TestApply_SquadFilter(t *testing.T) {
	got := Apply(testEntries(), Filter{Squad: "1"})
	if len(got) != 2 {
		t.Fatalf("отделение 1: ожидали 2, получили %d", len(got))
	}
}

func TestApply_SearchCaseInsensitive(t *testing.T) {
	got := Apply(testEntries(), Filter{Search: "иВаНоВ"})
	if len(got) != 1 || got[0].Cadet.ID != "c1" {
		t.Fatalf("поиск по подстроке без регистра сломан: %+v", got)
	}

	none := Apply(testEntries(), Filter{Search: "Нет такого"})
	if len(none) != 0 {
		t.Fatalf("лишние результаты поиска: %+v", none)
	}
}

func TestApply_SortByCategoryIgnoresTotal(t *testing.T) {
	// c1 со study=90 должен стоять выше c2 со study=85,
	// хотя total у c2 больше.
	got := Apply(testEntries(), Filter{Category: "study", Order: OrderDesc})
	if got[0].Cadet.ID != "c1" {
		t.Fatalf("сортировка по study: первым должен быть c1, получили %s", got[0].Cadet.ID)
	}
	if got[0].ViewRank != 1 || got[1].ViewRank != 2 {
		t.Fatalf("места должны идти с единицы: %d, %d", got[0].ViewRank, got[1].ViewRank)
	}
}

func TestApply_OrderReverses(t *testing.T) {
	desc := Apply(testEntries(), Filter{Category: CategoryTotal, Order: OrderDesc})
	asc := Apply(testEntries(), Filter{Category: CategoryTotal, Order: OrderAsc})

	if len(desc) != len(asc) {
		t.Fatal("длины выборок разошлись")
	}
	for i := range desc {
		if desc[i].Cadet.ID != asc[len(asc)-1-i].Cadet.ID {
			t.Fatalf("asc должен быть зеркалом desc на позиции %d", i)
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	entries := testEntries()
	firstBefore := entries[0].Cadet.ID
	_ = Apply(entries, Filter{Category: "events", Order: OrderAsc})
	if entries[0].Cadet.ID != firstBefore {
		t.Fatal("Apply изменил исходный срез")
	}
}

func TestApply_StableOnTies(t *testing.T) {
	cadets := []models.Cadet{
		{ID: "a", Name: "А", Platoon: "7-1", Squad: 1, TotalScore: 100},
		{ID: "b", Name: "Б", Platoon: "7-1", Squad: 1, TotalScore: 100},
		{ID: "c", Name: "В", Platoon: "7-1", Squad: 1, TotalScore: 100},
	}
	got := Apply(Join(cadets, nil), Filter{Category: CategoryTotal, Order: OrderDesc})
	for i, want := range []string{"a", "b", "c"} {
		if got[i].Cadet.ID != want {
			t.Fatalf("при равных баллах порядок должен сохраняться: позиция %d = %s", i, got[i].Cadet.ID)
		}
	}
}
