package rating

import (
	"sort"
	"strconv"
	"strings"

	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

// Категория сортировки рейтинга. total — по сохранённому total_score
// кадета, остальные — по срезу баллов.
const (
	CategoryTotal = "total"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	All = "all"
)

// Filter — состояние фильтров страницы рейтинга.
type Filter struct {
	Category string // total|study|discipline|events
	Platoon  string // all или метка взвода (7-1 ... 11-2)
	Squad    string // all или 1..3
	Search   string // подстрока имени, без учёта регистра
	Order    string // asc|desc
}

// CategoryScores — баллы кадета в виде, удобном для отображения.
type CategoryScores struct {
	Study      int `json:"study"`
	Discipline int `json:"discipline"`
	Events     int `json:"events"`
	Total      int `json:"total"`
}

// Entry — кадет, спаренный со своим срезом баллов.
type Entry struct {
	Cadet  models.Cadet   `json:"cadet"`
	Scores CategoryScores `json:"scores"`
}

// Ranked — строка рейтинга: место считается по позиции в отфильтрованном
// отсортированном списке, сохранённый cadet.Rank не используется.
type Ranked struct {
	Entry
	ViewRank int `json:"view_rank"`
}

// Join спаривает кадетов со срезами баллов. Кадет без записи scores
// получает нули по категориям; total всегда берём из сохранённого
// total_score.
func Join(cadets []models.Cadet, scores []models.Score) []Entry {
	byCadet := make(map[string]models.Score, len(scores))
	for _, s := range scores {
		byCadet[s.CadetID] = s
	}

	out := make([]Entry, 0, len(cadets))
	for _, c := range cadets {
		e := Entry{Cadet: c}
		if s, ok := byCadet[c.ID]; ok {
			e.Scores = CategoryScores{
				Study:      s.StudyScore,
				Discipline: s.DisciplineScore,
				Events:     s.EventsScore,
			}
		}
		e.Scores.Total = c.TotalScore
		out = append(out, e)
	}
	return out
}

// Apply — чистая функция представления: фильтр, поиск, устойчивая
// сортировка и нумерация мест с единицы. Исходные данные не меняются.
func Apply(entries []Entry, f Filter) []Ranked {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if search != "" && !strings.Contains(strings.ToLower(e.Cadet.Name), search) {
			continue
		}
		if f.Platoon != "" && f.Platoon != All && e.Cadet.Platoon != f.Platoon {
			continue
		}
		if f.Squad != "" && f.Squad != All && strconv.Itoa(e.Cadet.Squad) != f.Squad {
			continue
		}
		filtered = append(filtered, e)
	}

	desc := f.Order != OrderAsc
	// SliceStable: при равных баллах сохраняем исходный порядок,
	// чтобы результат был детерминированным.
	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := sortKey(filtered[i], f.Category), sortKey(filtered[j], f.Category)
		if desc {
			return a > b
		}
		return a < b
	})

	out := make([]Ranked, len(filtered))
	for i, e := range filtered {
		out[i] = Ranked{Entry: e, ViewRank: i + 1}
	}
	return out
}

func sortKey(e Entry, category string) int {
	switch category {
	case string(models.CategoryStudy):
		return e.Scores.Study
	case string(models.CategoryDiscipline):
		return e.Scores.Discipline
	case string(models.CategoryEvents):
		return e.Scores.Events
	default:
		return e.Scores.Total
	}
}
