package export

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/GogaGogich123/cadet-corps-api/internal/db"
	"github.com/GogaGogich123/cadet-corps-api/internal/rating"
)

var categoryTitles = map[string]string{
	"study":      "Учёба",
	"discipline": "Дисциплина",
	"events":     "Мероприятия",
}

// BuildRatingWorkbook собирает книгу из двух листов: текущий рейтинг
// и полный журнал начислений.
func BuildRatingWorkbook(ctx context.Context, database *sql.DB, loc *time.Location) (*Workbook, error) {
	cadets, err := db.ListCadets(ctx, database)
	if err != nil {
		return nil, err
	}
	scores, err := db.ListScores(ctx, database)
	if err != nil {
		return nil, err
	}
	entries := rating.Join(cadets, scores)
	ranked := rating.Apply(entries, rating.Filter{})

	ratingRows := make([][]string, 0, len(ranked))
	for _, e := range ranked {
		ratingRows = append(ratingRows, []string{
			strconv.Itoa(e.ViewRank),
			e.Cadet.Name,
			e.Cadet.Platoon,
			strconv.Itoa(e.Cadet.Squad),
			strconv.Itoa(e.Scores.Study),
			strconv.Itoa(e.Scores.Discipline),
			strconv.Itoa(e.Scores.Events),
			strconv.Itoa(e.Scores.Total),
		})
	}

	history, err := db.ListScoreHistory(ctx, database, nil)
	if err != nil {
		return nil, err
	}
	historyRows := make([][]string, 0, len(history))
	for _, h := range history {
		cat := categoryTitles[string(h.Category)]
		if cat == "" {
			cat = string(h.Category)
		}
		historyRows = append(historyRows, []string{
			h.CreatedAt.In(loc).Format("02.01.2006 15:04"),
			h.CadetName,
			h.CadetPlatoon,
			cat,
			strconv.Itoa(h.Points),
			h.Description,
		})
	}

	return NewWorkbook([]SheetSpec{
		{
			Title:  "Рейтинг",
			Header: []string{"Место", "ФИО", "Взвод", "Отделение", "Учёба", "Дисциплина", "Мероприятия", "Итого"},
			Rows:   ratingRows,
		},
		{
			Title:  "Журнал баллов",
			Header: []string{"Дата", "ФИО", "Взвод", "Категория", "Баллы", "Основание"},
			Rows:   historyRows,
		},
	})
}
