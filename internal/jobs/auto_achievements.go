package jobs

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/GogaGogich123/cadet-corps-api/internal/ctxutil"
	"github.com/GogaGogich123/cadet-corps-api/internal/db"
	"github.com/GogaGogich123/cadet-corps-api/internal/models"
	"github.com/GogaGogich123/cadet-corps-api/internal/observability"
)

// GrantAutoAchievements сверяет всех кадетов с правилами автозначков и
// выдаёт те, что заработаны. Выдача идемпотентна (ON CONFLICT DO NOTHING
// на уровне базы), так что джобу можно гонять сколько угодно раз.
func GrantAutoAchievements(ctx context.Context, database *sql.DB, log *zap.Logger) error {
	if op, ok := ctxutil.Op(ctx); ok {
		log = log.With(zap.String("job", op))
	}
	rules, err := db.ListAutoAchievements(ctx, database)
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}
	cadets, err := db.ListCadets(ctx, database)
	if err != nil {
		return err
	}

	for _, c := range cadets {
		score, err := db.GetScoreByCadet(ctx, database, c.ID)
		if err != nil {
			observability.CaptureErr(err)
			continue
		}
		completed := -1 // считаем лениво, не каждому правилу нужно
		for _, rule := range rules {
			earned, err := ruleEarned(ctx, database, rule, c, score, &completed)
			if err != nil {
				observability.CaptureErr(err)
				continue
			}
			if !earned {
				continue
			}
			granted, err := db.GrantAutoAchievement(ctx, database, c.ID, rule.ID)
			if err != nil {
				observability.CaptureErr(err)
				continue
			}
			if granted {
				log.Info("выдан автозначок",
					zap.String("cadet_id", c.ID),
					zap.String("title", rule.Title))
			}
		}
	}
	return nil
}

func ruleEarned(ctx context.Context, database *sql.DB, rule models.AutoAchievement, c models.Cadet, score *models.Score, completed *int) (bool, error) {
	switch rule.RequirementType {
	case models.RequirementTotalScore:
		// срез по категориям первичен; денормализованный total_score —
		// запасной вариант для кадета без строки баллов
		total := c.TotalScore
		if score != nil {
			total = score.Total()
		}
		return total >= rule.RequirementValue, nil

	case models.RequirementCategoryScore:
		if score == nil || rule.RequirementCategory == nil {
			return false, nil
		}
		var v int
		switch models.ScoreCategory(*rule.RequirementCategory) {
		case models.CategoryStudy:
			v = score.StudyScore
		case models.CategoryDiscipline:
			v = score.DisciplineScore
		case models.CategoryEvents:
			v = score.EventsScore
		}
		return v >= rule.RequirementValue, nil

	case models.RequirementTasksDone:
		if *completed < 0 {
			n, err := db.CountCompletedTasks(ctx, database, c.ID)
			if err != nil {
				return false, err
			}
			*completed = n
		}
		return *completed >= rule.RequirementValue, nil
	}
	return false, nil
}
