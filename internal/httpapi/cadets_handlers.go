package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GogaGogich123/cadet-corps-api/internal/ctxutil"
	"github.com/GogaGogich123/cadet-corps-api/internal/db"
	"github.com/GogaGogich123/cadet-corps-api/internal/rating"
)

func (s *Server) listCadets(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	cadets, err := db.ListCadets(ctx, s.db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cadets": cadets})
}

// getCadet — профиль: анкета, срез баллов, значки и журнал начислений
// одним ответом, как того хочет страница профиля.
func (s *Server) getCadet(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	id := c.Params("id")
	cadet, err := db.GetCadetByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if cadet == nil {
		return fiber.NewError(fiber.StatusNotFound, "кадет не найден")
	}

	score, err := db.GetScoreByCadet(ctx, s.db, id)
	if err != nil {
		return err
	}
	scores := rating.CategoryScores{Total: cadet.TotalScore}
	if score != nil {
		scores.Study = score.StudyScore
		scores.Discipline = score.DisciplineScore
		scores.Events = score.EventsScore
	}

	achievements, err := db.ListCadetAchievements(ctx, s.db, id)
	if err != nil {
		return err
	}
	history, err := db.ListScoreHistory(ctx, s.db, &id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"cadet":        cadet,
		"scores":       scores,
		"achievements": achievements,
		"history":      history,
	})
}
