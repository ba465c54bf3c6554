package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GogaGogich123/cadet-corps-api/internal/ctxutil"
	"github.com/GogaGogich123/cadet-corps-api/internal/db"
	"github.com/GogaGogich123/cadet-corps-api/internal/rating"
)

// getRating — страница рейтинга: фильтры и сортировка в query-параметрах,
// место считается по позиции после фильтрации.
func (s *Server) getRating(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	cadets, err := db.ListCadets(ctx, s.db)
	if err != nil {
		return err
	}
	scores, err := db.ListScores(ctx, s.db)
	if err != nil {
		return err
	}

	f := rating.Filter{
		Category: c.Query("category", rating.CategoryTotal),
		Platoon:  c.Query("platoon", rating.All),
		Squad:    c.Query("squad", rating.All),
		Search:   c.Query("search"),
		Order:    c.Query("order", rating.OrderDesc),
	}
	ranked := rating.Apply(rating.Join(cadets, scores), f)
	return c.JSON(fiber.Map{"entries": ranked, "total": len(ranked)})
}
