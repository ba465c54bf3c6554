package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/GogaGogich123/cadet-corps-api/internal/ctxutil"
	"github.com/GogaGogich123/cadet-corps-api/internal/db"
)

func (s *Server) listNews(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	news, err := db.ListNews(ctx, s.db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"news": news})
}

func (s *Server) getMainNews(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	n, err := db.GetMainNews(ctx, s.db)
	if err != nil {
		return err
	}
	if n == nil {
		return fiber.NewError(fiber.StatusNotFound, "главная новость не назначена")
	}
	return c.JSON(n)
}

func (s *Server) listComments(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	newsID := c.Params("id")
	n, err := db.GetNewsByID(ctx, s.db, newsID)
	if err != nil {
		return err
	}
	if n == nil {
		return fiber.NewError(fiber.StatusNotFound, "новость не найдена")
	}
	comments, err := db.ListComments(ctx, s.db, newsID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"comments": comments})
}

type commentRequest struct {
	Text string `json:"text"`
}

func (s *Server) addComment(c *fiber.Ctx) error {
	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "некорректное тело запроса")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return fiber.NewError(fiber.StatusBadRequest, "пустой комментарий")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	newsID := c.Params("id")
	n, err := db.GetNewsByID(ctx, s.db, newsID)
	if err != nil {
		return err
	}
	if n == nil {
		return fiber.NewError(fiber.StatusNotFound, "новость не найдена")
	}

	comment, err := db.AddComment(ctx, s.db, newsID, claimsFrom(c).Name, text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// toggleLike — повторный лайк той же новости снимает предыдущий.
func (s *Server) toggleLike(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	newsID := c.Params("id")
	n, err := db.GetNewsByID(ctx, s.db, newsID)
	if err != nil {
		return err
	}
	if n == nil {
		return fiber.NewError(fiber.StatusNotFound, "новость не найдена")
	}

	liked, count, err := db.ToggleLike(ctx, s.db, newsID, claimsFrom(c).Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"liked": liked, "likes_count": count})
}
