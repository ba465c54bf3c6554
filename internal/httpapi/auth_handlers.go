package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/GogaGogich123/cadet-corps-api/internal/auth"
	"github.com/GogaGogich123/cadet-corps-api/internal/notify"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "некорректное тело запроса")
	}

	sess, err := s.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return err
	}

	s.notify.Add(sess.User.ID, notify.KindSuccess, "Вход выполнен", "Добро пожаловать, "+sess.User.Name+"!", 0)
	return c.JSON(sess)
}

// logout — токены не отзываются, клиент просто забывает свой. Снимаем
// только висящие уведомления.
func (s *Server) logout(c *fiber.Ctx) error {
	claims := claimsFrom(c)
	for _, n := range s.notify.Active(claims.UID) {
		s.notify.Remove(n.ID)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) listNotifications(c *fiber.Ctx) error {
	claims := claimsFrom(c)
	return c.JSON(fiber.Map{"notifications": s.notify.Active(claims.UID)})
}

func (s *Server) dismissNotification(c *fiber.Ctx) error {
	claims := claimsFrom(c)
	id := c.Params("id")
	// чужое уведомление снять нельзя
	for _, n := range s.notify.Active(claims.UID) {
		if n.ID == id {
			s.notify.Remove(id)
			break
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
