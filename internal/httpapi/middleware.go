package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/GogaGogich123/cadet-corps-api/internal/auth"
	"github.com/GogaGogich123/cadet-corps-api/internal/ctxutil"
	"github.com/GogaGogich123/cadet-corps-api/internal/metrics"
	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

const claimsKey = "claims"

// withAuth разбирает Bearer-токен, если он есть, и кладёт claims в Locals.
// Отсутствие токена здесь не ошибка: публичные ручки работают и без него.
func (s *Server) withAuth() fiber.Handler {
	secret := []byte(s.cfg.JWTSecret)
	return func(c *fiber.Ctx) error {
		h := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(h, "Bearer ") {
			tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			if claims, err := auth.ParseToken(secret, tok); err == nil {
				c.Locals(claimsKey, claims)
				// контекст запроса несёт uid и роль: их читают логи и уровень БД
				ctx := ctxutil.WithUserID(c.UserContext(), claims.UID)
				ctx = ctxutil.WithRole(ctx, claims.Role)
				c.SetUserContext(ctx)
			}
		}
		return c.Next()
	}
}

func (s *Server) requireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claimsFrom(c) == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "требуется вход")
		}
		return c.Next()
	}
}

func (s *Server) requireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := claimsFrom(c)
		if claims == nil || claims.Role != string(models.RoleAdmin) {
			return fiber.NewError(fiber.StatusForbidden, "только для администратора")
		}
		return c.Next()
	}
}

// countRequests пишет счётчик запросов по зарегистрированному шаблону
// маршрута, а не по сырому пути, чтобы не раздувать кардинальность.
func (s *Server) countRequests() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		route := c.Route().Path
		metrics.CountRequest(c.Method(), route, c.Response().StatusCode())
		return err
	}
}

func claimsFrom(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsKey).(*auth.Claims)
	return claims
}

// cadetIDFrom — id анкеты кадета из токена; пустая строка у админа.
func cadetIDFrom(c *fiber.Ctx) string {
	if claims := claimsFrom(c); claims != nil {
		return claims.CadetID
	}
	return ""
}
