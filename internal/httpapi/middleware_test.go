package httpapi

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/GogaGogich123/cadet-corps-api/internal/auth"
	"github.com/GogaGogich123/cadet-corps-api/internal/config"
	"github.com/GogaGogich123/cadet-corps-api/internal/ctxutil"
	"github.com/GogaGogich123/cadet-corps-api/internal/db"
	"github.com/GogaGogich123/cadet-corps-api/internal/tasks"
)

func testServer() *Server {
	return &Server{
		cfg: &config.Config{JWTSecret: "test-secret"},
		log: zap.NewNop(),
	}
}

func testApp(s *Server) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: s.errorHandler})
	app.Use(s.withAuth())
	app.Get("/open", func(c *fiber.Ctx) error {
		claims := claimsFrom(c)
		if claims == nil {
			return c.SendString("guest")
		}
		return c.SendString(claims.Name)
	})
	app.Get("/secured", s.requireAuth(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/whoami", s.requireAuth(), func(c *fiber.Ctx) error {
		uid, _ := ctxutil.UserID(c.UserContext())
		role, _ := ctxutil.Role(c.UserContext())
		return c.SendString(uid + ":" + role)
	})
	app.Get("/admin", s.requireAuth(), s.requireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func signFor(t *testing.T, role, name string) string {
	t.Helper()
	tok, err := auth.SignToken([]byte("test-secret"), auth.Claims{UID: "u1", Role: role, Name: name}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func doReq(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	s := testServer()
	app := testApp(s)

	t.Run("гость проходит на публичную ручку", func(t *testing.T) {
		resp := doReq(t, app, "/open", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("код %d", resp.StatusCode)
		}
	})

	t.Run("защищённая ручка без токена", func(t *testing.T) {
		resp := doReq(t, app, "/secured", "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("код %d", resp.StatusCode)
		}
	})

	t.Run("битый токен не пускают", func(t *testing.T) {
		resp := doReq(t, app, "/secured", "garbage")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("код %d", resp.StatusCode)
		}
	})

	t.Run("кадет проходит с токеном", func(t *testing.T) {
		resp := doReq(t, app, "/secured", signFor(t, "cadet", "Иванов"))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("код %d", resp.StatusCode)
		}
	})

	t.Run("контекст запроса несёт uid и роль", func(t *testing.T) {
		resp := doReq(t, app, "/whoami", signFor(t, "cadet", "Иванов"))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("код %d", resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		if got := string(body); got != "u1:cadet" {
			t.Fatalf("тело %q, ожидали u1:cadet", got)
		}
	})

	t.Run("кадету закрыта админка", func(t *testing.T) {
		resp := doReq(t, app, "/admin", signFor(t, "cadet", "Иванов"))
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("код %d", resp.StatusCode)
		}
	})

	t.Run("админ проходит в админку", func(t *testing.T) {
		resp := doReq(t, app, "/admin", signFor(t, "admin", "Штаб"))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("код %d", resp.StatusCode)
		}
	})
}

func TestTaskErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{tasks.ErrTaskNotFound, http.StatusNotFound},
		{tasks.ErrEmptyText, http.StatusBadRequest},
		{tasks.ErrBadDecision, http.StatusBadRequest},
		{tasks.ErrPointsRequired, http.StatusBadRequest},
		{tasks.ErrTaskInactive, http.StatusConflict},
		{tasks.ErrAlreadyTaken, http.StatusConflict},
		{tasks.ErrNotTaken, http.StatusConflict},
		{tasks.ErrNotSubmitted, http.StatusConflict},
		{db.ErrNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		var fe *fiber.Error
		if !errors.As(taskError(tc.err), &fe) {
			t.Fatalf("%v: ожидали fiber.Error", tc.err)
		}
		if fe.Code != tc.code {
			t.Errorf("%v: код %d, ожидали %d", tc.err, fe.Code, tc.code)
		}
	}

	// незнакомая ошибка уходит наверх как есть
	plain := errors.New("boom")
	if got := taskError(plain); got != plain {
		t.Fatalf("чужая ошибка изменилась: %v", got)
	}
}
