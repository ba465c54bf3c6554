package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// Валидация PATCH /api/admin/news до похода в БД.
func TestAdminPatchNews_Validation(t *testing.T) {
	s := testServer()
	app := s.App()

	patch := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPatch, "/api/admin/news/n1", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signFor(t, "admin", "Штаб"))
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	t.Run("снятие главной запрещено", func(t *testing.T) {
		if resp := patch(`{"is_main": false}`); resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("код %d", resp.StatusCode)
		}
	})

	t.Run("пустой заголовок отклоняется", func(t *testing.T) {
		if resp := patch(`{"title": "  "}`); resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("код %d", resp.StatusCode)
		}
	})

	t.Run("пустой текст отклоняется", func(t *testing.T) {
		if resp := patch(`{"content": ""}`); resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("код %d", resp.StatusCode)
		}
	})
}
