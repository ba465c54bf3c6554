//go:build testutil
// +build testutil

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/GogaGogich123/cadet-corps-api/internal/auth"
	"github.com/GogaGogich123/cadet-corps-api/internal/db"
	"github.com/GogaGogich123/cadet-corps-api/internal/models"
	"github.com/GogaGogich123/cadet-corps-api/internal/testutil/testdb"
)

func TestLogin(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	ctx := context.Background()
	svc := auth.NewService(h.DB, zap.NewNop(), []byte("s"), time.Hour)

	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateUser(ctx, h.DB, "admin@nkkk.ru", hash, models.RoleAdmin, "Администратор"); err != nil {
		t.Fatal(err)
	}
	orphanID, err := db.CreateUser(ctx, h.DB, "orphan@nkkk.ru", hash, models.RoleCadet, "Без анкеты")
	if err != nil {
		t.Fatal(err)
	}
	_ = orphanID
	cadetUserID, err := db.CreateUser(ctx, h.DB, "ivanov@nkkk.ru", hash, models.RoleCadet, "Иванов Иван")
	if err != nil {
		t.Fatal(err)
	}
	cadetID, err := db.CreateCadet(ctx, h.DB, models.Cadet{
		AuthUserID: &cadetUserID, Name: "Иванов Иван", Email: "ivanov@nkkk.ru", Platoon: "10-1", Squad: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("админ входит", func(t *testing.T) {
		sess, err := svc.Login(ctx, "admin@nkkk.ru", "secret123")
		if err != nil {
			t.Fatal(err)
		}
		if sess.User.Role != models.RoleAdmin || sess.Cadet != nil {
			t.Fatalf("неожиданная сессия: %+v", sess)
		}
		claims, err := auth.ParseToken([]byte("s"), sess.Token)
		if err != nil {
			t.Fatal(err)
		}
		if claims.Role != "admin" || claims.CadetID != "" {
			t.Fatalf("claims: %+v", claims)
		}
	})

	t.Run("регистр email не важен", func(t *testing.T) {
		if _, err := svc.Login(ctx, "  Admin@NKKK.ru ", "secret123"); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("кадет получает привязку анкеты", func(t *testing.T) {
		sess, err := svc.Login(ctx, "ivanov@nkkk.ru", "secret123")
		if err != nil {
			t.Fatal(err)
		}
		if sess.Cadet == nil || sess.Cadet.ID != cadetID {
			t.Fatalf("ожидали анкету %s: %+v", cadetID, sess.Cadet)
		}
		claims, _ := auth.ParseToken([]byte("s"), sess.Token)
		if claims.CadetID != cadetID {
			t.Fatalf("в claims нет анкеты: %+v", claims)
		}
	})

	t.Run("неверный пароль", func(t *testing.T) {
		if _, err := svc.Login(ctx, "admin@nkkk.ru", "wrong"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Fatalf("ожидали отказ: %v", err)
		}
	})

	t.Run("неизвестный email", func(t *testing.T) {
		if _, err := svc.Login(ctx, "nobody@nkkk.ru", "secret123"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Fatalf("ожидали отказ: %v", err)
		}
	})

	t.Run("кадет без анкеты не входит", func(t *testing.T) {
		if _, err := svc.Login(ctx, "orphan@nkkk.ru", "secret123"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Fatalf("ожидали отказ: %v", err)
		}
	})
}
