package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/GogaGogich123/cadet-corps-api/internal/db"
	"github.com/GogaGogich123/cadet-corps-api/internal/metrics"
	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

// ErrInvalidCredentials — единый ответ на любой неудачный вход.
// Не различаем "нет такого email" и "неверный пароль", чтобы не
// подсказывать перебором существующие учётки.
var ErrInvalidCredentials = errors.New("неверный email или пароль")

type Service struct {
	DB       *sql.DB
	Log      *zap.Logger
	Secret   []byte
	TokenTTL time.Duration
}

func NewService(database *sql.DB, log *zap.Logger, secret []byte, ttl time.Duration) *Service {
	return &Service{DB: database, Log: log, Secret: secret, TokenTTL: ttl}
}

// Session — результат удачного входа: токен и профиль для клиента.
type Session struct {
	Token string        `json:"token"`
	User  models.User   `json:"user"`
	Cadet *models.Cadet `json:"cadet,omitempty"`
}

// Login проверяет пару email/пароль и выпускает токен.
// Кадет без привязанной анкеты войти не может: его учётка считается
// недонастроенной, и пускать его в пустой кабинет смысла нет.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := db.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		metrics.Logins.WithLabelValues("fail").Inc()
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.Logins.WithLabelValues("fail").Inc()
		s.Log.Warn("неудачная попытка входа", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	claims := Claims{UID: user.ID, Role: string(user.Role), Name: user.Name}

	var cadet *models.Cadet
	if user.Role == models.RoleCadet {
		cadet, err = db.GetCadetByAuthUserID(ctx, s.DB, user.ID)
		if err != nil {
			return nil, err
		}
		if cadet == nil {
			metrics.Logins.WithLabelValues("fail").Inc()
			s.Log.Warn("учётка кадета без анкеты", zap.String("user_id", user.ID))
			return nil, ErrInvalidCredentials
		}
		claims.CadetID = cadet.ID
	}

	token, err := SignToken(s.Secret, claims, s.TokenTTL)
	if err != nil {
		return nil, err
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	s.Log.Info("вход выполнен",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return &Session{Token: token, User: *user, Cadet: cadet}, nil
}

// HashPassword — обёртка для единообразной стоимости хеша по всему коду.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
