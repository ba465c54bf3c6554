package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims — полезная нагрузка токена. Для кадета сразу кладём привязку
// к анкете, чтобы обработчикам не ходить в базу на каждый запрос.
type Claims struct {
	UID     string `json:"uid"`
	Role    string `json:"role"`
	Name    string `json:"name"`
	CadetID string `json:"cadet_id,omitempty"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("недействительный токен")

// SignToken выпускает HS256-токен со сроком жизни ttl.
func SignToken(secret []byte, c Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(secret)
}

// ParseToken проверяет подпись и срок действия.
func ParseToken(secret []byte, tok string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tok, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, ErrInvalidToken
}
