package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Service issues and verifies the signed identity token carried in the
// session cookie.
type Service struct {
	hmac []byte
	ttl  time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{hmac: []byte(secret), ttl: ttl}
}

type Claims struct {
	Sub string `json:"sub"`
	jwt.RegisteredClaims
}

// NewUserID mints an opaque 8-character user identifier.
func NewUserID() string {
	return uuid.NewString()[:8]
}

func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Sub: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "classpoll",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.hmac)
}

func (s *Service) Parse(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.hmac, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	c, ok := token.Claims.(*Claims)
	if !ok || c.Sub == "" {
		return "", errors.New("invalid session claims")
	}
	return c.Sub, nil
}

// TTL is the cookie lifetime matching issued tokens.
func (s *Service) TTL() time.Duration { return s.ttl }
