package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/sunriselabs/sunrise/internal/domain"
)

// TokenService issues and verifies signed, time-limited session tokens.
// Tokens are stateless: there is no server-side revocation list.
type TokenService struct {
	secret  []byte
	expires time.Duration
}

// NewTokenService creates a token service signing with the given secret and
// embedding the given expiry window.
func NewTokenService(secret string, expires time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), expires: expires}
}

// Issue creates an HS256 token carrying subject (the user's email) and an
// expiry claim.
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expires)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns its subject claim. Expired,
// malformed and subject-less tokens all surface domain.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
