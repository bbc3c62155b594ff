package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Rejection reasons reported by TokenManager.Verify. Each one matches
// common.ErrInvalidCredentials under errors.Is.
var (
	ErrTokenExpired   = fmt.Errorf("token expired: %w", common.ErrInvalidCredentials)
	ErrTokenSignature = fmt.Errorf("token signature invalid: %w", common.ErrInvalidCredentials)
	ErrTokenMalformed = fmt.Errorf("token malformed: %w", common.ErrInvalidCredentials)
	ErrTokenNoSubject = fmt.Errorf("token has no subject: %w", common.ErrInvalidCredentials)
)

// TokenManager issues and verifies HS256 access tokens carrying
// {sub, exp}. It holds no per-token state.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for subject that expires ttl from now.
func (m *TokenManager) Issue(subject string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(m.now().Add(m.ttl)),
	}

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Verify checks signature, algorithm and expiry and returns the subject.
func (m *TokenManager) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return "", ErrTokenSignature
	default:
		return "", ErrTokenMalformed
	}

	if claims.Subject == "" {
		return "", ErrTokenNoSubject
	}
	return claims.Subject, nil
}
