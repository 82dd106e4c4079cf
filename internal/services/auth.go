package services

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/studymind/studymind-backend/internal/platform/logger"
)

// TokenVerifier extracts the authenticated subject from a bearer token.
// Token issuance belongs to the identity provider; this side only verifies.
type TokenVerifier interface {
	SubjectFromToken(tokenString string) (string, error)
}

type tokenVerifier struct {
	log    *logger.Logger
	secret []byte
}

func NewTokenVerifier(baseLog *logger.Logger, secret string) TokenVerifier {
	serviceLog := baseLog.With("service", "TokenVerifier")
	return &tokenVerifier{log: serviceLog, secret: []byte(secret)}
}

func (tv *tokenVerifier) SubjectFromToken(tokenString string) (string, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", fmt.Errorf("empty token")
	}
	token, err := jwt.Parse(
		tokenString,
		func(t *jwt.Token) (interface{}, error) { return tv.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected claims type")
	}
	sub, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}
