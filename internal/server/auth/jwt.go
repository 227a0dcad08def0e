package auth

import (
	"errors"
	"time"

	"github.com/dzavadskis/minimart/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken issues a signed HS256 token asserting the given subject
// (username) for validityDuration. The signature covers both the subject and
// the expiration claim, so neither can be altered without invalidating the
// token. The token carries no password material.
func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// SubjectFromToken parses the token, verifies its signature with secretKey
// and checks expiration. On failure it returns one of the sentinel errors
// common.ErrTokenExpired, common.ErrBadSignature or common.ErrTokenMalformed,
// so callers can tell the kinds apart even when they surface a single
// unauthenticated response.
func SubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", common.ErrBadSignature
		default:
			return "", common.ErrTokenMalformed
		}
	}

	if claims.Subject == "" {
		return "", common.ErrTokenMalformed
	}

	return claims.Subject, nil
}
