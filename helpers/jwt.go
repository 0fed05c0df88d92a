package helpers

import (
	"errors"
	"strings"
	"time"

	"github.com/cristalhq/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "https://forum.gravitalia.com"

// ErrInvalidTime is returned when a token is expired or not yet valid
var ErrInvalidTime = errors.New("invalid time")

// CreateToken allows to create JWT tokens
// whose subject is the user ID
func CreateToken(secret string, id string) (string, error) {
	signer, err := jwt.NewSignerHS(jwt.HS512, []byte(secret))
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()

	token, err := jwt.NewBuilder(signer).Build(&jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.AddDate(0, 0, 7)),
		Issuer:    issuer,
	})
	if err != nil {
		return "", err
	}

	return token.String(), nil
}

// CheckToken verifies the token and returns its subject
func CheckToken(secret string, token string) (string, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))

	verifier, err := jwt.NewVerifierHS(jwt.HS512, []byte(secret))
	if err != nil {
		return "", err
	}

	var claims jwt.RegisteredClaims
	if err = jwt.ParseClaims([]byte(token), verifier, &claims); err != nil {
		return "", err
	}

	if !claims.IsValidAt(time.Now()) {
		return "", ErrInvalidTime
	}

	if !claims.IsIssuer(issuer) {
		return "", errors.New("invalid issuer")
	}

	return claims.Subject, nil
}
