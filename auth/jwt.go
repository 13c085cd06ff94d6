package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mkobayashi-dev/portfolio-site-backend/errs"
)

const tokenLifetime = 168 * time.Hour

// TokenIssuer signs and verifies the session tokens that gate every
// mutation endpoint.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) TokenIssuer {
	return TokenIssuer{secret: []byte(secret)}
}

// Generate signs a session token carrying the user's identity.
func (t TokenIssuer) Generate(userID uuid.UUID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   email,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a session token and returns the user id it
// identifies. Expired or malformed tokens fail with a structured error.
func (t TokenIssuer) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errs.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errs.NewInvalidTokenError()
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errs.NewInvalidTokenError()
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, errs.NewInvalidTokenError()
	}

	return userID, nil
}
