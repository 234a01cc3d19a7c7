// Package auth covers identity: token issuance and parsing, password
// hashing, and the Redis-backed refresh-token allowlist.
package auth

import (
	"time"

	"github.com/chirpnet/chirp/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes the tokens this service issues. The numeric
// values are embedded in claims and must stay stable.
type TokenType int

const (
	AccessToken TokenType = iota
	RefreshToken
	EmailVerifyToken
	ForgotPasswordToken
)

// Claims carries the registered claims plus the user identity and the kind
// of token, so one secret can serve all token types without confusion.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string    `json:"user_id"`
	TokenType TokenType `json:"token_type"`
}

// GenerateToken signs a token of the given type for userID. The token id
// (jti) is a fresh uuid so refresh tokens can be allowlisted individually.
func GenerateToken(userID string, tokenType TokenType, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:    userID,
		TokenType: tokenType,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates the signature and expiry and checks that the token
// is of the expected type.
func ParseToken(tokenString string, tokenType TokenType, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, model.ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, model.ErrInvalidToken
	}

	return claims, nil
}
