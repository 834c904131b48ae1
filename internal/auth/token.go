package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails verification for any reason:
// bad signature, malformed payload or elapsed expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload carried inside an issued token.
type Claims struct {
	jwt.RegisteredClaims
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
}

// IssueToken signs a token carrying the username and password hash, expiring
// ttl from now.
func IssueToken(username, passwordHash, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Username:     username,
		PasswordHash: passwordHash,
	})

	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry of a token and returns its
// claims. Every failure mode collapses into ErrInvalidToken.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
