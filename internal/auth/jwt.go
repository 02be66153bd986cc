package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of a session token. Validity is decided
// solely by signature and expiry; tokens are never stored or revoked
// server-side, so a token stays usable for its full lifetime even if the
// account changes afterwards.
const TokenTTL = time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed session payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
}

// GenerateToken issues an HS256 token for the given user, expiring TokenTTL
// from now.
func GenerateToken(userID int64, email string, secret []byte) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID: userID,
		Email:  email,
	})
	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the decoded claims.
// Any failure (bad signature, malformed payload, expired) comes back as an
// error.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
