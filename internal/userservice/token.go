package userservice

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

type sessionClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// TTL is the lifetime of every issued token.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue signs an HS256 session token for the user and returns it with its expiry.
func (tm *TokenManager) Issue(userID int) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(tm.ttl)

	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("could not sign token: %w", err)
	}

	return signed, expiry, nil
}

// Parse verifies the token and returns the user id it was issued for.
func (tm *TokenManager) Parse(token string) (int, error) {
	claims := &sessionClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		default:
			return 0, ErrTokenInvalid
		}
	}

	if claims.UserID <= 0 || claims.Issuer != tm.issuer {
		return 0, ErrTokenInvalid
	}

	return claims.UserID, nil
}
