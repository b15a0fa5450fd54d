package userservice

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager("test-secret", "recipehub", time.Hour)

	signed, expiry, err := tm.Issue(42)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	testCases := []struct {
		name    string
		token   string
		manager *TokenManager
		wantID  int
		wantErr error
	}{
		{
			name:    "valid token",
			token:   signed,
			manager: tm,
			wantID:  42,
		},
		{
			name:    "wrong secret",
			token:   signed,
			manager: NewTokenManager("other-secret", "recipehub", time.Hour),
			wantErr: ErrTokenInvalid,
		},
		{
			name:    "wrong issuer",
			token:   signed,
			manager: NewTokenManager("test-secret", "someone-else", time.Hour),
			wantErr: ErrTokenInvalid,
		},
		{
			name:    "garbage",
			token:   "not.a.jwt",
			manager: tm,
			wantErr: ErrTokenInvalid,
		},
		{
			name:    "empty",
			token:   "",
			manager: tm,
			wantErr: ErrTokenInvalid,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := tc.manager.Parse(tc.token)
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestTokenManagerExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", "recipehub", -time.Minute)

	signed, _, err := tm.Issue(7)
	assert.NoError(t, err)

	id, err := tm.Parse(signed)
	assert.Equal(t, ErrTokenExpired, err)
	assert.Zero(t, id)
}

func TestTokenManagerRejectsNone(t *testing.T) {
	tm := NewTokenManager("test-secret", "recipehub", time.Hour)

	claims := sessionClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "recipehub",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = tm.Parse(unsigned)
	assert.Equal(t, ErrTokenInvalid, err)
}
