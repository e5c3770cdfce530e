package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPasetoMaker(t *testing.T) {
	maker, err := NewPasetoMaker(strings.Repeat("a", 32))
	require.NoError(t, err)

	userID := int64(42)
	duration := time.Minute

	issuedAt := time.Now()
	expiredAt := issuedAt.Add(duration)

	tokenStr, payload, err := maker.CreateToken(userID, duration)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)
	require.NotNil(t, payload)

	payload, err = maker.VerifyToken(tokenStr)
	require.NoError(t, err)
	require.NotNil(t, payload)

	require.NotZero(t, payload.ID)
	require.Equal(t, userID, payload.UserID)
	require.WithinDuration(t, issuedAt, payload.IssuedAt, time.Second)
	require.WithinDuration(t, expiredAt, payload.ExpiredAt, time.Second)
}

func TestExpiredPasetoToken(t *testing.T) {
	maker, err := NewPasetoMaker(strings.Repeat("a", 32))
	require.NoError(t, err)

	tokenStr, payload, err := maker.CreateToken(42, -time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)
	require.NotNil(t, payload)

	payload, err = maker.VerifyToken(tokenStr)
	require.ErrorIs(t, err, ErrExpiredToken)
	require.Nil(t, payload)
}

func TestInvalidPasetoToken(t *testing.T) {
	maker, err := NewPasetoMaker(strings.Repeat("a", 32))
	require.NoError(t, err)

	payload, err := maker.VerifyToken("v2.local.not-a-real-token")
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, payload)
}

func TestInvalidKeySize(t *testing.T) {
	maker, err := NewPasetoMaker("short")
	require.Error(t, err)
	require.Nil(t, maker)
}
