package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeTokenReadsClaims(t *testing.T) {
	issued := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "a@b.com",
		"role": "USER",
		"iat":  issued.Unix(),
		"exp":  issued.Add(time.Hour).Unix(),
	}).SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	info, err := DescribeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", info.Subject)
	assert.Equal(t, "USER", info.Role)
	assert.True(t, info.IssuedAt.Equal(issued))
	assert.True(t, info.ExpiresAt.Equal(issued.Add(time.Hour)))
}

func TestDescribeTokenRejectsOpaqueTokens(t *testing.T) {
	_, err := DescribeToken("")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = DescribeToken("t1")
	assert.Error(t, err)
}
