package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("op1", "admin@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "op1", claims["sub"])
	assert.Equal(t, "admin@example.com", claims["email"])
	assert.Equal(t, "admin_auth", claims["type"])
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("op1", "admin@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "other-secret")
	assert.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := GenerateSessionToken("op1", "admin@example.com", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, testSecret)
	assert.Error(t, err)
}

func TestSessionTokenRejectsWrongType(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  "op1",
		"type": "profile",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateULIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateULID()
		require.Len(t, id, 26)
		assert.False(t, seen[id], "duplicate ulid %s", id)
		seen[id] = true
	}
}
