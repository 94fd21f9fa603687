package auth

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	originalSecret := os.Getenv("JWT_SECRET")
	os.Setenv("JWT_SECRET", "test_jwt_secret")
	defer os.Setenv("JWT_SECRET", originalSecret)

	t.Run("Round-trip: issued token parses back to the same user ID", func(t *testing.T) {
		token, err := IssueToken(123)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		userID, err := ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(123), userID)
	})

	t.Run("Issued token looks like a JWT", func(t *testing.T) {
		token, err := IssueToken(7)
		require.NoError(t, err)

		// JWT токен должен содержать две точки, разделяющие три части
		parts := 0
		for _, char := range token {
			if char == '.' {
				parts++
			}
		}
		assert.Equal(t, 2, parts)
	})

	t.Run("Error on token signed with a different secret", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": float64(123),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte("wrong_secret"))
		require.NoError(t, err)

		_, err = ParseToken(tokenString)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrInvalidToken))
	})

	t.Run("Error on expired token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": float64(123),
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte("test_jwt_secret"))
		require.NoError(t, err)

		_, err = ParseToken(tokenString)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrInvalidToken))
	})

	t.Run("Error on malformed token", func(t *testing.T) {
		_, err := ParseToken("not-a-jwt")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrInvalidToken))
	})

	t.Run("Error on token without user_id claim", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte("test_jwt_secret"))
		require.NoError(t, err)

		_, err = ParseToken(tokenString)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrInvalidToken))
	})
}

func TestIssueTokenWithoutSecret(t *testing.T) {
	originalSecret := os.Getenv("JWT_SECRET")
	os.Unsetenv("JWT_SECRET")
	defer os.Setenv("JWT_SECRET", originalSecret)

	_, err := IssueToken(1)
	assert.Error(t, err)
}
