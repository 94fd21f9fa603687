package memory

import (
	"errors"
	"os"
	"testing"

	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/VitaminP8/linkery/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMemoryStorage_RegisterUser(t *testing.T) {
	storage := NewUserMemoryStorage()

	t.Run("Successful user registration", func(t *testing.T) {
		user, err := storage.RegisterUser("Alice", "alice@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("ErrDuplicateEmail on repeated email", func(t *testing.T) {
		_, err := storage.RegisterUser("Bob", "bob@example.com", "password123")
		require.NoError(t, err)

		// Вторая регистрация с тем же email должна вернуть ошибку
		_, err = storage.RegisterUser("Another Bob", "bob@example.com", "anotherpassword")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrDuplicateEmail))
	})

	t.Run("Password hash is never exposed", func(t *testing.T) {
		user, err := storage.RegisterUser("Carol", "carol@example.com", "secret")
		require.NoError(t, err)

		// в GraphQL-модели пользователя нет поля пароля, а в хранилище лежит только хэш
		got, err := storage.GetUserByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, user, got)
		assert.NotEqual(t, "secret", storage.passwords["carol@example.com"])
		assert.NotEmpty(t, storage.passwords["carol@example.com"])
	})
}

func TestUserMemoryStorage_LoginUser(t *testing.T) {
	storage := NewUserMemoryStorage()

	// Устанавливаем переменную окружения JWT_SECRET перед тестами
	originalJWTSecret := os.Getenv("JWT_SECRET")
	err := os.Setenv("JWT_SECRET", "test_secret_key_for_jwt")
	require.NoError(t, err)
	defer os.Setenv("JWT_SECRET", originalJWTSecret)

	registered, err := storage.RegisterUser("Login User", "login@example.com", "loginpassword123")
	require.NoError(t, err)

	t.Run("Successful login returns user and valid token", func(t *testing.T) {
		user, token, err := storage.LoginUser("login@example.com", "loginpassword123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, token)

		// токен должен приниматься нашим же сервисом токенов
		userID, err := auth.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "1", registered.ID)
		assert.Equal(t, uint(1), userID)
	})

	t.Run("ErrInvalidCredentials on wrong password", func(t *testing.T) {
		_, _, err := storage.LoginUser("login@example.com", "wrongpassword")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrInvalidCredentials))
	})

	t.Run("ErrNoSuchUser on unknown email", func(t *testing.T) {
		_, _, err := storage.LoginUser("nobody@example.com", "password")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNoSuchUser))
	})
}

func TestUserMemoryStorage_GetUserByID(t *testing.T) {
	storage := NewUserMemoryStorage()

	user, err := storage.RegisterUser("Alice", "alice@example.com", "password")
	require.NoError(t, err)

	t.Run("Successfully get user by ID", func(t *testing.T) {
		got, err := storage.GetUserByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := storage.GetUserByID("non-existent-id")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}
