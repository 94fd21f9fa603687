package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/VitaminP8/linkery/graph/model"
	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/VitaminP8/linkery/internal/auth"
	"github.com/VitaminP8/linkery/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Сохраняем оригинальное соединение (если оно есть)
	oldDB := GetDB()

	// Создаем SQLite в памяти
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err, "Failed to connect to in-memory SQLite")

	// Включаем foreign keys в SQLite
	db.Exec("PRAGMA foreign_keys = ON")
	// Отключаем логирование запросов для тестов
	db.LogMode(false)
	// Выполняем миграцию схемы базы данных
	err = db.AutoMigrate(&models.User{}, &models.Link{}, &models.Vote{}).Error
	require.NoError(t, err, "Failed to migrate database schema")
	// Устанавливаем SQLite в качестве глобальной DB
	InitDBWithConnection(db)

	return oldDB
}

func teardownTestDB(db *gorm.DB) {
	// Восстанавливаем оригинальное соединение
	InitDBWithConnection(db)
}

func userContext(userID uint) context.Context {
	return auth.WithUserID(context.Background(), userID)
}

func intPtr(v int) *int                { return &v }
func strPtr(v string) *string          { return &v }
func sortPtr(v model.Sort) *model.Sort { return &v }

func TestLinkPostgresStorage_CreateLink(t *testing.T) {
	storage := NewLinkPostgresStorage()

	t.Run("Successful link creation", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		ctx := userContext(123)

		link, err := storage.CreateLink(ctx, "https://example.com", "Example")
		require.NoError(t, err)
		assert.NotEmpty(t, link.ID)
		assert.NotEmpty(t, link.CreatedAt)
		assert.Equal(t, "https://example.com", link.URL)
		assert.Equal(t, "Example", link.Description)
		require.NotNil(t, link.PostedByID)
		assert.Equal(t, "123", *link.PostedByID)
	})

	t.Run("Error when no authorization", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		link, err := storage.CreateLink(context.Background(), "https://example.com", "Example")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotAuthenticated))
		assert.Nil(t, link)
	})
}

func TestLinkPostgresStorage_GetLinkByID(t *testing.T) {
	storage := NewLinkPostgresStorage()

	oldDB := setupTestDB(t)
	defer teardownTestDB(oldDB)

	link, err := storage.CreateLink(userContext(1), "https://example.com", "Example")
	require.NoError(t, err)

	t.Run("Successfully get link by ID", func(t *testing.T) {
		got, err := storage.GetLinkByID(link.ID)
		require.NoError(t, err)
		assert.Equal(t, link.ID, got.ID)
		assert.Equal(t, link.URL, got.URL)
		assert.Equal(t, link.Description, got.Description)
	})

	t.Run("ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := storage.GetLinkByID("9999")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}

func TestLinkPostgresStorage_ListAndCount(t *testing.T) {
	storage := NewLinkPostgresStorage()

	oldDB := setupTestDB(t)
	defer teardownTestDB(oldDB)

	ctx := userContext(1)

	_, err := storage.CreateLink(ctx, "https://howtographql.com", "Fullstack tutorial")
	require.NoError(t, err)
	_, err = storage.CreateLink(ctx, "https://golang.org", "graphql servers in Go")
	require.NoError(t, err)
	_, err = storage.CreateLink(ctx, "https://news.ycombinator.com", "Hacker news")
	require.NoError(t, err)

	t.Run("No filter returns everything", func(t *testing.T) {
		links, err := storage.ListLinks(nil, nil, nil, nil)
		require.NoError(t, err)
		assert.Len(t, links, 3)
	})

	t.Run("Filter matches description OR url", func(t *testing.T) {
		links, err := storage.ListLinks(strPtr("graphql"), nil, nil, nil)
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "https://howtographql.com", links[0].URL)
		assert.Equal(t, "graphql servers in Go", links[1].Description)
	})

	t.Run("Skip and first window the result", func(t *testing.T) {
		links, err := storage.ListLinks(nil, intPtr(1), intPtr(1), nil)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://golang.org", links[0].URL)
	})

	t.Run("Order by description descending", func(t *testing.T) {
		orderBy := &model.LinkOrderByInput{Description: sortPtr(model.SortDesc)}
		links, err := storage.ListLinks(nil, nil, nil, orderBy)
		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, "graphql servers in Go", links[0].Description)
	})

	t.Run("Count ignores pagination", func(t *testing.T) {
		count, err := storage.CountLinks(strPtr("graphql"))
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		links, err := storage.ListLinks(strPtr("graphql"), intPtr(1), intPtr(1), nil)
		require.NoError(t, err)
		assert.Len(t, links, 1)
		assert.Equal(t, 2, count)
	})
}

func TestLinkPostgresStorage_UpdateLink(t *testing.T) {
	storage := NewLinkPostgresStorage()

	oldDB := setupTestDB(t)
	defer teardownTestDB(oldDB)

	ctx := userContext(1)

	link, err := storage.CreateLink(ctx, "https://example.com", "Example")
	require.NoError(t, err)

	t.Run("Successfully update link", func(t *testing.T) {
		updated, err := storage.UpdateLink(ctx, link.ID, "https://example.org", "Updated")
		require.NoError(t, err)
		assert.Equal(t, "https://example.org", updated.URL)
		assert.Equal(t, "Updated", updated.Description)
	})

	t.Run("Another authenticated user can update", func(t *testing.T) {
		// проверяется только наличие авторизации, не владение
		_, err := storage.UpdateLink(userContext(999), link.ID, "https://other.org", "Other")
		require.NoError(t, err)
	})

	t.Run("Error when no authorization", func(t *testing.T) {
		_, err := storage.UpdateLink(context.Background(), link.ID, "https://x.org", "x")
		assert.True(t, errors.Is(err, apperr.ErrNotAuthenticated))
	})

	t.Run("ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := storage.UpdateLink(ctx, "9999", "https://x.org", "x")
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}

func TestLinkPostgresStorage_DeleteLink(t *testing.T) {
	storage := NewLinkPostgresStorage()

	oldDB := setupTestDB(t)
	defer teardownTestDB(oldDB)

	ctx := userContext(1)

	link, err := storage.CreateLink(ctx, "https://example.com", "Example")
	require.NoError(t, err)

	t.Run("Successfully delete link", func(t *testing.T) {
		deleted, err := storage.DeleteLink(ctx, link.ID)
		require.NoError(t, err)
		assert.Equal(t, link.ID, deleted.ID)

		_, err = storage.GetLinkByID(link.ID)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("ErrNotFound when deleting twice", func(t *testing.T) {
		_, err := storage.DeleteLink(ctx, link.ID)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}

func TestLinkPostgresStorage_GetLinksByUserID(t *testing.T) {
	storage := NewLinkPostgresStorage()

	oldDB := setupTestDB(t)
	defer teardownTestDB(oldDB)

	_, err := storage.CreateLink(userContext(1), "https://a.com", "a")
	require.NoError(t, err)
	_, err = storage.CreateLink(userContext(2), "https://b.com", "b")
	require.NoError(t, err)
	_, err = storage.CreateLink(userContext(1), "https://c.com", "c")
	require.NoError(t, err)

	links, err := storage.GetLinksByUserID("1")
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "https://a.com", links[0].URL)
	assert.Equal(t, "https://c.com", links[1].URL)
}
