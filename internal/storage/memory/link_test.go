package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/VitaminP8/linkery/graph/model"
	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/VitaminP8/linkery/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userContext(userID uint) context.Context {
	return auth.WithUserID(context.Background(), userID)
}

func intPtr(v int) *int                { return &v }
func strPtr(v string) *string          { return &v }
func sortPtr(v model.Sort) *model.Sort { return &v }

func TestLinkMemoryStorage_CreateLink(t *testing.T) {
	storage := NewLinkMemoryStorage()

	t.Run("Successful link creation", func(t *testing.T) {
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
		link, err := storage.CreateLink(context.Background(), "https://example.com", "Example")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotAuthenticated))
		assert.Nil(t, link)
	})
}

func TestLinkMemoryStorage_GetLinkByID(t *testing.T) {
	storage := NewLinkMemoryStorage()
	ctx := userContext(1)

	link, err := storage.CreateLink(ctx, "https://example.com", "Example")
	require.NoError(t, err)

	t.Run("Successfully get link by ID", func(t *testing.T) {
		got, err := storage.GetLinkByID(link.ID)
		require.NoError(t, err)
		assert.Equal(t, link, got)
	})

	t.Run("ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := storage.GetLinkByID("non-existent-id")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}

func TestLinkMemoryStorage_ListLinks(t *testing.T) {
	storage := NewLinkMemoryStorage()
	ctx := userContext(1)

	// graphql встречается в описании, howtographql.com - в url
	_, err := storage.CreateLink(ctx, "https://howtographql.com", "Fullstack tutorial")
	require.NoError(t, err)
	_, err = storage.CreateLink(ctx, "https://golang.org", "graphql servers in Go")
	require.NoError(t, err)
	_, err = storage.CreateLink(ctx, "https://news.ycombinator.com", "Hacker news")
	require.NoError(t, err)

	t.Run("No filter returns everything in creation order", func(t *testing.T) {
		links, err := storage.ListLinks(nil, nil, nil, nil)
		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, "1", links[0].ID)
		assert.Equal(t, "2", links[1].ID)
		assert.Equal(t, "3", links[2].ID)
	})

	t.Run("Filter matches description OR url", func(t *testing.T) {
		links, err := storage.ListLinks(strPtr("graphql"), nil, nil, nil)
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "https://howtographql.com", links[0].URL)
		assert.Equal(t, "graphql servers in Go", links[1].Description)
	})

	t.Run("Filter is case-sensitive", func(t *testing.T) {
		links, err := storage.ListLinks(strPtr("GraphQL"), nil, nil, nil)
		require.NoError(t, err)
		assert.Len(t, links, 0)
	})

	t.Run("Skip and first window the result", func(t *testing.T) {
		links, err := storage.ListLinks(nil, intPtr(1), intPtr(1), nil)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "2", links[0].ID)
	})

	t.Run("Skip beyond the end returns empty list", func(t *testing.T) {
		links, err := storage.ListLinks(nil, intPtr(10), nil, nil)
		require.NoError(t, err)
		assert.Len(t, links, 0)
	})

	t.Run("First larger than result is harmless", func(t *testing.T) {
		links, err := storage.ListLinks(nil, nil, intPtr(10), nil)
		require.NoError(t, err)
		assert.Len(t, links, 3)
	})

	t.Run("Negative skip is ignored", func(t *testing.T) {
		links, err := storage.ListLinks(nil, intPtr(-1), nil, nil)
		require.NoError(t, err)
		assert.Len(t, links, 3)
	})

	t.Run("Negative first is ignored", func(t *testing.T) {
		links, err := storage.ListLinks(nil, nil, intPtr(-1), nil)
		require.NoError(t, err)
		assert.Len(t, links, 3)
	})

	t.Run("Order by description descending", func(t *testing.T) {
		orderBy := &model.LinkOrderByInput{Description: sortPtr(model.SortDesc)}
		links, err := storage.ListLinks(nil, nil, nil, orderBy)
		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, "graphql servers in Go", links[0].Description)
		assert.Equal(t, "Hacker news", links[1].Description)
		assert.Equal(t, "Fullstack tutorial", links[2].Description)
	})

	t.Run("Order by url ascending", func(t *testing.T) {
		orderBy := &model.LinkOrderByInput{URL: sortPtr(model.SortAsc)}
		links, err := storage.ListLinks(nil, nil, nil, orderBy)
		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, "https://golang.org", links[0].URL)
	})
}

func TestLinkMemoryStorage_CountLinks(t *testing.T) {
	storage := NewLinkMemoryStorage()
	ctx := userContext(1)

	_, err := storage.CreateLink(ctx, "https://howtographql.com", "Fullstack tutorial")
	require.NoError(t, err)
	_, err = storage.CreateLink(ctx, "https://golang.org", "graphql servers in Go")
	require.NoError(t, err)
	_, err = storage.CreateLink(ctx, "https://news.ycombinator.com", "Hacker news")
	require.NoError(t, err)

	t.Run("Count without filter", func(t *testing.T) {
		count, err := storage.CountLinks(nil)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("Count respects filter but not pagination", func(t *testing.T) {
		// пагинация задается только в ListLinks - CountLinks всегда считает весь результат фильтра
		count, err := storage.CountLinks(strPtr("graphql"))
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		links, err := storage.ListLinks(strPtr("graphql"), intPtr(1), intPtr(1), nil)
		require.NoError(t, err)
		assert.Len(t, links, 1)
		assert.Equal(t, 2, count)
	})
}

func TestLinkMemoryStorage_UpdateLink(t *testing.T) {
	storage := NewLinkMemoryStorage()
	ctx := userContext(1)

	link, err := storage.CreateLink(ctx, "https://example.com", "Example")
	require.NoError(t, err)

	t.Run("Successfully update link", func(t *testing.T) {
		updated, err := storage.UpdateLink(ctx, link.ID, "https://example.org", "Updated")
		require.NoError(t, err)
		assert.Equal(t, "https://example.org", updated.URL)
		assert.Equal(t, "Updated", updated.Description)

		got, err := storage.GetLinkByID(link.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated", got.Description)
	})

	t.Run("Another authenticated user can update", func(t *testing.T) {
		// проверяется только наличие авторизации, не владение
		updated, err := storage.UpdateLink(userContext(999), link.ID, "https://other.org", "Other")
		require.NoError(t, err)
		assert.Equal(t, "https://other.org", updated.URL)
	})

	t.Run("Error when no authorization", func(t *testing.T) {
		_, err := storage.UpdateLink(context.Background(), link.ID, "https://x.org", "x")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotAuthenticated))
	})

	t.Run("ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := storage.UpdateLink(ctx, "non-existent-id", "https://x.org", "x")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}

func TestLinkMemoryStorage_DeleteLink(t *testing.T) {
	storage := NewLinkMemoryStorage()
	ctx := userContext(1)

	link, err := storage.CreateLink(ctx, "https://example.com", "Example")
	require.NoError(t, err)

	t.Run("Error when no authorization", func(t *testing.T) {
		_, err := storage.DeleteLink(context.Background(), link.ID)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotAuthenticated))
	})

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

func TestLinkMemoryStorage_GetLinksByUserID(t *testing.T) {
	storage := NewLinkMemoryStorage()

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
