package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVotePostgresStorage_CreateVote(t *testing.T) {
	linkStorage := NewLinkPostgresStorage()
	storage := NewVotePostgresStorage()

	t.Run("Successful vote creation", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		ctx := userContext(123)

		link, err := linkStorage.CreateLink(ctx, "https://example.com", "Example")
		require.NoError(t, err)

		vote, err := storage.CreateVote(ctx, link.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, vote.ID)
		assert.Equal(t, link.ID, vote.LinkID)
		assert.Equal(t, "123", vote.UserID)
	})

	t.Run("Error when no authorization", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		vote, err := storage.CreateVote(context.Background(), "1")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotAuthenticated))
		assert.Nil(t, vote)
	})

	t.Run("ErrNotFound when link does not exist", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		vote, err := storage.CreateVote(userContext(123), "9999")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
		assert.Nil(t, vote)
	})
}

func TestVotePostgresStorage_HasVote(t *testing.T) {
	linkStorage := NewLinkPostgresStorage()
	storage := NewVotePostgresStorage()

	oldDB := setupTestDB(t)
	defer teardownTestDB(oldDB)

	ctx := userContext(123)

	link, err := linkStorage.CreateLink(ctx, "https://example.com", "Example")
	require.NoError(t, err)

	t.Run("False before voting", func(t *testing.T) {
		has, err := storage.HasVote("123", link.ID)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("True after voting", func(t *testing.T) {
		_, err := storage.CreateVote(ctx, link.ID)
		require.NoError(t, err)

		has, err := storage.HasVote("123", link.ID)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("False for a different user", func(t *testing.T) {
		has, err := storage.HasVote("999", link.ID)
		require.NoError(t, err)
		assert.False(t, has)
	})
}

func TestVotePostgresStorage_GetVotes(t *testing.T) {
	linkStorage := NewLinkPostgresStorage()
	storage := NewVotePostgresStorage()

	oldDB := setupTestDB(t)
	defer teardownTestDB(oldDB)

	link1, err := linkStorage.CreateLink(userContext(1), "https://a.com", "a")
	require.NoError(t, err)
	link2, err := linkStorage.CreateLink(userContext(1), "https://b.com", "b")
	require.NoError(t, err)

	vote1, err := storage.CreateVote(userContext(1), link1.ID)
	require.NoError(t, err)
	vote2, err := storage.CreateVote(userContext(2), link1.ID)
	require.NoError(t, err)
	vote3, err := storage.CreateVote(userContext(1), link2.ID)
	require.NoError(t, err)

	t.Run("Get vote by ID", func(t *testing.T) {
		got, err := storage.GetVoteByID(vote1.ID)
		require.NoError(t, err)
		assert.Equal(t, vote1.ID, got.ID)

		_, err = storage.GetVoteByID("9999")
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("Votes by link", func(t *testing.T) {
		votes, err := storage.GetVotesByLinkID(link1.ID)
		require.NoError(t, err)
		require.Len(t, votes, 2)
		assert.Equal(t, vote1.ID, votes[0].ID)
		assert.Equal(t, vote2.ID, votes[1].ID)
	})

	t.Run("Votes by user", func(t *testing.T) {
		votes, err := storage.GetVotesByUserID("1")
		require.NoError(t, err)
		require.Len(t, votes, 2)
		assert.Equal(t, vote1.ID, votes[0].ID)
		assert.Equal(t, vote3.ID, votes[1].ID)
	})
}
