package graph

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/VitaminP8/linkery/graph/model"
	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/VitaminP8/linkery/internal/auth"
	"github.com/VitaminP8/linkery/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUserContext(userID uint) context.Context {
	ctx := context.Background()
	return auth.WithUserID(ctx, userID)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func newTestResolver() (*Resolver, *mocks.MockLinkStorage, *mocks.MockUserStorage, *mocks.MockVoteStorage, *mocks.MockSubscriptionManager) {
	linkStore := mocks.NewMockLinkStorage()
	userStore := mocks.NewMockUserStorage()
	voteStore := mocks.NewMockVoteStorage()
	manager := mocks.NewMockSubscriptionManager()

	resolver := &Resolver{
		LinkStore:           linkStore,
		UserStore:           userStore,
		VoteStore:           voteStore,
		SubscriptionManager: manager,
	}

	return resolver, linkStore, userStore, voteStore, manager
}

func TestQueryResolver_Info(t *testing.T) {
	resolver, _, _, _, _ := newTestResolver()

	info, err := resolver.Query().Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Linkery API is up and running", info)
}

func TestMutationResolver_Post(t *testing.T) {
	resolver, linkStore, _, _, manager := newTestResolver()

	t.Run("Successful link creation publishes newLink event", func(t *testing.T) {
		ctx := createUserContext(123)

		link, err := resolver.Mutation().Post(ctx, "https://example.com", "Example link")
		require.NoError(t, err)
		assert.NotEmpty(t, link.ID)
		assert.Equal(t, "https://example.com", link.URL)
		assert.Equal(t, "Example link", link.Description)
		require.NotNil(t, link.PostedByID)
		assert.Equal(t, "123", *link.PostedByID)

		savedLink, err := linkStore.GetLinkByID(link.ID)
		require.NoError(t, err)
		assert.Equal(t, link, savedLink)

		published := manager.PublishedLinks()
		require.Len(t, published, 1)
		assert.Equal(t, link.ID, published[0].ID)
	})

	t.Run("Error when no authorization: no write, no event", func(t *testing.T) {
		ctx := context.Background()

		before, err := linkStore.CountLinks(nil)
		require.NoError(t, err)
		eventsBefore := len(manager.PublishedLinks())

		link, err := resolver.Mutation().Post(ctx, "https://example.com", "Example link")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotAuthenticated))
		assert.Nil(t, link)

		after, err := linkStore.CountLinks(nil)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Len(t, manager.PublishedLinks(), eventsBefore)
	})
}

func TestMutationResolver_UpdateLink(t *testing.T) {
	resolver, linkStore, _, _, _ := newTestResolver()

	ctx := createUserContext(123)

	link, err := linkStore.CreateLink(ctx, "https://example.com", "Example")
	require.NoError(t, err)

	t.Run("Successfully update link", func(t *testing.T) {
		updated, err := resolver.Mutation().UpdateLink(ctx, link.ID, "https://example.org", "Updated")
		require.NoError(t, err)
		assert.Equal(t, "https://example.org", updated.URL)
		assert.Equal(t, "Updated", updated.Description)
	})

	t.Run("Any authenticated user can update", func(t *testing.T) {
		// проверяется только наличие авторизации, не владение ссылкой
		updated, err := resolver.Mutation().UpdateLink(createUserContext(999), link.ID, "https://other.org", "Other")
		require.NoError(t, err)
		assert.Equal(t, "https://other.org", updated.URL)
	})

	t.Run("Error when no authorization", func(t *testing.T) {
		updated, err := resolver.Mutation().UpdateLink(context.Background(), link.ID, "https://x.org", "x")
		assert.True(t, errors.Is(err, apperr.ErrNotAuthenticated))
		assert.Nil(t, updated)
	})

	t.Run("ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := resolver.Mutation().UpdateLink(ctx, "non-existent-id", "https://x.org", "x")
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}

func TestMutationResolver_DeleteLink(t *testing.T) {
	resolver, linkStore, _, _, _ := newTestResolver()

	ctx := createUserContext(123)

	link, err := linkStore.CreateLink(ctx, "https://example.com", "Example")
	require.NoError(t, err)

	t.Run("Error when no authorization", func(t *testing.T) {
		deleted, err := resolver.Mutation().DeleteLink(context.Background(), link.ID)
		assert.True(t, errors.Is(err, apperr.ErrNotAuthenticated))
		assert.Nil(t, deleted)
	})

	t.Run("Successfully delete link returns the deleted link", func(t *testing.T) {
		deleted, err := resolver.Mutation().DeleteLink(ctx, link.ID)
		require.NoError(t, err)
		assert.Equal(t, link.ID, deleted.ID)

		_, err = linkStore.GetLinkByID(link.ID)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("ErrNotFound when deleting twice", func(t *testing.T) {
		_, err := resolver.Mutation().DeleteLink(ctx, link.ID)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}

func TestMutationResolver_SignupAndLogin(t *testing.T) {
	resolver, _, _, _, _ := newTestResolver()

	// Signup выдает токен через сервис токенов - нужен JWT_SECRET
	originalSecret := os.Getenv("JWT_SECRET")
	os.Setenv("JWT_SECRET", "test_jwt_secret")
	defer os.Setenv("JWT_SECRET", originalSecret)

	ctx := context.Background()

	t.Run("Successful signup returns token and user", func(t *testing.T) {
		payload, err := resolver.Mutation().Signup(ctx, "alice@example.com", "password123", "Alice")
		require.NoError(t, err)
		require.NotNil(t, payload.User)
		assert.Equal(t, "Alice", payload.User.Name)
		assert.Equal(t, "alice@example.com", payload.User.Email)

		// Identity Extractor принимает выданный токен как id этого пользователя
		require.NotNil(t, payload.Token)
		userID, err := auth.ParseToken(*payload.Token)
		require.NoError(t, err)
		assert.Equal(t, "1", payload.User.ID)
		assert.Equal(t, uint(1), userID)
	})

	t.Run("ErrDuplicateEmail on repeated signup", func(t *testing.T) {
		payload, err := resolver.Mutation().Signup(ctx, "alice@example.com", "password456", "Another Alice")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrDuplicateEmail))
		assert.Nil(t, payload)
	})

	t.Run("Successful login after signup", func(t *testing.T) {
		payload, err := resolver.Mutation().Login(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		require.NotNil(t, payload.Token)
		require.NotNil(t, payload.User)
		assert.Equal(t, "alice@example.com", payload.User.Email)
		assert.Contains(t, *payload.Token, "jwt-token-for-user-")
	})

	t.Run("ErrInvalidCredentials on wrong password", func(t *testing.T) {
		payload, err := resolver.Mutation().Login(ctx, "alice@example.com", "wrongpassword")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrInvalidCredentials))
		assert.Nil(t, payload)
	})

	t.Run("ErrNoSuchUser on unknown email", func(t *testing.T) {
		payload, err := resolver.Mutation().Login(ctx, "nobody@example.com", "password")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNoSuchUser))
		assert.Nil(t, payload)
	})
}

func TestMutationResolver_Vote(t *testing.T) {
	resolver, linkStore, _, voteStore, manager := newTestResolver()

	ctx := createUserContext(123)

	link, err := linkStore.CreateLink(ctx, "https://example.com", "Example")
	require.NoError(t, err)

	t.Run("Successful vote publishes newVote event", func(t *testing.T) {
		vote, err := resolver.Mutation().Vote(ctx, link.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, vote.ID)
		assert.Equal(t, link.ID, vote.LinkID)
		assert.Equal(t, "123", vote.UserID)

		published := manager.PublishedVotes()
		require.Len(t, published, 1)
		assert.Equal(t, vote.ID, published[0].ID)
	})

	t.Run("ErrDuplicateVote on second vote for the same link", func(t *testing.T) {
		vote, err := resolver.Mutation().Vote(ctx, link.ID)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrDuplicateVote))
		assert.Nil(t, vote)

		// событие не публикуется и голос не создается
		assert.Len(t, manager.PublishedVotes(), 1)
		votes, err := voteStore.GetVotesByLinkID(link.ID)
		require.NoError(t, err)
		assert.Len(t, votes, 1)
	})

	t.Run("Another user can vote for the same link", func(t *testing.T) {
		vote, err := resolver.Mutation().Vote(createUserContext(456), link.ID)
		require.NoError(t, err)
		assert.Equal(t, "456", vote.UserID)
	})

	t.Run("Error when no authorization: no write, no event", func(t *testing.T) {
		eventsBefore := len(manager.PublishedVotes())
		votesBefore, err := voteStore.GetVotesByLinkID(link.ID)
		require.NoError(t, err)

		vote, err := resolver.Mutation().Vote(context.Background(), link.ID)
		assert.True(t, errors.Is(err, apperr.ErrNotAuthenticated))
		assert.Nil(t, vote)

		votesAfter, err := voteStore.GetVotesByLinkID(link.ID)
		require.NoError(t, err)
		assert.Len(t, votesAfter, len(votesBefore))
		assert.Len(t, manager.PublishedVotes(), eventsBefore)
	})
}

func TestQueryResolver_Feed(t *testing.T) {
	resolver, linkStore, _, _, _ := newTestResolver()

	ctx := createUserContext(1)

	_, err := linkStore.CreateLink(ctx, "https://howtographql.com", "Fullstack tutorial")
	require.NoError(t, err)
	_, err = linkStore.CreateLink(ctx, "https://golang.org", "graphql servers in Go")
	require.NoError(t, err)
	_, err = linkStore.CreateLink(ctx, "https://news.ycombinator.com", "Hacker news")
	require.NoError(t, err)

	t.Run("Feed without arguments returns everything", func(t *testing.T) {
		feed, err := resolver.Query().Feed(context.Background(), nil, nil, nil, nil)
		require.NoError(t, err)
		assert.Len(t, feed.Links, 3)
		assert.Equal(t, 3, feed.Count)
	})

	t.Run("Filter matches description OR url", func(t *testing.T) {
		feed, err := resolver.Query().Feed(context.Background(), strPtr("graphql"), nil, nil, nil)
		require.NoError(t, err)
		require.Len(t, feed.Links, 2)
		assert.Equal(t, 2, feed.Count)
	})

	t.Run("Count ignores skip and first", func(t *testing.T) {
		feed, err := resolver.Query().Feed(context.Background(), nil, intPtr(1), intPtr(1), nil)
		require.NoError(t, err)
		require.Len(t, feed.Links, 1)
		assert.Equal(t, "2", feed.Links[0].ID)
		assert.Equal(t, 3, feed.Count)
	})

	t.Run("No authentication required", func(t *testing.T) {
		_, err := resolver.Query().Feed(context.Background(), nil, nil, nil, nil)
		assert.NoError(t, err)
	})
}

func TestQueryResolver_Link(t *testing.T) {
	resolver, linkStore, _, _, _ := newTestResolver()

	ctx := createUserContext(1)

	link, err := linkStore.CreateLink(ctx, "https://example.com", "Example")
	require.NoError(t, err)

	t.Run("Successfully get link by ID", func(t *testing.T) {
		got, err := resolver.Query().Link(context.Background(), link.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, link.ID, got.ID)
	})

	t.Run("Unknown ID is null, not an error", func(t *testing.T) {
		got, err := resolver.Query().Link(context.Background(), "non-existent-id")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRelationResolvers(t *testing.T) {
	resolver, linkStore, userStore, _, _ := newTestResolver()

	user, err := userStore.RegisterUser("Alice", "alice@example.com", "password")
	require.NoError(t, err)

	ctx := createUserContext(1)

	link, err := linkStore.CreateLink(ctx, "https://example.com", "Example")
	require.NoError(t, err)

	vote, err := resolver.Mutation().Vote(ctx, link.ID)
	require.NoError(t, err)

	t.Run("Link.postedBy resolves to the author", func(t *testing.T) {
		got, err := resolver.Link().PostedBy(context.Background(), link)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "Alice", got.Name)
	})

	t.Run("Error when parent link does not exist", func(t *testing.T) {
		// родительский объект может быть частичной проекцией - резолвер перечитывает по id
		orphan := &model.Link{ID: "non-existent-id"}
		_, err := resolver.Link().PostedBy(context.Background(), orphan)
		assert.Error(t, err)
	})

	t.Run("Link.votes resolves votes of the link", func(t *testing.T) {
		votes, err := resolver.Link().Votes(context.Background(), link)
		require.NoError(t, err)
		require.Len(t, votes, 1)
		assert.Equal(t, vote.ID, votes[0].ID)
	})

	t.Run("User.links resolves authored links", func(t *testing.T) {
		links, err := resolver.User().Links(context.Background(), user)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, link.ID, links[0].ID)
	})

	t.Run("Vote.link and Vote.user resolve both sides", func(t *testing.T) {
		gotLink, err := resolver.Vote().Link(context.Background(), vote)
		require.NoError(t, err)
		assert.Equal(t, link.ID, gotLink.ID)

		gotUser, err := resolver.Vote().User(context.Background(), vote)
		require.NoError(t, err)
		assert.Equal(t, user.ID, gotUser.ID)
	})
}

func TestSubscriptionResolver_NewLink(t *testing.T) {
	resolver, _, _, _, _ := newTestResolver()

	t.Run("Subscriber receives the posted link", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		linkChan, err := resolver.Subscription().NewLink(ctx)
		require.NoError(t, err)
		require.NotNil(t, linkChan)

		postCtx := createUserContext(123)
		link, err := resolver.Mutation().Post(postCtx, "https://example.com", "Example")
		require.NoError(t, err)

		select {
		case received := <-linkChan:
			assert.Equal(t, link.ID, received.ID)
			assert.Equal(t, link.URL, received.URL)
		case <-time.After(time.Second):
			t.Fatal("Timeout waiting for link")
		}
	})

	t.Run("Late subscriber receives nothing for earlier mutations", func(t *testing.T) {
		postCtx := createUserContext(123)
		_, err := resolver.Mutation().Post(postCtx, "https://late.com", "Late")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		linkChan, err := resolver.Subscription().NewLink(ctx)
		require.NoError(t, err)

		select {
		case link := <-linkChan:
			t.Fatalf("unexpected link received: %v", link)
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("Context cancellation closes the subscription channel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		linkChan, err := resolver.Subscription().NewLink(ctx)
		require.NoError(t, err)

		cancel()

		select {
		case _, open := <-linkChan:
			assert.False(t, open)
		case <-time.After(time.Second):
			t.Fatal("Timeout waiting for channel close")
		}
	})
}

func TestSubscriptionResolver_NewVote(t *testing.T) {
	resolver, linkStore, _, _, _ := newTestResolver()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	voteChan, err := resolver.Subscription().NewVote(ctx)
	require.NoError(t, err)

	userCtx := createUserContext(123)

	link, err := linkStore.CreateLink(userCtx, "https://example.com", "Example")
	require.NoError(t, err)

	vote, err := resolver.Mutation().Vote(userCtx, link.ID)
	require.NoError(t, err)

	select {
	case received := <-voteChan:
		assert.Equal(t, vote.ID, received.ID)
		assert.Equal(t, "123", received.UserID)
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for vote")
	}
}

// Сквозной сценарий: регистрация -> вход -> публикация -> голос -> повторный голос
func TestEndToEndScenario(t *testing.T) {
	resolver, _, _, _, _ := newTestResolver()

	originalSecret := os.Getenv("JWT_SECRET")
	os.Setenv("JWT_SECRET", "test_jwt_secret")
	defer os.Setenv("JWT_SECRET", originalSecret)

	ctx := context.Background()

	// signup Alice
	payload, err := resolver.Mutation().Signup(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)
	userID, err := auth.ParseToken(*payload.Token)
	require.NoError(t, err)

	// login Alice
	loginPayload, err := resolver.Mutation().Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, loginPayload.Token)

	// подписка на newVote до каких-либо событий
	subCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	voteChan, err := resolver.Subscription().NewVote(subCtx)
	require.NoError(t, err)

	// post как Alice
	aliceCtx := auth.WithUserID(context.Background(), userID)
	link, err := resolver.Mutation().Post(aliceCtx, "https://howtographql.com", "Fullstack tutorial")
	require.NoError(t, err)

	// Link.postedBy резолвится в Alice
	author, err := resolver.Link().PostedBy(ctx, link)
	require.NoError(t, err)
	assert.Equal(t, payload.User.ID, author.ID)
	assert.Equal(t, "Alice", author.Name)

	// vote проходит один раз
	vote, err := resolver.Mutation().Vote(aliceCtx, link.ID)
	require.NoError(t, err)

	// повторная попытка дает ErrDuplicateVote
	_, err = resolver.Mutation().Vote(aliceCtx, link.ID)
	assert.True(t, errors.Is(err, apperr.ErrDuplicateVote))

	// подписчик наблюдает ровно одно событие, user которого - Alice
	select {
	case received := <-voteChan:
		assert.Equal(t, vote.ID, received.ID)

		voter, err := resolver.Vote().User(ctx, received)
		require.NoError(t, err)
		assert.Equal(t, "Alice", voter.Name)
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for vote")
	}

	select {
	case extra := <-voteChan:
		t.Fatalf("unexpected extra vote received: %v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}
