package graph

// This file will be automatically regenerated based on the schema, any resolver implementations
// will be copied through when generating and any unknown code will be moved to the end.
// Code generated by github.com/99designs/gqlgen version v0.17.70

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/VitaminP8/linkery/graph/generated"
	"github.com/VitaminP8/linkery/graph/model"
	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/VitaminP8/linkery/internal/auth"
)

// PostedBy is the resolver for the postedBy field.
func (r *linkResolver) PostedBy(ctx context.Context, obj *model.Link) (*model.User, error) {
	// перечитываем ссылку по id - родительский объект может быть частичной проекцией
	l, err := r.LinkStore.GetLinkByID(obj.ID)
	if err != nil {
		return nil, err
	}

	if l.PostedByID == nil {
		return nil, nil
	}

	return r.UserStore.GetUserByID(*l.PostedByID)
}

// Votes is the resolver for the votes field.
func (r *linkResolver) Votes(ctx context.Context, obj *model.Link) ([]*model.Vote, error) {
	return r.VoteStore.GetVotesByLinkID(obj.ID)
}

// Post is the resolver for the post field.
func (r *mutationResolver) Post(ctx context.Context, url string, description string) (*model.Link, error) {
	// проверка авторизации до любого обращения к хранилищу
	if _, err := auth.GetUserIDFromContext(ctx); err != nil {
		return nil, err
	}

	l, err := r.LinkStore.CreateLink(ctx, url, description)
	if err != nil {
		return nil, err
	}

	if r.SubscriptionManager != nil {
		r.SubscriptionManager.PublishLink(l)
	}

	return l, nil
}

// UpdateLink is the resolver for the updateLink field.
func (r *mutationResolver) UpdateLink(ctx context.Context, id string, url string, description string) (*model.Link, error) {
	if _, err := auth.GetUserIDFromContext(ctx); err != nil {
		return nil, err
	}

	return r.LinkStore.UpdateLink(ctx, id, url, description)
}

// DeleteLink is the resolver for the deleteLink field.
func (r *mutationResolver) DeleteLink(ctx context.Context, id string) (*model.Link, error) {
	if _, err := auth.GetUserIDFromContext(ctx); err != nil {
		return nil, err
	}

	return r.LinkStore.DeleteLink(ctx, id)
}

// Signup is the resolver for the signup field.
func (r *mutationResolver) Signup(ctx context.Context, email string, password string, name string) (*model.AuthPayload, error) {
	u, err := r.UserStore.RegisterUser(name, email, password)
	if err != nil {
		return nil, err
	}

	userIDInt, err := strconv.Atoi(u.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID %s: %w", u.ID, err)
	}

	token, err := auth.IssueToken(uint(userIDInt))
	if err != nil {
		return nil, err
	}

	return &model.AuthPayload{
		Token: &token,
		User:  u,
	}, nil
}

// Login is the resolver for the login field.
func (r *mutationResolver) Login(ctx context.Context, email string, password string) (*model.AuthPayload, error) {
	u, token, err := r.UserStore.LoginUser(email, password)
	if err != nil {
		return nil, err
	}

	return &model.AuthPayload{
		Token: &token,
		User:  u,
	}, nil
}

// Vote is the resolver for the vote field.
func (r *mutationResolver) Vote(ctx context.Context, linkID string) (*model.Vote, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// check-then-act: проверка существования и создание не атомарны
	exists, err := r.VoteStore.HasVote(fmt.Sprint(userID), linkID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("user %d already voted for link %s: %w", userID, linkID, apperr.ErrDuplicateVote)
	}

	v, err := r.VoteStore.CreateVote(ctx, linkID)
	if err != nil {
		return nil, err
	}

	if r.SubscriptionManager != nil {
		r.SubscriptionManager.PublishVote(v)
	}

	return v, nil
}

// Info is the resolver for the info field.
func (r *queryResolver) Info(ctx context.Context) (string, error) {
	return "Linkery API is up and running", nil
}

// Feed is the resolver for the feed field.
func (r *queryResolver) Feed(ctx context.Context, filter *string, skip *int, first *int, orderBy *model.LinkOrderByInput) (*model.Feed, error) {
	links, err := r.LinkStore.ListLinks(filter, skip, first, orderBy)
	if err != nil {
		return nil, err
	}

	// count считается отдельным запросом без skip/first - пагинация не искажает итог
	count, err := r.LinkStore.CountLinks(filter)
	if err != nil {
		return nil, err
	}

	return &model.Feed{
		Links: links,
		Count: count,
	}, nil
}

// Link is the resolver for the link field.
func (r *queryResolver) Link(ctx context.Context, id string) (*model.Link, error) {
	l, err := r.LinkStore.GetLinkByID(id)
	if err != nil {
		// отсутствие ссылки - это null, а не ошибка
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

// NewLink is the resolver for the newLink field.
func (r *subscriptionResolver) NewLink(ctx context.Context) (<-chan *model.Link, error) {
	ch, cancel := r.SubscriptionManager.SubscribeLinks()

	// отписка гарантирована при любом завершении соединения
	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, nil
}

// NewVote is the resolver for the newVote field.
func (r *subscriptionResolver) NewVote(ctx context.Context) (<-chan *model.Vote, error) {
	ch, cancel := r.SubscriptionManager.SubscribeVotes()

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, nil
}

// Links is the resolver for the links field.
func (r *userResolver) Links(ctx context.Context, obj *model.User) ([]*model.Link, error) {
	return r.LinkStore.GetLinksByUserID(obj.ID)
}

// Link is the resolver for the link field.
func (r *voteResolver) Link(ctx context.Context, obj *model.Vote) (*model.Link, error) {
	v, err := r.VoteStore.GetVoteByID(obj.ID)
	if err != nil {
		return nil, err
	}

	return r.LinkStore.GetLinkByID(v.LinkID)
}

// User is the resolver for the user field.
func (r *voteResolver) User(ctx context.Context, obj *model.Vote) (*model.User, error) {
	v, err := r.VoteStore.GetVoteByID(obj.ID)
	if err != nil {
		return nil, err
	}

	return r.UserStore.GetUserByID(v.UserID)
}

// Link returns generated.LinkResolver implementation.
func (r *Resolver) Link() generated.LinkResolver { return &linkResolver{r} }

// Mutation returns generated.MutationResolver implementation.
func (r *Resolver) Mutation() generated.MutationResolver { return &mutationResolver{r} }

// Query returns generated.QueryResolver implementation.
func (r *Resolver) Query() generated.QueryResolver { return &queryResolver{r} }

// Subscription returns generated.SubscriptionResolver implementation.
func (r *Resolver) Subscription() generated.SubscriptionResolver { return &subscriptionResolver{r} }

// User returns generated.UserResolver implementation.
func (r *Resolver) User() generated.UserResolver { return &userResolver{r} }

// Vote returns generated.VoteResolver implementation.
func (r *Resolver) Vote() generated.VoteResolver { return &voteResolver{r} }

type linkResolver struct{ *Resolver }
type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
type subscriptionResolver struct{ *Resolver }
type userResolver struct{ *Resolver }
type voteResolver struct{ *Resolver }
