package graph

import (
	"github.com/VitaminP8/linkery/internal/link"
	"github.com/VitaminP8/linkery/internal/subscription"
	"github.com/VitaminP8/linkery/internal/user"
	"github.com/VitaminP8/linkery/internal/vote"
)

//go:generate go run github.com/99designs/gqlgen generate

// Resolver служит корневой точкой для всех резолверов.
// Здесь можно внедрять зависимости, например хранилище.
type Resolver struct {
	LinkStore           link.LinkStorage
	UserStore           user.UserStorage
	VoteStore           vote.VoteStorage
	SubscriptionManager subscription.Manager
}
