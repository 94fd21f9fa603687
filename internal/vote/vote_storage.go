package vote

import (
	"context"

	"github.com/VitaminP8/linkery/graph/model"
)

type VoteStorage interface {
	CreateVote(ctx context.Context, linkID string) (*model.Vote, error)
	// HasVote - проверка существования голоса для пары (user, link).
	// Вызывается резолвером перед CreateVote (check-then-act, не атомарно)
	HasVote(userID, linkID string) (bool, error)
	GetVoteByID(id string) (*model.Vote, error)
	GetVotesByLinkID(linkID string) ([]*model.Vote, error)
	GetVotesByUserID(userID string) ([]*model.Vote, error)
}
