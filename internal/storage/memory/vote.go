package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/VitaminP8/linkery/graph/model"
	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/VitaminP8/linkery/internal/auth"
	"github.com/VitaminP8/linkery/internal/link"
)

type VoteMemoryStorage struct {
	mu          sync.Mutex
	votes       map[string]*model.Vote
	nextId      int
	linkStorage link.LinkStorage // Хранилище ссылок (внедрение зависимости (DI))
}

func NewVoteMemoryStorage(linkStore link.LinkStorage) *VoteMemoryStorage {
	return &VoteMemoryStorage{
		votes:       make(map[string]*model.Vote),
		nextId:      1,
		linkStorage: linkStore,
	}
}

// CreateVote не проверяет дубликаты - это делает резолвер через HasVote
func (s *VoteMemoryStorage) CreateVote(ctx context.Context, linkID string) (*model.Vote, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	// проверяем что ссылка существует
	_, err = s.linkStorage.GetLinkByID(linkID)
	if err != nil {
		return nil, fmt.Errorf("link %s: %w", linkID, apperr.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextId)
	s.nextId++

	vote := &model.Vote{
		ID:     id,
		LinkID: linkID,
		UserID: fmt.Sprint(userID),
	}

	s.votes[id] = vote
	return vote, nil
}

func (s *VoteMemoryStorage) HasVote(userID, linkID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, vote := range s.votes {
		if vote.UserID == userID && vote.LinkID == linkID {
			return true, nil
		}
	}

	return false, nil
}

func (s *VoteMemoryStorage) GetVoteByID(id string) (*model.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vote, exists := s.votes[id]
	if !exists {
		return nil, fmt.Errorf("vote %s: %w", id, apperr.ErrNotFound)
	}

	return vote, nil
}

func (s *VoteMemoryStorage) GetVotesByLinkID(linkID string) ([]*model.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var votes []*model.Vote
	for _, vote := range s.votes {
		if vote.LinkID == linkID {
			votes = append(votes, vote)
		}
	}

	sort.Slice(votes, func(i, j int) bool {
		return numericLess(votes[i].ID, votes[j].ID)
	})

	return votes, nil
}

func (s *VoteMemoryStorage) GetVotesByUserID(userID string) ([]*model.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var votes []*model.Vote
	for _, vote := range s.votes {
		if vote.UserID == userID {
			votes = append(votes, vote)
		}
	}

	sort.Slice(votes, func(i, j int) bool {
		return numericLess(votes[i].ID, votes[j].ID)
	})

	return votes, nil
}
