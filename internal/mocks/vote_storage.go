package mocks

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/VitaminP8/linkery/graph/model"
	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/VitaminP8/linkery/internal/auth"
)

type MockVoteStorage struct {
	mu     sync.Mutex
	votes  map[string]*model.Vote
	nextId int
}

func NewMockVoteStorage() *MockVoteStorage {
	return &MockVoteStorage{
		votes:  make(map[string]*model.Vote),
		nextId: 1,
	}
}

func (m *MockVoteStorage) CreateVote(ctx context.Context, linkID string) (*model.Vote, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := strconv.Itoa(m.nextId)
	m.nextId++

	vote := &model.Vote{
		ID:     id,
		LinkID: linkID,
		UserID: strconv.Itoa(int(userID)),
	}
	m.votes[id] = vote
	return vote, nil
}

func (m *MockVoteStorage) HasVote(userID, linkID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, vote := range m.votes {
		if vote.UserID == userID && vote.LinkID == linkID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockVoteStorage) GetVoteByID(id string) (*model.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vote, ok := m.votes[id]
	if !ok {
		return nil, fmt.Errorf("vote %s: %w", id, apperr.ErrNotFound)
	}
	return vote, nil
}

func (m *MockVoteStorage) GetVotesByLinkID(linkID string) ([]*model.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var votes []*model.Vote
	for _, vote := range m.votes {
		if vote.LinkID == linkID {
			votes = append(votes, vote)
		}
	}
	sort.Slice(votes, func(i, j int) bool { return votes[i].ID < votes[j].ID })
	return votes, nil
}

func (m *MockVoteStorage) GetVotesByUserID(userID string) ([]*model.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var votes []*model.Vote
	for _, vote := range m.votes {
		if vote.UserID == userID {
			votes = append(votes, vote)
		}
	}
	sort.Slice(votes, func(i, j int) bool { return votes[i].ID < votes[j].ID })
	return votes, nil
}
