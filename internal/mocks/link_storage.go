package mocks

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/VitaminP8/linkery/graph/model"
	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/VitaminP8/linkery/internal/auth"
)

type MockLinkStorage struct {
	mu     sync.Mutex
	links  map[string]*model.Link
	nextId int
}

func NewMockLinkStorage() *MockLinkStorage {
	return &MockLinkStorage{
		links:  make(map[string]*model.Link),
		nextId: 1,
	}
}

func (m *MockLinkStorage) CreateLink(ctx context.Context, url, description string) (*model.Link, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := strconv.Itoa(m.nextId)
	m.nextId++

	postedBy := strconv.Itoa(int(userID))
	link := &model.Link{
		ID:          id,
		CreatedAt:   time.Now().Format(time.RFC3339),
		Description: description,
		URL:         url,
		PostedByID:  &postedBy,
	}
	m.links[id] = link
	return link, nil
}

func (m *MockLinkStorage) GetLinkByID(id string) (*model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[id]
	if !ok {
		return nil, fmt.Errorf("link %s: %w", id, apperr.ErrNotFound)
	}
	return link, nil
}

func (m *MockLinkStorage) ListLinks(filter *string, skip, first *int, orderBy *model.LinkOrderByInput) ([]*model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var links []*model.Link
	for _, link := range m.links {
		if m.matches(link, filter) {
			links = append(links, link)
		}
	}

	sort.Slice(links, func(i, j int) bool {
		return links[i].ID < links[j].ID
	})

	if orderBy != nil && orderBy.Description != nil {
		desc := *orderBy.Description == model.SortDesc
		sort.SliceStable(links, func(i, j int) bool {
			if desc {
				return links[i].Description > links[j].Description
			}
			return links[i].Description < links[j].Description
		})
	}

	if skip != nil {
		if *skip >= len(links) {
			return []*model.Link{}, nil
		}
		links = links[*skip:]
	}
	if first != nil && *first < len(links) {
		links = links[:*first]
	}

	return links, nil
}

func (m *MockLinkStorage) CountLinks(filter *string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, link := range m.links {
		if m.matches(link, filter) {
			count++
		}
	}
	return count, nil
}

func (m *MockLinkStorage) UpdateLink(ctx context.Context, id, url, description string) (*model.Link, error) {
	if _, err := auth.GetUserIDFromContext(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[id]
	if !ok {
		return nil, fmt.Errorf("link %s: %w", id, apperr.ErrNotFound)
	}
	link.URL = url
	link.Description = description
	return link, nil
}

func (m *MockLinkStorage) DeleteLink(ctx context.Context, id string) (*model.Link, error) {
	if _, err := auth.GetUserIDFromContext(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[id]
	if !ok {
		return nil, fmt.Errorf("link %s: %w", id, apperr.ErrNotFound)
	}
	delete(m.links, id)
	return link, nil
}

func (m *MockLinkStorage) GetLinksByUserID(userID string) ([]*model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var links []*model.Link
	for _, link := range m.links {
		if link.PostedByID != nil && *link.PostedByID == userID {
			links = append(links, link)
		}
	}

	sort.Slice(links, func(i, j int) bool {
		return links[i].ID < links[j].ID
	})

	return links, nil
}

func (m *MockLinkStorage) matches(link *model.Link, filter *string) bool {
	if filter == nil {
		return true
	}
	return strings.Contains(link.Description, *filter) || strings.Contains(link.URL, *filter)
}
