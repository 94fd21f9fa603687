package memory

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

type LinkMemoryStorage struct {
	mu     sync.Mutex
	links  map[string]*model.Link
	nextId int // Для хранения актуального ID (можно было использовать UUID)
}

func NewLinkMemoryStorage() *LinkMemoryStorage {
	return &LinkMemoryStorage{
		links:  make(map[string]*model.Link),
		nextId: 1,
	}
}

func (s *LinkMemoryStorage) CreateLink(ctx context.Context, url, description string) (*model.Link, error) {
	// Контекст — это read-only структура (при каждом запросе он не обновляется, а создается заново)(поэтому над мьютексом)
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextId)
	s.nextId++

	postedBy := fmt.Sprint(userID)
	link := &model.Link{
		ID:          id,
		CreatedAt:   time.Now().Format(time.RFC3339),
		Description: description,
		URL:         url,
		PostedByID:  &postedBy,
	}

	s.links[id] = link
	return link, nil
}

func (s *LinkMemoryStorage) GetLinkByID(id string) (*model.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, exists := s.links[id]
	if !exists {
		return nil, fmt.Errorf("link %s: %w", id, apperr.ErrNotFound)
	}

	return link, nil
}

func (s *LinkMemoryStorage) ListLinks(filter *string, skip, first *int, orderBy *model.LinkOrderByInput) ([]*model.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var links []*model.Link
	for _, link := range s.links {
		if matchesFilter(link, filter) {
			links = append(links, link)
		}
	}

	// Базовый порядок - по возрастанию ID (порядок создания)
	sort.Slice(links, func(i, j int) bool {
		return numericLess(links[i].ID, links[j].ID)
	})
	applyOrder(links, orderBy)

	// Пагинация: сначала skip, затем first (отрицательные значения игнорируются, как Offset(-1)/Limit(-1) в gorm)
	if skip != nil && *skip > 0 {
		if *skip >= len(links) {
			return []*model.Link{}, nil
		}
		links = links[*skip:]
	}
	if first != nil && *first >= 0 && *first < len(links) {
		links = links[:*first]
	}

	return links, nil
}

func (s *LinkMemoryStorage) CountLinks(filter *string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, link := range s.links {
		if matchesFilter(link, filter) {
			count++
		}
	}

	return count, nil
}

func (s *LinkMemoryStorage) UpdateLink(ctx context.Context, id, url, description string) (*model.Link, error) {
	// проверяется только наличие авторизации, не владение ссылкой
	_, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	link, exists := s.links[id]
	if !exists {
		return nil, fmt.Errorf("link %s: %w", id, apperr.ErrNotFound)
	}

	link.URL = url
	link.Description = description
	return link, nil
}

func (s *LinkMemoryStorage) DeleteLink(ctx context.Context, id string) (*model.Link, error) {
	// проверяется только наличие авторизации, не владение ссылкой
	_, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	link, exists := s.links[id]
	if !exists {
		return nil, fmt.Errorf("link %s: %w", id, apperr.ErrNotFound)
	}

	delete(s.links, id)
	return link, nil
}

func (s *LinkMemoryStorage) GetLinksByUserID(userID string) ([]*model.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var links []*model.Link
	for _, link := range s.links {
		if link.PostedByID != nil && *link.PostedByID == userID {
			links = append(links, link)
		}
	}

	sort.Slice(links, func(i, j int) bool {
		return numericLess(links[i].ID, links[j].ID)
	})

	return links, nil
}

// matchesFilter - подстрока ищется в description ИЛИ url (регистрозависимо)
func matchesFilter(link *model.Link, filter *string) bool {
	if filter == nil {
		return true
	}
	return strings.Contains(link.Description, *filter) || strings.Contains(link.URL, *filter)
}

// applyOrder сортирует по первому заданному полю orderBy (description, url, createdAt)
func applyOrder(links []*model.Link, orderBy *model.LinkOrderByInput) {
	if orderBy == nil {
		return
	}

	var less func(a, b *model.Link) bool
	switch {
	case orderBy.Description != nil:
		desc := *orderBy.Description == model.SortDesc
		less = func(a, b *model.Link) bool {
			if desc {
				return a.Description > b.Description
			}
			return a.Description < b.Description
		}
	case orderBy.URL != nil:
		desc := *orderBy.URL == model.SortDesc
		less = func(a, b *model.Link) bool {
			if desc {
				return a.URL > b.URL
			}
			return a.URL < b.URL
		}
	case orderBy.CreatedAt != nil:
		desc := *orderBy.CreatedAt == model.SortDesc
		less = func(a, b *model.Link) bool {
			if desc {
				return a.CreatedAt > b.CreatedAt
			}
			return a.CreatedAt < b.CreatedAt
		}
	default:
		return
	}

	sort.SliceStable(links, func(i, j int) bool {
		return less(links[i], links[j])
	})
}

func numericLess(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return ai < bi
}
