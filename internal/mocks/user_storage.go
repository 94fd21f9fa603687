package mocks

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/VitaminP8/linkery/graph/model"
	"github.com/VitaminP8/linkery/internal/apperr"
)

type MockUserStorage struct {
	mu        sync.Mutex
	byEmail   map[string]*model.User
	byID      map[string]*model.User
	passwords map[string]string // email -> пароль открытым текстом (только для тестов)
	nextId    int
}

func NewMockUserStorage() *MockUserStorage {
	return &MockUserStorage{
		byEmail:   make(map[string]*model.User),
		byID:      make(map[string]*model.User),
		passwords: make(map[string]string),
		nextId:    1,
	}
}

func (m *MockUserStorage) RegisterUser(name, email, password string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[email]; ok {
		return nil, fmt.Errorf("user with email %s: %w", email, apperr.ErrDuplicateEmail)
	}

	id := strconv.Itoa(m.nextId)
	m.nextId++

	user := &model.User{
		ID:    id,
		Name:  name,
		Email: email,
	}
	m.byEmail[email] = user
	m.byID[id] = user
	m.passwords[email] = password

	return user, nil
}

func (m *MockUserStorage) LoginUser(email, password string) (*model.User, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byEmail[email]
	if !ok {
		return nil, "", fmt.Errorf("user with email %s: %w", email, apperr.ErrNoSuchUser)
	}

	if m.passwords[email] != password {
		return nil, "", fmt.Errorf("wrong password: %w", apperr.ErrInvalidCredentials)
	}

	return user, "jwt-token-for-user-" + user.ID, nil
}

func (m *MockUserStorage) GetUserByID(id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
	}
	return user, nil
}
