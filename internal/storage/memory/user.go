package memory

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/VitaminP8/linkery/graph/model"
	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/VitaminP8/linkery/internal/auth"

	"golang.org/x/crypto/bcrypt"
)

type UserMemoryStorage struct {
	mu        sync.Mutex
	byEmail   map[string]*model.User
	byID      map[string]*model.User
	passwords map[string]string // email -> bcrypt-хэш
	nextId    int
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		byEmail:   make(map[string]*model.User),
		byID:      make(map[string]*model.User),
		passwords: make(map[string]string),
		nextId:    1,
	}
}

func (s *UserMemoryStorage) RegisterUser(name, email, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.byEmail[email]
	if exists {
		return nil, fmt.Errorf("user with email %s: %w", email, apperr.ErrDuplicateEmail)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id := strconv.Itoa(s.nextId)
	s.nextId++

	user := &model.User{
		ID:    id,
		Name:  name,
		Email: email,
	}

	s.byEmail[email] = user
	s.byID[id] = user
	s.passwords[email] = string(hashedPassword)

	return user, nil
}

func (s *UserMemoryStorage) LoginUser(email, password string) (*model.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.byEmail[email]
	if !exists {
		return nil, "", fmt.Errorf("user with email %s: %w", email, apperr.ErrNoSuchUser)
	}

	hashedPassword, ok := s.passwords[email]
	if !ok {
		return nil, "", fmt.Errorf("user with email %s: %w", email, apperr.ErrNoSuchUser)
	}

	// bcrypt сравнивает за константное время
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		return nil, "", fmt.Errorf("wrong password: %w", apperr.ErrInvalidCredentials)
	}

	userIDInt, err := strconv.Atoi(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("invalid user ID %s: %w", user.ID, err)
	}

	token, err := auth.IssueToken(uint(userIDInt))
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *UserMemoryStorage) GetUserByID(id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.byID[id]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
	}

	return user, nil
}
