package postgres

import (
	"fmt"

	"github.com/VitaminP8/linkery/graph/model"
	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/VitaminP8/linkery/internal/auth"
	"github.com/VitaminP8/linkery/models"
	"github.com/jinzhu/gorm"

	"golang.org/x/crypto/bcrypt"
)

type UserPostgresStorage struct{}

func NewUserPostgresStorage() *UserPostgresStorage {
	return &UserPostgresStorage{}
}

func (s *UserPostgresStorage) RegisterUser(name, email, password string) (*model.User, error) {
	// проверка - существует ли пользователь с таким email
	var existUser models.User
	err := DB.Where("email = ?", email).First(&existUser).Error
	if err == nil {
		return nil, fmt.Errorf("user with email %s: %w", email, apperr.ErrDuplicateEmail)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}

	err = DB.Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &model.User{
		ID:    fmt.Sprint(user.ID),
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func (s *UserPostgresStorage) LoginUser(email, password string) (*model.User, string, error) {
	var user models.User
	err := DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, "", fmt.Errorf("user with email %s: %w", email, apperr.ErrNoSuchUser)
	}

	// bcrypt сравнивает за константное время
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, "", fmt.Errorf("wrong password: %w", apperr.ErrInvalidCredentials)
	}

	token, err := auth.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return &model.User{
		ID:    fmt.Sprint(user.ID),
		Name:  user.Name,
		Email: user.Email,
	}, token, nil
}

func (s *UserPostgresStorage) GetUserByID(id string) (*model.User, error) {
	var user models.User
	err := DB.First(&user, id).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	return &model.User{
		ID:    fmt.Sprint(user.ID),
		Name:  user.Name,
		Email: user.Email,
	}, nil
}
