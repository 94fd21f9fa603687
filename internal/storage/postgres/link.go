package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/VitaminP8/linkery/graph/model"
	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/VitaminP8/linkery/internal/auth"
	"github.com/VitaminP8/linkery/models"
	"github.com/jinzhu/gorm"
)

type LinkPostgresStorage struct{}

func NewLinkPostgresStorage() *LinkPostgresStorage {
	return &LinkPostgresStorage{}
}

func (s *LinkPostgresStorage) CreateLink(ctx context.Context, url, description string) (*model.Link, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	link := &models.Link{
		Description: description,
		URL:         url,
		UserID:      &userID,
	}

	err = DB.Create(link).Error
	if err != nil {
		return nil, fmt.Errorf("could not create link: %w", err)
	}

	return toGraphLink(link), nil
}

func (s *LinkPostgresStorage) GetLinkByID(id string) (*model.Link, error) {
	var link models.Link
	err := DB.First(&link, id).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("link %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get link by id: %w", err)
	}

	return toGraphLink(&link), nil
}

func (s *LinkPostgresStorage) ListLinks(filter *string, skip, first *int, orderBy *model.LinkOrderByInput) ([]*model.Link, error) {
	query := applyFilter(DB.Model(&models.Link{}), filter)

	if orderBy != nil {
		switch {
		case orderBy.Description != nil:
			query = query.Order("description " + string(*orderBy.Description))
		case orderBy.URL != nil:
			query = query.Order("url " + string(*orderBy.URL))
		case orderBy.CreatedAt != nil:
			query = query.Order("created_at " + string(*orderBy.CreatedAt))
		}
	} else {
		query = query.Order("id asc")
	}

	if skip != nil {
		query = query.Offset(*skip)
	}
	if first != nil {
		query = query.Limit(*first)
	}

	var links []models.Link
	err := query.Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("could not get links: %w", err)
	}

	results := make([]*model.Link, 0, len(links))
	for i := range links {
		results = append(results, toGraphLink(&links[i]))
	}

	return results, nil
}

// CountLinks игнорирует skip/first - счетчик не зависит от пагинации
func (s *LinkPostgresStorage) CountLinks(filter *string) (int, error) {
	var count int
	err := applyFilter(DB.Model(&models.Link{}), filter).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count links: %w", err)
	}

	return count, nil
}

func (s *LinkPostgresStorage) UpdateLink(ctx context.Context, id, url, description string) (*model.Link, error) {
	// проверяется только наличие авторизации, не владение ссылкой
	_, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	var link models.Link
	err = DB.First(&link, id).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("link %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get link by id: %w", err)
	}

	link.URL = url
	link.Description = description
	err = DB.Save(&link).Error
	if err != nil {
		return nil, fmt.Errorf("could not update link: %w", err)
	}

	return toGraphLink(&link), nil
}

func (s *LinkPostgresStorage) DeleteLink(ctx context.Context, id string) (*model.Link, error) {
	// проверяется только наличие авторизации, не владение ссылкой
	_, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	var link models.Link
	err = DB.First(&link, id).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("link %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get link by id: %w", err)
	}

	err = DB.Delete(&models.Link{}, "id = ?", link.ID).Error
	if err != nil {
		return nil, fmt.Errorf("could not delete link: %w", err)
	}

	return toGraphLink(&link), nil
}

func (s *LinkPostgresStorage) GetLinksByUserID(userID string) ([]*model.Link, error) {
	var links []models.Link
	err := DB.Where("user_id = ?", userID).Order("id asc").Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("could not get links by user: %w", err)
	}

	results := make([]*model.Link, 0, len(links))
	for i := range links {
		results = append(results, toGraphLink(&links[i]))
	}

	return results, nil
}

// applyFilter - подстрока ищется в description ИЛИ url
func applyFilter(query *gorm.DB, filter *string) *gorm.DB {
	if filter == nil {
		return query
	}
	pattern := "%" + *filter + "%"
	return query.Where("description LIKE ? OR url LIKE ?", pattern, pattern)
}

func toGraphLink(link *models.Link) *model.Link {
	result := &model.Link{
		ID:          fmt.Sprint(link.ID),
		CreatedAt:   link.CreatedAt.Format(time.RFC3339),
		Description: link.Description,
		URL:         link.URL,
	}
	if link.UserID != nil {
		postedBy := fmt.Sprint(*link.UserID)
		result.PostedByID = &postedBy
	}
	return result
}
