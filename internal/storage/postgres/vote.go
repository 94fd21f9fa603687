package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/VitaminP8/linkery/graph/model"
	"github.com/VitaminP8/linkery/internal/apperr"
	"github.com/VitaminP8/linkery/internal/auth"
	"github.com/VitaminP8/linkery/models"
	"github.com/jinzhu/gorm"
)

type VotePostgresStorage struct{}

func NewVotePostgresStorage() *VotePostgresStorage {
	return &VotePostgresStorage{}
}

// CreateVote не проверяет дубликаты - это делает резолвер через HasVote
func (s *VotePostgresStorage) CreateVote(ctx context.Context, linkID string) (*model.Vote, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	linkIDInt, err := strconv.Atoi(linkID)
	if err != nil {
		return nil, fmt.Errorf("invalid link ID: %w", err)
	}

	// проверяем что ссылка существует
	var link models.Link
	err = DB.First(&link, linkIDInt).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("link %s: %w", linkID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get link by id: %w", err)
	}

	vote := &models.Vote{
		LinkID: uint(linkIDInt),
		UserID: userID,
	}

	err = DB.Create(vote).Error
	if err != nil {
		return nil, fmt.Errorf("could not create vote: %w", err)
	}

	return toGraphVote(vote), nil
}

func (s *VotePostgresStorage) HasVote(userID, linkID string) (bool, error) {
	var count int
	err := DB.Model(&models.Vote{}).Where("user_id = ? AND link_id = ?", userID, linkID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("could not check vote existence: %w", err)
	}

	return count > 0, nil
}

func (s *VotePostgresStorage) GetVoteByID(id string) (*model.Vote, error) {
	var vote models.Vote
	err := DB.First(&vote, id).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("vote %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get vote by id: %w", err)
	}

	return toGraphVote(&vote), nil
}

func (s *VotePostgresStorage) GetVotesByLinkID(linkID string) ([]*model.Vote, error) {
	var votes []models.Vote
	err := DB.Where("link_id = ?", linkID).Order("id asc").Find(&votes).Error
	if err != nil {
		return nil, fmt.Errorf("could not get votes by link: %w", err)
	}

	results := make([]*model.Vote, 0, len(votes))
	for i := range votes {
		results = append(results, toGraphVote(&votes[i]))
	}

	return results, nil
}

func (s *VotePostgresStorage) GetVotesByUserID(userID string) ([]*model.Vote, error) {
	var votes []models.Vote
	err := DB.Where("user_id = ?", userID).Order("id asc").Find(&votes).Error
	if err != nil {
		return nil, fmt.Errorf("could not get votes by user: %w", err)
	}

	results := make([]*model.Vote, 0, len(votes))
	for i := range votes {
		results = append(results, toGraphVote(&votes[i]))
	}

	return results, nil
}

func toGraphVote(vote *models.Vote) *model.Vote {
	return &model.Vote{
		ID:     fmt.Sprint(vote.ID),
		LinkID: fmt.Sprint(vote.LinkID),
		UserID: fmt.Sprint(vote.UserID),
	}
}
