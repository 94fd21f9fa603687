package link

import (
	"context"

	"github.com/VitaminP8/linkery/graph/model"
)

type LinkStorage interface {
	CreateLink(ctx context.Context, url, description string) (*model.Link, error)
	GetLinkByID(id string) (*model.Link, error)
	// ListLinks выполняет запрос заново при каждом вызове (fltr - подстрока в description ИЛИ url)
	ListLinks(filter *string, skip, first *int, orderBy *model.LinkOrderByInput) ([]*model.Link, error)
	// CountLinks игнорирует skip/first - пагинация не искажает счетчик
	CountLinks(filter *string) (int, error)
	UpdateLink(ctx context.Context, id, url, description string) (*model.Link, error)
	DeleteLink(ctx context.Context, id string) (*model.Link, error)
	GetLinksByUserID(userID string) ([]*model.Link, error)
}
