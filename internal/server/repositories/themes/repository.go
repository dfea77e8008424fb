package themes

import (
	"context"

	"github.com/dmitrijs2005/edora/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Theme, error)
	Get(ctx context.Context, id int64) (*models.Theme, error)
	Create(ctx context.Context, theme *models.Theme) (*models.Theme, error)
	Update(ctx context.Context, theme *models.Theme) error
	Delete(ctx context.Context, id int64) error
}
