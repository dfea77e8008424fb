package subjects

import (
	"context"

	"github.com/dmitrijs2005/edora/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Subject, error)
	Get(ctx context.Context, id int64) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
}
