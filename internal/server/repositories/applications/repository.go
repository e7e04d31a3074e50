package applications

import (
	"context"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Application, error)
	GetByJobPostLink(ctx context.Context, link string) (*models.Application, error)
	Update(ctx context.Context, id int64, patch models.ApplicationPatch) (*models.Application, error)
	Delete(ctx context.Context, id int64) error
}
