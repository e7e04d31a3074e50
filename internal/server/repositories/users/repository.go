package users

import (
	"context"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

type Repository interface {
	// Create inserts user and returns the stored row without its hash.
	// A taken username yields an already-exists error.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	// GetByUsername returns the full row, password hash included.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// List returns every user ordered by username, without hashes.
	List(ctx context.Context) ([]*models.User, error)
}
