package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/repomanager"
)

// CreateApplicationInput is the data accepted by ApplicationService.Create.
// A zero DateOfApplication means today.
type CreateApplicationInput struct {
	Role              string    `json:"role" validate:"required"`
	CompanyName       string    `json:"companyName" validate:"required"`
	JobPostLink       string    `json:"jobPostLink" validate:"required"`
	Location          string    `json:"location"`
	DateOfApplication time.Time `json:"dateOfApplication"`
	Status            string    `json:"status"`
	UserID            string    `json:"userId" validate:"required"`
}

type ApplicationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewApplicationService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ApplicationService {
	return &ApplicationService{
		db:          db,
		repomanager: m,
		logger:      logger.With("service", "applications"),
		now:         time.Now,
	}
}

func (s *ApplicationService) Create(ctx context.Context, in CreateApplicationInput) (*models.Application, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	applied := in.DateOfApplication
	if applied.IsZero() {
		y, m, d := s.now().Date()
		applied = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	app, err := s.repomanager.Applications(s.db).Create(ctx, &models.Application{
		Role:              in.Role,
		CompanyName:       in.CompanyName,
		JobPostLink:       in.JobPostLink,
		Location:          in.Location,
		DateOfApplication: applied,
		Status:            in.Status,
		UserID:            in.UserID,
	})
	if err != nil {
		s.logFailure(ctx, "create application failed", err, "user", in.UserID)
		return nil, err
	}

	s.logger.Info(ctx, "application created", "id", app.ID, "user", app.UserID)
	return app, nil
}

// List returns the applications of userID in creation order. An unknown
// user simply has none.
func (s *ApplicationService) List(ctx context.Context, userID string) ([]*models.Application, error) {
	return s.repomanager.Applications(s.db).ListByUser(ctx, userID)
}

// Get returns the earliest application recorded for jobPostLink.
func (s *ApplicationService) Get(ctx context.Context, jobPostLink string) (*models.Application, error) {
	return s.repomanager.Applications(s.db).GetByJobPostLink(ctx, jobPostLink)
}

// Update changes only the fields set in patch and returns the stored row.
func (s *ApplicationService) Update(ctx context.Context, id int64, patch models.ApplicationPatch) (*models.Application, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	app, err := s.repomanager.Applications(s.db).Update(ctx, id, patch)
	if err != nil {
		s.logFailure(ctx, "update application failed", err, "id", id)
		return nil, err
	}
	s.logger.Info(ctx, "application updated", "id", id, "fields", len(patch.Fields()))
	return app, nil
}

func (s *ApplicationService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Applications(s.db).Delete(ctx, id); err != nil {
		s.logFailure(ctx, "delete application failed", err, "id", id)
		return err
	}
	s.logger.Info(ctx, "application deleted", "id", id)
	return nil
}

// logFailure logs domain rejections at warn and everything else at error.
func (s *ApplicationService) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	var de *common.Error
	if errors.As(err, &de) && de.Kind != common.KindInternal {
		s.logger.Warn(ctx, msg, args...)
		return
	}
	s.logger.Error(ctx, msg, args...)
}
