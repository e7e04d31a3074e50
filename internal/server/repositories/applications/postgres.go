// Package applications provides the PostgreSQL-backed job application
// repository.
package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

const columns = `id, role, company_name, jobpostlink, location, dateofapplication, status, user_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(s scanner) (*models.Application, error) {
	a := &models.Application{}
	err := s.Scan(&a.ID, &a.Role, &a.CompanyName, &a.JobPostLink, &a.Location,
		&a.DateOfApplication, &a.Status, &a.UserID)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// PostgresRepository implements Repository over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts app and returns the stored row with its generated id.
// An unknown owner is reported as not-found.
func (r *PostgresRepository) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	query :=
		`INSERT INTO applications (role, company_name, jobpostlink, location, dateofapplication, status, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING ` + columns

	created, err := scanApplication(r.db.QueryRowContext(ctx, query,
		app.Role, app.CompanyName, app.JobPostLink, app.Location,
		app.DateOfApplication, app.Status, app.UserID))
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.NotFound("No user: %s", app.UserID)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

// ListByUser returns the applications owned by userID in insertion order.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Application, error) {
	query := `SELECT ` + columns + ` FROM applications WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// GetByJobPostLink returns the oldest application with the given link.
func (r *PostgresRepository) GetByJobPostLink(ctx context.Context, link string) (*models.Application, error) {
	query := `SELECT ` + columns + ` FROM applications WHERE jobpostlink = $1 ORDER BY id LIMIT 1`

	a, err := scanApplication(r.db.QueryRowContext(ctx, query, link))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFound("No application: %s", link)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

// Update applies the supplied fields of patch to application id and
// returns the full row as stored afterwards.
func (r *PostgresRepository) Update(ctx context.Context, id int64, patch models.ApplicationPatch) (*models.Application, error) {
	set, err := dbx.PartialUpdate(patch.Fields(), models.ApplicationColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE applications SET %s WHERE id = $%d RETURNING %s`,
		set.SQL(), set.NextParam(), columns)
	args := append(set.Values, id)

	a, err := scanApplication(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFound("No application: %d", id)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.NotFound("No application: %d", id)
	}
	return nil
}
