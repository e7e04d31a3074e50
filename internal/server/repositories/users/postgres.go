// Package users provides the PostgreSQL-backed user repository.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, first_name, last_name, email, password, githublink, linkedinlink, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING username, first_name, last_name, email, githublink, linkedinlink, is_admin
		 `

	created := &models.User{}
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.GithubLink, user.LinkedinLink, user.IsAdmin,
	).Scan(&created.Username, &created.FirstName, &created.LastName, &created.Email,
		&created.GithubLink, &created.LinkedinLink, &created.IsAdmin)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.AlreadyExists("Username %s is already in use", user.Username)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT username, first_name, last_name, email, password, githublink, linkedinlink, is_admin
		 FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.Username, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash,
		&user.GithubLink, &user.LinkedinLink, &user.IsAdmin)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFound("No user: %s", username)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT username, first_name, last_name, email, githublink, linkedinlink, is_admin
		 FROM users
		 ORDER BY username
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email,
			&u.GithubLink, &u.LinkedinLink, &u.IsAdmin); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
