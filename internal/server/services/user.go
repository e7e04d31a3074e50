// Package services contains server-side business logic. This file implements
// UserService, which handles registration, authentication and issuing
// access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/server/auth"
	"github.com/dmitrijs2005/jobtracker/internal/server/config"
	"github.com/dmitrijs2005/jobtracker/internal/server/credentials"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/repomanager"
)

// RegisterUserInput is the data accepted by Register.
type RegisterUserInput struct {
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required"`
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	GithubLink   string `json:"githubLink" validate:"omitempty,url"`
	LinkedinLink string `json:"linkedinLink" validate:"omitempty,url"`
	IsAdmin      bool   `json:"isAdmin"`
}

// Session is the result of a successful Login.
type Session struct {
	User        *models.PublicUser
	AccessToken string
}

// UserService provides user operations:
//   - Register: create users with hashed passwords
//   - Authenticate / Login: check credentials and mint access tokens
//   - List / Get: read public user data
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	credentials                 credentials.Store
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration

	// dummyHash is verified against when the user does not exist.
	dummyHash string
}

// NewUserService constructs a UserService using repositories and server config.
// It hashes a dummy password up front so that every failed authentication
// costs exactly one comparison.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, store credentials.Store,
	logger logging.Logger, cfg *config.Config) *UserService {
	s := &UserService{
		db:                          db,
		repomanager:                 m,
		credentials:                 store,
		logger:                      logger.With("service", "users"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
	if h, err := store.Hash("jobtracker-dummy-password"); err == nil {
		s.dummyHash = h
	}
	return s
}

// Register validates in, hashes the password and stores the user. A taken
// username yields an already-exists error carrying the username.
//
// The password is hashed before the transaction opens. The existence
// check and the insert share a transaction, but two
// concurrent registrations of one username can both pass the check; the
// primary key then rejects the second insert, which the repository reports
// as already-exists as well.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*models.PublicUser, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	hash, err := s.credentials.Hash(in.Password)
	if err != nil {
		s.logger.Error(ctx, "registration failed", "username", in.Username, "error", err)
		return nil, err
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.Exists(ctx, in.Username)
		if err != nil {
			return err
		}
		if exists {
			return common.AlreadyExists("Username %s is already in use", in.Username)
		}

		created, err = repo.Create(ctx, &models.User{
			Username:     in.Username,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        in.Email,
			PasswordHash: hash,
			GithubLink:   in.GithubLink,
			LinkedinLink: in.LinkedinLink,
			IsAdmin:      in.IsAdmin,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Info(ctx, "registration rejected", "username", in.Username)
		} else {
			s.logger.Error(ctx, "registration failed", "username", in.Username, "error", err)
		}
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "username", created.Username, "admin", created.IsAdmin)
	return created.Public(), nil
}

// Authenticate checks username and password. An unknown user and a wrong
// password both yield common.ErrInvalidCredentials, and both cost one hash
// comparison.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.PublicUser, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = s.credentials.Verify(password, s.dummyHash)
			s.logger.Info(ctx, "authentication failed", "username", username)
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.credentials.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored hash unusable", "username", username, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !ok {
		s.logger.Info(ctx, "authentication failed", "username", username)
		return nil, common.ErrInvalidCredentials
	}

	return user.Public(), nil
}

// Login authenticates the user and mints an access token for them.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.Username, user.IsAdmin, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "user logged in", "username", user.Username)
	return &Session{User: user, AccessToken: token}, nil
}

// UserFromToken validates an access token issued by Login and returns the
// user it names. A user deleted since issue counts as an invalid token.
func (s *UserService) UserFromToken(ctx context.Context, token string) (*models.PublicUser, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	u, err := s.Get(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// List returns all users ordered by username.
func (s *UserService) List(ctx context.Context) ([]*models.PublicUser, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*models.PublicUser, 0, len(users))
	for _, u := range users {
		result = append(result, u.Public())
	}
	return result, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*models.PublicUser, error) {
	u, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.Public(), nil
}
