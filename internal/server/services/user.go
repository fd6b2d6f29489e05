// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential checks, and the
// session lifecycle on top of the expiring token store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LeadConsult/alx-files-manager/internal/common"
	"github.com/LeadConsult/alx-files-manager/internal/server/models"
	"github.com/LeadConsult/alx-files-manager/internal/server/repositories/repomanager"
	"github.com/LeadConsult/alx-files-manager/internal/server/sessions"
	"golang.org/x/crypto/bcrypt"
)

// UserService provides authentication-related operations:
// - Register: create users
// - Authenticate: verify an email/password pair
// - Connect / Disconnect: issue and revoke session tokens
// - Identify: turn a bearer token into a verified user
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    sessions.Store
}

// NewUserService constructs a UserService using repositories and the
// session store.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, s sessions.Store) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		sessions:    s,
	}
}

// Register creates a new user with the given email and password. A second
// registration with the same email fails with ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{Email: email, PasswordHash: string(hash)}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("%w: creating user: %v", common.ErrorTransientStorage, err)
	}
	return u, nil
}

// Authenticate verifies the email/password pair and returns the user.
// A missing user and a wrong password both yield ErrorUnauthorized; the
// caller cannot tell which check failed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: loading user: %v", common.ErrorTransientStorage, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// Connect authenticates the pair and issues a session token.
func (s *UserService) Connect(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.sessions.Issue(ctx, user.ID)
}

// Disconnect revokes the session token. An unknown or already-revoked
// token is ErrorUnauthorized.
func (s *UserService) Disconnect(ctx context.Context, token string) error {
	ok, err := s.sessions.Revoke(ctx, token)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorUnauthorized
	}
	return nil
}

// Identify resolves the token to its user. Absent/expired tokens and
// vanished users are all ErrorUnauthorized.
func (s *UserService) Identify(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: loading user: %v", common.ErrorTransientStorage, err)
	}
	return user, nil
}
