// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login (minting session tokens),
// and looking up the current user for protected requests.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dzavadskis/minimart/internal/common"
	"github.com/dzavadskis/minimart/internal/dbx"
	"github.com/dzavadskis/minimart/internal/server/auth"
	"github.com/dzavadskis/minimart/internal/server/config"
	"github.com/dzavadskis/minimart/internal/server/models"
	"github.com/dzavadskis/minimart/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: hash the password and create the user
// - Login: verify credentials and mint a session token
// - GetByUsername: resolve a token subject back to a user record
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// TokenTTL returns the configured session token lifetime. The transport
// derives the cookie MaxAge from this value so token and cookie expiry
// cannot drift apart.
func (s *UserService) TokenTTL() time.Duration {
	return s.accessTokenValidityDuration
}

// Register hashes the password and creates a new user. The plaintext is not
// retained after hashing. The existence check and the insert run in one
// transaction; the unique indexes remain the backstop for concurrent
// registrations, so a duplicate username yields common.ErrUsernameTaken and
// a duplicate email common.ErrEmailTaken either way.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		if _, err := repo.GetByUsername(ctx, username); err == nil {
			return common.ErrUsernameTaken
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		created, err := repo.Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) || errors.Is(err, common.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login verifies the provided password against the stored hash and, on
// success, returns a signed session token bound to the username.
// An unknown username and a wrong password both yield
// common.ErrorUnauthorized, so callers cannot probe which usernames exist.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Username, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// GetByUsername returns the user record for a verified token subject.
// When the subject no longer maps to a user (deleted account), it returns
// common.ErrorNotFound.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}
