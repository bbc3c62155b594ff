// Package services holds the use cases behind the REST endpoints: user
// registration and management, login, bearer identity resolution and post
// management. Services talk to storage only through a RepositoryManager.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/auth"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

// TokenManager issues access tokens for a subject and verifies them back to
// that subject. *auth.TokenManager implements it.
type TokenManager interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.Hasher
	tokens      TokenManager
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.Hasher, tokens TokenManager, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "users"),
	}
}

// Register stores a new credential. A taken name yields
// common.ErrDuplicateName and leaves the existing row untouched.
func (s *UserService) Register(ctx context.Context, userName, password string) (*models.User, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{UserName: userName, PasswordHash: digest})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return list, nil
}

// Update renames the user and replaces the password. Only the user itself
// may do that.
func (s *UserService) Update(ctx context.Context, actor *models.User, userID int64, userName, password string) (*models.User, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repomanager.Users(s.db).Update(ctx, &models.User{ID: userID, UserName: userName, PasswordHash: digest})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info(ctx, "user updated", "user_id", u.ID)
	return u, nil
}

// Delete removes the user together with all of their posts in one
// transaction.
func (s *UserService) Delete(ctx context.Context, actor *models.User, userID int64) error {
	if err := authorize(actor, userID); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Posts(tx).DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete posts: %w", err)
		}
		if err := s.repomanager.Users(tx).Delete(ctx, userID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "user deleted", "user_id", userID)
	return nil
}

// Login checks the credentials and returns a fresh access token. An unknown
// name and a wrong password fail the same way.
func (s *UserService) Login(ctx context.Context, userName, password string) (string, error) {
	u, err := s.repomanager.Users(s.db).GetByName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrAuthenticationFailed
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		s.logger.Debug(ctx, "password mismatch", "user_id", u.ID)
		return "", common.ErrAuthenticationFailed
	}

	token, err := s.tokens.Issue(u.UserName)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Resolve maps a bearer token to the stored user it names. The user must
// still exist under that name, so renamed or deleted users lose access at
// once.
func (s *UserService) Resolve(ctx context.Context, token string) (*models.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "reason", err.Error())
		return nil, err
	}

	u, err := s.repomanager.Users(s.db).GetByName(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

// Current returns the name of the user the token belongs to.
func (s *UserService) Current(ctx context.Context, token string) (string, error) {
	u, err := s.Resolve(ctx, token)
	if err != nil {
		return "", err
	}
	return u.UserName, nil
}

func authorize(actor *models.User, userID int64) error {
	if actor == nil {
		return common.ErrInvalidCredentials
	}
	if actor.ID != userID {
		return common.ErrForbidden
	}
	return nil
}
