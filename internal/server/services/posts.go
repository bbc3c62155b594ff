package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

// PostService manages posts. Reading is open to everyone; writing requires
// the actor to own the path's user id.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *PostService {
	return &PostService{db: db, repomanager: m, logger: logger.With("module", "posts")}
}

// List returns the user's posts; an unknown user has none.
func (s *PostService) List(ctx context.Context, userID int64) ([]models.Post, error) {
	list, err := s.repomanager.Posts(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return list, nil
}

func (s *PostService) Create(ctx context.Context, actor *models.User, userID int64, contents string) (*models.Post, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}

	p, err := s.repomanager.Posts(s.db).Create(ctx, &models.Post{UserID: userID, Contents: contents})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.logger.Info(ctx, "post created", "user_id", userID, "post_id", p.ID)
	return p, nil
}

// Update replaces the contents of the post; id and owner never change. The
// post is looked up by (owner, id) first, so another user's post is not found.
func (s *PostService) Update(ctx context.Context, actor *models.User, userID, postID int64, contents string) (*models.Post, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Posts(s.db)
	if _, err := repo.Get(ctx, userID, postID); err != nil {
		return nil, fmt.Errorf("update post %d: %w", postID, err)
	}

	p, err := repo.Update(ctx, &models.Post{ID: postID, UserID: userID, Contents: contents})
	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", postID, err)
	}
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, actor *models.User, userID, postID int64) error {
	if err := authorize(actor, userID); err != nil {
		return err
	}

	repo := s.repomanager.Posts(s.db)
	if _, err := repo.Get(ctx, userID, postID); err != nil {
		return fmt.Errorf("delete post %d: %w", postID, err)
	}

	if err := repo.Delete(ctx, userID, postID); err != nil {
		return fmt.Errorf("delete post %d: %w", postID, err)
	}

	s.logger.Info(ctx, "post deleted", "user_id", userID, "post_id", postID)
	return nil
}
