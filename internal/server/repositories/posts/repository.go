// Package posts stores blog posts.
package posts

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// Repository is the post store. Writes address a post by (owner, post id)
// so a post is never reachable through another user.
type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Post, error)
	Get(ctx context.Context, userID, postID int64) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) (*models.Post, error)
	Delete(ctx context.Context, userID, postID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}
