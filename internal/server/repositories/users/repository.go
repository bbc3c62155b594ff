// Package users stores credentials.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// Repository is the credential store. Lookups that find nothing return
// common.ErrorNotFound; creating or renaming onto a taken name returns
// common.ErrDuplicateName.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	GetByName(ctx context.Context, userName string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}
