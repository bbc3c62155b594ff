// Package memory keeps users and posts in process memory. It backs the
// end-to-end handler tests and local runs without PostgreSQL, and follows
// the same error contract as the PostgreSQL repositories.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/posts"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/users"
)

var _ repomanager.RepositoryManager = (*Manager)(nil)

type store struct {
	mu         sync.RWMutex
	users      map[int64]models.User
	posts      map[int64]models.Post
	nextUserID int64
	nextPostID int64
}

// Manager hands out repositories sharing one store. The DBTX argument is
// ignored, so transactions are not isolated.
type Manager struct {
	s *store
}

func NewManager() *Manager {
	return &Manager{s: &store{
		users: map[int64]models.User{},
		posts: map[int64]models.Post{},
	}}
}

func (m *Manager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *Manager) Users(dbx.DBTX) users.Repository { return &UserRepository{s: m.s} }

func (m *Manager) Posts(dbx.DBTX) posts.Repository { return &PostRepository{s: m.s} }
