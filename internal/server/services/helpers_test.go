package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/auth"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/memory"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/posts"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/users"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

const testSecret = "test-secret"

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
		_ = db.Close()
	})
	return db, mock
}

type fixture struct {
	db    *sql.DB
	mock  sqlmock.Sqlmock
	repos *memory.Manager
	users *UserService
	posts *PostService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock := newSQLMockDB(t)
	repos := memory.NewManager()
	tokens := auth.NewTokenManager([]byte(testSecret), 30*time.Minute)
	return &fixture{
		db:    db,
		mock:  mock,
		repos: repos,
		users: NewUserService(db, repos, auth.SHA256Hasher{}, tokens, nopLogger{}),
		posts: NewPostService(db, repos, nopLogger{}),
	}
}

func (f *fixture) register(t *testing.T, name, password string) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), name, password)
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return u
}

// failingManager wraps a real manager and lets a test break single
// repository calls.
type failingManager struct {
	*memory.Manager
	users users.Repository
	posts posts.Repository
}

func (m *failingManager) Users(db dbx.DBTX) users.Repository {
	if m.users != nil {
		return m.users
	}
	return m.Manager.Users(db)
}

func (m *failingManager) Posts(db dbx.DBTX) posts.Repository {
	if m.posts != nil {
		return m.posts
	}
	return m.Manager.Posts(db)
}

type brokenUsers struct {
	users.Repository
	err error
}

func (b brokenUsers) GetByName(context.Context, string) (*models.User, error) { return nil, b.err }
func (b brokenUsers) Delete(context.Context, int64) error                     { return b.err }

type brokenPosts struct {
	posts.Repository
	err error
}

func (b brokenPosts) DeleteByUser(context.Context, int64) error { return b.err }
func (b brokenPosts) Get(context.Context, int64, int64) (*models.Post, error) {
	return nil, b.err
}
