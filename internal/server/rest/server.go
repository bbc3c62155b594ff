// Package rest exposes the blog over HTTP/JSON using gin.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// userSvc is the part of services.UserService the handlers use.
type userSvc interface {
	Register(ctx context.Context, userName, password string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, actor *models.User, userID int64, userName, password string) (*models.User, error)
	Delete(ctx context.Context, actor *models.User, userID int64) error
	Login(ctx context.Context, userName, password string) (string, error)
	Resolve(ctx context.Context, token string) (*models.User, error)
}

type postSvc interface {
	List(ctx context.Context, userID int64) ([]models.Post, error)
	Create(ctx context.Context, actor *models.User, userID int64, contents string) (*models.Post, error)
	Update(ctx context.Context, actor *models.User, userID, postID int64, contents string) (*models.Post, error)
	Delete(ctx context.Context, actor *models.User, userID, postID int64) error
}

const shutdownTimeout = 10 * time.Second

type Server struct {
	address     string
	logger      logging.Logger
	users       userSvc
	posts       postSvc
	corsOrigins []string
	engine      *gin.Engine
}

type Option func(*Server)

// WithCORS enables the CORS middleware for origins; "*" allows any origin.
func WithCORS(origins []string) Option {
	return func(s *Server) { s.corsOrigins = origins }
}

func NewServer(address string, l logging.Logger, us userSvc, ps postSvc, opts ...Option) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		posts:   ps,
	}
	for _, o := range opts {
		o(s)
	}
	s.engine = s.routes()
	return s
}

// Handler returns the configured gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	if mw := corsMiddleware(s.corsOrigins); mw != nil {
		r.Use(mw)
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health", handleHealth)

	r.POST("/users", s.createUser)
	r.GET("/users", s.listUsers)
	r.PUT("/users/:id", s.requireIdentity(), s.updateUser)
	r.DELETE("/users/:id", s.requireIdentity(), s.deleteUser)

	r.POST("/token", s.login)
	r.GET("/get-current-user", s.requireIdentity(), s.currentUser)

	r.GET("/users/:id/posts", s.listPosts)
	r.POST("/users/:id/posts", s.requireIdentity(), s.createPost)
	r.PUT("/users/:id/posts/:post_id", s.requireIdentity(), s.updatePost)
	r.DELETE("/users/:id/posts/:post_id", s.requireIdentity(), s.deletePost)

	return r
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
