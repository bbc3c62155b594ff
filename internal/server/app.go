// Package server wires configuration, storage, services and the HTTP
// transport into a runnable application.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/auth"
	"github.com/dmitrijs2005/gophblog/internal/server/config"
	gs "github.com/dmitrijs2005/gophblog/internal/server/grpc"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophblog/internal/server/rest"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const healthCheckInterval = 10 * time.Second

// runner is a listener started by App.Run; it returns once ctx is done.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	repos   repomanager.RepositoryManager
	servers []runner
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher, err := auth.NewHasher(cfg.PasswordHasher)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, weak := hasher.(auth.SHA256Hasher); weak {
		logger.Warn(context.Background(), "passwords are stored as unsalted SHA-256; consider password_hasher=bcrypt")
	}

	repos := repomanager.NewPostgresRepositoryManager()
	tokens := auth.NewTokenManager([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)

	us := services.NewUserService(db, repos, hasher, tokens, logger)
	ps := services.NewPostService(db, repos, logger)

	servers := []runner{
		rest.NewServer(cfg.EndpointAddrHTTP, logger, us, ps, rest.WithCORS(cfg.CORSAllowedOrigins)),
	}
	if cfg.EndpointAddrGRPC != "" {
		servers = append(servers, gs.NewHealthServer(cfg.EndpointAddrGRPC, logger, db, healthCheckInterval))
	}

	return &App{config: cfg, logger: logger, db: db, repos: repos, servers: servers}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run migrates the schema, serves until ctx is cancelled, a termination
// signal arrives or one server fails, and closes the database. A failing
// server stops the others.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "closing db", "error", err.Error())
		}
	}()

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err.Error())
		return err
	}

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for _, srv := range app.servers {
		wg.Add(1)
		go func(srv runner) {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil {
				app.logger.Error(ctx, "server stopped", "error", err.Error())
				once.Do(func() { firstErr = err })
				cancelFunc()
			}
		}(srv)
	}
	wg.Wait()

	app.logger.Info(ctx, "App stopped")
	return firstErr
}
