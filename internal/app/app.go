package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lillringan/Ordersystem/internal/config"
	router "github.com/lillringan/Ordersystem/internal/http"
	"github.com/lillringan/Ordersystem/internal/service"
	"github.com/lillringan/Ordersystem/internal/storage"
	"github.com/lillringan/Ordersystem/pkg/postgres"
)

const defaultAddr = "localhost:8080"

type App struct {
	httpServer *http.Server
	addr       string
	database   *postgres.Postgres
	log        *slog.Logger
}

func NewApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.DBURL == "" {
		return nil, errors.New("database url cannot be empty")
	}

	database, err := postgres.New(ctx, cfg.DBURL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	if err := storage.RunMigrations(ctx, database.DB, log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	userStorage, err := storage.NewUserStorage(database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user storage: %w", err)
	}
	teamStorage, err := storage.NewTeamStorage(database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create team storage: %w", err)
	}
	workItemStorage, err := storage.NewWorkItemStorage(database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create work item storage: %w", err)
	}
	issueStorage, err := storage.NewIssueStorage(database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue storage: %w", err)
	}
	txManager, err := storage.NewTxManager(database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create tx manager: %w", err)
	}

	userService, err := service.NewUserService(txManager, userStorage, userStorage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	teamService, err := service.NewTeamService(txManager, teamStorage, userStorage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create team service: %w", err)
	}
	workItemService, err := service.NewWorkItemService(workItemStorage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create work item service: %w", err)
	}
	issueService, err := service.NewIssueService(txManager, issueStorage, workItemStorage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue service: %w", err)
	}

	handler, err := router.NewRouter(userService, teamService, workItemService, issueService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Timeout,
		ReadTimeout:       cfg.Timeout,
		WriteTimeout:      cfg.Timeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return &App{
		httpServer: httpServer,
		addr:       cfg.Addr,
		database:   database,
		log:        log,
	}, nil
}

func (a *App) Run() error {
	a.log.Info("starting http server", slog.String("addr", a.addr))
	return a.httpServer.ListenAndServe()
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Error("failed to run http server", slog.Any("error", err))
		panic(err)
	}
}

func (a *App) Close(ctx context.Context) {
	a.log.Info("trying to shutdown server")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Warn("failed to close http server", slog.Any("error", err))
	}
	a.database.Close()
}
