package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/pestlead/leadquote/internal/http"
	"github.com/pestlead/leadquote/internal/domain"
	"github.com/pestlead/leadquote/internal/service"
	"github.com/pestlead/leadquote/internal/store"
	"github.com/pestlead/leadquote/internal/store/drivers/sqlite"
	"github.com/pestlead/leadquote/internal/upload"
	"github.com/pestlead/leadquote/pkg/cryptox"
	"github.com/pestlead/leadquote/pkg/idx"
	"github.com/pestlead/leadquote/pkg/jwtx"
	"github.com/pestlead/leadquote/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.HS256

	authService *service.AuthService
	userService *service.UserService
	uploader    *upload.Cloudinary

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "leadquote-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	signer, err := jwtx.NewHS256([]byte(cfg.JWTSecret), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()

	if err := app.seedAdmin(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:      app.db,
		Signer:     app.signer,
		Issuer:     app.cfg.Issuer,
		SessionTTL: app.cfg.SessionTTL,
	}
	app.userService = &service.UserService{
		Store:                    app.db,
		DefaultProfilePictureURL: app.cfg.DefaultProfilePictureURL,
	}
	app.uploader = &upload.Cloudinary{
		CloudName: app.cfg.CloudinaryCloudName,
		APIKey:    app.cfg.CloudinaryAPIKey,
		APISecret: app.cfg.CloudinaryAPISecret,
	}
}

// seedAdmin creates an active admin account from ADMIN_EMAIL/ADMIN_PASSWORD
// on first start. Without it a fresh database has nobody who can mint users.
func (app *Application) seedAdmin(ctx context.Context) error {
	if app.cfg.AdminEmail == "" || app.cfg.AdminPassword == "" {
		return nil
	}

	if _, err := app.db.Users().GetUserByEmail(ctx, app.cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := cryptox.HashPassword(app.cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := domain.User{
		ID:                idx.New().String(),
		FullName:          "Administrator",
		Email:             domain.NormalizeEmail(app.cfg.AdminEmail),
		Role:              domain.RoleAdmin,
		IsActive:          true,
		PasswordHash:      hash,
		ProfilePictureURL: app.cfg.DefaultProfilePictureURL,
	}
	if _, err := app.db.Users().CreateUser(ctx, admin); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	app.logger.Info("seed admin account created", "email", admin.Email)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.signer, BuildVersion, app.db, app.logger)
	router.AuthService = app.authService
	router.UserService = app.userService
	router.Uploader = app.uploader
	router.SessionTTL = app.cfg.SessionTTL
	router.SecureCookies = app.cfg.Env == "prod"
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
