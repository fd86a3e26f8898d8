package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"byteapi/cmd/internal/config"
	"byteapi/cmd/internal/domain/repository"
	"byteapi/cmd/internal/domain/sqlite"
	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/http/handler"
	httpmw "byteapi/cmd/internal/http/middleware"
	cognitoclient "byteapi/cmd/internal/infrastructure/aws/cognito"
	"byteapi/cmd/internal/infrastructure/aws/storage"
	"byteapi/cmd/internal/infrastructure/supabase"
	"byteapi/cmd/internal/routes"
	"byteapi/cmd/internal/service"
	"byteapi/cmd/internal/service/jobs"
	"byteapi/cmd/internal/utils"
	"byteapi/cmd/internal/utils/uid"
	"byteapi/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads env vars depending on environment
	if err := config.LoadEnv(ctx); err != nil {
		log.Fatalf("unable to load environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	log.SetLevel(logLevel(cfg.LogLevel))

	validate := validator.New()
	validators.Register(validate)

	if err = uid.Init(cfg.NodeID); err != nil {
		log.Fatalf("failed to initialize id generator: %v", err)
	}

	tableStore, err := newStore(cfg)
	if err != nil {
		log.Fatalf("failed to initialize %s store: %v", cfg.StoreDriver, err)
	}
	tableStore = store.WithTimeout(tableStore, cfg.StoreTimeout)

	provider, err := newIdentityProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize %s identity provider: %v", cfg.Auth.Provider, err)
	}

	auth := httpmw.NewAuthenticator(&httpmw.AuthMiddlewareConfig{
		Provider: provider,
		UserRepo: repository.NewUserRepository(tableStore),
	})

	// Getting handlers
	handlers := &routes.Handlers{
		Users:         handler.NewUserRoute(service.NewUserService(tableStore, validate)),
		TeamMembers:   handler.NewTeamMemberRoute(service.NewTeamMemberService(tableStore, validate)),
		Projects:      handler.NewProjectRoute(service.NewProjectService(tableStore, validate)),
		Events:        handler.NewEventRoute(service.NewEventService(tableStore, validate)),
		Announcements: handler.NewAnnouncementRoute(service.NewAnnouncementService(tableStore, validate)),
		ActivityLog:   handler.NewActivityLogRoute(service.NewActivityLogService(tableStore, validate)),
	}

	if cfg.UploadsEnabled() {
		s3Client, err := storage.NewStorageClient(ctx, cfg.Storage.Region, cfg.Storage.Bucket, cfg.Storage.PublicURL)
		if err != nil {
			log.Fatalf("failed to initialize S3 client: %v", err)
		}
		handlers.Uploads = handler.NewUploadRoute(service.NewUploadService(s3Client))
	}

	e := newServer(cfg)
	routes.Register(e, auth, handlers)

	if cfg.EventSweepInterval > 0 {
		go jobs.NewEventSweeper(tableStore, cfg.EventSweepInterval).Start(ctx)
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}

func newServer(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Logger.SetLevel(logLevel(cfg.LogLevel))

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	return e
}

func newStore(cfg *config.Config) (store.Store, error) {
	if cfg.StoreDriver == config.StoreSQLite {
		db, err := sqlite.Init(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Infof("using sqlite store at %s", cfg.SQLitePath)
		return sqlite.NewStore(db), nil
	}

	return supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.Key, cfg.Supabase.ServiceRoleKey, nil), nil
}

func newIdentityProvider(ctx context.Context, cfg *config.Config) (httpmw.IdentityProvider, error) {
	switch cfg.Auth.Provider {
	case config.AuthCognito:
		return cognitoclient.InitCognitoClient(ctx, cfg.Auth.CognitoRegion)
	case config.AuthJWT:
		if cfg.Auth.JWKSURL != "" {
			return utils.NewJWKSResolver(ctx, cfg.Auth.JWKSURL)
		}
		return utils.NewHMACResolver(cfg.Auth.JWTSecret)
	default:
		return supabase.NewAuthClient(cfg.Supabase.URL, cfg.Supabase.Key, nil), nil
	}
}

func logLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
