package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Dinnartec/core-dashboard-web/internal/config"
	"github.com/Dinnartec/core-dashboard-web/internal/domain/entities"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/datasources/postgres"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/oauth"
	"github.com/Dinnartec/core-dashboard-web/internal/infrastructure/repositories"
	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/handlers"
	"github.com/Dinnartec/core-dashboard-web/internal/interfaces/http/middleware"
	"github.com/Dinnartec/core-dashboard-web/internal/usecases"
	"github.com/Dinnartec/core-dashboard-web/pkg/crypto"
	"github.com/Dinnartec/core-dashboard-web/pkg/jwt"
	"github.com/Dinnartec/core-dashboard-web/pkg/logger"
	"github.com/Dinnartec/core-dashboard-web/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv      = godotenv.Load
	loadCfg         = config.Load
	initLog         = logger.Init
	initRedis       = redis.Init
	openDB          = postgres.NewConnection
	migrateDB       = postgres.Migrate
	newSessionStore = redis.NewSessionStore
	runServer       = func(ctx context.Context, srv *http.Server) error {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := validateConfig(cfg); err != nil {
		return err
	}
	if len(cfg.Auth.AllowedEmails) == 0 {
		logger.Warn(ctx, "ALLOWED_EMAILS is empty, every sign-in will be refused")
	}

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := migrateDB(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info(ctx, "Database ready", zap.String("driver", cfg.Database.Driver))

	sessionStore, err := newSessionStore(cfg.Session.Secret)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	signingKey, err := crypto.DeriveKey(cfg.Session.Secret, crypto.PurposeTokenSigning)
	if err != nil {
		return fmt.Errorf("failed to derive signing key: %w", err)
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := buildRouter(runCtx, cfg, db, sessionStore, jwt.NewJWTService(signingKey, cfg.Session.TTL))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info(ctx, "Core dashboard API starting",
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(r.Routes())),
	)
	if err := runServer(runCtx, srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}

func validateConfig(cfg *config.Config) error {
	if !entities.RoleName(cfg.Auth.DefaultRole).Valid() {
		return fmt.Errorf("invalid DEFAULT_ROLE %q", cfg.Auth.DefaultRole)
	}
	if cfg.Server.Env == "production" {
		if cfg.Session.Secret == "" || cfg.Session.Secret == "change-this-in-production" {
			return errors.New("SESSION_SECRET must be set in production")
		}
		if cfg.Auth.GitHubClientID == "" || cfg.Auth.GitHubClientSecret == "" {
			return errors.New("GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET must be set in production")
		}
	}
	return nil
}

// buildRouter wires repositories, usecases and handlers onto a gin engine.
// Background work started here ends with ctx.
func buildRouter(ctx context.Context, cfg *config.Config, db *gorm.DB, sessionStore *redis.SessionStore, jwtService *jwt.JWTService) *gin.Engine {
	roleRepo := repositories.NewRoleRepository(db)
	verticalRepo := repositories.NewVerticalRepository(db)
	statusRepo := repositories.NewStatusRepository(db)
	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	projectRepoRepo := repositories.NewProjectRepoRepository(db)
	linkRepo := repositories.NewProjectLinkRepository(db)
	teamRepo := repositories.NewTeamMemberRepository(db)
	uow := repositories.NewUnitOfWork(db)

	provider := oauth.NewGitHubProvider(oauth.Options{
		ClientID:     cfg.Auth.GitHubClientID,
		ClientSecret: cfg.Auth.GitHubClientSecret,
		RedirectURL:  cfg.Auth.GitHubRedirectURL,
	})

	authUsecase := usecases.NewAuthUsecase(
		provider,
		redis.NewStateStore(cfg.Auth.StateTTL),
		sessionStore,
		jwtService,
		userRepo,
		roleRepo,
		usecases.AuthOptions{
			IsAllowed:   cfg.Auth.IsAllowed,
			DefaultRole: entities.RoleName(cfg.Auth.DefaultRole),
		},
	)
	projectUsecase := usecases.NewProjectUsecase(projectRepo, verticalRepo, statusRepo)
	childrenUsecase := usecases.NewProjectChildrenUsecase(projectRepo, projectRepoRepo, linkRepo, teamRepo, userRepo, uow)
	userUsecase := usecases.NewUserUsecase(userRepo, roleRepo)
	referenceUsecase := usecases.NewReferenceUsecase(verticalRepo, statusRepo, roleRepo)
	dashboardUsecase := usecases.NewDashboardUsecase(projectRepo, verticalRepo)

	metrics := middleware.NewMetrics("core_dashboard")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware("/health", "/metrics"))
	r.Use(metrics.Middleware())

	applyCORSMiddleware(r, cfg.HTTP.CORSOrigins)
	registerHealthRoute(r)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	registerRoutes(r, routeDeps{
		authHandler: handlers.NewAuthHandler(authUsecase,
			handlers.CookieOptions{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure},
			handlers.AuthRedirects{AfterLogin: cfg.Auth.AfterLoginURL, Login: cfg.Auth.LoginURL},
		),
		projectHandler:   handlers.NewProjectHandler(projectUsecase),
		childrenHandler:  handlers.NewProjectChildrenHandler(childrenUsecase),
		userHandler:      handlers.NewUserHandler(userUsecase),
		referenceHandler: handlers.NewReferenceHandler(referenceUsecase),
		dashboardHandler: handlers.NewDashboardHandler(dashboardUsecase),
		sessionAuth:      middleware.SessionAuth(authUsecase, cfg.Session.CookieName),
		authRateLimit:    middleware.NewRateLimiter(ctx, cfg.HTTP.AuthRateLimit, cfg.HTTP.AuthRateBurst).Middleware(),
	})
	return r
}
