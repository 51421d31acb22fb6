// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Vimal-ZP/Tracker-sub002/internal/activity"
	"github.com/Vimal-ZP/Tracker-sub002/internal/admin"
	"github.com/Vimal-ZP/Tracker-sub002/internal/application"
	"github.com/Vimal-ZP/Tracker-sub002/internal/auth"
	"github.com/Vimal-ZP/Tracker-sub002/internal/config"
	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
	"github.com/Vimal-ZP/Tracker-sub002/internal/email"
	"github.com/Vimal-ZP/Tracker-sub002/internal/export"
	"github.com/Vimal-ZP/Tracker-sub002/internal/health"
	"github.com/Vimal-ZP/Tracker-sub002/internal/middleware"
	"github.com/Vimal-ZP/Tracker-sub002/internal/project"
	"github.com/Vimal-ZP/Tracker-sub002/internal/prompt"
	"github.com/Vimal-ZP/Tracker-sub002/internal/release"
	"github.com/Vimal-ZP/Tracker-sub002/internal/releaseplan"
	"github.com/Vimal-ZP/Tracker-sub002/internal/server"
	"github.com/Vimal-ZP/Tracker-sub002/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	emailSvc := email.NewService(cfg.Email)

	activityRepo := activity.NewRepository(db.DB)
	activitySvc := activity.NewService(activityRepo)
	activityHandler := activity.NewHandler(activitySvc)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, activitySvc)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(
		authRepo,
		jwtManager,
		userSvc,
		emailSvc,
		activitySvc,
		cfg.App.BaseURL,
	)
	authHandler := auth.NewHandler(authSvc)

	releaseRepo := release.NewRepository(db.DB)
	releaseSvc := release.NewService(releaseRepo, activitySvc)
	releaseHandler := release.NewHandler(releaseSvc)

	exportHandler := export.NewHandler(releaseSvc, activitySvc)

	projectRepo := project.NewRepository(db.DB)
	projectSvc := project.NewService(projectRepo, activitySvc)
	projectHandler := project.NewHandler(projectSvc)

	planRepo := releaseplan.NewRepository(db.DB)
	planSvc := releaseplan.NewService(planRepo, projectSvc, activitySvc)
	planHandler := releaseplan.NewHandler(planSvc)

	promptRepo := prompt.NewRepository(db.DB)
	promptCategoryRepo := prompt.NewCategoryRepository(db.DB)
	promptSvc := prompt.NewService(promptRepo, promptCategoryRepo, activitySvc)
	promptHandler := prompt.NewHandler(promptSvc)

	applicationRepo := application.NewRepository(db.DB)
	applicationSvc := application.NewService(applicationRepo, activitySvc)
	applicationHandler := application.NewHandler(applicationSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin
	superAdminOnly := middleware.RequireSuperAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator, adminOnly, superAdminOnly)
		releaseHandler.RegisterRoutes(
			r,
			authenticator,
			adminOnly,
			superAdminOnly,
			exportHandler.ExportRelease,
		)
		projectHandler.RegisterRoutes(r, authenticator, adminOnly)
		planHandler.RegisterRoutes(r, authenticator, adminOnly)
		promptHandler.RegisterRoutes(r, authenticator, adminOnly, superAdminOnly)
		applicationHandler.RegisterRoutes(r, authenticator, adminOnly)
		activityHandler.RegisterRoutes(r, authenticator, superAdminOnly)
		adminHandler.RegisterRoutes(r, authenticator, superAdminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
