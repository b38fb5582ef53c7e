package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/job-board/internal/api/http"
	"github.com/spec-kit/job-board/internal/api/http/handlers"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/observability"
	"github.com/spec-kit/job-board/internal/persistence"
	"github.com/spec-kit/job-board/internal/repository"
	"github.com/spec-kit/job-board/internal/service"
	"github.com/spec-kit/job-board/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	db := pg.DB()
	if db == nil {
		logger.Fatal("POSTGRES_DSN is required")
	}
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, db, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()
	permissionCache := redis.PermissionCache(cfg.Auth.PermissionCacheTTL)

	accountRepo := repository.NewAccountRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	resumeRepo := repository.NewResumeRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)

	metrics := observability.NewMetrics()
	dispatcher := events.NewSessionBus()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger), dispatcher, metrics)

	tokens := auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  cfg.Auth.AccessSecret,
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshSecret: cfg.Auth.RefreshSecret,
		RefreshTTL:    cfg.Auth.RefreshTTL,
	})
	resolver := service.NewRoleResolver(roleRepo, permissionCache, logger)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Accounts:   accountRepo,
		Roles:      roleRepo,
		Resolver:   resolver,
		Tokens:     tokens,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	userService := service.NewUserService(accountRepo, roleRepo, cfg.Auth.BcryptCost)
	roleService := service.NewRoleService(roleRepo, permissionRepo, permissionCache, logger)
	permissionService := service.NewPermissionService(permissionRepo, permissionCache, logger)
	companyService := service.NewCompanyService(companyRepo)
	jobService := service.NewJobService(jobRepo, companyRepo)
	resumeService := service.NewResumeService(resumeRepo, companyRepo, jobRepo)
	subscriberService := service.NewSubscriberService(subscriberRepo)

	app := fiber.New(fiber.Config{
		AppName:        cfg.App.Name,
		ReadBufferSize: cfg.App.ReadBufferSize,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.App.CORSOrigins,
	})

	routes := httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Prefix:      cfg.App.APIPrefix,
		Gate:        auth.NewGate(tokens, metrics, logger),
		Metrics:     metrics.Handler(),
		LoginLimit:  httptransport.LoginRateLimit(cfg.Auth.LoginRatePerSecond, cfg.Auth.LoginBurst),
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:        handlers.NewAuthHandler(authService),
		Users:       handlers.NewUsersHandler(userService),
		Roles:       handlers.NewRolesHandler(roleService),
		Permissions: handlers.NewPermissionsHandler(permissionService),
		Companies:   handlers.NewCompaniesHandler(companyService),
		Jobs:        handlers.NewJobsHandler(jobService),
		Resumes:     handlers.NewResumesHandler(resumeService),
		Subscribers: handlers.NewSubscribersHandler(subscriberService),
	})

	if cfg.Bootstrap.ShouldInit {
		seeder := service.NewSeeder(accountRepo, roleRepo, permissionRepo, cfg.Bootstrap.InitPassword, cfg.Auth.BcryptCost, logger)
		if err := seeder.Seed(ctx, routes.Routes()); err != nil {
			logger.Fatal("failed to seed database", zap.Error(err))
		}
	}

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("graceful shutdown incomplete", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
