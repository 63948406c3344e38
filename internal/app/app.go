package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"orientation-service/internal/auth"
	"orientation-service/internal/careerpath"
	"orientation-service/internal/config"
	"orientation-service/internal/db"
	"orientation-service/internal/events"
	"orientation-service/internal/health"
	"orientation-service/internal/insight"
	"orientation-service/internal/middleware"
	"orientation-service/internal/program"
	"orientation-service/internal/schema"
	"orientation-service/internal/telemetry"
	"orientation-service/internal/university"
	"orientation-service/internal/universityprogram"
	"orientation-service/internal/user"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/uptrace/bun"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
)

type App struct {
	config       *config.Config
	router       chi.Router
	server       *http.Server
	grpcServer   *grpc.Server
	healthServer *grpchealth.Server
	db           *bun.DB
	emitter      *events.Emitter
	telemetry    *telemetry.Telemetry
	logger       *slog.Logger
}

// New connects to the database, bootstraps the schema and wires every
// handler onto one router.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	logger.Info("initializing application", "env", cfg.Env, "version", Version)

	tel, err := telemetry.Init(ctx, cfg.Telemetry, ServiceName, Version, cfg.Env, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	m := tel.Metrics

	database, err := db.New(cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(ctx, database, schema.Tables()...); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if meter := m.Meter(); meter != nil {
		if err := m.Database.RegisterDB(database.DB, meter); err != nil {
			logger.Warn("failed to register database pool metrics", "error", err)
		}
		if err := m.Health.RegisterDependencies(meter, []string{health.DatabaseDependency}); err != nil {
			logger.Warn("failed to register dependency metrics", "error", err)
		}
	}

	publisher, err := events.NewPublisher(cfg.Events, logger)
	if err != nil {
		logger.Warn("events publisher unavailable, catalog events disabled", "driver", cfg.Events.Driver, "error", err)
		publisher = events.Nop{}
	}
	emitter := events.NewEmitter(publisher, cfg.Events.Driver, cfg.Events.SubjectPrefix, logger, m)

	app := &App{
		config:    cfg,
		router:    chi.NewRouter(),
		db:        database,
		emitter:   emitter,
		telemetry: tel,
		logger:    logger,
	}

	app.router.Use(chimiddleware.RequestID)
	app.router.Use(chimiddleware.Recoverer)
	app.router.Use(middleware.RequestLogger(logger))
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	health.NewHandler(database, m, logger).RegisterRoutes(app.router)

	credentials := auth.NewCredentials(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	userRepo := user.NewRepository(database, m)
	requireAuth := auth.RequireAuth(credentials, userRepo, logger)

	careerPathService := careerpath.NewService(careerpath.NewRepository(database, m))
	universityService := university.NewService(university.NewRepository(database, m), emitter)
	programService := program.NewService(program.NewRepository(database, m), emitter)
	linkService := universityprogram.NewService(universityprogram.NewRepository(database, m), emitter, m)
	insightService := insight.NewService(insight.NewRepository(database, m))
	authService := auth.NewService(userRepo, credentials, m)
	userService := user.NewService(userRepo, linkService, careerPathService)

	auth.NewHandler(authService, logger).RegisterRoutes(app.router, requireAuth)
	university.NewHandler(universityService, logger).RegisterRoutes(app.router, requireAuth)
	program.NewHandler(programService, logger).RegisterRoutes(app.router, requireAuth)
	careerpath.NewHandler(careerPathService, logger).RegisterRoutes(app.router, requireAuth)
	universityprogram.NewHandler(linkService, logger).RegisterRoutes(app.router, requireAuth)
	insight.NewHandler(insightService, logger).RegisterRoutes(app.router, requireAuth)
	user.NewHandler(userService, logger).RegisterRoutes(app.router, requireAuth)

	if cfg.Grpc.Port != "" {
		app.grpcServer, app.healthServer = health.NewGrpcServer(m)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Router exposes the HTTP handler for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Run serves HTTP and, when configured, gRPC until one of them fails or
// Shutdown is called.
func (a *App) Run() error {
	errCh := make(chan error, 2)

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	go func() {
		a.logger.Info("HTTP server starting", "port", a.config.Server.Port)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if a.grpcServer != nil {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%s", a.config.Grpc.Port))
		if err != nil {
			return fmt.Errorf("failed to listen on gRPC port: %w", err)
		}
		go func() {
			a.logger.Info("gRPC server starting", "port", a.config.Grpc.Port)
			if err := a.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errCh <- fmt.Errorf("gRPC server failed: %w", err)
			}
		}()
	}

	return <-errCh
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down")

	var errs []error
	if a.healthServer != nil {
		a.healthServer.Shutdown()
	}
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
		}
	}
	if a.grpcServer != nil {
		a.grpcServer.GracefulStop()
	}
	if err := a.emitter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events shutdown: %w", err))
	}
	db.Close(a.db)
	if err := a.telemetry.Shutdown(ctx, a.logger); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// StartHealthChecks pings the database every interval so the dependency
// gauge stays current between readiness probes. It returns when ctx ends.
func (a *App) StartHealthChecks(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			start := time.Now()
			err := a.db.PingContext(pingCtx)
			cancel()
			a.telemetry.Metrics.Health.RecordDependencyCheck(ctx, health.DatabaseDependency, time.Since(start), err)
			if err != nil {
				a.logger.WarnContext(ctx, "database health check failed", "error", err)
			}
		}
	}
}

// Migrate bootstraps the schema and returns.
func Migrate(ctx context.Context, cfg *config.Config) error {
	database, err := db.New(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close(database)

	return db.RunMigrations(ctx, database, schema.Tables()...)
}
