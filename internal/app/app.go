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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/acmlab/labsite/internal/config"
	"github.com/acmlab/labsite/internal/domain"
	"github.com/acmlab/labsite/internal/middleware"
	"github.com/acmlab/labsite/internal/module/auth"
	"github.com/acmlab/labsite/internal/module/collection"
	"github.com/acmlab/labsite/internal/module/frontend"
	"github.com/acmlab/labsite/internal/pkg"
	"github.com/acmlab/labsite/internal/realtime"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// migratedModels is everything AutoMigrate manages outside release mode.
var migratedModels = []any{
	&domain.User{},
	&domain.TeamMember{},
	&domain.Advisor{},
	&domain.Paper{},
	&domain.ResearchArea{},
	&domain.CarouselItem{},
	&domain.Achievement{},
	&domain.InnovationStat{},
	&domain.InnovationProject{},
	&domain.TrainingProject{},
	&domain.IntellectualProperty{},
	&domain.EnterpriseCooperation{},
	&domain.Announcement{},
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, database, the collection catalog, the public facade,
// the realtime hub, auth, middleware, and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup database with connection pool configuration.
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", slog.Any("error", err))
		}
	}()

	// 3. AutoMigrate outside release mode; production schemas are migrated
	// out of band.
	if cfg.Server.Mode != gin.ReleaseMode {
		if err := db.AutoMigrate(migratedModels...); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	// In release mode, when no allowlist is configured, default to deny
	// cross-origin requests. The websocket upgrade check uses the same
	// resolved origins as the HTTP CORS middleware so the two channels
	// agree.
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	corsConfig := resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS.AllowOrigins)

	// 4. Realtime hub, or a no-op notifier when disabled.
	var notifier domain.Notifier = domain.NopNotifier{}
	var realtimeModule *realtime.Module
	if cfg.Realtime.Enabled {
		realtimeModule = realtime.NewModule(log.Logger, corsConfig.AllowOrigins)
		notifier = realtimeModule.Hub()
	}

	// 5. Facade cache.
	var cache *pkg.Cache
	if cfg.Cache.Enabled {
		cache = pkg.NewCache(cfg.CacheTTLDuration(), nil)
	}

	// 6. Manual dependency injection: catalog -> modules.
	authModule := auth.NewModule(db, cfg.Auth.JWTSecret, cfg.TokenExpiryDuration(), log.Logger)
	if err := authModule.Service().EnsureAdmin(context.Background(),
		cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return nil, fmt.Errorf("ensure admin account: %w", err)
	}

	resources := collection.BuildResources(db, cache, notifier)
	collectionModule := collection.NewModule(resources, authModule.Verifier())

	var source frontend.DataSource
	if cfg.Datasource.Mode == config.DatasourceFixture {
		source = frontend.NewFixtureStore()
		log.Warn("serving fixture data: public reads do not touch the database")
	} else {
		source = frontend.NewLiveStore(resources, cache)
	}
	frontendModule := frontend.NewModule(source)

	// 7. Create Gin engine with custom middleware (not gin.Default()).
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestID(),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(corsConfig),
	)

	// 8. Register all routes.
	if err := RegisterRoutes(engine, &RouteDeps{
		Modules: []Module{authModule, collectionModule, frontendModule},
		DB:      db,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}
	if realtimeModule != nil {
		realtimeModule.RegisterRoutes(engine)
	}

	success = true
	return &App{
		engine: engine,
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

func resolveCORSConfig(mode string, configuredAllowOrigins []string) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(configuredAllowOrigins) > 0 {
		corsConfig.AllowOrigins = configuredAllowOrigins
		return corsConfig
	}

	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}

	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It performs graceful shutdown with a 5-second timeout and closes the
// database connection.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine)

	// Listen for SIGINT / SIGTERM.
	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server in a goroutine.
	errCh := make(chan error, 1)
	go func() {
		if a.logger != nil {
			a.logger.Info("server started", slog.String("addr", addr))
		} else {
			slog.Info("server started", slog.String("addr", addr))
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		if a.logger != nil {
			a.logger.Info("shutdown signal received")
		} else {
			slog.Info("shutdown signal received")
		}
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		// Graceful shutdown with 5-second deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			if a.logger != nil {
				a.logger.Error("server shutdown error", slog.Any("error", err))
			} else {
				slog.Error("server shutdown error", slog.Any("error", err))
			}
		}
	}

	// Close database connection.
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				if a.logger != nil {
					a.logger.Error("database close error", slog.Any("error", err))
				} else {
					slog.Error("database close error", slog.Any("error", err))
				}
			} else {
				if a.logger != nil {
					a.logger.Info("database connection closed")
				} else {
					slog.Info("database connection closed")
				}
			}
		}
	}

	if a.logger != nil {
		a.logger.Info("server stopped")
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	} else {
		slog.Info("server stopped")
	}

	return runErr
}
