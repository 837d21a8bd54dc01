package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/backoffice/internal/config"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/event"
	"github.com/simp-lee/backoffice/internal/metrics"
	"github.com/simp-lee/backoffice/internal/middleware"
	"github.com/simp-lee/backoffice/internal/module"
	"github.com/simp-lee/backoffice/internal/module/agency"
	"github.com/simp-lee/backoffice/internal/module/audit"
	"github.com/simp-lee/backoffice/internal/module/contract"
	"github.com/simp-lee/backoffice/internal/module/distributor"
	"github.com/simp-lee/backoffice/internal/module/product"
	"github.com/simp-lee/backoffice/internal/module/shipment"
	"github.com/simp-lee/backoffice/internal/module/terms"
	"github.com/simp-lee/backoffice/internal/pkg"
	"github.com/simp-lee/backoffice/internal/readmodel"
	"github.com/simp-lee/backoffice/internal/store"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine  *gin.Engine
	db      *gorm.DB
	logger  *logger.Logger
	cfg     *config.Config
	closers []io.Closer
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

// newRedisPublisher is swapped in tests.
var newRedisPublisher = func(ctx context.Context, url, prefix string) (event.Publisher, io.Closer, error) {
	p, err := event.NewRedisPublisher(ctx, url, prefix)
	if err != nil {
		return nil, nil, err
	}
	return p, p, nil
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the database, metrics, change events, the business
// modules, middleware and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false
	var closers []io.Closer

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
		for _, c := range closers {
			_ = c.Close()
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup database.
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

	// 3. AutoMigrate when configured, and always in debug mode.
	if cfg.Database.AutoMigrate || cfg.Server.Mode == gin.DebugMode {
		if err := db.AutoMigrate(domain.AllModels()...); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	// 4. Metrics registry; a nil *metrics.Metrics records nothing.
	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(reg, cfg.Metrics.Namespace)
		gatherer = reg
	}

	// 5. Change events: broker or debug log, plus the audit trail.
	publisher, closer, err := setupPublisher(&cfg.Events, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup events: %w", err)
	}
	if closer != nil {
		closers = append(closers, closer)
	}
	trail := audit.NewTrail(store.NewGormRepository[domain.AuditLog, *domain.AuditLog](db, store.WithMetrics(m)))

	deps := module.Deps{
		DB:        db,
		Publisher: event.Fanout{publisher, trail},
		Metrics:   m,
		Logger:    log.Logger,
	}

	// 6. Read models share the gorm connection pool.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	lending := readmodel.NewLending(sqlDB, config.SQLDriverName(&cfg.Database), cfg.ReadModel.TTL(), m, log.Logger)

	// 7. Create Gin engine with custom middleware (not gin.Default()).
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Server.Mode)
	if err := pkg.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}
	engine := gin.New()

	// In release mode, when no allowlist is configured, default to deny cross-origin requests.
	corsConfig, err := resolveCORSConfig(cfg.Server.Mode, &cfg.Server.CORS)
	if err != nil {
		return nil, err
	}

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: false,
		}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(corsConfig),
		middleware.Metrics(m),
	)
	if cfg.Server.Timeout != "" {
		d, err := time.ParseDuration(cfg.Server.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid server.timeout %q: %w", cfg.Server.Timeout, err)
		}
		engine.Use(middleware.Timeout(d))
	}
	if cfg.Server.RateLimit.Enabled {
		engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RPS:   cfg.Server.RateLimit.RPS,
			Burst: cfg.Server.RateLimit.Burst,
		}))
	}
	engine.Use(middleware.Actor(middleware.ActorConfig{
		Enabled:     cfg.Auth.Enabled,
		Secret:      []byte(cfg.Auth.JWTSecret),
		Issuer:      cfg.Auth.Issuer,
		PublicPaths: cfg.Auth.PublicPaths,
	}))

	// 8. Register all routes.
	if err := RegisterRoutes(engine, &RouteDeps{
		Modules: []Module{
			distributor.NewModule(deps),
			product.NewModule(deps, lending),
			contract.NewModule(deps),
			shipment.NewModule(deps),
			terms.NewModule(deps),
			agency.NewModule(deps),
			audit.NewModule(deps),
		},
		DB:      db,
		Metrics: gatherer,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine:  engine,
		db:      db,
		logger:  log,
		cfg:     cfg,
		closers: closers,
	}, nil
}

// setupPublisher returns the Redis publisher when enabled, otherwise a debug
// log publisher. The closer is nil when nothing needs releasing.
func setupPublisher(cfg *config.EventsConfig, log *slog.Logger) (event.Publisher, io.Closer, error) {
	if !cfg.Redis.Enabled {
		return event.NewLogPublisher(log), nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p, closer, err := newRedisPublisher(ctx, cfg.Redis.URL, cfg.Redis.ChannelPrefix)
	if err != nil {
		return nil, nil, err
	}
	log.Info("redis event publisher connected", slog.String("channel_prefix", cfg.Redis.ChannelPrefix))
	return p, closer, nil
}

func resolveCORSConfig(mode string, cfg *config.CORSConfig) (middleware.CORSConfig, error) {
	corsConfig := middleware.DefaultCORSConfig()

	switch {
	case len(cfg.AllowOrigins) > 0:
		corsConfig.AllowOrigins = cfg.AllowOrigins
	case mode == gin.ReleaseMode:
		corsConfig.AllowOrigins = []string{}
	}
	if len(cfg.AllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowMethods
	}
	if len(cfg.AllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowHeaders
	}
	if len(cfg.ExposeHeaders) > 0 {
		corsConfig.ExposeHeaders = cfg.ExposeHeaders
	}
	corsConfig.AllowCredentials = cfg.AllowCredentials

	if cfg.MaxAge != "" {
		d, err := time.ParseDuration(cfg.MaxAge)
		if err != nil {
			return middleware.CORSConfig{}, fmt.Errorf("invalid server.cors.max_age %q: %w", cfg.MaxAge, err)
		}
		corsConfig.MaxAge = strconv.Itoa(int(d.Seconds()))
	}

	return corsConfig, nil
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
// It performs graceful shutdown with a 5-second timeout, then releases the
// event publisher and the database connection.
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

	errCh := make(chan error, 1)
	go func() {
		a.log().Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	select {
	case <-ctx.Done():
		a.log().Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log().Error("server shutdown error", slog.Any("error", err))
		}
	}

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log().Error("close error", slog.Any("error", err))
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.log().Error("database close error", slog.Any("error", err))
			} else {
				a.log().Info("database connection closed")
			}
		}
	}

	a.log().Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}

func (a *App) log() *slog.Logger {
	if a.logger != nil {
		return a.logger.Logger
	}
	return slog.Default()
}
