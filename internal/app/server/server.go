package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"pulse/internal/domain/auth"
	"pulse/internal/domain/employees"
	"pulse/internal/domain/feedback"
	"pulse/internal/platform/cache"
	"pulse/internal/platform/config"
	cryptoutil "pulse/internal/platform/crypto"
	"pulse/internal/platform/db"
	"pulse/internal/platform/logging"
	"pulse/internal/platform/metrics"
	adminhandler "pulse/internal/transport/http/handlers/admin"
	authhandler "pulse/internal/transport/http/handlers/auth"
	feedbackhandler "pulse/internal/transport/http/handlers/feedback"
	"pulse/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *db.Pool
	Redis   *redis.Client
	Log     *logging.Logger
	Metrics *metrics.Collector
	Router  http.Handler
}

// New connects the backing stores, applies migrations and the seed when
// enabled, and assembles the router. Close releases what New opened.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	log := logging.New(cfg.Environment, cfg.LogLevel, cfg.LogFormat)

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	app := &App{Config: cfg, DB: pool, Log: log}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			app.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		app.Close()
		return nil, err
	}

	authStore := auth.NewStore(pool)
	if cfg.RunSeed {
		if err := seedAdmin(ctx, authStore, cfg, log); err != nil {
			app.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	var revoker auth.Revoker
	if cfg.RedisAddr != "" {
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Redis = client
		revoker = cache.NewTokenRevocations(client)
	} else {
		log.Warn("REDIS_ADDR not set, logout will not revoke tokens server side")
	}

	if cfg.MetricsEnabled {
		app.Metrics = metrics.New()
	}

	authService := auth.NewService(authStore, revoker, crypto, auth.Options{
		Secret:          cfg.JWTSecret,
		TokenTTL:        cfg.TokenTTL,
		AllowSelfSignup: cfg.AllowSelfSignup,
	}, log)
	employeeService := employees.NewService(employees.NewStore(pool, cfg.StoreRetryMaxElapsed))
	feedbackService := feedback.NewService(feedback.NewStore(pool, cfg.StoreRetryMaxElapsed), employeeService, log)
	feedbackService.OnDashboardBuilt(app.Metrics.DashboardBuilt)

	perms := auth.StaticPermissions{}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(log, app.Metrics))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret, authService.TokenActive))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if app.Redis != nil {
			if err := app.Redis.Ping(ctx).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
		}

		r.Route("/auth", authhandler.NewHandler(authService, log).RegisterRoutes)
		r.Route("/feedback", feedbackhandler.NewHandler(feedbackService, perms, log).RegisterRoutes)
		r.Route("/admin", adminhandler.NewHandler(feedbackService, employeeService, app.Metrics, perms, log).RegisterRoutes)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	app.Router = router
	return app, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.WithError(err).Warn("redis close failed")
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func Run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.Log.WithField("addr", cfg.Addr).Info("pulse server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	app.Log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
