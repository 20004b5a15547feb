package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-online/internal/audit"
	"github.com/BruksfildServices01/agenda-online/internal/config"
	dbpkg "github.com/BruksfildServices01/agenda-online/internal/db"
	infraRepo "github.com/BruksfildServices01/agenda-online/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-online/internal/logging"
	"github.com/BruksfildServices01/agenda-online/internal/middleware"
	"github.com/BruksfildServices01/agenda-online/internal/ratelimit"
	"github.com/BruksfildServices01/agenda-online/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logging.New("agenda-online", cfg.LogLevel)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	defer dbpkg.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	limiter, closeLimiter, err := newLimiter(cfg, log)
	if err != nil {
		return err
	}
	defer closeLimiter()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(log),
	)

	if err := routes.RegisterRoutes(r, routes.Deps{
		Config:       cfg,
		Log:          log,
		Appointments: infraRepo.NewAppointmentGormRepository(db),
		Catalog:      infraRepo.NewCatalogGormRepository(db),
		Users:        infraRepo.NewUserGormRepository(db),
		Audit:        auditDispatcher,
		Limiter:      limiter,
		DB:           sqlDB,
	}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "err", err)
	}
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		log.Warn("audit queue not drained", "err", err)
	}
	return nil
}

// newLimiter uses Redis when REDIS_URL is set, memory otherwise.
func newLimiter(cfg *config.Config, log *slog.Logger) (ratelimit.Limiter, func(), error) {
	if cfg.RedisURL == "" {
		log.Info("rate limiter: memory")
		return ratelimit.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow), func() {}, nil
	}

	rdb, err := ratelimit.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, requests will fail open until it recovers", "err", err)
	}

	log.Info("rate limiter: redis")
	limiter := ratelimit.NewRedisLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow, "agenda:rl")
	return limiter, func() { _ = rdb.Close() }, nil
}
