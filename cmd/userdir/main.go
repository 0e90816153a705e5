package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/celerix-dev/celerix-users/internal/api"
	"github.com/celerix-dev/celerix-users/internal/config"
	"github.com/celerix-dev/celerix-users/internal/seed"
	"github.com/celerix-dev/celerix-users/internal/store"
	"github.com/celerix-dev/celerix-users/internal/validate"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.Dev {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if cfg.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	users := store.NewMemStore()
	validator := validate.New(validate.UserRules)

	if cfg.SeedFile != "" {
		loader := &seed.Loader{Store: users, Validator: validator, Log: logger}
		n, err := loader.LoadFile(cfg.SeedFile)
		if err != nil {
			// Start empty rather than refuse to serve.
			logger.Warn("Could not load seed file", zap.String("path", cfg.SeedFile), zap.Error(err))
		} else {
			logger.Info("Seeded users", zap.Int("count", n), zap.String("path", cfg.SeedFile))
		}
	}

	h := &api.Handler{Store: users, Validator: validator, Log: logger}
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewRouter(h),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
