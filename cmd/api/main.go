package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mayaserrano/framelight-backend/api/routes"
	"github.com/mayaserrano/framelight-backend/internal/giftcards"
	"github.com/mayaserrano/framelight-backend/internal/pinauth"
	"github.com/mayaserrano/framelight-backend/internal/sharelinks"
	"github.com/mayaserrano/framelight-backend/internal/shoots"
	"github.com/mayaserrano/framelight-backend/pkg/auth/session"
	"github.com/mayaserrano/framelight-backend/pkg/config"
	"github.com/mayaserrano/framelight-backend/pkg/db"
	"github.com/mayaserrano/framelight-backend/pkg/logger"
	"github.com/mayaserrano/framelight-backend/pkg/metrics"
	"github.com/mayaserrano/framelight-backend/pkg/migrate"
	"github.com/mayaserrano/framelight-backend/pkg/redis"
	"github.com/mayaserrano/framelight-backend/pkg/square"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	accessMetrics := metrics.NewAccessMetrics(registry)

	sessionManager, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	attemptStore, err := pinauth.NewRedisAttemptStore(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create attempt store", err)
		os.Exit(1)
	}
	limiter, err := pinauth.NewLimiter(attemptStore, cfg.Pin)
	if err != nil {
		logg.Error(context.Background(), "failed to create pin limiter", err)
		os.Exit(1)
	}

	pinAuthService, err := pinauth.NewService(pinauth.ServiceParams{
		Limiter:        limiter,
		SessionManager: sessionManager,
		SessionConfig:  cfg.Session,
		PinConfig:      cfg.Pin,
		Logger:         logg,
		Metrics:        accessMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create pin auth service", err)
		os.Exit(1)
	}

	shareLinkService, err := sharelinks.NewService(sharelinks.ServiceParams{
		Repo:    sharelinks.NewRepository(dbClient.DB()),
		Config:  cfg.ShareLinks,
		Logger:  logg,
		Metrics: accessMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create share link service", err)
		os.Exit(1)
	}

	shootService, err := shoots.NewService(shoots.ServiceParams{
		Repo:       shoots.NewRepository(dbClient.DB()),
		ShareLinks: shareLinkService,
		Logger:     logg,
		Metrics:    accessMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create shoot service", err)
		os.Exit(1)
	}

	var giftCardService giftcards.Service
	if cfg.Square.AccessToken != "" {
		squareClient, err := square.NewClient(context.Background(), cfg.Square, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create square client", err)
			os.Exit(1)
		}
		giftCardService, err = giftcards.NewService(giftcards.ServiceParams{
			Repo:     giftcards.NewRepository(dbClient.DB()),
			Payments: squareClient,
			Config:   cfg.GiftCards,
			Logger:   logg,
		})
		if err != nil {
			logg.Error(context.Background(), "failed to create gift card service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "square access token not set, gift card purchases disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			sessionManager,
			pinAuthService,
			shootService,
			shareLinkService,
			giftCardService,
		),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
