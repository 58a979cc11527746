// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"session-server/internal/apps"
	authservice "session-server/internal/auth/service"
	sessionstore "session-server/internal/auth/store/session"
	userstore "session-server/internal/auth/store/user"
	"session-server/internal/platform/config"
	"session-server/internal/platform/httpserver"
	"session-server/internal/platform/logger"
	"session-server/internal/platform/metrics"
	"session-server/internal/platform/postgres"
	platformredis "session-server/internal/platform/redis"
	httptransport "session-server/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	users := userstore.NewPostgresStore(db)
	sessions := sessionstore.NewRedisStore(redisClient, cfg.Session.KeyPrefix, cfg.Session.TTL)
	authSvc := authservice.NewService(users, sessions, log, m)
	appsSvc := apps.NewService(apps.NewPostgresStore(db), log)

	cookies := httptransport.CookieConfig{Domain: cfg.Session.CookieDomain}
	router := httptransport.NewRouter(
		httptransport.NewAuthHandler(authSvc, cookies, log),
		httptransport.NewAppsHandler(appsSvc, log),
		log, m,
	)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting session server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
