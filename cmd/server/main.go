package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"schemereg/internal/accounts"
	"schemereg/internal/cache"
	"schemereg/internal/compliance"
	"schemereg/internal/gateway"
	"schemereg/internal/identity"
	"schemereg/internal/journey"
	"schemereg/internal/platform/config"
	"schemereg/internal/platform/httpclient"
	"schemereg/internal/platform/httpserver"
	"schemereg/internal/platform/logger"
	"schemereg/internal/platform/metrics"
	"schemereg/internal/platform/postgres"
	platformredis "schemereg/internal/platform/redis"
	"schemereg/internal/session"
	"schemereg/internal/submission"
	"schemereg/internal/upload"
	"schemereg/internal/web"
	"schemereg/internal/web/landing"
	"schemereg/internal/web/membership"
	"schemereg/internal/web/nomination"
	"schemereg/internal/web/packaging"
	"schemereg/internal/web/registration"
)

const (
	tokenIssuer    = "schemereg"
	cacheKeyPrefix = "schemereg:cache:"
)

// main wires dependencies and runs the HTTP server until SIGINT or SIGTERM.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Server.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// infra holds the optional backing services.
type infra struct {
	redis    *platformredis.Client
	postgres *postgres.Pool
}

func (i infra) close() {
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.postgres != nil {
		i.postgres.Close()
	}
}

func (i infra) health() map[string]web.HealthChecker {
	checks := map[string]web.HealthChecker{}
	if i.redis != nil {
		checks["redis"] = i.redis
	}
	if i.postgres != nil {
		checks["postgres"] = i.postgres
	}
	return checks
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.New()

	var backing infra
	defer func() { backing.close() }()
	var err error
	if backing.redis, err = platformredis.New(ctx, cfg.Redis); err != nil {
		return err
	}
	if cfg.Session.Backend == config.SessionBackendPostgres {
		if backing.postgres, err = postgres.New(ctx, cfg.Postgres); err != nil {
			return err
		}
	}

	store, err := sessionStore(ctx, cfg, backing, log)
	if err != nil {
		return err
	}
	log.Info("session store ready", "backend", cfg.Session.Backend)
	sessions := session.NewManager(store, log,
		session.WithCookieName(cfg.Session.CookieName),
		session.WithSecureCookie(cfg.Session.CookieSecure),
		session.WithIdleTimeout(cfg.Session.IdleTimeout),
	)

	clientMetrics := httpclient.NewMetrics(reg)
	gw := gateway.New(cfg.Gateway.BaseURL, cfg.Gateway.Timeout,
		httpclient.WithTokenSource(httpclient.StaticToken(cfg.Gateway.Token)),
		httpclient.WithMetrics(clientMetrics),
	)
	accts := accounts.New(cfg.Accounts.BaseURL, cfg.Accounts.Timeout,
		httpclient.WithTokenSource(httpclient.StaticToken(cfg.Accounts.Token)),
		httpclient.WithMetrics(clientMetrics),
	)

	periods, err := submission.LoadPeriods(cfg.SubmissionPeriodsFile)
	if err != nil {
		return err
	}
	submissions := submission.NewService(gw, periods, log,
		submission.WithResubmission(cfg.Features.PomResubmission),
	)

	uploadMetrics := upload.NewMetrics(reg)
	uploads := upload.NewService(
		upload.NewValidator(cfg.Upload.FileUploadLimitInBytes, uploadMetrics),
		gw, log, uploadMetrics,
	)

	schemes := compliance.NewService(accts, summaryCache(backing), log,
		compliance.WithSummaryCache(cfg.Cache.UseSummaryCache, cache.Options{
			Sliding:  cfg.Cache.SlidingExpiration,
			Absolute: cfg.Cache.AbsoluteExpiration,
		}),
		compliance.WithMetrics(compliance.NewMetrics(reg)),
	)

	router := web.NewRouter(web.Config{
		Logger:         log,
		Sessions:       sessions,
		Guard:          journey.NewGuard(sessions, log, reg),
		Tokens:         identity.NewTokenService(cfg.Identity.SigningKey, tokenIssuer),
		IdentityCookie: cfg.Identity.CookieName,
		Metrics:        reg,
		Health:         backing.health(),
		Handlers: web.Handlers{
			Landing:      landing.New(sessions, schemes, log),
			Packaging:    packaging.New(sessions, submissions, uploads, log),
			Registration: registration.New(sessions, submissions, uploads, log),
			Membership:   membership.New(sessions, schemes, log),
			Nomination:   nomination.New(sessions, schemes, log),
		},
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting schemereg", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// sessionStore builds the configured session backend. Expired Postgres rows are never
// returned by Get; the ones left by previous runs are purged at startup.
func sessionStore(ctx context.Context, cfg config.Config, b infra, log *slog.Logger) (session.Store, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendMemory:
		return session.NewInMemory(), nil
	case config.SessionBackendRedis:
		if b.redis == nil {
			return nil, errors.New("redis session backend requires REDIS_URL")
		}
		return session.NewRedis(b.redis.Client, cfg.Session.IdleTimeout), nil
	case config.SessionBackendPostgres:
		if b.postgres == nil {
			return nil, errors.New("postgres session backend requires DATABASE_URL")
		}
		store := session.NewPostgres(b.postgres.Pool, cfg.Session.IdleTimeout)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		n, err := store.PurgeExpired(ctx)
		if err != nil {
			return nil, err
		}
		log.Info("expired sessions purged", "count", n)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

// summaryCache shares the summary cache across replicas when Redis is configured.
func summaryCache(b infra) cache.Cache {
	if b.redis != nil {
		return cache.NewRedis(b.redis.Client, cache.WithKeyPrefix(cacheKeyPrefix))
	}
	return cache.NewInMemory()
}
