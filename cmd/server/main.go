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

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"shulchan/internal/geocode"
	geocodehandler "shulchan/internal/geocode/handler"
	"shulchan/internal/identity"
	identityhandler "shulchan/internal/identity/handler"
	"shulchan/internal/platform/config"
	"shulchan/internal/platform/httpserver"
	"shulchan/internal/platform/logger"
	"shulchan/internal/platform/metrics"
	"shulchan/internal/platform/middleware"
	"shulchan/internal/platform/postgres"
	platformredis "shulchan/internal/platform/redis"
	registrationhandler "shulchan/internal/registration/handler"
	registrationservice "shulchan/internal/registration/service"
	regstore "shulchan/internal/registration/store"
	rlservice "shulchan/internal/ratelimit/service"
	"shulchan/internal/ratelimit/store/counter"
)

const tokenTTL = 24 * time.Hour

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	m := metrics.New()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	rdb, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// Counter backend preference: postgres (atomic upsert), then redis,
	// then in-process memory for development.
	var counters rlservice.CounterStore
	switch {
	case db != nil:
		counters = counter.NewPostgres(db)
		log.Info("rate limit counters backed by postgres")
	case rdb != nil:
		counters = counter.NewRedis(rdb.Client, cfg.RateLimitWindow+time.Minute)
		log.Info("rate limit counters backed by redis")
	default:
		counters = counter.NewMemoryStore()
		log.Warn("rate limit counters in memory; not shared across instances")
	}

	limiter, err := rlservice.New(counters, cfg.RateLimitSecret, cfg.RateLimitMax, cfg.RateLimitWindow,
		rlservice.WithLogger(log),
		rlservice.WithMetrics(m),
	)
	if err != nil {
		return err
	}

	var provider identity.Provider
	var records registrationservice.RecordStore
	if db != nil {
		provider = identity.NewPostgresProvider(db)
		records = regstore.NewPostgres(db)
	} else {
		provider = identity.NewMemoryProvider()
		records = regstore.NewMemoryStore()
		log.Warn("credentials and registrations in memory; data is lost on restart")
	}

	registrations, err := registrationservice.New(limiter, provider, records,
		registrationservice.WithLogger(log),
		registrationservice.WithMetrics(m),
	)
	if err != nil {
		return err
	}

	tokens := identity.NewTokenIssuer(cfg.JWTSigningKey, tokenTTL)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	registrationhandler.New(registrations, log).Register(r)
	identityhandler.New(provider, tokens, log).Register(r)
	geocodehandler.New(geocode.NewClient(cfg.GeocodeBaseURL), log, geocodehandler.WithMetrics(m)).Register(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if db != nil {
			if err := db.PingContext(req.Context()); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := httpserver.New(cfg.Addr, r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
