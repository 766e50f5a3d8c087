package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"caseflow/internal/form/document"
	"caseflow/internal/form/document/eventlog"
	"caseflow/internal/form/engine"
	"caseflow/internal/form/hydrate"
	"caseflow/internal/form/wizard"
	"caseflow/internal/journeys/apply"
	"caseflow/internal/journeys/assess"
	"caseflow/internal/platform/config"
	"caseflow/internal/platform/events"
	"caseflow/internal/platform/httpserver"
	"caseflow/internal/platform/logger"
	"caseflow/internal/platform/metrics"
	"caseflow/internal/platform/middleware"
	"caseflow/internal/platform/postgres"
	platformredis "caseflow/internal/platform/redis"
	httptransport "caseflow/internal/transport/http"
	"caseflow/internal/upstream"
	"caseflow/internal/upstream/caseapi"
	"caseflow/internal/upstream/identityapi"
	"caseflow/internal/upstream/personapi"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Wizard logic lives under internal/form; journey
// content under internal/journeys.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(slog.LevelInfo)
	m := metrics.New()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	docs, cleanup, err := buildDocumentStore(ctx, cfg, log)
	if err != nil {
		cancel()
		log.Error("document store", "error", err)
		os.Exit(1)
	}
	sublog, sublogClose, err := buildSubmissionLog(ctx, cfg)
	cancel()
	if err != nil {
		log.Error("submission log", "error", err)
		cleanup()
		os.Exit(1)
	}

	publisher, err := events.New(cfg.KafkaBrokers, log)
	if err != nil {
		log.Error("kafka producer", "error", err)
		cleanup()
		os.Exit(1)
	}

	httpClient := upstream.NewHTTPClient()
	deps := &hydrate.Deps{
		Metrics: m,
		Logger:  log,
	}
	if cfg.CaseAPIURL != "" {
		deps.Case = caseapi.New(cfg.CaseAPIURL, httpClient)
	}
	if cfg.PersonAPIURL != "" {
		deps.Person = personapi.New(cfg.PersonAPIURL, httpClient)
	}
	if cfg.UserAPIURL != "" {
		deps.Identity = identityapi.New(cfg.UserAPIURL, httpClient)
	}

	pages := wizard.NewPageRegistry()
	tasks := wizard.NewTaskRegistry(pages)
	tasks.AddJourney(apply.Journey, apply.Tasks(cfg.Flags)...)
	tasks.AddJourney(assess.Journey, assess.Tasks()...)

	eng := engine.New(pages, tasks, docs, deps, publisher, sublog, log, m)

	handler := httptransport.NewHandler(eng, log)
	validator := middleware.NewJWTValidator(cfg.JWTSigningKey)
	router := httptransport.NewRouter(handler, validator, log, m)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting caseflow", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	publisher.Close(shutdownCtx)
	sublogClose()
	cleanup()
}

// buildDocumentStore selects the backing store: the external case API when
// configured, otherwise local Postgres, otherwise in-memory for development.
// A Redis read-through cache wraps whichever store is chosen when configured.
func buildDocumentStore(ctx context.Context, cfg config.Server, log *slog.Logger) (document.Store, func(), error) {
	var store document.Store
	cleanup := func() {}

	switch {
	case cfg.CaseAPIURL != "":
		store = caseapi.New(cfg.CaseAPIURL, upstream.NewHTTPClient())
		log.Info("document store: case API", "url", cfg.CaseAPIURL)
	case cfg.PostgresURL != "":
		pool, err := postgres.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		pg := document.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		store = pg
		cleanup = pool.Close
		log.Info("document store: postgres")
	default:
		store = document.NewInMemoryStore()
		log.Warn("document store: in-memory, documents will not survive restarts")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if redisClient != nil {
		store = document.NewCached(store, redisClient.Client, cfg.Redis.CacheTTL, log)
		inner := cleanup
		cleanup = func() {
			_ = redisClient.Close()
			inner()
		}
		log.Info("document cache: redis")
	}
	return store, cleanup, nil
}

// buildSubmissionLog opens the audit log when Postgres is configured. The
// engine tolerates a nil log.
func buildSubmissionLog(ctx context.Context, cfg config.Server) (engine.SubmissionLog, func(), error) {
	if cfg.PostgresURL == "" {
		return nil, func() {}, nil
	}
	db, err := eventlog.Open(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}
	log := eventlog.NewPostgres(db)
	if err := log.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return log, func() { _ = db.Close() }, nil
}
