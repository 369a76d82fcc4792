package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "modernc.org/sqlite"

	"ministry/internal/adapters/backend"
	web "ministry/internal/adapters/http"
	"ministry/internal/adapters/http/perf"
	"ministry/internal/adapters/session"
	"ministry/internal/adapters/storage"
	auditStore "ministry/internal/adapters/storage/audit"
	"ministry/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// perfRingSize is how many timing entries the collector keeps.
const perfRingSize = 4096

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	slog.SetDefault(newLogger(cfg))

	// Activity database with WAL mode, foreign keys and busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.MigrateDB(db, cfg.DBPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	collector := perf.NewCollector(perfRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQueryMs)
	activity := auditStore.NewSQLiteStore(timedDB)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := backend.NewClient(backend.Options{
		GraphQLURL: cfg.GraphQLURL(),
		BaseURL:    cfg.BackendURL,
		Timeout:    cfg.BackendTimeout,
		SlowMs:     cfg.SlowBackendMs,
		Collector:  collector,
		Metrics:    backend.NewMetrics(reg),
	})
	gateway := backend.NewGateway(client)

	health := map[string]web.HealthCheck{
		"database": timedDB.Ping,
	}

	var sessions session.Store
	if cfg.RedisURL != "" {
		rs, err := session.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			log.Fatalf("failed to connect session store: %v", err)
		}
		defer rs.Close()
		sessions = rs
		health["sessions"] = func(ctx context.Context) error {
			if !rs.Healthy(ctx) {
				return errors.New("redis unreachable")
			}
			return nil
		}
		slog.Info("session_store", "backend", "redis")
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
		slog.Info("session_store", "backend", "memory")
	}

	handler := web.NewMux(web.Deps{
		Gateway:   gateway,
		Sessions:  sessions,
		Tokens:    session.NewTokens(cfg.SessionKey, cfg.SessionTTL),
		Activity:  activity,
		Collector: collector,
		Registry:  reg,
		Health:    health,
		Config:    cfg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.BackendTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server_start", "version", version, "addr", srv.Addr, "env", cfg.Env,
			"backend", cfg.BackendURL, "schema", storage.LatestSchemaVersion())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("server_stop", "reason", "signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server_shutdown_failed", "error", err.Error())
	}
}

func newLogger(cfg config.App) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
