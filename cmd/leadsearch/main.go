package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/config"
	"github.com/huntly/leadsearch/internal/db"
	dbRedis "github.com/huntly/leadsearch/internal/db/redis"
	logpkg "github.com/huntly/leadsearch/internal/logger"
	"github.com/huntly/leadsearch/internal/metrics"
	cacherepo "github.com/huntly/leadsearch/internal/repository/cache"
	leadsrepo "github.com/huntly/leadsearch/internal/repository/leads"
	chiTransport "github.com/huntly/leadsearch/internal/transport/chi"
	engineuc "github.com/huntly/leadsearch/internal/usecase/engine"
	healthuc "github.com/huntly/leadsearch/internal/usecase/health"
	indexeruc "github.com/huntly/leadsearch/internal/usecase/indexer"
	"github.com/huntly/leadsearch/internal/usecase/query"
	"github.com/huntly/leadsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting leadsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.Strings("cache_addrs", cfg.Cache.Addrs),
		zap.String("record_store", cfg.RecordStore.Path),
	)

	// Record store is the source of truth and must be available
	repo, err := leadsrepo.New(cfg.RecordStore.Path)
	if err != nil {
		logger.Fatal("Failed to open record store", zap.Error(err))
	}
	defer repo.Close()

	// Cache/index store. Valkey speaks the Redis protocol, so both
	// drivers share the rueidis store.
	var store db.Store
	switch cfg.Cache.Driver {
	case "redis", "valkey":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
	default:
		logger.Fatal("Unknown cache driver", zap.String("driver", cfg.Cache.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}

	// An unreachable cache store is not fatal: search falls back to the
	// record store and indexing reports failures until it recovers.
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
		logger.Warn("Cache store not ready, running degraded", zap.Error(err))
		store.Close()
		store = nil
	} else {
		logger.Info("Connected to cache store")
		defer store.Close()
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	cacheLayer := cacherepo.New(store, cacherepo.Config{
		KeyPrefix:      cfg.Cache.KeyPrefix,
		SearchTTL:      time.Duration(cfg.Cache.SearchTTLSec) * time.Second,
		LeadTTL:        time.Duration(cfg.Cache.LeadTTLSec) * time.Second,
		UserPrefsTTL:   time.Duration(cfg.Cache.UserPrefsTTLSec) * time.Second,
		AnalyticsTTL:   time.Duration(cfg.Cache.AnalyticsTTLSec) * time.Second,
		SuggestionsTTL: time.Duration(cfg.Cache.SuggestionsTTLSec) * time.Second,
	}, logger)

	// Create use case services
	idxSvc, err := indexeruc.New(repo, cacheLayer, logger, cfg.Indexing.BatchSize, cfg.Indexing.Workers)
	if err != nil {
		logger.Fatal("Failed to create indexer", zap.Error(err))
	}
	defer idxSvc.Release()

	engSvc := engineuc.New(repo, idxSvc, cacheLayer, query.New(), engineuc.Config{
		MaxResults:      cfg.Search.MaxResults,
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
	}, logger)

	healthSvc := healthuc.New(repo, cacheLayer)

	// Create chi server
	server := chiTransport.NewServer(engSvc, idxSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
