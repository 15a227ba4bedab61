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

	"github.com/atelier-cloud/tagsmith/internal/config"
	"github.com/atelier-cloud/tagsmith/internal/db"
	dbRedis "github.com/atelier-cloud/tagsmith/internal/db/redis"
	"github.com/atelier-cloud/tagsmith/internal/domain/registry"
	domtag "github.com/atelier-cloud/tagsmith/internal/domain/tagging"
	logpkg "github.com/atelier-cloud/tagsmith/internal/logger"
	"github.com/atelier-cloud/tagsmith/internal/metrics"
	"github.com/atelier-cloud/tagsmith/internal/repository/labelcache"
	chiTransport "github.com/atelier-cloud/tagsmith/internal/transport/chi"
	"github.com/atelier-cloud/tagsmith/internal/transport/fashionclip"
	openaiClf "github.com/atelier-cloud/tagsmith/internal/transport/openai"
	adviseuc "github.com/atelier-cloud/tagsmith/internal/usecase/advise"
	deduc "github.com/atelier-cloud/tagsmith/internal/usecase/dedup"
	extractuc "github.com/atelier-cloud/tagsmith/internal/usecase/extract"
	metauc "github.com/atelier-cloud/tagsmith/internal/usecase/meta"
	seouc "github.com/atelier-cloud/tagsmith/internal/usecase/seo"
	tagginguc "github.com/atelier-cloud/tagsmith/internal/usecase/tagging"
	"github.com/atelier-cloud/tagsmith/internal/version"
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

	logger.Info("Starting tagsmith API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("classifier_provider", cfg.Classifier.Provider),
		zap.Strings("cache_addrs", cfg.Cache.Addrs),
	)

	// Label cache store is optional: no addrs, no cache.
	var store db.Store
	if len(cfg.Cache.Addrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer s.Close()

		ctx := context.Background()
		if err := s.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to label cache store")
		store = s
	}

	// Register classifier metrics explicitly (no init())
	metrics.RegisterClassifierMetrics()

	classifier := buildClassifier(cfg.Classifier, store, time.Duration(cfg.Cache.TTLHours)*time.Hour, logger)

	// Use case services share one variation registry.
	reg := registry.Default()
	scorer := seouc.New(reg)
	taggingSvc := tagginguc.New(classifier, extractuc.New(), deduc.New(reg), scorer, logger).
		WithChunkSize(cfg.Tagging.ChunkSize).
		WithChunkDelay(time.Duration(cfg.Tagging.ChunkDelayMs) * time.Millisecond)
	metaGen := metauc.New(reg).WithBrand(cfg.Meta.Brand)
	advisor := adviseuc.New(reg)

	var cachePinger db.Pinger
	if store != nil {
		cachePinger = store
	}
	server := chiTransport.NewServer(taggingSvc, scorer, metaGen, advisor, cachePinger, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

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

// noopClassifier is the provider for text-only deployments.
type noopClassifier struct{}

func (noopClassifier) Classify(context.Context, string) []string { return nil }

// buildClassifier assembles the classifier chain: provider -> cached.
func buildClassifier(
	cfg config.ClassifierConfig,
	store db.Store,
	ttl time.Duration,
	logger *zap.Logger,
) domtag.Classifier {
	var base domtag.Classifier
	switch cfg.Provider {
	case "fashionclip":
		base = fashionclip.New(&fashionclip.Config{
			Endpoint: cfg.Endpoint,
			Timeout:  time.Duration(cfg.TimeoutSec) * time.Second,
			Logger:   logger,
		})
	case "openai":
		base = openaiClf.New(&openaiClf.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
			Logger:  logger,
		})
	default:
		return noopClassifier{}
	}

	if store != nil {
		return labelcache.New(base, store, metrics.LabelCacheTotal, logger).WithTTL(ttl)
	}
	return base
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
