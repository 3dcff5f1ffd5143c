package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/appointment-assistant/internal/api/router"
	"github.com/wolfman30/appointment-assistant/internal/appointment"
	"github.com/wolfman30/appointment-assistant/internal/assistant"
	"github.com/wolfman30/appointment-assistant/internal/config"
	"github.com/wolfman30/appointment-assistant/internal/dialogue"
	"github.com/wolfman30/appointment-assistant/internal/format"
	"github.com/wolfman30/appointment-assistant/internal/llm"
	"github.com/wolfman30/appointment-assistant/internal/observability/metrics"
	"github.com/wolfman30/appointment-assistant/internal/resolver"
	"github.com/wolfman30/appointment-assistant/internal/webchat"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting appointment-assistant API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	repo, err := appointment.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open appointment store", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	store := newSessionStore(cfg, logger)
	client := newLLMClient(context.Background(), cfg, logger)

	conversationMetrics := metrics.NewConversationMetrics(nil)

	var formatterOpts []format.Option
	if cfg.DisableLLMFormatting {
		formatterOpts = append(formatterOpts, format.WithoutLLM())
	}

	service := assistant.New(
		store,
		resolver.New(repo, logger.WithComponent("resolver")),
		format.New(client, logger.WithComponent("format"), formatterOpts...),
		client,
		logger.WithComponent("assistant"),
		conversationMetrics,
	)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        webchat.NewHandler(service, logger.WithComponent("webchat")),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: splitOrigins(cfg.CORSAllowedOrigins),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newSessionStore(cfg *config.Config, logger *logging.Logger) dialogue.Store {
	if cfg.RedisAddr == "" {
		return dialogue.NewMemoryStore()
	}
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	logger.Info("using redis session store", "addr", cfg.RedisAddr)
	return dialogue.NewRedisStore(redis.NewClient(opts), cfg.SessionTTL)
}

func newLLMClient(ctx context.Context, cfg *config.Config, logger *logging.Logger) llm.Client {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set; running with retrieval shortcuts and templates only")
		return nil
	}

	primary, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	if err != nil {
		logger.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}

	var fallback llm.Client
	if cfg.GeminiFallbackModel != "" && cfg.GeminiFallbackModel != cfg.GeminiModelID {
		fb, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiFallbackModel)
		if err != nil {
			logger.Warn("failed to create fallback gemini client", "error", err)
		} else {
			fallback = fb
		}
	}

	return llm.NewFallbackClient(primary, fallback, logger.WithComponent("llm"))
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
