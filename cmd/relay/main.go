package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/ai-gateway/conversation-relay/internal/config"
	"github.com/ai-gateway/conversation-relay/internal/conversation"
	"github.com/ai-gateway/conversation-relay/internal/guardrails"
	"github.com/ai-gateway/conversation-relay/internal/metrics"
	"github.com/ai-gateway/conversation-relay/internal/observability"
	"github.com/ai-gateway/conversation-relay/internal/provider/bedrock"
	"github.com/ai-gateway/conversation-relay/internal/provider/echo"
	"github.com/ai-gateway/conversation-relay/internal/routing"
	"github.com/ai-gateway/conversation-relay/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("relay stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	shutdownTracing, err := observability.Setup(ctx, cfg.TelemetryEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	guards, err := guardrails.Load(cfg.GuardrailsPath)
	if err != nil {
		return err
	}

	rt := routing.New()
	if cfg.Provider == "bedrock" {
		client, err := bedrock.New(ctx, bedrock.Config{Region: cfg.Region})
		if err != nil {
			return err
		}
		rt.Register("bedrock", client)
	}
	rt.Register("echo", echo.New())
	if !rt.Has(cfg.Provider) {
		return fmt.Errorf("unknown provider %q, available: %v", cfg.Provider, rt.Names())
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := metrics.New(reg)
	relay := conversation.NewRelay(
		conversation.Settings{ModelID: cfg.ModelID},
		rt.ProviderFor(cfg.Provider),
		guards,
		m,
		logger,
	)

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(cfg, relay, m, reg, logger)
	logger.Info("relay configured",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.ModelID),
		zap.String("region", cfg.Region))
	return srv.Start(ctx)
}
