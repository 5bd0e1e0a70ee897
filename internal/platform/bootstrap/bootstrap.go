// Package bootstrap centralizes the plumbing every cmd/* entrypoint
// repeats: load config, build the logger/tracer/rate limiter/metrics/
// audit sink/authenticator, and run an http.Server with the teacher's
// graceful-shutdown signal handling (internal/app/shutdown.go),
// generalized across nine near-identical service binaries instead of
// the teacher's single cmd/server.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/observability"
	"github.com/datingapp/request-fabric/internal/platform/config"
	"github.com/datingapp/request-fabric/internal/platform/eventbus"
	"github.com/datingapp/request-fabric/internal/platform/middleware"
	"github.com/datingapp/request-fabric/internal/platform/ratelimit"
	"github.com/datingapp/request-fabric/internal/platform/resilience"
	"github.com/datingapp/request-fabric/internal/services/auth"
)

// App bundles every collaborator a service's main.go wires into its
// router and resilience-wrapped outbound clients.
type App struct {
	Config         *config.Config
	Logger         *zap.Logger
	Tracer         trace.Tracer
	TracerShutdown func(context.Context) error
	Tokens         *auth.TokenService
	Deps           middleware.Deps
}

// New loads servicePrefix's configuration and builds the shared
// collaborator set. Callers add their own service-specific
// collaborators (outbound clients, event bus, data repositories) on
// top.
func New(ctx context.Context, servicePrefix, serviceName string) (*App, error) {
	cfg, err := config.Load(servicePrefix)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(&cfg.Log, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg.Observability.ServiceName = serviceName
	_, tracerShutdown, err := observability.NewTracerProvider(ctx, &cfg.Observability)
	if err != nil {
		logger.Warn("tracer provider unavailable, continuing without export", zap.Error(err))
		tracerShutdown = func(context.Context) error { return nil }
	}
	tracer := otel.Tracer(serviceName)

	tokens, err := auth.NewTokenService(auth.JWTConfig{
		SecretKey: []byte(cfg.Auth.JWTSecret),
		Issuer:    cfg.Auth.JWTIssuer,
		Audience:  cfg.Auth.JWTAudience,
		TokenTTL:  cfg.Auth.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("init token service: %w", err)
	}

	limiter := buildRateLimiter(cfg.RateLimit, cfg.Redis)

	deps := middleware.Deps{
		Logger:        logger,
		Tracer:        tracer,
		RateLimiter:   limiter,
		Metrics:       observability.RequestMetrics{},
		AuditSink:     observability.AuditSink{Logger: logger},
		Authenticator: tokens,
	}

	return &App{
		Config:         cfg,
		Logger:         logger,
		Tracer:         tracer,
		TracerShutdown: tracerShutdown,
		Tokens:         tokens,
		Deps:           deps,
	}, nil
}

// buildRateLimiter wires the token-bucket limiter backing every service
// by default, promoting to the Redis-backed limiter (shared state across
// replicas, with the token bucket as its circuit-open fallback) when the
// service's configuration enables Redis.
func buildRateLimiter(cfg config.RateLimitConfig, redisCfg config.RedisConfig) middleware.RateLimiter {
	defaultRate := ratelimit.Rate{Limit: 50, Period: time.Second}
	if cfg.DefaultLimit > 0 && cfg.DefaultPeriod > 0 {
		defaultRate = ratelimit.Rate{Limit: cfg.DefaultLimit, Period: cfg.DefaultPeriod}
	}
	var rules []ratelimit.Rule
	if cfg.AuthLimit > 0 && cfg.AuthPeriod > 0 {
		rules = append(rules, ratelimit.Rule{
			Pattern: regexp.MustCompile(`^/auth/`),
			Limit:   cfg.AuthLimit,
			Period:  cfg.AuthPeriod,
		})
	}
	tokenBucket := ratelimit.NewTokenBucketLimiter(defaultRate, rules)
	if !redisCfg.Enabled || redisCfg.Addr == "" {
		return tokenBucket
	}
	client := redis.NewClient(&redis.Options{Addr: redisCfg.Addr})
	return ratelimit.NewRedisLimiter(client, defaultRate, rules, tokenBucket)
}

// NewOutboundWrapper builds the standard Bulkhead→CircuitBreaker→Retry→
// Timeout chain every collaborator call to the data/notification
// services goes through, per spec §4's resilience requirements. Each
// named collaborator gets its own circuit breaker instance via the
// factory's per-name cache.
func (a *App) NewOutboundWrapper() resilience.ResilienceWrapper {
	cfg := resilience.DefaultResilienceConfig()
	return resilience.NewResilienceWrapper(
		resilience.WithWrapperBulkhead(resilience.NewBulkhead("outbound", cfg.Bulkhead)),
		resilience.WithCircuitBreakerFactory(resilience.NewCircuitBreakerFactory(cfg.CircuitBreaker)),
		resilience.WithWrapperRetrier(resilience.NewRetrier("outbound", cfg.Retry)),
		resilience.WithWrapperTimeout(resilience.NewTimeout("outbound", cfg.Timeout.ExternalAPI)),
		resilience.WithWrapperTracer(a.Tracer),
	)
}

// Bus is the combined Publisher+Subscriber surface both bus
// implementations satisfy; consumer-side services (notification) need
// Subscribe, producer-only services only use the Publisher half.
type Bus interface {
	eventbus.Publisher
	eventbus.Subscriber
}

// NewEventBus dials RabbitMQ when the service's configuration enables it,
// falling back to an in-memory bus otherwise — used by local development
// and by services that only ever publish within a single process during
// tests.
func (a *App) NewEventBus() (Bus, func() error, error) {
	if !a.Config.RabbitMQ.IsEnabled() {
		a.Logger.Warn("rabbitmq disabled, falling back to in-memory event bus")
		bus := eventbus.NewInMemoryBus()
		return bus, bus.Close, nil
	}
	bus, err := eventbus.Dial(a.Config.RabbitMQ.URL, a.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("dial event bus: %w", err)
	}
	return bus, bus.Close, nil
}

// Run starts router on addr and blocks until SIGINT/SIGTERM, then drains
// in-flight requests within the teacher's 30s shutdown timeout
// (internal/app/shutdown.go's ShutdownTimeout).
func (a *App) Run(ctx context.Context, addr string, router http.Handler) error {
	server := &http.Server{Addr: addr, Handler: router}

	serverErr := make(chan error, 1)
	go func() {
		a.Logger.Info("http server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer tracerCancel()
	if err := a.TracerShutdown(tracerCtx); err != nil {
		a.Logger.Error("tracer shutdown error", zap.Error(err))
	}

	a.Logger.Info("server shutdown complete")
	return nil
}
