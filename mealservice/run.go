package mealservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/adhaka3/whatsapp-llm-agent/internal/api"
	"github.com/adhaka3/whatsapp-llm-agent/internal/api/recovery"
	"github.com/adhaka3/whatsapp-llm-agent/internal/config"
	"github.com/adhaka3/whatsapp-llm-agent/internal/factory"
	"github.com/adhaka3/whatsapp-llm-agent/internal/health"
	"github.com/adhaka3/whatsapp-llm-agent/internal/logger"
	"github.com/adhaka3/whatsapp-llm-agent/internal/nutrition"
	"github.com/adhaka3/whatsapp-llm-agent/internal/reply"
	"github.com/adhaka3/whatsapp-llm-agent/internal/services"
	"github.com/adhaka3/whatsapp-llm-agent/internal/store"
)

// Run starts the meal tracking HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("mealtrack-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("resolver_mode", cfg.ResolverMode).
		Msg("Meal tracking service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	// Initialize dependencies (store, resolver, formatter)
	st, resolver, formatter, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}

	// Build router
	router := buildRouter(st, resolver, formatter, cfg, log)

	// Start health checkers and bind service health
	svcHealth := startHealthCheckers(ctx, cfg, log, st)

	// Block startup until dependencies report healthy; fail fast otherwise
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	// HTTP server and serve
	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initDependencies constructs required components and enforces fail-fast on missing deps.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, *nutrition.Resolver, reply.Formatter, error) {
	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return nil, nil, nil, err
	}

	resolver, err := factory.NewResolver(cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Nutrition resolver unavailable")
		return nil, nil, nil, err
	}

	formatter := factory.NewFormatter(cfg, log)
	return st, resolver, formatter, nil
}

// buildRouter wires HTTP routes to handlers.
func buildRouter(st store.Store, resolver *nutrition.Resolver, formatter reply.Formatter, cfg *config.Config, log zerolog.Logger) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	agg := services.NewDailyAggregator(st)
	storeTimeout := time.Duration(cfg.StoreTimeoutSeconds) * time.Second
	cmdRouter := services.NewCommandRouter(resolver, st, agg, formatter, log, storeTimeout)

	// Twilio webhook
	webhook := api.NewWebhookHandler(cmdRouter)
	root.HandleFunc("/whatsapp", webhook.HandleInbound).Methods("POST")

	// Debug totals lookup
	totals := api.NewTotalsHandler(agg)
	root.HandleFunc("/totals", totals.GetTotals).Methods("GET")

	// Health
	healthHandler := api.NewHealthHandler()
	root.HandleFunc("/health", healthHandler.CheckHealth).Methods("GET")

	return root
}

// startHealthCheckers starts component checkers and service-level aggregator; binds health.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns the startup health timeout in seconds,
// calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	// Allow extra time for health checkers to complete their first probe cycle
	// Health checkers start as unhealthy and need time to run their first check
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
