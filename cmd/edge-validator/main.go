// Command edge-validator runs the HTTP ingress for the email-risk
// validation service: the public POST /v1/validate endpoint, the
// shared-secret-guarded /admin/config* surface, and a liveness probe.
//
// Grounded on JeromeDesseaux-test_stoik's cmd/email-retrieval/main.go "construct
// adapters, wire into service, run" shape, generalized from a one-shot
// batch loop to a long-running Fiber server per BbangMxn-worker's
// internal/bootstrap/worker_api.go.
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stoik/emailrisk/internal/adapters/httpapi"
	"github.com/stoik/emailrisk/internal/adapters/kvredis"
	"github.com/stoik/emailrisk/internal/adapters/refreshsource"
	"github.com/stoik/emailrisk/internal/application"
	"github.com/stoik/emailrisk/internal/configstore"
	"github.com/stoik/emailrisk/internal/domain"
	"github.com/stoik/emailrisk/internal/ports"
	"github.com/stoik/emailrisk/internal/recorder"
	"github.com/stoik/emailrisk/internal/refdata"
	"github.com/stoik/emailrisk/internal/risk"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "edge-validator").Logger()
	log.Logger = logger

	redisClient := redis.NewClient(&redis.Options{Addr: getEnv("REDIS_ADDR", "localhost:6379")})
	kv := kvredis.New(redisClient)
	defer kv.Close()

	secrets := domain.Secrets{
		AdminAPIKey:        os.Getenv("ADMIN_API_KEY"),
		RefreshSourceToken: os.Getenv("REFRESH_SOURCE_TOKEN"),
	}

	configStore := configstore.NewStore(kv, secrets, logger)

	var source ports.RefreshSource = refreshsource.Disabled{}
	if url := os.Getenv("REFRESH_SOURCE_URL"); url != "" {
		source = refreshsource.New(url, logger)
	}
	refStore := refdata.NewStore(kv, source, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	refStore.Start(ctx)

	engine := risk.NewEngine()

	registry := metricsRegistry()
	logAll := getEnvBool("LOG_ALL_VALIDATIONS", false)
	sink := recorder.NewSink(logger, registry, logAll)

	originURL := os.Getenv("ORIGIN_URL")
	forwarder := recorder.NewOriginForwarder(originURL, logger)

	service := application.NewValidationService(configStore, refStore, engine, sink, forwarder, logger)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: false,
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          5 * time.Second,
	})

	httpapi.NewHealthHandler().Register(app)
	httpapi.NewValidateHandler(service, configStore, logger).Register(app)
	httpapi.NewAdminHandler(configStore, secrets.AdminAPIKey).Register(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	addr := ":" + getEnv("PORT", "8080")
	go func() {
		if err := app.Listen(addr); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	waitForShutdown(&logger, app)
}

func waitForShutdown(logger *zerolog.Logger, app *fiber.App) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func metricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	return reg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
