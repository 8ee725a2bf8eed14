/**
 * @description
 * This is the main entry point for the onboarding service. It is responsible
 * for initializing all components of the service, including configuration,
 * database connection, the Rize API client, the message broker producer, the
 * repository, the core application service, the scheduled jobs, and the HTTP
 * server. It wires everything together and starts the service.
 *
 * @dependencies
 * - log, net/http: Standard Go libraries for logging and HTTP server functionality.
 * - github.com/jackc/pgx/v5: PostgreSQL driver.
 * - github.com/joho/godotenv: For loading .env files during local development.
 * - internal/api, internal/app, internal/config, internal/store: Internal packages for the service.
 * - pkg/rizeclient: Client for the Rize BaaS API.
 * - pkg/rabbitmq: Client for RabbitMQ.
 */

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/RizeFinance/onboarding-service/internal/api"
	"github.com/RizeFinance/onboarding-service/internal/app"
	"github.com/RizeFinance/onboarding-service/internal/config"
	"github.com/RizeFinance/onboarding-service/internal/store"
	"github.com/RizeFinance/onboarding-service/pkg/rabbitmq"
	"github.com/RizeFinance/onboarding-service/pkg/rizeclient"
)

func main() {
	// Load a local .env file if one exists; real deployments set env directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("level=warn component=bootstrap msg=\"could not load .env file\" err=%v", err)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}
	if strings.TrimSpace(cfg.SessionSigningKey) == "" {
		log.Fatalf("level=fatal component=bootstrap msg=\"session signing key must be configured\" env=SESSION_SIGNING_KEY")
	}
	if strings.TrimSpace(cfg.RizeProgramUID) == "" || strings.TrimSpace(cfg.RizeHMACKey) == "" {
		log.Fatalf("level=fatal component=bootstrap msg=\"rize program credentials must be configured\" env=RIZE_PROGRAM_UID,RIZE_HMAC_KEY")
	}

	log.Printf("level=info component=bootstrap msg=\"starting onboarding-service\" port=%s", cfg.ServerPort)

	// Establish a connection pool to the PostgreSQL database.
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"database url parse failed\" err=%v", err)
	}
	poolConfig.MaxConns = 50
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"database connection failed\" err=%v", err)
	}
	defer dbpool.Close()
	log.Println("level=info component=bootstrap msg=\"database connected\"")

	// Initialize the RabbitMQ producer to publish onboarding events. A broker
	// outage degrades the event stream but must not block onboarding.
	var producer rabbitmq.Publisher
	if eventProducer, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL); err != nil {
		log.Printf("level=warn component=bootstrap msg=\"rabbitmq producer unavailable; using fallback\" err=%v", err)
		producer = &rabbitmq.EventProducerFallback{}
	} else {
		defer eventProducer.Close()
		producer = eventProducer
		log.Println("level=info component=bootstrap msg=\"rabbitmq producer connected\"")
	}

	// Initialize the Rize API client.
	rizeClient := rizeclient.NewClient(cfg.RizeAPIBaseURL, cfg.RizeProgramUID, cfg.RizeHMACKey)

	// Redis backs the login rate limiter; without it logins are unthrottled.
	var limiter app.LoginRateLimiter
	if cfg.LoginRateLimitPerMinute > 0 {
		if cfg.RedisURL == "" {
			log.Println("level=warn component=bootstrap msg=\"redis url missing; login rate limiting disabled\" env=REDIS_URL")
		} else if redisOptions, parseErr := redis.ParseURL(cfg.RedisURL); parseErr != nil {
			log.Printf("level=warn component=bootstrap msg=\"redis url parse failed; login rate limiting disabled\" err=%v", parseErr)
		} else {
			redisClient := redis.NewClient(redisOptions)
			pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
			pingErr := redisClient.Ping(pingCtx).Err()
			cancelPing()
			if pingErr != nil {
				log.Printf("level=warn component=bootstrap msg=\"redis ping failed; login rate limiting disabled\" err=%v", pingErr)
				redisClient.Close()
			} else {
				defer redisClient.Close()
				limiter = app.NewRedisLoginRateLimiter(redisClient, cfg.RedisRateLimitPrefix)
				log.Println("level=info component=bootstrap msg=\"redis connected\"")
			}
		}
	}

	// Initialize the data access layer (repository).
	repository := store.NewPostgresRepository(dbpool)

	// Initialize the core application service with its dependencies.
	tokens := app.NewTokenIssuer(cfg.SessionSigningKey)
	service := app.NewService(repository, rizeClient, producer, limiter, tokens, app.ServiceConfig{
		EventExchange:    cfg.OnboardingEventExchange,
		SessionTTL:       time.Duration(cfg.SessionTTLHours) * time.Hour,
		LoginLimit:       cfg.LoginRateLimitPerMinute,
		LoginWindow:      time.Minute,
		WatchInterval:    time.Duration(cfg.WatchIntervalSeconds) * time.Second,
		WatchMaxAttempts: cfg.WatchMaxAttempts,
	})

	// Scheduled jobs: expired-session purge and pending-customer sweep.
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	jobs := app.NewJobs(service, repository, logger, cfg.CustomerSweepBatch)
	scheduler := app.NewScheduler(jobs, logger, app.SchedulerConfig{
		SessionPurgeSchedule:  cfg.SessionPurgeSchedule,
		CustomerSweepSchedule: cfg.CustomerSweepSchedule,
	})
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize the API handlers and router.
	handlers := api.NewHandlers(service)
	router := api.NewRouter(handlers, service)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("level=info component=http msg=\"server listening\" addr=%s", serverAddr)

	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("level=fatal component=http msg=\"server stopped unexpectedly\" err=%v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("level=info component=http msg=\"shutdown started\"")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("level=error component=http msg=\"shutdown failed\" err=%v", err)
	}

	log.Println("level=info component=http msg=\"shutdown complete\"")
}
