// @title        Piracy Detector API
// @version      1.0
// @description  Registers users, manages cookie sessions and scans web pages for a keyword.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/piracy-detector/internal/api"
	"github.com/99minutos/piracy-detector/internal/core/ports"
	"github.com/99minutos/piracy-detector/internal/core/service"
	"github.com/99minutos/piracy-detector/internal/infrastructure/config"
	"github.com/99minutos/piracy-detector/internal/infrastructure/db/memory"
	mongostore "github.com/99minutos/piracy-detector/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/piracy-detector/internal/infrastructure/db/redis"
	"github.com/99minutos/piracy-detector/internal/infrastructure/extractor"
	"github.com/99minutos/piracy-detector/internal/infrastructure/fetcher"
	"github.com/99minutos/piracy-detector/internal/infrastructure/http/handlers"
	"github.com/99minutos/piracy-detector/pkg/logger"
	"github.com/99minutos/piracy-detector/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Pretty: true})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "piracy-detector",
	})

	if cfg.IsProduction() && cfg.Auth.SessionSecret == config.DevSessionSecret {
		log.Warn().Msg("SESSION_SECRET is the development default; set it for production")
	}

	readiness := map[string]handlers.Checker{}
	var cleanup []func()
	defer func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}()

	// --- Credential store ---
	var users ports.CredentialStore
	switch cfg.Storage.CredentialBackend {
	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongo")
		}
		cleanup = append(cleanup, func() {
			if err := mongostore.Disconnect(client, shutdownTimeout); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		})

		store := mongostore.NewCredentialStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create mongo indexes")
		}
		users = store
		readiness["mongo"] = handlers.MongoChecker(db)
	default:
		users = memory.NewCredentialStore()
	}

	// --- Session store ---
	var sessions ports.SessionStore
	switch cfg.Storage.SessionBackend {
	case config.BackendRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		cleanup = append(cleanup, func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
		})

		sessions = redisstore.NewSessionStore(rdb)
		readiness["redis"] = handlers.RedisChecker(rdb)
	default:
		sessions = memory.NewSessionStore()
	}

	log.Info().
		Str("credentials", cfg.Storage.CredentialBackend).
		Str("sessions", cfg.Storage.SessionBackend).
		Msg("storage backends ready")

	// --- Services ---
	authService := service.NewAuthService(users, sessions, service.AuthOptions{
		BcryptCost: cfg.Auth.BcryptCost,
		SessionTTL: cfg.Auth.SessionTTL,
	}, log)
	scanService := service.NewScanService(
		fetcher.New(fetcher.Options{
			Timeout:      cfg.Fetch.Timeout,
			MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
			UserAgent:    cfg.Fetch.UserAgent,
		}),
		extractor.New(),
		log,
	)

	router := api.NewRouter(api.Dependencies{
		AuthService:  authService,
		Tokens:       service.NewSessionTokens(cfg.Auth.SessionSecret),
		ScanService:  scanService,
		Readiness:    readiness,
		Assets:       web.Public(),
		Log:          log,
		CookieSecure: cfg.Auth.CookieSecure,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
		}
	}

	shutdown(srv, log)
}

func shutdown(srv *http.Server, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}
	log.Info().Msg("server exited")
}
