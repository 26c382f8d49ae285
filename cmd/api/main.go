package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wodomierze/rejestr/internal/auth"
	"github.com/wodomierze/rejestr/internal/config"
	"github.com/wodomierze/rejestr/internal/db"
	internalhttp "github.com/wodomierze/rejestr/internal/http"
	"github.com/wodomierze/rejestr/internal/identity"
	"github.com/wodomierze/rejestr/internal/provision"
	"github.com/wodomierze/rejestr/internal/registry"
	"github.com/wodomierze/rejestr/internal/repo"
	"github.com/wodomierze/rejestr/internal/worklog"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("api zakończone błędem")
	}
}

func run() error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis parse: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	identityClient, err := identity.New(identity.Config{
		BaseURL:  cfg.IdentityAPIURL,
		APIToken: cfg.IdentityAPIToken,
	})
	if err != nil {
		return fmt.Errorf("identity: %w", err)
	}

	users := repo.NewUsers(pool)
	provisioner := provision.New(users, identityClient, redisClient, cfg.UserCacheTTL)

	registryRepo := registry.NewRepository(pool)
	registryService := registry.NewService(registryRepo)

	worklogRepo := worklog.NewRepository(pool)
	worklogService := worklog.NewService(worklogRepo, registryRepo)

	handler := internalhttp.NewRouter(internalhttp.Deps{
		Config:      cfg,
		Verifier:    auth.NewTokenVerifier(cfg.JWTSecret),
		Provisioner: provisioner,
		Registry:    registry.NewHandler(registryService),
		Worklog:     worklog.NewHandler(worklogService),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("API nasłuchuje na :%d", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("zamykanie...")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
