package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/auth"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/db"
	httpSrv "github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/http"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/logger"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		lg := logger.Log
		defer func() { _ = lg.Sync() }()

		mysqlDB, err := db.NewMySQLConnection(cfg.MySQL)
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer mysqlDB.Close()

		redisClient, err := db.NewRedisClient(cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		chDB, err := db.NewClickHouseConnection(cfg.ClickHouse)
		if err != nil {
			return fmt.Errorf("clickhouse connect: %w", err)
		}
		defer func() {
			_ = chDB.Close()
		}()

		server := httpSrv.NewServer(cfg, httpSrv.Deps{
			Brokers:   repository.NewBrokersRepository(mysqlDB),
			Customers: repository.NewCustomersRepository(mysqlDB, repository.NewOutboxRepository(mysqlDB)),
			Stats:     repository.NewStatsRepository(mysqlDB),
			Events:    repository.NewCHEventsRepository(chDB),
			Sessions:  auth.NewRedisSessionStore(redisClient, cfg.Session.KeyPrefix, cfg.Session.TTL),
			Redis:     redisClient,
			Logger:    lg,
		})

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			lg.Info("signal received, shutting down", zap.String("signal", sig.String()))
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				lg.Error("http server exited", zap.Error(err))
				return err
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(ctx)
	},
}
