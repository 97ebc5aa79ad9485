package cmd

import (
	"context"
	"fmt"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/db"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/logger"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var withClickHouse bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		mysqlDB, err := db.NewMySQLConnection(cfg.MySQL)
		if err != nil {
			return fmt.Errorf("open mysql: %w", err)
		}
		defer mysqlDB.Close()

		n, err := migrations.Up(ctx, mysqlDB.DB, migrations.MySQL)
		if err != nil {
			return err
		}
		logger.Log.Info("migrations applied", zap.String("target", string(migrations.MySQL)), zap.Int("count", n))

		if !withClickHouse {
			return nil
		}

		chDB, err := db.NewClickHouseConnection(cfg.ClickHouse)
		if err != nil {
			return fmt.Errorf("open clickhouse: %w", err)
		}
		defer chDB.Close()

		n, err = migrations.Up(ctx, chDB.DB, migrations.ClickHouse)
		if err != nil {
			return err
		}
		logger.Log.Info("migrations applied", zap.String("target", string(migrations.ClickHouse)), zap.Int("count", n))
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&withClickHouse, "clickhouse", false, "also migrate the ClickHouse event store")
}
