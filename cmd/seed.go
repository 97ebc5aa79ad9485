package cmd

import (
	"context"
	"fmt"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/db"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/logger"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/repository"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var adminPassword string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin broker if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		if adminPassword != "" {
			cfg.Seed.AdminPassword = adminPassword
		}

		sqlDB, err := db.NewMySQLConnection(cfg.MySQL)
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		b, created, err := seed.Admin(ctx, repository.NewBrokersRepository(sqlDB), cfg.Seed)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if !created {
			logger.Log.Info("admin already exists", zap.String("email", b.Email))
			return nil
		}
		logger.Log.Info("admin created", zap.String("id", b.ID), zap.String("email", b.Email))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&adminPassword, "admin-password", "", "admin password (overrides seed.admin_password)")
}
