package cmd

import (
	"fmt"
	"os"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/cmd/worker"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/config"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	envPath string
	rootCmd = &cobra.Command{
		Use:   "clearbroker",
		Short: "Customs broker onboarding service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; real environment variables win over it
			if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("load %s: %w", envPath, err)
			}
			return nil
		},
		SilenceUsage: true,
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and initializes the global logger.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log)
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "optional dotenv file loaded before config")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(worker.NewWorkerCmd())
}
