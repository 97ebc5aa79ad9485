package worker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/config"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/db"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/kafka"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/logger"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/metrics"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/repository"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var metricsAddr string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Ingest customer events from Kafka into ClickHouse",
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9091", "address for the worker /metrics endpoint (empty disables)")
}

func runEvents(cmd *cobra.Command, args []string) error {
	// 1) load config
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lg := logger.Init(cfg.Log)
	defer func() { _ = lg.Sync() }()

	metrics.MustRegister(prometheus.DefaultRegisterer)

	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Topic == "" {
		return errors.New("kafka.brokers and kafka.topic are required")
	}

	// 2) ClickHouse sink
	chDB, err := db.NewClickHouseConnection(cfg.ClickHouse)
	if err != nil {
		return fmt.Errorf("clickhouse connect: %w", err)
	}
	defer chDB.Close()

	// 3) kafka consumer
	groupID := cfg.Kafka.GroupID
	if groupID == "" {
		groupID = "clearbroker-events"
	}
	consumer := kafka.NewConsumerFromConfig(kafka.Config{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          cfg.Kafka.Topic,
		GroupID:        groupID,
		MinBytes:       cfg.Kafka.MinBytes,
		MaxBytes:       cfg.Kafka.MaxBytes,
		CommitInterval: time.Duration(cfg.Kafka.CommitInterval) * time.Millisecond,
	})
	defer consumer.Close()

	w := worker.NewEventIngest(consumer, repository.NewCHEventsRepository(chDB), lg)

	// tune knobs
	if cfg.Worker.BatchSize > 0 {
		w.BatchSize = cfg.Worker.BatchSize
	}
	if cfg.Worker.BatchWait > 0 {
		w.BatchWait = cfg.Worker.BatchWait
	}

	// 4) graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				lg.Error("metrics server exited", zap.Error(err))
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	lg.Info("event ingest started",
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group", groupID),
		zap.Int("batch_size", w.BatchSize),
		zap.Duration("batch_wait", w.BatchWait))

	return w.Run(ctx)
}
