package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	applisting "github.com/inmolista/backend/internal/application/listing"
	"github.com/inmolista/backend/internal/domain/listing"
	"github.com/inmolista/backend/internal/domain/payment"
	"github.com/inmolista/backend/internal/infrastructure/config"
	"github.com/inmolista/backend/internal/infrastructure/logger"
	"github.com/inmolista/backend/internal/infrastructure/persistence"
)

func main() {
	var once bool
	flag.BoolVar(&once, "once", false, "Run a single sweep pass and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	domainCfg, err := cfg.Marketplace.Domain()
	if err != nil {
		log.Fatal("Invalid marketplace configuration", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Log.SlowQuery)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	sweep := applisting.NewSweepService(
		persistence.NewGormListingRepository(db.DB),
		persistence.NewGormPaymentRepository(db.DB),
		listing.NewService(domainCfg.ListingDuration),
		payment.NewService(domainCfg.ListingFee, domainCfg.PaymentWindow),
		cfg.Sweep.BatchSize,
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runPass := func() {
		result, err := sweep.Run(ctx, time.Now())
		if err != nil {
			log.Error("Sweep pass failed", zap.Error(err))
			return
		}
		log.Debug("Sweep pass done",
			zap.Int("listings_expired", result.ListingsExpired),
			zap.Int("payments_expired", result.PaymentsExpired))
	}

	log.Info("Sweeper started",
		zap.Duration("interval", cfg.Sweep.Interval),
		zap.Int("batch_size", cfg.Sweep.BatchSize))

	runPass()
	if once {
		return
	}

	ticker := time.NewTicker(cfg.Sweep.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Sweeper shutting down")
			return
		case <-ticker.C:
			runPass()
		}
	}
}
