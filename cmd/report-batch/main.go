package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/nestly-app/payments-service/internal/config"
	"github.com/nestly-app/payments-service/internal/infrastructure/database"
	"github.com/nestly-app/payments-service/internal/logger"
	"github.com/nestly-app/payments-service/internal/usecase"
)

// Scheduled entry point for credit-report generation. Run with no flags it
// reports the previous calendar month; -period reruns a specific month.
func main() {
	period := flag.String("period", "", "reporting period override (YYYY-MM), defaults to the previous month")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	defer zapLogger.Sync()

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)
	batchService := usecase.NewReportBatchService(repos.Reporting, repos.UserProfile, repos.RentLedger, zapLogger)

	result, err := batchService.Run(context.Background(), *period)
	if err != nil {
		zapLogger.Fatal("Report batch run failed",
			zap.String("period", *period),
			zap.Error(err))
	}

	zapLogger.Info("Report batch run finished",
		zap.Int64("batch_id", result.BatchID),
		zap.String("period", result.Period),
		zap.Int("record_count", result.RecordCount),
		zap.String("message", result.Message))
}
