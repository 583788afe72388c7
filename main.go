package main

import (
	"context"
	"log"

	"bmireport/adapters/excel"
	"bmireport/app"
	"bmireport/domain/bmi"
	"bmireport/internal"
	"bmireport/internal/config"
	"bmireport/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Logging.Level))
	internal.DefaultLogger = logger

	// Fail fast on an unreadable dataset and report how well the stated
	// Index agrees with the computed one on both tables
	pair, err := excel.LoadPair(context.Background(), appConfig.Data.TrainFile, appConfig.Data.ValidationFile, logger)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	logAgreement(logger, "train", pair.Train.Records)
	if pair.Validation != nil {
		logAgreement(logger, "validation", pair.Validation.Records)
	}

	opts := app.DefaultOptions()
	opts.Grid = appConfig.Grid.Range()
	opts.PreviewRows = appConfig.Data.PreviewRows

	server, err := ui.NewApp(
		ui.Config{Port: appConfig.Server.Port, Options: opts},
		ui.FileSource{Path: appConfig.Data.TrainFile, Logger: logger},
		app.NewReportService(logger),
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func logAgreement(logger *internal.Logger, name string, records []bmi.Record) {
	a := bmi.Summarize(bmi.Annotate(records))
	logger.Info("Loaded %s set: %d rows, %d included, %d excluded, %d invalid (%.1f%% agreement)",
		name, a.Total, a.Included, a.Excluded, a.Invalid, a.InclusionRate*100)
}
