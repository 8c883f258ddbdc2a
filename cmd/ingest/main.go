package main

import (
	"context"
	"flag"
	"log"
	"time"

	"insurance-advisor-be/internal/config"
	"insurance-advisor-be/internal/pkg/logger"
	"insurance-advisor-be/internal/repository/unitofwork"
	"insurance-advisor-be/internal/service"
	"insurance-advisor-be/pkg/database"
	"insurance-advisor-be/pkg/embedding"

	pktNats "insurance-advisor-be/pkg/nats"

	"github.com/fatih/color"
)

// Bulk-loads the scraped policy catalog and rebuilds the vector index.
// Intended to be run after each scrape, or manually when the embedding
// model changes.
func main() {
	cfg := config.Load()

	csvPath := flag.String("csv", cfg.Ingest.CSVPath, "path to the catalog CSV export")
	flag.Parse()

	color.Cyan("🚀 Catalog ingestion: %s\n", *csvPath)

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.EnsureVectorExtension(db); err != nil {
		log.Fatalf("Failed to install pgvector extension: %v", err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		color.Yellow("Embedding provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		color.Yellow("Embedding provider: GEMINI")
	}

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		color.Yellow("NATS unavailable, reload event will not be published: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	uowFactory := unitofwork.NewRepositoryFactory(db)

	ingestionService := service.NewIngestionService(
		uowFactory,
		embeddingProvider,
		natsPub,
		sysLogger,
		cfg.Ingest.Workers,
		time.Duration(cfg.Ingest.EmbedTimeout)*time.Second,
	)

	start := time.Now()
	result, err := ingestionService.ReloadFromCSV(context.Background(), *csvPath)
	if err != nil {
		color.Red("Ingestion failed: %v", err)
		log.Fatal(err)
	}

	color.Green("✅ Catalog reloaded in %s", time.Since(start).Round(time.Millisecond))
	color.Green("   Loaded:   %d", result.Loaded)
	color.Green("   Embedded: %d", result.Embedded)
	if result.Skipped > 0 {
		color.Red("   Skipped:  %d (see %s)", result.Skipped, cfg.App.LogFilePath)
	} else {
		color.Green("   Skipped:  0")
	}
}
