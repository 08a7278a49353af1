package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/stylelens/backend/config"
	httpDelivery "github.com/stylelens/backend/internal/delivery/http"
	"github.com/stylelens/backend/internal/infrastructure/cache"
	"github.com/stylelens/backend/internal/infrastructure/openai"
	"github.com/stylelens/backend/internal/infrastructure/serpapi"
	"github.com/stylelens/backend/internal/usecase"
)

func main() {
	// Load .env if present; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting StyleLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Oracle model: %s", cfg.Oracle.Model)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	serpClient := serpapi.NewClient(cfg.Serp.APIKey, cfg.Serp.BaseURL)
	oracleClient := openai.NewClient(openai.Config{
		APIKey:  cfg.Oracle.APIKey,
		BaseURL: cfg.Oracle.BaseURL,
		Model:   cfg.Oracle.Model,
		Timeout: cfg.Oracle.Timeout,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		serpClient.SetDebug(true)
		oracleClient.SetDebug(true)
		log.Printf("Upstream client debug mode enabled")
	}

	// Initialize usecase layer
	searchService := usecase.NewSearchService(
		serpClient,
		oracleClient,
		memoryCache,
		usecase.SearchServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			VisualWeight:       cfg.Curation.VisualWeight,
			PopularityWeight:   cfg.Curation.PopularityWeight,
			MinSignificance:    cfg.Curation.MinSignificance,
			MaxItems:           cfg.Curation.MaxItems,
			EnableDebugLogging: cfg.Curation.EnableDebugLogs,
		},
	)

	log.Printf("Curation: visual=%.2f popularity=%.2f min_significance=%d max_items=%d",
		cfg.Curation.VisualWeight,
		cfg.Curation.PopularityWeight,
		cfg.Curation.MinSignificance,
		cfg.Curation.MaxItems)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
