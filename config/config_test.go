package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("STYLELENS_SERVER_PORT")
		os.Unsetenv("STYLELENS_SERVER_ENVIRONMENT")
		os.Unsetenv("STYLELENS_SERP_API_KEY")
		os.Unsetenv("STYLELENS_SERP_BASE_URL")
		os.Unsetenv("STYLELENS_ORACLE_API_KEY")
		os.Unsetenv("STYLELENS_ORACLE_BASE_URL")
		os.Unsetenv("STYLELENS_ORACLE_MODEL")
		os.Unsetenv("STYLELENS_CACHE_TYPE")
		os.Unsetenv("STYLELENS_CACHE_TTL")
		os.Unsetenv("STYLELENS_CURATION_VISUAL_WEIGHT")
		os.Unsetenv("STYLELENS_CURATION_POPULARITY_WEIGHT")
		os.Unsetenv("STYLELENS_CURATION_MIN_SIGNIFICANCE")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		// Set required API keys
		os.Setenv("STYLELENS_SERP_API_KEY", "test-serp-key")
		os.Setenv("STYLELENS_ORACLE_API_KEY", "test-oracle-key")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Serp.BaseURL != "https://serpapi.com" {
			t.Errorf("Serp.BaseURL = %s, want https://serpapi.com", cfg.Serp.BaseURL)
		}
		if cfg.Oracle.Model != "gpt-4o-mini" {
			t.Errorf("Oracle.Model = %s, want gpt-4o-mini", cfg.Oracle.Model)
		}
		if cfg.Oracle.Timeout != 45*time.Second {
			t.Errorf("Oracle.Timeout = %v, want 45s", cfg.Oracle.Timeout)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.Curation.VisualWeight != 0.8 {
			t.Errorf("Curation.VisualWeight = %v, want 0.8", cfg.Curation.VisualWeight)
		}
		if cfg.Curation.PopularityWeight != 0.2 {
			t.Errorf("Curation.PopularityWeight = %v, want 0.2", cfg.Curation.PopularityWeight)
		}
		if cfg.Curation.MinSignificance != 5 {
			t.Errorf("Curation.MinSignificance = %d, want 5", cfg.Curation.MinSignificance)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("STYLELENS_SERVER_PORT", "9090")
		os.Setenv("STYLELENS_SERVER_ENVIRONMENT", "production")
		os.Setenv("STYLELENS_SERP_API_KEY", "custom-serp-key")
		os.Setenv("STYLELENS_SERP_BASE_URL", "https://custom.serp.example.com")
		os.Setenv("STYLELENS_ORACLE_API_KEY", "custom-oracle-key")
		os.Setenv("STYLELENS_ORACLE_MODEL", "gpt-4o")
		os.Setenv("STYLELENS_CACHE_TTL", "24h")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Serp.APIKey != "custom-serp-key" {
			t.Errorf("Serp.APIKey = %s, want custom-serp-key", cfg.Serp.APIKey)
		}
		if cfg.Serp.BaseURL != "https://custom.serp.example.com" {
			t.Errorf("Serp.BaseURL = %s, want https://custom.serp.example.com", cfg.Serp.BaseURL)
		}
		if cfg.Oracle.Model != "gpt-4o" {
			t.Errorf("Oracle.Model = %s, want gpt-4o", cfg.Oracle.Model)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
	})

	t.Run("fails when shopping search API key is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("STYLELENS_ORACLE_API_KEY", "test-oracle-key")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for missing serp API key")
		}
	})

	t.Run("fails when oracle API key is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("STYLELENS_SERP_API_KEY", "test-serp-key")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for missing oracle API key")
		}
	})

	t.Run("fails when curation weights do not sum to 1", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("STYLELENS_SERP_API_KEY", "test-serp-key")
		os.Setenv("STYLELENS_ORACLE_API_KEY", "test-oracle-key")
		os.Setenv("STYLELENS_CURATION_VISUAL_WEIGHT", "0.9")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for weights not summing to 1")
		}
	})

	t.Run("fails for unsupported cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("STYLELENS_SERP_API_KEY", "test-serp-key")
		os.Setenv("STYLELENS_ORACLE_API_KEY", "test-oracle-key")
		os.Setenv("STYLELENS_CACHE_TYPE", "redis")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for unsupported cache type")
		}
	})
}
