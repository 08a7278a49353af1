package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Serp     SerpConfig
	Oracle   OracleConfig
	Cache    CacheConfig
	Curation CurationConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SerpConfig holds shopping-search API configuration
type SerpConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// OracleConfig holds multimodal AI model configuration
type OracleConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory" only for now
	TTL  time.Duration `mapstructure:"ttl"`
}

// CurationConfig holds ranking and curation tuning
type CurationConfig struct {
	VisualWeight     float64 `mapstructure:"visual_weight"`
	PopularityWeight float64 `mapstructure:"popularity_weight"`
	MinSignificance  int     `mapstructure:"min_significance"`
	MaxItems         int     `mapstructure:"max_items"`
	EnableDebugLogs  bool    `mapstructure:"enable_debug_logs"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/stylelens/")

	// Environment variable settings
	v.SetEnvPrefix("STYLELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Shopping search defaults
	v.SetDefault("serp.base_url", "https://serpapi.com")

	// Oracle defaults
	v.SetDefault("oracle.base_url", "https://api.openai.com/v1")
	v.SetDefault("oracle.model", "gpt-4o-mini")
	v.SetDefault("oracle.timeout", "45s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "1h")

	// Curation defaults
	v.SetDefault("curation.visual_weight", 0.8)
	v.SetDefault("curation.popularity_weight", 0.2)
	v.SetDefault("curation.min_significance", 5)
	v.SetDefault("curation.max_items", 4)
	v.SetDefault("curation.enable_debug_logs", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Serp.APIKey == "" {
		return fmt.Errorf("shopping search API key is required (set STYLELENS_SERP_API_KEY)")
	}

	if config.Oracle.APIKey == "" {
		return fmt.Errorf("oracle API key is required (set STYLELENS_ORACLE_API_KEY)")
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	sum := config.Curation.VisualWeight + config.Curation.PopularityWeight
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("curation weights must sum to 1, got: %.3f", sum)
	}

	if config.Curation.MinSignificance < 1 || config.Curation.MinSignificance > 10 {
		return fmt.Errorf("curation min_significance must be 1-10, got: %d", config.Curation.MinSignificance)
	}

	return nil
}
