package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Semantic search provider modes.
const (
	SemanticHTTP     = "http"
	SemanticPostgres = "postgres"
	SemanticOff      = "off"
)

type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	DataDir string `mapstructure:"DATA_DIR"`

	OpenAIAPIKey       string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL      string `mapstructure:"OPENAI_BASE_URL"`
	OpenAIModelSummary string `mapstructure:"OPENAI_MODEL_SUMMARY"`
	OpenAIModelExtract string `mapstructure:"OPENAI_MODEL_EXTRACT"`

	SemanticProvider  string `mapstructure:"SEMANTIC_PROVIDER"`
	SemanticURL       string `mapstructure:"SEMANTIC_URL"`
	SemanticTimeoutMS int    `mapstructure:"SEMANTIC_TIMEOUT_MS"`
	SemanticTopK      int    `mapstructure:"SEMANTIC_TOP_K"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	AuthJWTSecret string   `mapstructure:"AUTH_JWT_SECRET"`
	CORSOrigins   []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("OPENAI_MODEL_SUMMARY", "gpt-4o-mini")
	v.SetDefault("OPENAI_MODEL_EXTRACT", "gpt-4o-mini")
	v.SetDefault("SEMANTIC_PROVIDER", SemanticOff)
	v.SetDefault("SEMANTIC_TIMEOUT_MS", 3000)
	v.SetDefault("SEMANTIC_TOP_K", 3)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATA_DIR")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("OPENAI_BASE_URL")
	v.BindEnv("OPENAI_MODEL_SUMMARY")
	v.BindEnv("OPENAI_MODEL_EXTRACT")
	v.BindEnv("SEMANTIC_PROVIDER")
	v.BindEnv("SEMANTIC_URL")
	v.BindEnv("SEMANTIC_TIMEOUT_MS")
	v.BindEnv("SEMANTIC_TOP_K")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("AUTH_JWT_SECRET")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		if origins := v.GetString("CORS_ORIGINS"); origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SemanticTimeout returns the semantic search timeout as a duration.
func (c *Config) SemanticTimeout() time.Duration {
	return time.Duration(c.SemanticTimeoutMS) * time.Millisecond
}

// Validate checks that the configuration is safe to run. The semantic
// provider must name a known mode and carry its transport settings, and
// production refuses to start without real credentials.
func (c *Config) Validate() error {
	switch c.SemanticProvider {
	case SemanticHTTP:
		if c.SemanticURL == "" {
			return fmt.Errorf("SEMANTIC_URL is required when SEMANTIC_PROVIDER is %q", SemanticHTTP)
		}
	case SemanticPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when SEMANTIC_PROVIDER is %q", SemanticPostgres)
		}
	case SemanticOff:
	default:
		return fmt.Errorf("SEMANTIC_PROVIDER must be %q, %q, or %q, got %q",
			SemanticHTTP, SemanticPostgres, SemanticOff, c.SemanticProvider)
	}

	if c.IsProduction() {
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required in production")
		}
		if c.AuthJWTSecret == "" {
			return fmt.Errorf("AUTH_JWT_SECRET is required in production")
		}
	}

	return nil
}
