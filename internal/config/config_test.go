package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %s, want 8000", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %s, want development", cfg.Env)
	}
	if !cfg.IsDev() || cfg.IsProduction() {
		t.Error("default env should be development")
	}
	if cfg.SemanticProvider != SemanticOff {
		t.Errorf("SemanticProvider = %s, want off", cfg.SemanticProvider)
	}
	if cfg.SemanticTimeout() != 3*time.Second {
		t.Errorf("SemanticTimeout = %v, want 3s", cfg.SemanticTimeout())
	}
	if cfg.SemanticTopK != 3 {
		t.Errorf("SemanticTopK = %d, want 3", cfg.SemanticTopK)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("SEMANTIC_TIMEOUT_MS", "500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Errorf("Env = %s, want production", cfg.Env)
	}
	if cfg.SemanticTimeout() != 500*time.Millisecond {
		t.Errorf("SemanticTimeout = %v, want 500ms", cfg.SemanticTimeout())
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Env:              "development",
			SemanticProvider: SemanticOff,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"off provider ok", func(c *Config) {}, false},
		{"http requires url", func(c *Config) { c.SemanticProvider = SemanticHTTP }, true},
		{"http with url ok", func(c *Config) {
			c.SemanticProvider = SemanticHTTP
			c.SemanticURL = "http://localhost:9200"
		}, false},
		{"postgres requires database url", func(c *Config) { c.SemanticProvider = SemanticPostgres }, true},
		{"postgres with url ok", func(c *Config) {
			c.SemanticProvider = SemanticPostgres
			c.DatabaseURL = "postgres://localhost/vocab"
		}, false},
		{"unknown provider", func(c *Config) { c.SemanticProvider = "elasticsearch" }, true},
		{"production requires api key", func(c *Config) {
			c.Env = "production"
			c.AuthJWTSecret = "secret"
		}, true},
		{"production requires jwt secret", func(c *Config) {
			c.Env = "production"
			c.OpenAIAPIKey = "sk-test"
		}, true},
		{"production fully configured", func(c *Config) {
			c.Env = "production"
			c.OpenAIAPIKey = "sk-test"
			c.AuthJWTSecret = "secret"
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
