// Package config loads recall's configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/recall-cli/recall/internal/embedding"
)

// EmbeddingConfig selects and parameterizes the embedding provider.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "ollama" | "openai" | "" (disabled)
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
	Dimension int    `yaml:"dimension,omitempty"`
}

// Config is the on-disk configuration.
type Config struct {
	DBPath    string          `yaml:"db_path,omitempty"`
	Embedding EmbeddingConfig `yaml:"embedding"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".recall", "config.yaml")
}

// DefaultDBPath returns the default database location.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".recall", "recall.db")
}

// Load reads the config file at path (DefaultPath if empty) and applies
// RECALL_* environment overrides. A missing file is not an error; the
// zero config with overrides applied is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env overrides
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if v := os.Getenv("RECALL_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("RECALL_EMBED_PROVIDER"); v != "" {
		cfg.Embedding.Provider = v
	}
	if v := os.Getenv("RECALL_EMBED_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("RECALL_EMBED_URL"); v != "" {
		cfg.Embedding.BaseURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = v
	}

	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}

	return cfg, nil
}

// Embedder builds the configured embedding provider, or nil if embeddings
// are disabled.
func (c *Config) Embedder() embedding.Embedder {
	e := c.Embedding
	switch e.Provider {
	case "ollama":
		model := e.Model
		if model == "" {
			model = "nomic-embed-text"
		}
		return embedding.NewOllamaEmbedder(e.BaseURL, model, e.Dimension)
	case "openai":
		return embedding.NewOpenAIEmbedder(e.BaseURL, e.APIKey, e.Model, e.Dimension)
	default:
		return nil
	}
}
