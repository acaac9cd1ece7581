package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the verse similarity engine.
type Config struct {
	Corpus     CorpusConfig     `yaml:"corpus"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Preprocess PreprocessConfig `yaml:"preprocess"`
	Query      QueryConfig      `yaml:"query"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CorpusConfig locates the corpus files.
type CorpusConfig struct {
	Path     string   `yaml:"path"`     // corpus file the index is built from
	DataDir  string   `yaml:"data_dir"` // directory scanned by the corpora command
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// EmbeddingConfig locates the word vector table.
type EmbeddingConfig struct {
	Path      string `yaml:"path"`
	Dimension int    `yaml:"dimension"` // expected per-word dimension, 0 disables the check
	Cache     bool   `yaml:"cache"`
	CachePath string `yaml:"cache_path"`
}

// PreprocessConfig holds tokenization configuration.
type PreprocessConfig struct {
	MaxTokens int    `yaml:"max_tokens"` // passage vector window
	Stopwords string `yaml:"stopwords"`  // stopword locale
}

// QueryConfig holds query configuration.
type QueryConfig struct {
	DefaultCount int `yaml:"default_count"`
	CacheSize    int `yaml:"cache_size"`
}

// ServerConfig holds HTTP service configuration.
type ServerConfig struct {
	Port        int      `yaml:"port"`
	APIPrefix   string   `yaml:"api_prefix"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Path:     "bible-files/english-web-bible.json",
			DataDir:  "bible-files",
			Includes: []string{"**/*.json"},
			Excludes: []string{"**/.versesim/**", "**/node_modules/**"},
		},
		Embedding: EmbeddingConfig{
			Path:      "dl-files/glove.6B.200d.txt",
			Dimension: 200,
			Cache:     true,
			CachePath: ".versesim/embeddings.db",
		},
		Preprocess: PreprocessConfig{
			MaxTokens: 24,
			Stopwords: "english",
		},
		Query: QueryConfig{
			DefaultCount: 10,
			CacheSize:    256,
		},
		Server: ServerConfig{
			Port:        8081,
			APIPrefix:   "/api/v1",
			CORSOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for
// versesim.yaml, then .versesim/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "versesim.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".versesim", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Preprocess.MaxTokens <= 0 {
		return fmt.Errorf("config: preprocess.max_tokens must be positive, got %d", c.Preprocess.MaxTokens)
	}
	if c.Embedding.Dimension < 0 {
		return fmt.Errorf("config: embedding.dimension must not be negative, got %d", c.Embedding.Dimension)
	}
	if c.Query.DefaultCount <= 0 {
		return fmt.Errorf("config: query.default_count must be positive, got %d", c.Query.DefaultCount)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	return nil
}

// EnsureStateDir ensures the .versesim state directory exists under dir.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".versesim"), 0755)
}
