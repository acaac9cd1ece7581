package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Preprocess.MaxTokens != 24 {
		t.Errorf("expected MaxTokens=24, got %d", cfg.Preprocess.MaxTokens)
	}
	if cfg.Embedding.Dimension != 200 {
		t.Errorf("expected Dimension=200, got %d", cfg.Embedding.Dimension)
	}
	if cfg.Query.DefaultCount != 10 {
		t.Errorf("expected DefaultCount=10, got %d", cfg.Query.DefaultCount)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("expected Port=8081, got %d", cfg.Server.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "versesim.yaml")

	content := `
corpus:
  path: data/t_kjv.json
preprocess:
  max_tokens: 12
query:
  default_count: 5
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Corpus.Path != "data/t_kjv.json" {
		t.Errorf("expected corpus path data/t_kjv.json, got %s", cfg.Corpus.Path)
	}
	if cfg.Preprocess.MaxTokens != 12 {
		t.Errorf("expected MaxTokens=12, got %d", cfg.Preprocess.MaxTokens)
	}
	if cfg.Query.DefaultCount != 5 {
		t.Errorf("expected DefaultCount=5, got %d", cfg.Query.DefaultCount)
	}
	// Untouched sections keep their defaults.
	if cfg.Embedding.Dimension != 200 {
		t.Errorf("expected Dimension=200, got %d", cfg.Embedding.Dimension)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "versesim.yaml")

	content := `
server:
  port: 9000
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected Port=9000, got %d", cfg.Server.Port)
	}
}

func TestLoadFromDirHiddenFallback(t *testing.T) {
	tmpDir := t.TempDir()
	if err := EnsureStateDir(tmpDir); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, ".versesim", "config.yaml")

	if err := os.WriteFile(configPath, []byte("query:\n  cache_size: 32\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Query.CacheSize != 32 {
		t.Errorf("expected CacheSize=32, got %d", cfg.Query.CacheSize)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "versesim.yaml")

	cfg := DefaultConfig()
	cfg.Corpus.Path = "data/custom.json"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Corpus.Path != "data/custom.json" {
		t.Errorf("expected saved corpus path, got %s", loaded.Corpus.Path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-positive max_tokens", func(c *Config) { c.Preprocess.MaxTokens = 0 }},
		{"negative dimension", func(c *Config) { c.Embedding.Dimension = -1 }},
		{"non-positive default_count", func(c *Config) { c.Query.DefaultCount = 0 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
