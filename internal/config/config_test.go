package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
		"OPENAI_MAX_TOKENS", "OPENAI_TEMPERATURE", "OPENAI_TOP_P", "OPENAI_TIMEOUT",
		"TMDB_API_KEY", "TMDB_BASE_URL", "TMDB_IMAGE_BASE_URL", "TMDB_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected default addr %q", cfg.Server.Addr)
	}
	if cfg.AI.Enabled() {
		t.Fatal("AI must be disabled without a credential")
	}
	if cfg.AI.Model != "gpt-3.5-turbo" {
		t.Fatalf("unexpected default model %q", cfg.AI.Model)
	}
	if cfg.AI.MaxTokens != 500 || cfg.AI.Temperature != 0.7 || cfg.AI.TopP != 1.0 {
		t.Fatalf("unexpected sampling defaults: %+v", cfg.AI)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Fatalf("unexpected AI timeout %v", cfg.AI.Timeout)
	}
	if cfg.Catalog.BaseURL != "https://api.themoviedb.org/3" {
		t.Fatalf("unexpected catalog base url %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.Timeout != 10*time.Second {
		t.Fatalf("unexpected catalog timeout %v", cfg.Catalog.Timeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_MAX_TOKENS", "256")
	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	t.Setenv("OPENAI_TIMEOUT", "5")
	t.Setenv("TMDB_API_KEY", "tmdb-test")
	t.Setenv("TMDB_TIMEOUT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if !cfg.AI.Enabled() || cfg.AI.Model != "gpt-4o-mini" {
		t.Fatalf("AI overrides not applied: %+v", cfg.AI)
	}
	if cfg.AI.MaxTokens != 256 || cfg.AI.Temperature != 0.2 {
		t.Fatalf("sampling overrides not applied: %+v", cfg.AI)
	}
	if cfg.AI.Timeout != 5*time.Second {
		t.Fatalf("unexpected AI timeout %v", cfg.AI.Timeout)
	}
	if !cfg.Catalog.Enabled() || cfg.Catalog.Timeout != 3*time.Second {
		t.Fatalf("catalog overrides not applied: %+v", cfg.Catalog)
	}
}

func TestLoadAcceptsFullListenAddr(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:8081")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:8081" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("OPENAI_MAX_TOKENS", "lots")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric OPENAI_MAX_TOKENS")
	}

	t.Setenv("OPENAI_MAX_TOKENS", "")
	t.Setenv("OPENAI_TEMPERATURE", "warm")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric OPENAI_TEMPERATURE")
	}
}
