package config

import (
	"os"
	"testing"
)

func TestNewValidProvider(t *testing.T) {
	settings, err := New("openai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.LLM.Provider != "openai" {
		t.Errorf("expected provider 'openai', got %q", settings.LLM.Provider)
	}
	if settings.Chat.Channel == "" {
		t.Error("expected a default channel")
	}
	if settings.Chat.DBPath == "" {
		t.Error("expected a default db path")
	}
}

func TestNewWithAlias(t *testing.T) {
	settings, err := New("claude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.LLM.Provider != "anthropic" {
		t.Errorf("expected provider 'anthropic' (normalized from 'claude'), got %q", settings.LLM.Provider)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New("unknown_provider")
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewStoreFallbacks(t *testing.T) {
	original := os.Getenv("VECTOR_STORE_ID")
	os.Setenv("VECTOR_STORE_ID", "vs_from_env")
	defer os.Setenv("VECTOR_STORE_ID", original)

	settings, err := New("openai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(settings.Store.FallbackIDs) != 2 {
		t.Fatalf("expected 2 fallback ids, got %v", settings.Store.FallbackIDs)
	}
	if settings.Store.FallbackIDs[0] != "vs_from_env" {
		t.Errorf("expected env id first, got %v", settings.Store.FallbackIDs)
	}
	if settings.Store.FallbackIDs[1] != DefaultStoreID {
		t.Errorf("expected built-in fallback last, got %v", settings.Store.FallbackIDs)
	}
}

func TestNewInvalidMaxTokens(t *testing.T) {
	original := os.Getenv("LLM_MAX_TOKENS")
	os.Setenv("LLM_MAX_TOKENS", "not-a-number")
	defer os.Setenv("LLM_MAX_TOKENS", original)

	_, err := New("openai")
	if err == nil {
		t.Error("expected error for invalid LLM_MAX_TOKENS")
	}
}

func TestAPIKeyForValidProvider(t *testing.T) {
	original := os.Getenv("OPENAI_API_KEY")
	os.Setenv("OPENAI_API_KEY", "test-key")
	defer os.Setenv("OPENAI_API_KEY", original)

	key, err := APIKeyFor("openai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "test-key" {
		t.Errorf("expected 'test-key', got %q", key)
	}
}

func TestAPIKeyForMissing(t *testing.T) {
	original := os.Getenv("OPENAI_API_KEY")
	os.Unsetenv("OPENAI_API_KEY")
	defer os.Setenv("OPENAI_API_KEY", original)

	_, err := APIKeyFor("openai")
	if err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestModelForUsesEnvOverride(t *testing.T) {
	original := os.Getenv("GEMINI_MODEL")
	os.Setenv("GEMINI_MODEL", "gemini-custom")
	defer os.Setenv("GEMINI_MODEL", original)

	model, err := ModelFor("gemini")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model != "gemini-custom" {
		t.Errorf("expected 'gemini-custom', got %q", model)
	}
}

func TestSupportedProviders(t *testing.T) {
	supported := SupportedProviders()
	if len(supported) != 3 {
		t.Errorf("expected 3 providers, got %v", supported)
	}
}
