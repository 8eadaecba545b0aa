package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "8080" {
		t.Fatalf("expected default api port 8080, got %s", cfg.APIPort)
	}
	if cfg.NATSSubject != "wardrobe.item.uploaded" {
		t.Fatalf("expected default nats subject, got %s", cfg.NATSSubject)
	}
	if cfg.TagTimeout != 15*time.Second {
		t.Fatalf("expected default tag timeout 15s, got %s", cfg.TagTimeout)
	}
	if cfg.ComposeTimeout != 45*time.Second {
		t.Fatalf("expected default compose timeout 45s, got %s", cfg.ComposeTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("OPENAI_VISION_MODEL", "custom-vision")
	t.Setenv("TAG_TIMEOUT", "5s")
	t.Setenv("COMPOSE_TIMEOUT", "90")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "9999" {
		t.Fatalf("expected api port override, got %s", cfg.APIPort)
	}
	if cfg.OpenAIVisionModel != "custom-vision" {
		t.Fatalf("expected vision model override, got %s", cfg.OpenAIVisionModel)
	}
	if cfg.TagTimeout != 5*time.Second {
		t.Fatalf("expected tag timeout 5s, got %s", cfg.TagTimeout)
	}
	if cfg.ComposeTimeout != 90*time.Second {
		t.Fatalf("expected bare-seconds compose timeout 90s, got %s", cfg.ComposeTimeout)
	}
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("TAG_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}

	t.Setenv("TAG_TIMEOUT", "-5s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative duration")
	}
}
