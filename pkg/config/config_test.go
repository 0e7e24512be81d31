package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("CHAT_RATE_WINDOW", "")
	t.Setenv("APPLICATION_ALLOW_REDECIDE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Store.Driver != "postgres" {
		t.Errorf("store driver = %q, want postgres", cfg.Store.Driver)
	}
	if cfg.Chat.RateWindow != 10*time.Second {
		t.Errorf("chat window = %s, want 10s", cfg.Chat.RateWindow)
	}
	if cfg.Application.AllowRedecide {
		t.Error("redecide should be off by default")
	}
	if cfg.JWT.TTL != 7*24*time.Hour {
		t.Errorf("jwt ttl = %s", cfg.JWT.TTL)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("AI_TIMEOUT", "5")
	t.Setenv("STORAGE_SIGNED_URL_TTL", "2m")
	t.Setenv("APPLICATION_ALLOW_REDECIDE", "true")
	t.Setenv("CHAT_RATE_LIMIT", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.UsesMemoryStore() {
		t.Errorf("driver = %q, want memory", cfg.Store.Driver)
	}
	if cfg.AI.Timeout != 5*time.Second {
		t.Errorf("ai timeout = %s, want 5s", cfg.AI.Timeout)
	}
	if cfg.Storage.SignedURLTTL != 2*time.Minute {
		t.Errorf("signed url ttl = %s, want 2m", cfg.Storage.SignedURLTTL)
	}
	if !cfg.Application.AllowRedecide {
		t.Error("redecide should be on")
	}
	if cfg.Chat.RateLimit != 20 {
		t.Errorf("invalid int should fall back to default, got %d", cfg.Chat.RateLimit)
	}
}

func TestPaymentPrices(t *testing.T) {
	t.Setenv("STRIPE_PRICE_PRO", "")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Payment.Prices()) != 0 {
		t.Errorf("prices = %v, want none without STRIPE_PRICE_PRO", cfg.Payment.Prices())
	}

	t.Setenv("STRIPE_PRICE_PRO", "price_123")
	cfg, _ = LoadConfig()
	if got := cfg.Payment.Prices()["pro"]; got != "price_123" {
		t.Errorf("pro price = %q", got)
	}
}
