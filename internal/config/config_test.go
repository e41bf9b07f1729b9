package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.API.BaseURL == "" {
		t.Error("api base url must have a default")
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.Delivery.FreeThreshold != 2500 || cfg.Delivery.Surcharge != 350 {
		t.Errorf("delivery defaults = %v/%v, want 2500/350",
			cfg.Delivery.FreeThreshold, cfg.Delivery.Surcharge)
	}
	if cfg.Delivery.FreeProduct == "" {
		t.Error("free product default missing")
	}
	if cfg.Poll.Clock != time.Second || cfg.Poll.PendingEdits != 5*time.Second {
		t.Errorf("poll defaults = %v/%v", cfg.Poll.Clock, cfg.Poll.PendingEdits)
	}
	if cfg.Session.File == "" {
		t.Error("session file default missing")
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("serve addr = %q", cfg.Serve.Addr)
	}
}
