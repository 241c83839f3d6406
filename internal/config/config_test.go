package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.Server.Addr)
	}
	if cfg.Gateway.Addr != ":8081" {
		t.Fatalf("expected :8081, got %q", cfg.Gateway.Addr)
	}
	if cfg.Auth.TokenTTLMin != 0 {
		t.Fatalf("expected no expiry by default, got %d", cfg.Auth.TokenTTLMin)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error without JWT_SECRET")
	}
}

func TestLoadAddrPassthrough(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "127.0.0.1:9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("expected passthrough addr, got %q", cfg.Server.Addr)
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AUTH_TOKEN_TTL_MIN", "-5")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for negative TTL")
	}
}
