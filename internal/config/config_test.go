package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:8787" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Database.Path != "data/todo.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if cfg.Auth.TokenTTLMinutes != 60*24*7 {
		t.Errorf("token ttl = %d", cfg.Auth.TokenTTLMinutes)
	}
	if got := cfg.AllowedOrigins(); !reflect.DeepEqual(got, []string{"http://localhost:3000"}) {
		t.Errorf("origins = %v", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TODO_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("TODO_AUTH_JWTSECRET", "s3cret")
	t.Setenv("TODO_AUTH_TOKENTTLMINUTES", "15")
	t.Setenv("TODO_CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("jwt secret = %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTLMinutes != 15 {
		t.Errorf("token ttl = %d", cfg.Auth.TokenTTLMinutes)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if got := cfg.AllowedOrigins(); !reflect.DeepEqual(got, want) {
		t.Errorf("origins = %v, want %v", got, want)
	}
}
