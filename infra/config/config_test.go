package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BLOGCRAFT_SERVER", "")
	t.Setenv("BLOGCRAFT_TOKEN", "")
	t.Setenv("BLOGCRAFT_CACHE", "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ServerURL != "http://localhost:8080" {
		t.Errorf("ServerURL = %q, want default", cfg.ServerURL)
	}
	if !strings.HasSuffix(cfg.TokenPath, "/.config/blogcraft/token") {
		t.Errorf("unexpected TokenPath %q", cfg.TokenPath)
	}
	if !strings.HasSuffix(cfg.SnapshotPath, "/.cache/blogcraft/feed") {
		t.Errorf("unexpected SnapshotPath %q", cfg.SnapshotPath)
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	t.Setenv("BLOGCRAFT_SERVER", "https://blog.example.com/")
	t.Setenv("BLOGCRAFT_TOKEN", "/tmp/token")
	t.Setenv("BLOGCRAFT_CACHE", "/tmp/feed")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ServerURL != "https://blog.example.com" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
}

func TestLoad_RejectsBadServer(t *testing.T) {
	tests := []struct {
		name   string
		server string
	}{
		{name: "relative", server: "blog.example.com"},
		{name: "bad scheme", server: "ftp://blog.example.com"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("BLOGCRAFT_SERVER", tc.server)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %q", tc.server)
			}
		})
	}
}
