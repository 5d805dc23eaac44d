package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Config holds client-side configuration.
type Config struct {
	ServerURL    string // e.g. "https://blog.example.com"
	TokenPath    string // Path to file containing the access token
	SnapshotPath string // Path to the cached feed snapshot
}

// Load reads configuration from environment variables.
//
//	BLOGCRAFT_SERVER  — API server URL (default: "http://localhost:8080")
//	BLOGCRAFT_TOKEN   — Path to token file (default: ~/.config/blogcraft/token)
//	BLOGCRAFT_CACHE   — Path to feed snapshot (default: ~/.cache/blogcraft/feed)
func Load() (Config, error) {
	server := os.Getenv("BLOGCRAFT_SERVER")
	if server == "" {
		server = "http://localhost:8080"
	}
	parsed, err := url.Parse(server)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid BLOGCRAFT_SERVER: must be an absolute URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Config{}, fmt.Errorf("invalid BLOGCRAFT_SERVER: only http and https are allowed")
	}
	server = strings.TrimRight(parsed.String(), "/")

	tokenPath := os.Getenv("BLOGCRAFT_TOKEN")
	if tokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		tokenPath = filepath.Join(home, ".config", "blogcraft", "token")
	}

	snapshotPath := os.Getenv("BLOGCRAFT_CACHE")
	if snapshotPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		snapshotPath = filepath.Join(home, ".cache", "blogcraft", "feed")
	}

	return Config{
		ServerURL:    server,
		TokenPath:    tokenPath,
		SnapshotPath: snapshotPath,
	}, nil
}
