package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileTokenStore(path)

	if store.HasToken() {
		t.Fatal("empty store claims to have a token")
	}

	if err := store.Save("  abc123  "); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	token, err := store.AccessToken()
	if err != nil {
		t.Fatalf("AccessToken() error: %v", err)
	}
	if token != "abc123" {
		t.Errorf("token = %q, want trimmed %q", token, "abc123")
	}
	if !store.HasToken() {
		t.Error("HasToken() = false after Save")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file permissions = %o, want 0600", perm)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if store.HasToken() {
		t.Error("HasToken() = true after Clear")
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear() error: %v", err)
	}
}

func TestFileTokenStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("   \n"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewFileTokenStore(path)
	if _, err := store.AccessToken(); err == nil {
		t.Fatal("expected error for empty token file")
	}
}
