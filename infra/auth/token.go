package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore supplies and persists the bearer token used for API calls.
type TokenStore interface {
	// AccessToken returns the stored token, or an error if none is stored.
	AccessToken() (string, error)

	// Save persists a new token.
	Save(token string) error

	// Clear removes the stored token (logout).
	Clear() error

	// HasToken reports whether a non-empty token is stored.
	HasToken() bool
}

// FileTokenStore keeps the bearer token in a file on disk.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a TokenStore backed by the given file path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// AccessToken reads and returns the token, trimming whitespace.
func (f *FileTokenStore) AccessToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", f.path)
	}

	return token, nil
}

// Save writes the token with owner-only permissions.
func (f *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(strings.TrimSpace(token)+"\n"), 0600); err != nil {
		return fmt.Errorf("writing token to %s: %w", f.path, err)
	}
	return nil
}

// Clear removes the token file. A missing file is not an error.
func (f *FileTokenStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file %s: %w", f.path, err)
	}
	return nil
}

// HasToken reports whether a usable token is on disk.
func (f *FileTokenStore) HasToken() bool {
	_, err := f.AccessToken()
	return err == nil
}
