package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileTokenStore keeps the token in a file readable by the owner only.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore stores the token at path. An empty path selects
// "go-account-keeper/token" under the user configuration directory.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("cannot locate config directory: %w", err)
		}
		path = filepath.Join(dir, "go-account-keeper", "token")
	}
	return &FileTokenStore{path: path}, nil
}

func (s *FileTokenStore) Path() string {
	return s.path
}

// Load returns "" when no token was saved.
func (s *FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
