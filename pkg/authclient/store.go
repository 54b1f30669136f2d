package authclient

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the session token between runs, playing the role the
// browser's local storage plays for the web app.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a single file with owner-only permissions.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore stores the token at the given path. An empty path
// defaults to rehabai_token in the user home directory.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".rehabai_token")
	}
	return &FileTokenStore{path: path}, nil
}

func (s *FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *FileTokenStore) Save(token string) error {
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
