package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the credential slot to a single file so it survives
// process restarts, like local storage survives browser restarts. The file
// holds the raw credential string and nothing else.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at path. An empty path defaults
// to "authToken" under the user config dir (falling back to the cwd).
func NewFileStore(path string) *FileStore {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		path = filepath.Join(dir, "clauselens", "authToken")
	}
	return &FileStore{path: path}
}

func (f *FileStore) Get(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoCredential
		}
		return "", err
	}
	if len(b) == 0 {
		return "", ErrNoCredential
	}
	return string(b), nil
}

func (f *FileStore) Set(ctx context.Context, credential string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(credential), 0o600)
}

func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
