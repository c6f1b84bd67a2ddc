package prefs

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// FileName is the preference file inside the config directory.
const FileName = "preferences.toml"

// FileStore keeps preferences in a TOML file. The file is created with the
// defaults on first read.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. An empty path selects
// [DefaultPath].
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileStore{path: path}, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/mailgrid/preferences.toml, falling
// back to ~/.config/mailgrid/preferences.toml.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "mailgrid", FileName), nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := Validate(key, value); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

func (s *FileStore) All(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load reads the file, writing the defaults first when it does not exist.
// Stored values are merged over the defaults.
func (s *FileStore) load() (map[string]string, error) {
	values := Defaults()
	stored := map[string]string{}
	_, err := toml.DecodeFile(s.path, &stored)
	if stderrors.Is(err, fs.ErrNotExist) {
		return values, s.save(values)
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	for k, v := range stored {
		values[k] = v
	}
	return values, nil
}

func (s *FileStore) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(values); err != nil {
		f.Close()
		return fmt.Errorf("encode preferences: %w", err)
	}
	return f.Close()
}

var _ Store = (*FileStore)(nil)
