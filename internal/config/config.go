// Package config persists the user's settings in ~/.coinpaprika/config.json.
//
// The file is small and read whole on every invocation; there is no caching
// across invocations so that an interactive session sees a key saved by
// another process immediately.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Environment variables.
const (
	// EnvHome overrides the configuration directory.
	EnvHome = "COINPAPRIKA_HOME"
)

// File layout.
const (
	DirName  = ".coinpaprika"
	FileName = "config.json"

	// KeyAPIKey is the JSON field holding the API key.
	KeyAPIKey = "api_key"
)

// Permissions. The file holds a secret.
const (
	dirPerm  fs.FileMode = 0o700
	filePerm fs.FileMode = 0o600
)

// Config mirrors the persisted JSON document.
type Config struct {
	APIKey string `mapstructure:"api_key" json:"api_key"`
}

// Dir returns the configuration directory.
// Uses COINPAPRIKA_HOME if set, otherwise ~/.coinpaprika.
func Dir() (string, error) {
	if d := os.Getenv(EnvHome); d != "" {
		return d, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// FileStore reads and writes the config file in a single directory.
// The zero value resolves the directory with Dir on every call.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. An empty dir defers to Dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory holding the config file.
func (s *FileStore) Dir() (string, error) {
	if s.dir != "" {
		return s.dir, nil
	}
	return Dir()
}

// Path returns the full path to the config file.
func (s *FileStore) Path() (string, error) {
	d, err := s.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, FileName), nil
}

// Load reads the config file.
// Returns an empty Config if the file doesn't exist (not an error).
// A malformed file is an error; callers that must never fail treat it as empty.
func (s *FileStore) Load() (Config, error) {
	var cfg Config

	v, err := s.read()
	if err != nil {
		return cfg, err
	}
	if v == nil {
		return cfg, nil
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// APIKey returns the stored key, or "" when none is stored.
func (s *FileStore) APIKey() (string, error) {
	cfg, err := s.Load()
	if err != nil {
		return "", err
	}
	return cfg.APIKey, nil
}

// SaveAPIKey writes key to the config file, creating the directory (0700)
// and file (0600) as needed. Other fields already in the file are preserved
// unless the file is unreadable, in which case it is replaced.
func (s *FileStore) SaveAPIKey(key string) error {
	p, err := s.Path()
	if err != nil {
		return err
	}

	d := filepath.Dir(p)
	if err := os.MkdirAll(d, dirPerm); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := os.Chmod(d, dirPerm); err != nil {
		return fmt.Errorf("cannot secure config directory: %w", err)
	}

	v, err := s.read()
	if err != nil || v == nil {
		v = newViper(p)
	}
	v.Set(KeyAPIKey, key)

	if err := v.WriteConfigAs(p); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	// WriteConfigAs keeps the mode of an existing file.
	if err := os.Chmod(p, filePerm); err != nil {
		return fmt.Errorf("cannot secure config file: %w", err)
	}
	return nil
}

// Reset deletes the config file. The directory is kept because it also
// holds the log files. Reports whether a file was removed.
func (s *FileStore) Reset() (bool, error) {
	p, err := s.Path()
	if err != nil {
		return false, err
	}

	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("cannot delete config file: %w", err)
	}
	return true, nil
}

// read loads the file into a fresh viper instance.
// Returns (nil, nil) when the file does not exist.
func (s *FileStore) read() (*viper.Viper, error) {
	p, err := s.Path()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	v := newViper(p)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return v, nil
}

func newViper(p string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(p)
	v.SetConfigType("json")
	v.SetConfigPermissions(filePerm)
	return v
}
