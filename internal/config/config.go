package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

const (
	fileName = "config.yaml"

	defaultDatabaseName = "dips"
)

// Settings is the on-disk configuration (config.yaml).
type Settings struct {
	Database DatabaseSettings `yaml:"database"`
}

type DatabaseSettings struct {
	// Path is the directory holding the database file. "~" is expanded.
	Path string `yaml:"path"`
	// Name is the database file name without the .db extension.
	Name string `yaml:"database_name"`
}

// Dir returns the dips config directory.
func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.dips).
	if v := strings.TrimSpace(os.Getenv("DIPS_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dips"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

func Default() (*Settings, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return &Settings{Database: DatabaseSettings{Path: dir, Name: defaultDatabaseName}}, nil
}

// Load reads settings from path (or the default location when path is empty).
// A missing file yields defaults. DIPS_DB_PATH and DIPS_DB_NAME override the file.
func Load(path string) (*Settings, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		path, err = Path()
		if err != nil {
			return nil, err
		}
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	if v := strings.TrimSpace(os.Getenv("DIPS_DB_PATH")); v != "" {
		cfg.Database.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("DIPS_DB_NAME")); v != "" {
		cfg.Database.Name = v
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes settings atomically to path (or the default location).
func Save(path string, cfg *Settings) error {
	if cfg == nil {
		return errors.New("nil settings")
	}
	if strings.TrimSpace(path) == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(b))
}

// DatabaseFile returns <path>/<name>.db.
func (s *Settings) DatabaseFile() string {
	return filepath.Join(s.Database.Path, s.Database.Name+".db")
}

func (s *Settings) normalize() {
	s.Database.Path = expandHome(strings.TrimSpace(s.Database.Path))
	s.Database.Name = strings.TrimSuffix(strings.TrimSpace(s.Database.Name), ".db")
	if s.Database.Name == "" {
		s.Database.Name = defaultDatabaseName
	}
	if s.Database.Path == "" {
		if dir, err := Dir(); err == nil {
			s.Database.Path = dir
		}
	}
}

func expandHome(p string) string {
	out, err := homedir.Expand(p)
	if err != nil {
		return p
	}
	return out
}
