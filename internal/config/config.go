package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvBaseURL      = "CFQ_BASE_URL"
	EnvUserAgent    = "CFQ_USER_AGENT"
	EnvTimeout      = "CFQ_TIMEOUT"
	EnvDefaultCount = "CFQ_DEFAULT_COUNT"
	EnvNoColor      = "CFQ_NO_COLOR"

	DefaultBaseURL      = "https://codeforces.com"
	DefaultUserAgent    = "cfq/0.1.0"
	DefaultTimeout      = 30 * time.Second
	DefaultCount        = 20
	kDefaultFilePerm    = 0o644
	kDefaultDirFilePerm = 0o755
)

// Config is the user-level configuration, stored as YAML.
type Config struct {
	// BaseURL is the Codeforces origin; requests go to <BaseURL>/api/<method>.
	BaseURL string `yaml:"base_url" json:"base_url"`

	UserAgent string `yaml:"user_agent" json:"user_agent"`

	// Timeout bounds each API call. Zero disables the bound.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// DefaultCount is the page size for list commands that take --count.
	DefaultCount int `yaml:"default_count" json:"default_count"`

	NoColor bool `yaml:"no_color" json:"no_color"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		UserAgent:    DefaultUserAgent,
		Timeout:      DefaultTimeout,
		DefaultCount: DefaultCount,
	}
}

// Store loads and saves config.
type Store interface {
	Load(ctx context.Context) (Config, error)
	Save(ctx context.Context, cfg Config) error
}

// FileStore is a filesystem-backed config store (e.g. ~/.config/cfq/config.yaml).
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the file on top of Default(). Keys missing from the file keep their default.
// A missing file is reported with an error wrapping os.ErrNotExist.
func (s *FileStore) Load(ctx context.Context) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(s.Path) == "" {
		return Config{}, fmt.Errorf("config path is empty")
	}

	b, err := os.ReadFile(s.Path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", s.Path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", s.Path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", s.Path, err)
	}
	return cfg, nil
}

func (s *FileStore) Save(ctx context.Context, cfg Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("config path is empty")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), kDefaultDirFilePerm); err != nil {
		return fmt.Errorf("create config dir %s: %w", filepath.Dir(s.Path), err)
	}
	if err := os.WriteFile(s.Path, b, kDefaultFilePerm); err != nil {
		return fmt.Errorf("write config %s: %w", s.Path, err)
	}
	return nil
}

// Validate rejects values the client cannot work with.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.DefaultCount < 0 {
		return fmt.Errorf("default_count must not be negative, got %d", c.DefaultCount)
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default: ./.env) into the process
// environment without overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays CFQ_* environment variables on cfg. lookup is usually os.LookupEnv.
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) (Config, error) {
	if v, ok := lookupTrimmed(lookup, EnvBaseURL); ok {
		cfg.BaseURL = v
	}
	if v, ok := lookupTrimmed(lookup, EnvUserAgent); ok {
		cfg.UserAgent = v
	}
	if v, ok := lookupTrimmed(lookup, EnvTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v, ok := lookupTrimmed(lookup, EnvDefaultCount); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvDefaultCount, err)
		}
		cfg.DefaultCount = n
	}
	if v, ok := lookupTrimmed(lookup, EnvNoColor); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvNoColor, err)
		}
		cfg.NoColor = b
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve returns Default(), overlaid with the store's file when it exists, then with the
// environment.
func Resolve(ctx context.Context, store Store, lookup func(string) (string, bool)) (Config, error) {
	cfg, err := store.Load(ctx)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		cfg = Default()
	}
	return ApplyEnv(cfg, lookup)
}

func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
