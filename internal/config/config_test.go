package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFileStore_SaveLoad_RoundTripAndPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file permission semantics differ on Windows")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")
	store := NewFileStore(path)

	want := Config{
		BaseURL:      "https://mirror.example",
		UserAgent:    "cfq-test",
		Timeout:      5 * time.Second,
		DefaultCount: 7,
		NoColor:      true,
	}

	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat written config: %v", err)
	}
	if got := fi.Mode().Perm(); got != 0o644 {
		t.Fatalf("config perms = %#o, want %#o", got, 0o644)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read written config: %v", err)
	}
	if !strings.Contains(string(b), "timeout: 5s") {
		t.Fatalf("config file = %q, want human-readable timeout", string(b))
	}

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStore_Load_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("user_agent: custom\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	want.UserAgent = "custom"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStore_Load_Missing(t *testing.T) {
	_, err := NewFileStore(filepath.Join(t.TempDir(), "absent.yaml")).Load(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestFileStore_Load_RejectsNegativeTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timeout: -1s\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := NewFileStore(path).Load(context.Background())
	if err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "timeout must not be negative") {
		t.Fatalf("Load() error = %q, want message to include %q", err.Error(), "timeout must not be negative")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	got, err := ApplyEnv(Default(), mapLookup(map[string]string{
		EnvBaseURL:      " https://mirror.example ",
		EnvTimeout:      "2s",
		EnvDefaultCount: "50",
		EnvNoColor:      "true",
		EnvUserAgent:    "",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	want := Config{
		BaseURL:      "https://mirror.example",
		UserAgent:    DefaultUserAgent,
		Timeout:      2 * time.Second,
		DefaultCount: 50,
		NoColor:      true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ApplyEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key, value string
	}{
		{EnvTimeout, "soon"},
		{EnvDefaultCount, "many"},
		{EnvNoColor, "perhaps"},
		{EnvDefaultCount, "-3"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Parallel()
			_, err := ApplyEnv(Default(), mapLookup(map[string]string{tt.key: tt.value}))
			if err == nil {
				t.Fatalf("ApplyEnv(%s=%q) expected error, got nil", tt.key, tt.value)
			}
		})
	}
}

func TestResolve_MissingFileUsesDefaults(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.yaml"))

	got, err := Resolve(context.Background(), store, mapLookup(map[string]string{EnvUserAgent: "from-env"}))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := Default()
	want.UserAgent = "from-env"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("CFQ_TEST_DOTENV_KEY=from-file\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("CFQ_TEST_DOTENV_KEY", "")
	os.Unsetenv("CFQ_TEST_DOTENV_KEY")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("CFQ_TEST_DOTENV_KEY"); got != "from-file" {
		t.Fatalf("CFQ_TEST_DOTENV_KEY = %q, want %q", got, "from-file")
	}
}

func TestDefaultConfigPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/cfq-test/config.yaml")

	got, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath() error = %v", err)
	}
	if got != "/tmp/cfq-test/config.yaml" {
		t.Fatalf("DefaultConfigPath() = %q, want %q", got, "/tmp/cfq-test/config.yaml")
	}
}
