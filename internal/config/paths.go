package config

import (
	"os"
	"path/filepath"
)

// EnvConfigPath overrides DefaultConfigPath.
const EnvConfigPath = "CFQ_CONFIG_PATH"

// DefaultConfigPath returns $CFQ_CONFIG_PATH, or <user config dir>/cfq/config.yaml.
//
// Note: this function does not create directories or files.
func DefaultConfigPath() (string, error) {
	if p, ok := os.LookupEnv(EnvConfigPath); ok && p != "" {
		return p, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "cfq", "config.yaml"), nil
}
