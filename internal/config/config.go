// Package config resolves storage locations and runtime settings for bodyvault.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings parsed from the environment.
type Config struct {
	DataDir    string `env:"BODYVAULT_DIR"`
	Passphrase string `env:"BODYVAULT_PASSPHRASE"`
	LogLevel   string `env:"BODYVAULT_LOG_LEVEL" envDefault:"warn"`

	AIBaseURL string `env:"BODYVAULT_AI_URL" envDefault:"https://generativelanguage.googleapis.com"`
	AIAPIKey  string `env:"BODYVAULT_AI_KEY"`
	AIModel   string `env:"BODYVAULT_AI_MODEL" envDefault:"gemini-flash-latest"`

	ThumbnailEdge int `env:"BODYVAULT_THUMB_EDGE" envDefault:"200"`
}

// Load parses the environment and fills in the default data directory when
// BODYVAULT_DIR is not set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, nil
}

// defaultDataDir resolves the base directory for all vault storage. It checks
// XDG paths first and falls back to the user's home directory.
func defaultDataDir() string {
	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "bodyvault")
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "bodyvault")
}

// DBPath returns the absolute path to the SQLite database file.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "index.db")
}

// PhotosDir returns the directory holding encrypted full-resolution photos.
func (c Config) PhotosDir() string {
	return filepath.Join(c.DataDir, "photos")
}

// ThumbnailsDir returns the directory holding encrypted thumbnails.
func (c Config) ThumbnailsDir() string {
	return filepath.Join(c.DataDir, "thumbnails")
}

// SaltPath returns the path of the key-derivation salt file.
func (c Config) SaltPath() string {
	return filepath.Join(c.DataDir, "key.salt")
}
