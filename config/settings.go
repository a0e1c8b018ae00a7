package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	Server    ServerSettings    `json:"server"`
	Database  DatabaseSettings  `json:"database"`
	Posters   PosterSettings    `json:"posters"`
	RateLimit RateLimitSettings `json:"rateLimit"`
	Log       LogConfig         `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// DatabaseSettings selects and configures the film store backend.
type DatabaseSettings struct {
	Driver         string `json:"driver"` // sqlite | postgres | memory
	Path           string `json:"path"`   // sqlite file path
	DSN            string `json:"dsn"`    // postgres connection string
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

type PosterSettings struct {
	Directory string `json:"directory"`
}

type RateLimitSettings struct {
	Enabled bool    `json:"enabled"`
	RPS     float64 `json:"rps"`
	Burst   int     `json:"burst"`
}

type LogConfig struct {
	File       string `json:"file"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

func DefaultSettings() Settings {
	return Settings{
		Server:   ServerSettings{Host: "0.0.0.0", Port: 8080},
		Database: DatabaseSettings{Driver: "sqlite", Path: "data/films.db", TimeoutSeconds: 5},
		Posters:  PosterSettings{Directory: "data/posters"},
		RateLimit: RateLimitSettings{
			Enabled: true,
			RPS:     20,
			Burst:   40,
		},
		Log: LogConfig{
			File:       "data/logs/cinevault.log",
			MaxSize:    50, // MB per file
			MaxBackups: 3,
			MaxAge:     7, // days
			Compress:   true,
		},
	}
}

// Manager loads and persists settings to a JSON file.
type Manager struct {
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

// EnsureDir ensures the parent directory exists.
func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads settings from disk, creating the file with defaults when it
// does not exist yet.
func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}
	if _, err := os.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		defaults := DefaultSettings()
		if err := m.Save(defaults); err != nil {
			return Settings{}, err
		}
		return defaults, nil
	}

	f, err := os.Open(m.path)
	if err != nil {
		return Settings{}, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()

	settings := DefaultSettings()
	if err := json.NewDecoder(f).Decode(&settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

// Save writes the settings atomically via a temp file rename.
func (m *Manager) Save(s Settings) error {
	if err := m.EnsureDir(); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp := m.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create settings temp file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close settings temp file: %w", err)
	}

	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
