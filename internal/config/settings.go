package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Settings are runtime options read from the environment
type Settings struct {
	LogLevel      string
	LogFormat     string
	Store         string
	StorePath     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	HTTPAddr      string
	TariffFile    string
	UserID        string
}

// LoadSettings reads settings from the environment after loading the given
// .env files. Missing .env files are not an error.
func LoadSettings(envFiles ...string) (*Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	s := &Settings{
		LogLevel:      GetEnv("LTCSIM_LOG_LEVEL", "info"),
		LogFormat:     GetEnv("LTCSIM_LOG_FORMAT", "console"),
		Store:         GetEnv("LTCSIM_STORE", StoreFile),
		StorePath:     GetEnv("LTCSIM_STORE_PATH", defaultStorePath()),
		RedisAddr:     GetEnv("LTCSIM_REDIS_ADDR", "localhost:6379"),
		RedisPassword: GetEnv("LTCSIM_REDIS_PASSWORD"),
		HTTPAddr:      GetEnv("LTCSIM_HTTP_ADDR", ":8080"),
		TariffFile:    GetEnv("LTCSIM_TARIFF"),
		UserID:        GetEnv("LTCSIM_USER", "local"),
	}

	if raw := GetEnv("LTCSIM_REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("LTCSIM_REDIS_DB must be an integer: %w", err)
		}
		s.RedisDB = db
	}

	switch s.Store {
	case StoreFile, StoreSQLite, StoreRedis:
	default:
		return nil, fmt.Errorf("unknown LTCSIM_STORE %q (want file, sqlite or redis)", s.Store)
	}
	return s, nil
}

// GetEnv returns the variable's value or the first default when unset
func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "ltcsim-progress.json"
	}
	return filepath.Join(dir, "ltcsim", "progress.json")
}
