package server

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/stefanlut/jacha/internal/directory"
	"github.com/stefanlut/jacha/internal/logger"
	"github.com/stefanlut/jacha/internal/vendorapi"
)

// Config holds the serving configuration, sourced from the environment with
// an optional .env file for local development.
type Config struct {
	Addr      string
	APIKey    string
	ConfigDir string
}

// LoadConfig reads configuration from the environment. A missing .env file
// is not an error; a missing vendor API key only disables the vendor routes.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env file", logger.Fields{"error": err.Error()})
	}

	cfg := Config{
		Addr:      os.Getenv("JACHA_ADDR"),
		APIKey:    os.Getenv("SPORTRADAR_API_KEY"),
		ConfigDir: os.Getenv("JACHA_CONFIG_DIR"),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = "configs"
	}

	directory.SetScheduleURLsPath(filepath.Join(cfg.ConfigDir, "program_schedule_sites.csv"))
	vendorapi.SetProgramListPath(filepath.Join(cfg.ConfigDir, "list_of_programs.txt"))

	return cfg
}
