package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string     `env:"SCOREKEEPER_ADDR"         envDefault:":8080"`
	DBPath      string     `env:"SCOREKEEPER_DB_PATH"      envDefault:"scorekeeper.db"`
	PitchPrefix string     `env:"SCOREKEEPER_PITCH_PREFIX" envDefault:"Pitch"`
	LogLevel    slog.Level `env:"SCOREKEEPER_LOG_LEVEL"    envDefault:"INFO"`
}

// Load reads an optional .env file, then the environment. Variables already set
// in the environment win over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
