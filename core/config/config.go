// Package config loads onestandard settings from the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnv names the environment variable pointing at a YAML config file.
const PathEnv = "ONESTANDARD_CONFIG"

// Config is the root configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"ONESTANDARD_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"ONESTANDARD_LOG_FORMAT" env-default:"text"`
}

// InputConfig controls how notes are found in the exported page.
// An empty NoteStyle selects the exporter's own marker style.
type InputConfig struct {
	NoteStyle string `yaml:"note_style" env:"ONESTANDARD_NOTE_STYLE"`
}

// OutputConfig controls where the package is written.
type OutputConfig struct {
	Dir  string `yaml:"dir"  env:"ONESTANDARD_OUTPUT_DIR"`
	File string `yaml:"file" env:"ONESTANDARD_OUTPUT_FILE" env-default:"package.json"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Load reads configuration. Priority: ENV > YAML > defaults.
// The YAML file is only read when ONESTANDARD_CONFIG is set.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv(PathEnv); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %s (got %q)", strings.Join(logLevels, ", "), c.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %s (got %q)", strings.Join(logFormats, ", "), c.Log.Format)
	}
	if c.Output.File == "" {
		return fmt.Errorf("output.file must not be empty")
	}
	if strings.ContainsAny(c.Output.File, `/\`) {
		return fmt.Errorf("output.file must be a file name, not a path (got %q)", c.Output.File)
	}
	return nil
}
