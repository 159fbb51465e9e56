// internal/config/config.go
//
// Runtime configuration for the CLI and the HTTP service.
// Sources, lowest precedence first:
//   - Built-in defaults (Default).
//   - A YAML file (wordsolver.yaml, or the path given to Load).
//   - Environment variables (see applyEnv); .env is loaded by main.
//
// The merged result is checked with validator struct tags before use.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config path is given.
const DefaultPath = "wordsolver.yaml"

// Config is the full application configuration.
type Config struct {
	LogLevel string `yaml:"log_level" validate:"oneof=trace debug info warn error disabled"`
	Solver   Solver `yaml:"solver"`
	Words    Words  `yaml:"words"`
	Batch    Batch  `yaml:"batch"`
	Server   Server `yaml:"server"`
}

// Solver configures the solve loop and the heuristic registry.
type Solver struct {
	Length          int     `yaml:"length" validate:"gte=1,lte=32"`
	Heuristic       string  `yaml:"heuristic" validate:"required"`
	MaxGuesses      int     `yaml:"max_guesses" validate:"gte=0"`
	HardMode        bool    `yaml:"hard_mode"`
	Opener          string  `yaml:"opener" validate:"omitempty,alpha"`
	OpenerHeuristic string  `yaml:"opener_heuristic"`
	Seed            uint64  `yaml:"seed"`
	Budget          int     `yaml:"budget" validate:"gte=0"`
	Penalty         float64 `yaml:"penalty" validate:"gte=0"`
}

// Words selects where vocabularies come from. An empty DB means the
// embedded lists (or WORDS_FILE overrides).
type Words struct {
	DB   string `yaml:"db"`
	Salt string `yaml:"salt"`
}

// Batch configures batch runs.
type Batch struct {
	Workers int     `yaml:"workers" validate:"gte=0"`
	Percent float64 `yaml:"percent" validate:"gte=0,lte=100"`
}

// Server configures the HTTP service. Secrets are only read from the
// environment.
type Server struct {
	Port         string        `yaml:"port" validate:"required,numeric"`
	ClientOrigin string        `yaml:"client_origin"`
	Timeout      time.Duration `yaml:"timeout" validate:"gt=0"`
	TokenTTL     time.Duration `yaml:"token_ttl" validate:"gt=0"`
	JWTSecret    string        `yaml:"-"`
	APIKeyHash   string        `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Solver: Solver{
			Length:    5,
			Heuristic: "letter_frequency",
			HardMode:  true,
			Seed:      1,
			Budget:    200,
			Penalty:   0.5,
		},
		Words: Words{Salt: "local_dev_salt"},
		Batch: Batch{Percent: 100},
		Server: Server{
			Port:         "5175",
			ClientOrigin: "http://localhost:5173",
			Timeout:      30 * time.Second,
			TokenTTL:     24 * time.Hour,
			JWTSecret:    "dev_secret_change_me",
		},
	}
}

var validate = validator.New()

// Load builds the configuration from defaults, the YAML file at path and the
// environment. A missing file is only an error when path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = getEnv("WORDSOLVER_CONFIG", DefaultPath)
		explicit = os.Getenv("WORDSOLVER_CONFIG") != ""
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) error {
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", cfg.LogLevel))
	cfg.Solver.Heuristic = getEnv("WORDSOLVER_HEURISTIC", cfg.Solver.Heuristic)
	cfg.Solver.Opener = getEnv("WORDSOLVER_OPENER", cfg.Solver.Opener)
	cfg.Words.DB = getEnv("LEXICON_DB", cfg.Words.DB)
	cfg.Words.Salt = getEnv("DAILY_SALT", cfg.Words.Salt)
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.ClientOrigin = getEnv("CLIENT_ORIGIN", cfg.Server.ClientOrigin)
	cfg.Server.JWTSecret = getEnv("JWT_SECRET", cfg.Server.JWTSecret)
	cfg.Server.APIKeyHash = getEnv("API_KEY_HASH", cfg.Server.APIKeyHash)

	var err error
	if cfg.Solver.Length, err = envInt("WORDSOLVER_LENGTH", cfg.Solver.Length); err != nil {
		return err
	}
	if cfg.Solver.Budget, err = envInt("WORDSOLVER_BUDGET", cfg.Solver.Budget); err != nil {
		return err
	}
	if cfg.Batch.Workers, err = envInt("WORDSOLVER_WORKERS", cfg.Batch.Workers); err != nil {
		return err
	}
	if v := os.Getenv("WORDSOLVER_HARD_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("WORDSOLVER_HARD_MODE: %w", err)
		}
		cfg.Solver.HardMode = b
	}
	return nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
