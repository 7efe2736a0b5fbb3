package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	BriefingNone   = "none"
	BriefingClaude = "claude"
	BriefingOllama = "ollama"
)

type Config struct {
	ListenAddr      string        `env:"LISTEN_ADDR" env-default:":8080"`
	DBDriver        string        `env:"DB_DRIVER" env-default:"sqlite"`
	DBPath          string        `env:"DB_PATH" env-default:"/data/boxbox.db"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	BriefingBackend string        `env:"BRIEFING_BACKEND" env-default:"none"`
	OllamaHost      string        `env:"OLLAMA_HOST" env-default:"http://localhost:11434"`
	OllamaModel     string        `env:"OLLAMA_MODEL" env-default:"llama3.2"`
	ClaudeAPIKey    string        `env:"CLAUDE_API_KEY"`
	ClaudeModel     string        `env:"CLAUDE_MODEL" env-default:"claude-sonnet-4-5"`
	ClaudeBaseURL   string        `env:"CLAUDE_BASE_URL"`
	PortraitPath    string        `env:"PORTRAIT_PATH" env-default:"/data/portraits"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	LogFile         string        `env:"LOG_FILE"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Load reads the configuration from the environment. Variables in a .env file
// in the working directory are applied first but never override the real
// environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an error.
func LoadFile(dotenv string) (*Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", dotenv, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite":
		if c.DBPath == "" {
			return errors.New("DB_PATH is required when DB_DRIVER=sqlite")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.BriefingBackend {
	case BriefingNone, BriefingOllama:
	case BriefingClaude:
		if c.ClaudeAPIKey == "" {
			return errors.New("CLAUDE_API_KEY is required when BRIEFING_BACKEND=claude")
		}
	default:
		return fmt.Errorf("unsupported BRIEFING_BACKEND %q", c.BriefingBackend)
	}

	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
