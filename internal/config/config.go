package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the server and tools.
// Values come from the YAML file first and environment variables override them.
type Config struct {
	Port        string        `yaml:"port"`
	DBDriver    string        `yaml:"db_driver"`
	DBPath      string        `yaml:"db_path"`
	DatabaseURL string        `yaml:"database_url"`
	SeedDir     string        `yaml:"seed_dir"`
	RedisURL    string        `yaml:"redis_url"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	RateLimit   float64       `yaml:"rate_limit_rps"`
	RateBurst   int           `yaml:"rate_limit_burst"`
	Algorithms  []string      `yaml:"algorithms"`
	MaxNodes    int           `yaml:"max_nodes"`
}

func Defaults() Config {
	return Config{
		Port:      "8080",
		DBDriver:  "sqlite",
		DBPath:    "data/app.db",
		SeedDir:   "data/instances",
		CacheTTL:  24 * time.Hour,
		RateLimit: 10,
		RateBurst: 20,
		MaxNodes:  2000,
	}
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env, then the YAML file at path (a missing file is not an
// error), then applies environment overrides.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Port = Get("PORT", c.Port)
	c.DBDriver = Get("DB_DRIVER", c.DBDriver)
	c.DBPath = Get("DB_PATH", c.DBPath)
	c.DatabaseURL = Get("DATABASE_URL", c.DatabaseURL)
	c.SeedDir = Get("SEED_DIR", c.SeedDir)
	c.RedisURL = Get("REDIS_URL", c.RedisURL)

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.CacheTTL = d
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimit = f
	}

	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
		c.RateBurst = n
	}

	if v := os.Getenv("MAX_NODES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_NODES: %w", err)
		}
		c.MaxNodes = n
	}

	if v := os.Getenv("ALGORITHMS"); v != "" {
		c.Algorithms = nil
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				c.Algorithms = append(c.Algorithms, a)
			}
		}
	}

	return nil
}

// DSN returns the data source for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "pgx" {
		return c.DatabaseURL
	}
	return c.DBPath
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite":
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("DB_PATH is required for sqlite")
		}
	case "pgx":
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required for pgx")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.RateLimit < 0 || c.RateBurst < 0 {
		return errors.New("rate limit settings must not be negative")
	}
	if c.MaxNodes < 0 {
		return errors.New("MAX_NODES must not be negative")
	}

	return nil
}
