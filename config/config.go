package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string         `yaml:"env"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Monitor  MonitorConfig  `yaml:"monitor"`
}

// DatabaseConfig holds the connection parameters for the shared pool.
type DatabaseConfig struct {
	User     string `yaml:"user"`
	Host     string `yaml:"host"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Port     int    `yaml:"port"`
	SSLMode  string `yaml:"ssl_mode"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
	File   string `yaml:"file"`
}

type MonitorConfig struct {
	Cron     string        `yaml:"cron"`
	Interval time.Duration `yaml:"interval"`
}

// Defaults returns the connection parameters the application has always
// shipped with.
func Defaults() *Config {
	return &Config{
		Env: "development",
		Database: DatabaseConfig{
			User:     "vagrant",
			Host:     "localhost",
			Name:     "lightbnb",
			Password: "123",
			Port:     5432,
			SSLMode:  "disable",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Monitor: MonitorConfig{
			Interval: time.Minute,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, in that order of precedence (environment wins).
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	if path == "" {
		path = os.Getenv("LIGHTBNB_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		return nil, fmt.Errorf("invalid database port %d", cfg.Database.Port)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Env = getEnv("LIGHTBNB_ENV", c.Env)

	c.Database.User = getEnv("LIGHTBNB_DB_USER", c.Database.User)
	c.Database.Host = getEnv("LIGHTBNB_DB_HOST", c.Database.Host)
	c.Database.Name = getEnv("LIGHTBNB_DB_NAME", c.Database.Name)
	c.Database.Password = getEnv("LIGHTBNB_DB_PASSWORD", c.Database.Password)
	c.Database.Port = getEnvInt("LIGHTBNB_DB_PORT", c.Database.Port)
	c.Database.SSLMode = getEnv("LIGHTBNB_DB_SSLMODE", c.Database.SSLMode)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LIGHTBNB_LOG_FORMAT", c.Logging.Format)
	c.Logging.File = getEnv("LIGHTBNB_LOG_FILE", c.Logging.File)

	c.Monitor.Cron = getEnv("LIGHTBNB_MONITOR_CRON", c.Monitor.Cron)
	if interval := os.Getenv("LIGHTBNB_MONITOR_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Monitor.Interval = d
		}
	}
}

// DSN renders the postgres:// connection string for pgx.
func (d DatabaseConfig) DSN() string {
	return d.url().String()
}

// Redacted is the DSN with the password masked, for logging.
func (d DatabaseConfig) Redacted() string {
	return d.url().Redacted()
}

func (d DatabaseConfig) url() *url.URL {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
