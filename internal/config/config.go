package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"go-simpler.org/env"
)

// StoreKind selects the settings persistence backend.
type StoreKind string

const (
	StoreFile   StoreKind = "file"
	StoreMemory StoreKind = "memory"
	StoreRedis  StoreKind = "redis"
)

// Config is the resolved application configuration.
type Config struct {
	BaseURL         string
	RequestTimeout  time.Duration
	ResourceTimeout time.Duration

	Store     StoreKind
	StorePath string
	RedisURL  string

	LogLevel    string
	LogFormat   string
	LogFile     string
	MetricsAddr string
}

const (
	defaultConfigPath     = "~/.config/appshell/config.toml"
	defaultStorePath      = "~/.config/appshell/settings.toml"
	defaultBaseURL        = "https://api.example.com"
	defaultRequestTimeout = 30 * time.Second
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultLogFile        = "~/.local/state/appshell/appshell.log"
)

// fileConfig mirrors config.toml. Zero values mean "not set".
type fileConfig struct {
	BaseURL                string  `toml:"base_url"`
	RequestTimeoutSeconds  float64 `toml:"request_timeout_seconds"`
	ResourceTimeoutSeconds float64 `toml:"resource_timeout_seconds"`
	Store                  string  `toml:"store"`
	StorePath              string  `toml:"store_path"`
	RedisURL               string  `toml:"redis_url"`
	LogLevel               string  `toml:"log_level"`
	LogFormat              string  `toml:"log_format"`
	LogFile                string  `toml:"log_file"`
	MetricsAddr            string  `toml:"metrics_addr"`
}

// envConfig holds environment overrides. Empty strings mean "not set".
type envConfig struct {
	BaseURL         string `env:"APPSHELL_BASE_URL"`
	RequestTimeout  string `env:"APPSHELL_REQUEST_TIMEOUT"`
	ResourceTimeout string `env:"APPSHELL_RESOURCE_TIMEOUT"`
	Store           string `env:"APPSHELL_STORE"`
	StorePath       string `env:"APPSHELL_STORE_PATH"`
	RedisURL        string `env:"APPSHELL_REDIS_URL"`
	LogLevel        string `env:"APPSHELL_LOG_LEVEL"`
	LogFormat       string `env:"APPSHELL_LOG_FORMAT"`
	LogFile         string `env:"APPSHELL_LOG_FILE"`
	MetricsAddr     string `env:"APPSHELL_METRICS_ADDR"`
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config file at path (or the default path), applies a .env
// file from the working directory if present, then environment overrides.
// A missing config file is not an error.
func Load(path string) (Config, error) {
	var raw fileConfig
	if err := readFile(path, &raw); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	var overrides envConfig
	if err := env.Load(&overrides, nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg, err := resolve(raw, overrides)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, raw *fileConfig) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(bytes, raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func resolve(raw fileConfig, overrides envConfig) (Config, error) {
	cfg := Config{
		BaseURL:     firstNonEmpty(overrides.BaseURL, raw.BaseURL, defaultBaseURL),
		Store:       StoreKind(strings.ToLower(firstNonEmpty(overrides.Store, raw.Store, string(StoreFile)))),
		StorePath:   firstNonEmpty(overrides.StorePath, raw.StorePath, defaultStorePath),
		RedisURL:    firstNonEmpty(overrides.RedisURL, raw.RedisURL),
		LogLevel:    strings.ToLower(firstNonEmpty(overrides.LogLevel, raw.LogLevel, defaultLogLevel)),
		LogFormat:   strings.ToLower(firstNonEmpty(overrides.LogFormat, raw.LogFormat, defaultLogFormat)),
		LogFile:     firstNonEmpty(overrides.LogFile, raw.LogFile, defaultLogFile),
		MetricsAddr: firstNonEmpty(overrides.MetricsAddr, raw.MetricsAddr),
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	requestSeconds, err := secondsOverride("APPSHELL_REQUEST_TIMEOUT", overrides.RequestTimeout, raw.RequestTimeoutSeconds)
	if err != nil {
		return Config{}, err
	}
	resourceSeconds, err := secondsOverride("APPSHELL_RESOURCE_TIMEOUT", overrides.ResourceTimeout, raw.ResourceTimeoutSeconds)
	if err != nil {
		return Config{}, err
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if requestSeconds > 0 {
		cfg.RequestTimeout = seconds(requestSeconds)
	}
	cfg.ResourceTimeout = 2 * cfg.RequestTimeout
	if resourceSeconds > 0 {
		cfg.ResourceTimeout = seconds(resourceSeconds)
	}

	logFile, err := ExpandPath(cfg.LogFile)
	if err != nil {
		return Config{}, fmt.Errorf("log file: %w", err)
	}
	cfg.LogFile = logFile

	if cfg.Store == StoreFile {
		expanded, err := ExpandPath(cfg.StorePath)
		if err != nil {
			return Config{}, fmt.Errorf("store path: %w", err)
		}
		cfg.StorePath = expanded
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q must be an absolute URL", c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.ResourceTimeout < c.RequestTimeout {
		return fmt.Errorf("resource timeout %s must not be shorter than request timeout %s", c.ResourceTimeout, c.RequestTimeout)
	}
	switch c.Store {
	case StoreFile, StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("redis_url is required when store is redis")
		}
	default:
		return fmt.Errorf("unknown store %q (want file, memory or redis)", c.Store)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q (want text or json)", c.LogFormat)
	}
	return nil
}

func secondsOverride(name, override string, fallback float64) (float64, error) {
	override = strings.TrimSpace(override)
	if override == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(override, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive number of seconds, got %q", name, override)
	}
	return v, nil
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
