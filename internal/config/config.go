// Package config resolves CLI settings from ~/.ludoteca/config.toml,
// LUDOTECA_* environment variables and optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".ludoteca"
	envPrefix  = "LUDOTECA"

	KeyEndpoint         = "endpoint"
	KeyTransportTimeout = "transport.timeout"
	KeyTransportRetries = "transport.retries"
	KeyPollInterval     = "poll.interval"
	KeyStorageBackend   = "storage.backend"
	KeyStorageDir       = "storage.dir"
	KeyItemsPath        = "items.path"
	KeyLogLevel         = "log.level"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendPass   = "pass"
)

var ErrEndpointRequired = errors.New("endpoint is not configured (set endpoint in ~/.ludoteca/config.toml or LUDOTECA_ENDPOINT)")

func init() {
	// HOME is switched per test and per invocation of the CLI in-process.
	homedir.DisableCache = true
}

type Config struct {
	Endpoint     string
	Transport    TransportConfig
	PollInterval time.Duration
	Storage      StorageConfig
	ItemsPath    string
	LogLevel     string
	// File is the config file that was read, empty when none exists.
	File string
}

type TransportConfig struct {
	Timeout time.Duration
	Retries int
}

type StorageConfig struct {
	Backend string
	Dir     string
}

// Dir is the directory holding config.toml and the default data files.
func Dir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// NewViper returns a viper instance with the CLI's search path, env
// binding and defaults.
func NewViper() (*viper.Viper, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyTransportTimeout, "30s")
	v.SetDefault(KeyTransportRetries, 2)
	v.SetDefault(KeyPollInterval, "8s")
	v.SetDefault(KeyStorageBackend, BackendFile)
	v.SetDefault(KeyStorageDir, filepath.Join(dir, "storage"))
	v.SetDefault(KeyItemsPath, filepath.Join(dir, "items.toml"))
	v.SetDefault(KeyLogLevel, "warn")

	return v, nil
}

// LoadDotenv loads the given .env files into the process environment.
// Missing files are skipped and variables already set are kept.
func LoadDotenv(paths ...string) error {
	for _, path := range paths {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return fmt.Errorf("expand %s: %w", path, err)
		}
		if err := godotenv.Load(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", expanded, err)
		}
	}
	return nil
}

// Load reads the config file if present and returns validated settings.
// The endpoint may be empty; commands that talk to the backend call
// RequireEndpoint.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Endpoint: strings.TrimSpace(v.GetString(KeyEndpoint)),
		Transport: TransportConfig{
			Timeout: v.GetDuration(KeyTransportTimeout),
			Retries: v.GetInt(KeyTransportRetries),
		},
		PollInterval: v.GetDuration(KeyPollInterval),
		Storage: StorageConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageBackend))),
			Dir:     v.GetString(KeyStorageDir),
		},
		ItemsPath: v.GetString(KeyItemsPath),
		LogLevel:  v.GetString(KeyLogLevel),
		File:      v.ConfigFileUsed(),
	}

	var err error
	if cfg.Storage.Dir, err = homedir.Expand(cfg.Storage.Dir); err != nil {
		return Config{}, fmt.Errorf("expand %s: %w", KeyStorageDir, err)
	}
	if cfg.ItemsPath, err = homedir.Expand(cfg.ItemsPath); err != nil {
		return Config{}, fmt.Errorf("expand %s: %w", KeyItemsPath, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Endpoint != "" {
		parsed, err := url.Parse(c.Endpoint)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", KeyEndpoint, c.Endpoint)
		}
	}
	if c.Transport.Timeout <= 0 {
		return fmt.Errorf("%s must be positive", KeyTransportTimeout)
	}
	if c.Transport.Retries < 0 {
		return fmt.Errorf("%s must not be negative", KeyTransportRetries)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%s must be positive", KeyPollInterval)
	}

	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendPass:
	default:
		return fmt.Errorf("%s must be one of %s, %s, %s; got %q", KeyStorageBackend, BackendFile, BackendSQLite, BackendPass, c.Storage.Backend)
	}

	if c.Storage.Dir == "" {
		return fmt.Errorf("%s is empty", KeyStorageDir)
	}
	if c.ItemsPath == "" {
		return fmt.Errorf("%s is empty", KeyItemsPath)
	}

	return nil
}

func (c Config) RequireEndpoint() error {
	if c.Endpoint == "" {
		return ErrEndpointRequired
	}
	return nil
}
