package config

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultStorageKey is the single key the show list is persisted under.
const DefaultStorageKey = "library"

type Config struct {
	LogLevel string `mapstructure:"log_level"`
	Storage  struct {
		Provider    string `mapstructure:"provider"` // memory, file, sqlite or redis
		Path        string `mapstructure:"path"`     // File or database path for file/sqlite
		Key         string `mapstructure:"key"`
		Retries     int    `mapstructure:"retries"`
		RetryDelay  string `mapstructure:"retry_delay"`  // Go duration string like "100ms"
		BusyTimeout string `mapstructure:"busy_timeout"` // Go duration string like "5s"
		Redis       struct {
			Address   string `mapstructure:"address"`
			Password  string `mapstructure:"password"`
			DB        int    `mapstructure:"db"`
			KeyPrefix string `mapstructure:"key_prefix"`
		} `mapstructure:"redis"`
	} `mapstructure:"storage"`
	Server struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	Web struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"web"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
}

var (
	mu           sync.RWMutex
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output.
	// Logs go to stderr so command output on stdout stays clean.
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}).With().Timestamp().Logger()
}

// Init loads the configuration from path (or the default search locations when
// path is empty), applies the configured log level and makes both available
// through GetConfig and GetLogger.
func Init(path string) (*Config, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	// Parse and set log level from config
	level := zerolog.InfoLevel // default
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	// Set the global log level
	zerolog.SetGlobalLevel(level)

	mu.Lock()
	logger = logger.Level(level)
	globalConfig = config
	mu.Unlock()

	logger.Debug().Str("level", level.String()).Str("storage", config.Storage.Provider).Msg("Configuration loaded successfully")
	return config, nil
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Add specific environment variable for log level
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.Storage.Key == "" {
		config.Storage.Key = DefaultStorageKey
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("storage.provider", "file")
	v.SetDefault("storage.path", "./data/library.json")
	v.SetDefault("storage.key", DefaultStorageKey)
	v.SetDefault("storage.retries", 3)
	v.SetDefault("storage.retry_delay", "100ms")
	v.SetDefault("storage.busy_timeout", "5s")
	v.SetDefault("storage.redis.address", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.key_prefix", "showshelf:")
	v.SetDefault("server.port", 50051)
	v.SetDefault("server.address", "localhost")
	v.SetDefault("web.enabled", true)
	v.SetDefault("web.port", 8080)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")
}

// RetryDelay returns the parsed storage retry delay, falling back to 100ms.
func (c *Config) RetryDelay() time.Duration {
	return parseDuration(c.Storage.RetryDelay, 100*time.Millisecond, "storage.retry_delay")
}

// BusyTimeout returns the parsed storage lock timeout, falling back to 5s.
func (c *Config) BusyTimeout() time.Duration {
	return parseDuration(c.Storage.BusyTimeout, 5*time.Second, "storage.busy_timeout")
}

func parseDuration(value string, fallback time.Duration, key string) time.Duration {
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		l := GetLogger()
		l.Warn().Err(err).Str(key, value).Msgf("Invalid duration, using default %s", fallback)
		return fallback
	}
	return parsed
}

// GetConfig returns the configuration loaded by Init, or nil before Init ran.
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return globalConfig
}

func GetLogger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
