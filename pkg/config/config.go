package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the reconciliation service configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Database   DatabaseConfig   `mapstructure:"database" yaml:"database"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	Monitoring MonitoringConfig `mapstructure:"monitoring" yaml:"monitoring"`
	Sweep      SweepConfig      `mapstructure:"sweep" yaml:"sweep"`
	Lock       LockConfig       `mapstructure:"lock" yaml:"lock"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host         string `mapstructure:"host" yaml:"host"`
	Port         int    `mapstructure:"port" yaml:"port"`
	User         string `mapstructure:"user" yaml:"user"`
	Password     string `mapstructure:"password" yaml:"password"`
	Database     string `mapstructure:"database" yaml:"database"`
	SSLMode      string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// SweepConfig controls the backward settlement sweep.
// Interval <= 0 disables the in-process periodic runner; sweeps can still be
// triggered over HTTP or from reconctl.
type SweepConfig struct {
	WindowDays   int           `mapstructure:"window_days" yaml:"window_days"`
	Interval     time.Duration `mapstructure:"interval" yaml:"interval"`
	RunTimeout   time.Duration `mapstructure:"run_timeout" yaml:"run_timeout"`
	RunOnStartup bool          `mapstructure:"run_on_startup" yaml:"run_on_startup"`
	Location     string        `mapstructure:"location" yaml:"location"`
}

// LockConfig configures the optional redis lock guarding a sweep per job and settlement date
type LockConfig struct {
	Enabled       bool          `mapstructure:"enabled" yaml:"enabled"`
	RedisAddr     string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password" yaml:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" yaml:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// Load loads configuration from file and environment variables.
// Environment variables override file values, e.g. DATABASE_PASSWORD overrides database.password.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.request_timeout", "60s")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.database", "udar")
	v.SetDefault("database.max_open_conns", 20)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")

	// Monitoring defaults
	v.SetDefault("monitoring.enabled", true)

	// Sweep defaults
	v.SetDefault("sweep.window_days", 7)
	v.SetDefault("sweep.interval", "0s")
	v.SetDefault("sweep.run_timeout", "10m")
	v.SetDefault("sweep.run_on_startup", false)
	v.SetDefault("sweep.location", "Local")

	// Lock defaults
	v.SetDefault("lock.enabled", false)
	v.SetDefault("lock.redis_addr", "localhost:6379")
	v.SetDefault("lock.ttl", "15m")
}

func validate(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if config.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if config.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if config.Sweep.WindowDays <= 0 {
		return fmt.Errorf("sweep.window_days must be positive")
	}
	if _, err := time.LoadLocation(config.Sweep.Location); err != nil {
		return fmt.Errorf("sweep.location is invalid: %w", err)
	}
	if config.Lock.Enabled && config.Lock.RedisAddr == "" {
		return fmt.Errorf("lock.redis_addr is required when lock is enabled")
	}
	return nil
}

// TimeLocation resolves the configured sweep location. validate guarantees it loads.
func (c *SweepConfig) TimeLocation() *time.Location {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return time.Local
	}
	return loc
}

const redacted = "******"

// Dump renders the effective configuration as YAML with secrets masked
func Dump(config *Config) ([]byte, error) {
	if config == nil {
		return nil, fmt.Errorf("config is nil")
	}

	masked := *config
	if masked.Database.Password != "" {
		masked.Database.Password = redacted
	}
	if masked.Lock.RedisPassword != "" {
		masked.Lock.RedisPassword = redacted
	}

	out, err := yaml.Marshal(&masked)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
