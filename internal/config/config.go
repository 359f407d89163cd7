package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Persist  PersistConfig  `mapstructure:"persist"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"` // "mongo" or "sqlite"
	URI        string `mapstructure:"uri"`
	Name       string `mapstructure:"name"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	JSON   bool   `mapstructure:"json"`
	File   string `mapstructure:"file"`   // empty: stdout only
	Stdout bool   `mapstructure:"stdout"` // also write to stdout when File is set
}

// PersistConfig tunes the background writer that mirrors in-memory changes
// to the database.
type PersistConfig struct {
	QueueSize int           `mapstructure:"queue_size"` // unwritten backlog that is logged
	Timeout   time.Duration `mapstructure:"timeout"` // per write
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, persist.queue_size -> PERSIST_QUEUE_SIZE
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)
	if err = bindEnv(v); err != nil {
		return
	}

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// No file: defaults and env vars only.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, config.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "workout_planner")
	v.SetDefault("database.sqlite_path", "workout_planner.db")
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.stdout", true)
	v.SetDefault("persist.queue_size", 1024)
	v.SetDefault("persist.timeout", "5s")
	v.SetDefault("metrics.enabled", true)
}

// envOnlyKeys have no default. AutomaticEnv alone does not make Unmarshal
// see them, so they are bound explicitly.
var envOnlyKeys = []string{
	"jwt.secret",
	"s3.endpoint",
	"s3.region",
	"s3.access_key_id",
	"s3.secret_access_key",
	"s3.bucket_name",
}

func bindEnv(v *viper.Viper) error {
	for _, key := range envOnlyKeys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("config: bind env %s: %w", key, err)
		}
	}
	return nil
}

// Validate catches settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.URI == "" || c.Database.Name == "" {
			return errors.New("config: database.uri and database.name are required for the mongo driver")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return errors.New("config: database.sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return errors.New("config: jwt.secret is required")
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("config: jwt.expiration must be positive")
	}
	if c.Persist.QueueSize < 1 {
		return fmt.Errorf("config: persist.queue_size must be at least 1, got %d", c.Persist.QueueSize)
	}
	if c.S3.Enabled && c.S3.BucketName == "" {
		return errors.New("config: s3.bucket_name is required when s3 is enabled")
	}
	return nil
}
