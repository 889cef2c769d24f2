package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`
	Logger   LoggerConfig   `yaml:"logger"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `yaml:"port"`
	Mode            string        `yaml:"mode"` // debug or release
	BasePath        string        `yaml:"base_path"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

// DatabaseConfig holds database settings. Driver selects sqlite (default) or
// postgres, matching the two drivers the service supports.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	Path            string        `yaml:"path"` // sqlite database file
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// GetDSN builds the driver-specific connection string
func (d DatabaseConfig) GetDSN() string {
	if d.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
	}
	return d.Path
}

// StorageConfig holds attachment blob storage settings
type StorageConfig struct {
	Root string `yaml:"root"`
}

// CleanupConfig holds orphan-file cleanup job settings
type CleanupConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Schedule    string        `yaml:"schedule"`
	GracePeriod time.Duration `yaml:"grace_period"`
}

// LoggerConfig holds logging settings
type LoggerConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a yaml file (if present) and applies
// environment variable overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            "8080",
			Mode:            "debug",
			BasePath:        "/api",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			Path:            "database.sqlite",
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "password",
			Name:            "todos",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Storage: StorageConfig{
			Root: "uploads",
		},
		Cleanup: CleanupConfig{
			Enabled:     true,
			Schedule:    "0 3 * * *",
			GracePeriod: time.Hour,
		},
		Logger: LoggerConfig{
			Level: "info",
		},
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}
	if basePath := os.Getenv("BASE_PATH"); basePath != "" {
		cfg.Server.BasePath = basePath
	}
	if driver := os.Getenv("DB_TYPE"); driver != "" {
		cfg.Database.Driver = driver
	}
	if dbPath := os.Getenv("DB_DATABASE"); dbPath != "" {
		cfg.Database.Path = dbPath
		cfg.Database.Name = dbPath
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Database.Port = p
		}
	}
	if user := os.Getenv("DB_USERNAME"); user != "" {
		cfg.Database.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = strings.Split(origins, ",")
	}
	if root := os.Getenv("UPLOADS_DIR"); root != "" {
		cfg.Storage.Root = root
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logger.Level = level
	}
	if schedule := os.Getenv("CLEANUP_SCHEDULE"); schedule != "" {
		cfg.Cleanup.Schedule = schedule
	}
	if enabled := os.Getenv("CLEANUP_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			cfg.Cleanup.Enabled = b
		}
	}
}
