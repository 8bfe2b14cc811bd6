package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type (
	APIServerConfig struct {
		Port     int            `yaml:"port"`
		Database DatabaseConfig `yaml:"database"`
		Upload   UploadConfig   `yaml:"upload"`
		Logger   LoggerConfig   `yaml:"logger"`
		JWT      JWTConfig      `yaml:"jwt"`
		Metrics  MetricsConfig  `yaml:"metrics"`
		CORS     CORSConfig     `yaml:"cors"`
	}

	DatabaseConfig struct {
		Type     string `yaml:"type"`     // memory, sqlite, postgres, mysql
		Host     string `yaml:"host"`     // localhost
		Port     int    `yaml:"port"`     // 5432 (postgres), 3306 (mysql)
		User     string `yaml:"user"`     // postgres (postgres), root (mysql)
		Password string `yaml:"password"` // password
		DBName   string `yaml:"dbname"`   // database name, or file path for sqlite
		SSLMode  string `yaml:"sslmode"`  // disable (postgres)

		// Required makes a failed SQL connection fatal instead of falling
		// back to the in-memory store.
		Required      bool     `yaml:"required"`
		MaxRetries    int      `yaml:"max_retries"`
		RetryInterval Duration `yaml:"retry_interval"`
	}

	// UploadConfig bounds evidence-photo uploads.
	UploadConfig struct {
		Dir         string `yaml:"dir"`           // directory for stored files
		MaxSizeMB   int64  `yaml:"max_size_mb"`   // per-file ceiling
		MaxPerBatch int    `yaml:"max_per_batch"` // files per request
	}

	JWTConfig struct {
		SecretKey string   `yaml:"secret_key"`
		Duration  Duration `yaml:"duration"`
	}

	// CORSConfig represents CORS configuration
	CORSConfig struct {
		AllowOrigins []string `yaml:"allow_origins"`
	}
)

type Type interface {
	APIServerConfig
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case "postgres":
		return c.getPostgresDSN()
	case "mysql":
		return c.getMySQLDSN()
	case "sqlite":
		// Ensure the directory for the SQLite database exists.
		if err := os.MkdirAll(filepath.Dir(c.DBName), 0755); err != nil {
			panic(fmt.Errorf("failed to create directory for sqlite database: %w", err))
		}
		return c.DBName // For SQLite, DBName is the file path
	default:
		return ""
	}
}

// getPostgresDSN returns PostgreSQL connection string
func (c *DatabaseConfig) getPostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// getMySQLDSN returns MySQL connection string
func (c *DatabaseConfig) getMySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}
