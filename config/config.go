/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"strings"

	"github.com/suparena/healthprofile/errors"
)

// Config holds the settings of the healthsync tools.
type Config struct {
	AWS     AWSConfig     `yaml:"aws"`
	Sync    SyncConfig    `yaml:"sync"`
	Reader  ReaderConfig  `yaml:"reader"`
	Logging LoggingConfig `yaml:"logging"`
}

// AWSConfig selects the DynamoDB table records are synced to.
type AWSConfig struct {
	// AccessKey and SecretKey are optional; the default AWS credential chain
	// is used when either is empty. Env: AWS_ACCESS_KEY, AWS_SECRET_KEY
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`

	// Region of the table. Env: AWS_REGION
	Region string `yaml:"region"`

	// Table name. Env: AWS_DDB_TABLE
	Table string `yaml:"table"`

	// Endpoint overrides the DynamoDB endpoint, e.g. for DynamoDB Local.
	// Env: AWS_DDB_ENDPOINT
	Endpoint string `yaml:"endpoint"`
}

// SyncConfig controls import and cleanup against the store.
type SyncConfig struct {
	// Source marks the records this application owns (default: healthsync).
	// Env: HEALTHSYNC_SOURCE
	Source string `yaml:"source"`

	// PageSize is the number of records per cleanup page (default: 1000)
	PageSize int32 `yaml:"pageSize"`

	// BatchSize is the number of imported records saved per store call (default: 500)
	BatchSize int `yaml:"batchSize"`

	// RecordTypes restricts cleanup and export to these types (default: all known)
	RecordTypes []string `yaml:"recordTypes"`
}

// ReaderConfig tunes the document reader.
type ReaderConfig struct {
	// BufferSize is the read buffer in bytes (default: 16384)
	BufferSize int `yaml:"bufferSize"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info).
	// Env: LOG_LEVEL
	Level string `yaml:"level"`

	// Format is the log format: console or json (default: console).
	// Env: LOG_FORMAT
	Format string `yaml:"format"`
}

// Default returns the configuration used for anything a file or the
// environment does not set.
func Default() *Config {
	return &Config{
		Sync: SyncConfig{
			Source:    "healthsync",
			PageSize:  1000,
			BatchSize: 500,
		},
		Reader: ReaderConfig{
			BufferSize: 16 * 1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"console", "json"}
)

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Sync.Source) == "" {
		return errors.NewValidationError("sync.source", "must not be empty")
	}
	if c.Sync.PageSize <= 0 {
		return errors.NewValidationError("sync.pageSize", fmt.Sprintf("must be positive, got %d", c.Sync.PageSize))
	}
	if c.Sync.BatchSize <= 0 {
		return errors.NewValidationError("sync.batchSize", fmt.Sprintf("must be positive, got %d", c.Sync.BatchSize))
	}
	if c.Reader.BufferSize <= 0 {
		return errors.NewValidationError("reader.bufferSize", fmt.Sprintf("must be positive, got %d", c.Reader.BufferSize))
	}
	if !oneOf(c.Logging.Level, validLevels) {
		return errors.NewValidationError("logging.level", fmt.Sprintf("must be one of %s, got %q", strings.Join(validLevels, ", "), c.Logging.Level))
	}
	if !oneOf(c.Logging.Format, validFormats) {
		return errors.NewValidationError("logging.format", fmt.Sprintf("must be one of %s, got %q", strings.Join(validFormats, ", "), c.Logging.Format))
	}
	return nil
}

// ValidateStore checks the settings commands that talk to DynamoDB need.
func (c *Config) ValidateStore() error {
	if c.AWS.Region == "" {
		return errors.NewValidationError("aws.region", "must be set (AWS_REGION)")
	}
	if c.AWS.Table == "" {
		return errors.NewValidationError("aws.table", "must be set (AWS_DDB_TABLE)")
	}
	if (c.AWS.AccessKey == "") != (c.AWS.SecretKey == "") {
		return errors.NewValidationError("aws.accessKey", "access key and secret key must be set together")
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
