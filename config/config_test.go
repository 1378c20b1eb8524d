/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/suparena/healthprofile/errors"
)

// clearEnv blanks every override so the caller's environment does not leak
// into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for name := range envOverrides {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Sync.Source != "healthsync" {
		t.Errorf("Sync.Source = %q, want %q", cfg.Sync.Source, "healthsync")
	}
	if cfg.Sync.PageSize != 1000 {
		t.Errorf("Sync.PageSize = %d, want %d", cfg.Sync.PageSize, 1000)
	}
	if cfg.Reader.BufferSize != 16*1024 {
		t.Errorf("Reader.BufferSize = %d, want %d", cfg.Reader.BufferSize, 16*1024)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v, want info/console", cfg.Logging)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "healthsync.yaml", `
aws:
  region: eu-central-1
  table: health
sync:
  source: importer
  pageSize: 250
  recordTypes:
    - HKQuantityTypeIdentifierStepCount
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AWS.Region != "eu-central-1" || cfg.AWS.Table != "health" {
		t.Errorf("AWS = %+v", cfg.AWS)
	}
	if cfg.Sync.Source != "importer" || cfg.Sync.PageSize != 250 {
		t.Errorf("Sync = %+v", cfg.Sync)
	}
	if len(cfg.Sync.RecordTypes) != 1 {
		t.Errorf("Sync.RecordTypes = %v", cfg.Sync.RecordTypes)
	}
	if cfg.Sync.BatchSize != 500 {
		t.Errorf("Sync.BatchSize = %d, want default 500", cfg.Sync.BatchSize)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if err := cfg.ValidateStore(); err != nil {
		t.Errorf("ValidateStore() error = %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "healthsync.yaml", "aws:\n  region: eu-central-1\n  table: health\n")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("HEALTHSYNC_SOURCE", "other")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AWS.Region != "us-east-1" {
		t.Errorf("AWS.Region = %q, want %q", cfg.AWS.Region, "us-east-1")
	}
	if cfg.AWS.Table != "health" {
		t.Errorf("AWS.Table = %q, want %q", cfg.AWS.Table, "health")
	}
	if cfg.Sync.Source != "other" {
		t.Errorf("Sync.Source = %q, want %q", cfg.Sync.Source, "other")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.IsIO(err) {
		t.Errorf("missing file: error = %v, want IOError", err)
	}

	_, err = Load(writeFile(t, "bad.yaml", "sync:\n  unknownField: 1\n"))
	if err == nil {
		t.Error("unknown field: expected error")
	}

	_, err = Load(writeFile(t, "bad.yaml", "sync:\n  pageSize: 0\n"))
	if !errors.IsValidationError(err) {
		t.Errorf("zero page size: error = %v, want ValidationError", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"empty source", func(c *Config) { c.Sync.Source = " " }, "sync.source"},
		{"negative page size", func(c *Config) { c.Sync.PageSize = -1 }, "sync.pageSize"},
		{"zero batch size", func(c *Config) { c.Sync.BatchSize = 0 }, "sync.batchSize"},
		{"zero buffer", func(c *Config) { c.Reader.BufferSize = 0 }, "reader.bufferSize"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "text" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			var verr *errors.ValidationError
			if !asValidation(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestValidateStore(t *testing.T) {
	cfg := Default()
	if err := cfg.ValidateStore(); !errors.IsValidationError(err) {
		t.Errorf("no region: error = %v", err)
	}

	cfg.AWS.Region = "eu-central-1"
	cfg.AWS.Table = "health"
	cfg.AWS.AccessKey = "key"
	if err := cfg.ValidateStore(); !errors.IsValidationError(err) {
		t.Errorf("key without secret: error = %v", err)
	}

	cfg.AWS.SecretKey = "secret"
	if err := cfg.ValidateStore(); err != nil {
		t.Errorf("ValidateStore() error = %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "test.env", "AWS_DDB_TABLE=from-dotenv\n")
	t.Setenv("AWS_DDB_TABLE", "")
	os.Unsetenv("AWS_DDB_TABLE")

	if err := LoadEnv(path, filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	cfg := Default()
	cfg.ApplyEnv()
	if cfg.AWS.Table != "from-dotenv" {
		t.Errorf("AWS.Table = %q, want %q", cfg.AWS.Table, "from-dotenv")
	}
}

func asValidation(err error, target **errors.ValidationError) bool {
	if err == nil {
		return false
	}
	v, ok := err.(*errors.ValidationError)
	if ok {
		*target = v
	}
	return ok
}
