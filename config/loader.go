/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/healthprofile/errors"
)

// envOverrides maps environment variables to the setting they override.
var envOverrides = map[string]func(c *Config, v string){
	"AWS_ACCESS_KEY":    func(c *Config, v string) { c.AWS.AccessKey = v },
	"AWS_SECRET_KEY":    func(c *Config, v string) { c.AWS.SecretKey = v },
	"AWS_REGION":        func(c *Config, v string) { c.AWS.Region = v },
	"AWS_DDB_TABLE":     func(c *Config, v string) { c.AWS.Table = v },
	"AWS_DDB_ENDPOINT":  func(c *Config, v string) { c.AWS.Endpoint = v },
	"HEALTHSYNC_SOURCE": func(c *Config, v string) { c.Sync.Source = v },
	"LOG_LEVEL":         func(c *Config, v string) { c.Logging.Level = strings.ToLower(v) },
	"LOG_FORMAT":        func(c *Config, v string) { c.Logging.Format = strings.ToLower(v) },
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is not empty), then a .env file in the working directory (if any),
// then the environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("config load: %w", err)
		}
	}

	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadEnv loads .env style files into the environment without overriding
// variables that are already set. Missing files are ignored; with no
// arguments ".env" is tried.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errors.NewIOError("load env", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from the environment variables that are set.
func (c *Config) ApplyEnv() {
	for name, set := range envOverrides {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			set(c, v)
		}
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewIOError("read", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !stderrors.Is(err, io.EOF) {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
