// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package config loads the server configuration from YAML with environment
// variable overrides.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/chaptervault/chaptervault/pkg/logging"
	"github.com/chaptervault/chaptervault/pkg/storage"
)

// Config represents the complete server configuration.
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Logging logging.Config `yaml:"logging"`
	Storage storage.Config `yaml:"storage"`
}

// ServerConfig contains server-level settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Default returns the configuration used when no file is provided: an
// in-memory store serving on localhost.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Host: "127.0.0.1", Port: 8080},
		Logging: logging.Config{Level: "info", Format: "text"},
		Storage: storage.Config{Backend: storage.BackendMemory},
	}
}

// Load reads, parses, and validates the configuration at path, applying
// environment overrides on top of the file's values.
func Load(path string) (*Config, error) {
	// #nosec G304 - config file path is provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range 1-65535", c.Server.Port)
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return nil
}

// applyEnvOverrides applies CHAPTERVAULT_* environment variables on top of
// file-provided values.
func applyEnvOverrides(cfg *Config) {
	if host := os.Getenv("CHAPTERVAULT_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("CHAPTERVAULT_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			log.Printf("Warning: invalid CHAPTERVAULT_PORT value %q, using %d",
				portStr, cfg.Server.Port)
		} else {
			cfg.Server.Port = port
		}
	}
	if level := os.Getenv("CHAPTERVAULT_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("CHAPTERVAULT_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}
	if backend := os.Getenv("CHAPTERVAULT_STORAGE_BACKEND"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if dir := os.Getenv("CHAPTERVAULT_STORAGE_DIR"); dir != "" {
		if cfg.Storage.Local == nil {
			cfg.Storage.Local = &storage.LocalConfig{}
		}
		cfg.Storage.Local.Directory = dir
	}
	if bucket := os.Getenv("CHAPTERVAULT_S3_BUCKET"); bucket != "" {
		if cfg.Storage.S3 == nil {
			cfg.Storage.S3 = &storage.S3Config{}
		}
		cfg.Storage.S3.Bucket = bucket
	}
	if region := os.Getenv("CHAPTERVAULT_S3_REGION"); region != "" {
		if cfg.Storage.S3 == nil {
			cfg.Storage.S3 = &storage.S3Config{}
		}
		cfg.Storage.S3.Region = region
	}
}
