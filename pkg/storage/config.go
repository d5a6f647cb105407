// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package storage

import (
	"errors"
	"fmt"
)

// Backend identifiers for Config.Backend. Exactly one variant is active
// per store instance.
const (
	BackendMemory    = "memory"
	BackendLocalJSON = "local-json"
	BackendS3JSON    = "s3-json"
)

var (
	// ErrInvalidConfig is returned when a storage configuration is
	// malformed or incomplete.
	ErrInvalidConfig = errors.New("storage: invalid config")

	// ErrUnknownBackend is returned when the configured backend variant
	// is not one of memory, local-json, or s3-json. Callers must treat
	// this as fatal at construction time, never as a runtime condition.
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// Config selects and parameterizes the storage backend. It is a closed
// variant: Backend names the active arm and the matching parameter block
// must be present.
type Config struct {
	// Backend is one of "memory", "local-json", or "s3-json".
	Backend string `yaml:"backend" json:"backend" mapstructure:"backend"`

	// Local configures the local-json backend.
	Local *LocalConfig `yaml:"local,omitempty" json:"local,omitempty" mapstructure:"local"`

	// S3 configures the s3-json backend.
	S3 *S3Config `yaml:"s3,omitempty" json:"s3,omitempty" mapstructure:"s3"`
}

// LocalConfig parameterizes the filesystem-backed store.
type LocalConfig struct {
	// Directory is the root under which each namespace gets its own
	// subdirectory of one file per key.
	Directory string `yaml:"directory" json:"directory" mapstructure:"directory"`
}

// S3Config parameterizes the object-storage-backed store.
type S3Config struct {
	// Region is the AWS region hosting the bucket.
	Region string `yaml:"region" json:"region" mapstructure:"region"`

	// Bucket is the bucket holding all namespaces.
	Bucket string `yaml:"bucket" json:"bucket" mapstructure:"bucket"`

	// AccessKeyID is the static access key ID. Optional - if not
	// provided, the default credential chain is used.
	AccessKeyID string `yaml:"access_key_id,omitempty" json:"access_key_id,omitempty" mapstructure:"access_key_id"`

	// SecretAccessKey is the static secret access key. Optional - must
	// be provided together with AccessKeyID.
	SecretAccessKey string `yaml:"secret_access_key,omitempty" json:"secret_access_key,omitempty" mapstructure:"secret_access_key"`

	// Endpoint is a custom S3 endpoint URL. Optional - useful for
	// testing against MinIO or LocalStack.
	Endpoint string `yaml:"endpoint,omitempty" json:"endpoint,omitempty" mapstructure:"endpoint"`
}

// Validate checks that exactly the active variant's parameters are present
// and well formed.
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}

	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendLocalJSON:
		if c.Local == nil || c.Local.Directory == "" {
			return fmt.Errorf("%w: local-json requires a directory", ErrInvalidConfig)
		}
		return nil
	case BackendS3JSON:
		if c.S3 == nil {
			return fmt.Errorf("%w: s3-json requires s3 settings", ErrInvalidConfig)
		}
		return c.S3.Validate()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
}

// Validate checks the S3 settings.
func (c *S3Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("%w: region is required", ErrInvalidConfig)
	}
	if c.Bucket == "" {
		return fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	if (c.AccessKeyID != "" && c.SecretAccessKey == "") ||
		(c.AccessKeyID == "" && c.SecretAccessKey != "") {
		return fmt.Errorf("%w: access_key_id and secret_access_key must be provided together", ErrInvalidConfig)
	}
	return nil
}

// String returns a representation safe to log: credentials are masked.
func (c *S3Config) String() string {
	accessKeyMask := "<not set>"
	if c.AccessKeyID != "" {
		if len(c.AccessKeyID) > 4 {
			accessKeyMask = "****" + c.AccessKeyID[len(c.AccessKeyID)-4:]
		} else {
			accessKeyMask = "****"
		}
	}
	return fmt.Sprintf("S3Config{Region: %s, Bucket: %s, AccessKeyID: %s, Endpoint: %s}",
		c.Region, c.Bucket, accessKeyMask, c.Endpoint)
}
