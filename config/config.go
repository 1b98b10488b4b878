// Package config holds runtime configuration sourced from environment
// variables, with working defaults for local operation.
package config

import (
	"log/slog"
	"os"
	"strconv"
)

// Environment variable names.
const (
	// EnvBlobDir is the root directory for the directory-backed blob store.
	EnvBlobDir = "FOLIOSPEC_BLOB_DIR"

	// EnvMaxFileBytes is the file size limit for input documents.
	EnvMaxFileBytes = "FOLIOSPEC_MAX_FILE_BYTES"

	// EnvFilesBucket is the bucket holding input documents and spec JSON.
	EnvFilesBucket = "FOLIOSPEC_FILES_BUCKET"

	// EnvOutputBucket is the bucket receiving rendered output.
	EnvOutputBucket = "FOLIOSPEC_OUTPUT_BUCKET"
)

// Defaults.
const (
	DefaultBlobDir             = "data"
	DefaultMaxFileBytes  int64 = 50 << 20 // 50 MiB
	DefaultFilesBucket         = "files"
	DefaultOutputBucket        = "output"
)

// Config holds the pipeline's runtime configuration.
type Config struct {
	BlobDir          string
	MaxFileSizeBytes int64
	FilesBucket      string
	OutputBucket     string
	Logger           *slog.Logger
}

// MaxFileSizeMB returns the configured limit in whole megabytes.
func (c *Config) MaxFileSizeMB() int64 {
	return c.MaxFileSizeBytes >> 20
}

// Load reads Config from environment variables, falling back to defaults for
// missing or invalid values.
func Load() *Config {
	cfg := &Config{
		BlobDir:          DefaultBlobDir,
		MaxFileSizeBytes: DefaultMaxFileBytes,
		FilesBucket:      DefaultFilesBucket,
		OutputBucket:     DefaultOutputBucket,
		Logger:           slog.Default(),
	}
	if v := os.Getenv(EnvBlobDir); v != "" {
		cfg.BlobDir = v
	}
	if v := os.Getenv(EnvMaxFileBytes); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxFileSizeBytes = n
		}
	}
	if v := os.Getenv(EnvFilesBucket); v != "" {
		cfg.FilesBucket = v
	}
	if v := os.Getenv(EnvOutputBucket); v != "" {
		cfg.OutputBucket = v
	}
	return cfg
}
