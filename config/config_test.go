package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvMaxFileBytes, "")

	cfg := Load()

	if cfg.MaxFileSizeBytes != DefaultMaxFileBytes {
		t.Errorf("MaxFileSizeBytes = %d, want %d", cfg.MaxFileSizeBytes, DefaultMaxFileBytes)
	}
}

func TestLoad_MaxFileBytesFromEnv(t *testing.T) {
	t.Setenv(EnvMaxFileBytes, "1048576") // 1 MiB

	cfg := Load()

	if cfg.MaxFileSizeBytes != 1_048_576 {
		t.Errorf("MaxFileSizeBytes = %d, want 1048576", cfg.MaxFileSizeBytes)
	}
}

func TestLoad_InvalidMaxFileBytesIgnored(t *testing.T) {
	t.Setenv(EnvMaxFileBytes, "not-a-number")

	cfg := Load()

	if cfg.MaxFileSizeBytes != DefaultMaxFileBytes {
		t.Errorf("MaxFileSizeBytes = %d, want default %d", cfg.MaxFileSizeBytes, DefaultMaxFileBytes)
	}
}

func TestLoad_ZeroMaxFileBytesIgnored(t *testing.T) {
	t.Setenv(EnvMaxFileBytes, "0")

	cfg := Load()

	if cfg.MaxFileSizeBytes != DefaultMaxFileBytes {
		t.Errorf("MaxFileSizeBytes = %d, want default %d", cfg.MaxFileSizeBytes, DefaultMaxFileBytes)
	}
}

func TestLoad_BlobDirFromEnv(t *testing.T) {
	t.Setenv(EnvBlobDir, "/var/lib/foliospec")

	cfg := Load()

	if cfg.BlobDir != "/var/lib/foliospec" {
		t.Errorf("BlobDir = %q, want /var/lib/foliospec", cfg.BlobDir)
	}
}

func TestLoad_BucketsFromEnv(t *testing.T) {
	t.Setenv(EnvFilesBucket, "inbox")
	t.Setenv(EnvOutputBucket, "rendered")

	cfg := Load()

	if cfg.FilesBucket != "inbox" {
		t.Errorf("FilesBucket = %q, want inbox", cfg.FilesBucket)
	}
	if cfg.OutputBucket != "rendered" {
		t.Errorf("OutputBucket = %q, want rendered", cfg.OutputBucket)
	}
}

func TestLoad_BucketDefaults(t *testing.T) {
	t.Setenv(EnvFilesBucket, "")
	t.Setenv(EnvOutputBucket, "")
	t.Setenv(EnvBlobDir, "")

	cfg := Load()

	if cfg.FilesBucket != DefaultFilesBucket || cfg.OutputBucket != DefaultOutputBucket {
		t.Errorf("buckets = %q/%q, want defaults", cfg.FilesBucket, cfg.OutputBucket)
	}
	if cfg.BlobDir != DefaultBlobDir {
		t.Errorf("BlobDir = %q, want %q", cfg.BlobDir, DefaultBlobDir)
	}
	if cfg.Logger == nil {
		t.Error("Logger is nil, want a default logger")
	}
}

func TestMaxFileSizeMB(t *testing.T) {
	cfg := &Config{MaxFileSizeBytes: 10 << 20} // 10 MiB
	if got := cfg.MaxFileSizeMB(); got != 10 {
		t.Errorf("MaxFileSizeMB() = %d, want 10", got)
	}
}
