package config

import (
	"errors"
	"testing"
)

func TestBackendSelection(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr error
	}{
		{"explicit local", Config{StorageBackend: "local", Environment: "production"}, BackendLocal, nil},
		{"explicit embedded", Config{StorageBackend: "embedded"}, BackendEmbedded, nil},
		{"explicit gcs with bucket", Config{StorageBackend: "gcs", BucketName: "b"}, BackendGCS, nil},
		{"explicit gcs without bucket", Config{StorageBackend: "gcs"}, "", ErrBucketNameNotSet},
		{"unknown backend", Config{StorageBackend: "s3"}, "", ErrUnknownBackend},
		{"production defaults to gcs", Config{Environment: "production", BucketName: "b"}, BackendGCS, nil},
		{"production without bucket fails", Config{Environment: "production"}, "", ErrBucketNameNotSet},
		{"dev defaults to local", Config{Environment: "dev"}, BackendLocal, nil},
		{"empty environment defaults to local", Config{}, BackendLocal, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.Backend()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("backend = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("BUCKET_NAME", "")
	t.Setenv("CONTENT_DIR", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Environment != "dev" {
		t.Errorf("Environment = %q, want dev default", cfg.Environment)
	}
	if cfg.ContentDir != "./content" {
		t.Errorf("ContentDir = %q", cfg.ContentDir)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.ServerAddress() != ":8080" {
		t.Errorf("ServerAddress = %q", cfg.ServerAddress())
	}
}

func TestLoadProductionWithoutBucketFails(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("BUCKET_NAME", "")

	if _, err := Load(); !errors.Is(err, ErrBucketNameNotSet) {
		t.Errorf("err = %v, want ErrBucketNameNotSet", err)
	}
}
