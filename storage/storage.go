// Package storage archives generated journey files so every deployed monitor
// keeps a retrievable copy of the exact test source that was pushed. Archives
// live on the local filesystem or in S3, selected by configuration.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// ArtifactStore stores and retrieves archived journey sources.
type ArtifactStore interface {
	// Save writes the artifact at the given key, overwriting any previous
	// version.
	Save(ctx context.Context, key string, reader io.Reader) error

	// Open returns the artifact content. Returns ErrArtifactNotFound when no
	// artifact exists at the key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the artifact at the key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an artifact is stored at the key.
	Exists(ctx context.Context, key string) (bool, error)

	// URL returns an address for retrieving the artifact. Local stores return
	// a filesystem path, S3 stores a presigned URL.
	URL(ctx context.Context, key string) (string, error)
}

// Config carries the settings for either backend.
type Config struct {
	BaseDir       string
	Bucket        string
	Region        string
	PresignExpiry time.Duration
}

// NewArtifactStore builds the store named by kind ("local" or "s3").
func NewArtifactStore(kind string, cfg Config) (ArtifactStore, error) {
	switch strings.ToLower(kind) {
	case "local":
		if cfg.BaseDir == "" {
			return nil, fmt.Errorf("base dir is required for local artifact storage")
		}
		return NewLocalStore(cfg.BaseDir)

	case "s3":
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("bucket is required for s3 artifact storage")
		}
		if cfg.Region == "" {
			return nil, fmt.Errorf("region is required for s3 artifact storage")
		}
		store, err := NewS3Store(cfg.Bucket, cfg.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 artifact storage: %w", err)
		}
		if cfg.PresignExpiry > 0 {
			store.presignExpiry = cfg.PresignExpiry
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported artifact storage kind: %s", kind)
	}
}

// ArchiveKey derives the storage key for one journey archive. Keys are
// partitioned by month so buckets stay browsable as history accumulates.
func ArchiveKey(fileSafeName string, at time.Time) string {
	return fmt.Sprintf("journeys/%s/%s_%s.journey.ts",
		at.UTC().Format("2006/01"), fileSafeName, at.UTC().Format("20060102T150405Z"))
}
