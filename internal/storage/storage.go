package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains the stored-photo abstraction. Two drivers exist:
// a local-disk store (default, backing the /uploads static path) and an
// S3-compatible object store (MinIO). Handlers always go through the
// Storage interface so the driver choice stays a startup-time concern.

// ErrKeyNotFound is returned by Get when no object exists under the key.
var ErrKeyNotFound = errors.New("storage: key not found")

// PutObjectOptions define optional parameters for storing objects.
// Size should be the exact number of bytes if known; set -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the stored-photo backend interface. Keys are flat names
// produced by the photo intake (timestamp + token + extension); drivers
// must reject keys containing path separators.
type Storage interface {
	// Put stores an object under the given key using the provided reader.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
}
