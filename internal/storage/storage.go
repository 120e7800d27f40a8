// Package storage keeps uploaded resumes either on local disk or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, otherwise -1.
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
}

// Storage stores resume uploads. Put under an existing key overwrites it.
type Storage interface {
	// Put writes the reader's content under key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Locate returns the reference handed to the automation workflow for key:
	// a filesystem path for local storage, a pre-signed URL for buckets.
	Locate(ctx context.Context, key string) (string, error)
}
