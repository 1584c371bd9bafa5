package storage

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	apperrors "github.com/utenadev/gca4g/internal/errors"
)

// BlobStore implements Store on top of a gocloud.dev bucket.
// Supports file:// (local directory) and mem:// (process memory) URLs.
type BlobStore struct {
	bucket *blob.Bucket
}

// OpenBlobStore opens the bucket identified by bucketURL.
func OpenBlobStore(ctx context.Context, bucketURL string) (*BlobStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket: %w", err)
	}
	return &BlobStore{bucket: bucket}, nil
}

// Get reads the object stored under key.
func (b *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to read entry")
	}
	return data, nil
}

// Set writes value as the object stored under key.
func (b *BlobStore) Set(ctx context.Context, key string, value []byte) error {
	if err := b.bucket.WriteAll(ctx, key, value, nil); err != nil {
		return apperrors.Wrap(err, "failed to write entry")
	}
	return nil
}

// Delete removes the object stored under key.
func (b *BlobStore) Delete(ctx context.Context, key string) error {
	if err := b.bucket.Delete(ctx, key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return apperrors.Wrap(err, "failed to delete entry")
	}
	return nil
}

// Ping checks that the bucket is accessible.
func (b *BlobStore) Ping(ctx context.Context) error {
	ok, err := b.bucket.IsAccessible(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to reach bucket")
	}
	if !ok {
		return apperrors.New("bucket is not accessible")
	}
	return nil
}

// Close releases the bucket.
func (b *BlobStore) Close() error {
	return b.bucket.Close()
}
