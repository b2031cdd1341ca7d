package localstore

import (
	"context"
	"os"

	"maison/internal/errors"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

// blobStore implements Store on a gocloud blob bucket, one object per key.
type blobStore struct {
	bucket *blob.Bucket
}

// NewMemory creates an in-process store that loses state on restart.
// Suitable for development and tests.
func NewMemory() Store {
	return &blobStore{bucket: memblob.OpenBucket(nil)}
}

// NewFile creates a store persisting each key as a file under dir.
func NewFile(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create state directory")
	}

	bucket, err := fileblob.OpenBucket(dir, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file bucket")
	}

	return &blobStore{bucket: bucket}, nil
}

// Get retrieves the raw value for a key, ErrKeyNotFound when absent.
func (s *blobStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrKeyNotFound
		}

		return nil, errors.Wrapf(err, "failed to read key %s", key)
	}

	return raw, nil
}

// Set writes the raw value for a key.
func (s *blobStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.bucket.WriteAll(ctx, key, value, nil); err != nil {
		return errors.Wrapf(err, "failed to write key %s", key)
	}

	return nil
}

// Delete removes a key; absent keys are a no-op.
func (s *blobStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete key %s", key)
	}

	return nil
}

// Exists reports whether the key holds a value.
func (s *blobStore) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return false, errors.Wrapf(err, "failed to check key %s", key)
	}

	return exists, nil
}

// Close releases the underlying bucket.
func (s *blobStore) Close() error {
	return errors.WithStack(s.bucket.Close())
}
