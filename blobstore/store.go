package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = os.ErrNotExist

// BlobStore lists and opens catalog blobs.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// List returns the sorted names of blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a blob.
type Blob interface {
	// ReadAt reads len(p) bytes at off. It returns io.EOF when fewer bytes
	// were available.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Size returns the size of the blob in bytes.
	Size() int64
	io.Closer
}

// Mappable is implemented by blobs whose contents are already in memory.
type Mappable interface {
	// Bytes returns the contents, valid until the blob is closed.
	Bytes() ([]byte, error)
}

// Fetcher is implemented by stores with a faster whole-blob download.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Fetch reads the whole blob name from store.
func Fetch(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	if f, ok := store.(Fetcher); ok {
		return f.Fetch(ctx, name)
	}

	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = b.Close() }()

	return ReadAll(ctx, b)
}

// ReadAll reads the whole blob. The result does not alias blob memory.
func ReadAll(ctx context.Context, b Blob) ([]byte, error) {
	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return slices.Clone(data), nil
	}

	size := b.Size()
	if size < 0 {
		return nil, fmt.Errorf("blobstore: invalid size %d", size)
	}
	buf := make([]byte, size)
	if size == 0 {
		return buf, nil
	}

	n, err := b.ReadAt(ctx, buf, 0)
	if err != nil && !(errors.Is(err, io.EOF) && int64(n) == size) {
		return nil, err
	}
	if int64(n) != size {
		return nil, io.ErrUnexpectedEOF
	}
	return buf, nil
}
