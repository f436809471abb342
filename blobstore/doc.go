// Package blobstore is the storage abstraction catalog files are read from.
//
// A BlobStore lists and opens immutable blobs; the catalog loader only reads.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local directory, memory-mapped reads
//   - MemoryStore: in-process map, for tests and embedded catalogs
//   - s3.Store: Amazon S3, parallel ranged downloads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Reading
//
// Fetch reads a whole blob. Stores that can download faster than ranged
// ReadAt calls implement Fetcher, and Fetch uses it:
//
//	data, err := blobstore.Fetch(ctx, store, "stars.yaml.zst")
package blobstore
