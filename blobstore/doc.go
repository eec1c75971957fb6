// Package blobstore provides storage abstraction for experiment artifacts:
// dataset CSVs, plan JSON, calibration reports and merged result files.
//
// BlobStore is the interface for reading and writing named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with atomic writes
//   - MemoryStore: in-memory store for tests
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible storage
package blobstore
