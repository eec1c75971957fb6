// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Datasets, plans and merged result files are small JSON/CSV objects;
// reads fetch byte ranges, writes stream through the upload manager.
package s3
