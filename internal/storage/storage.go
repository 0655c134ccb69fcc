// backend-go/internal/storage/storage.go
package storage

import "context"

// ObjectInfo is the metadata of one archived object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the S3-compatible operations the export archive
// needs: push a generated report, list what is already archived, pull one
// back.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, data []byte) error
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	DownloadObject(ctx context.Context, key string, destPath string) error
}
