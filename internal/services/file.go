package services

import (
	"context"
	"strings"

	"github.com/studymind/studymind-backend/internal/platform/gcp"
	"github.com/studymind/studymind-backend/internal/platform/logger"
)

// FileService turns stored public-form references into short-lived signed
// URLs and deletes the underlying objects on document removal.
type FileService interface {
	// SignedFileURL resolves the stored reference into a signed read URL.
	// It never fails the caller: references that do not embed the
	// configured bucket segment, and signing failures, fall back to the
	// original reference.
	SignedFileURL(storedRef string) string

	// DeleteStoredFile removes the blob the reference points at.
	DeleteStoredFile(ctx context.Context, storedRef string) error
}

type fileService struct {
	log    *logger.Logger
	bucket gcp.BucketService
}

func NewFileService(baseLog *logger.Logger, bucket gcp.BucketService) FileService {
	serviceLog := baseLog.With("service", "FileService")
	return &fileService{log: serviceLog, bucket: bucket}
}

func (fs *fileService) SignedFileURL(storedRef string) string {
	storedRef = strings.TrimSpace(storedRef)
	if storedRef == "" || fs.bucket == nil {
		return storedRef
	}
	key, ok := fs.bucket.KeyFromPublicURL(storedRef)
	if !ok {
		// External or legacy reference; serve it unchanged.
		return storedRef
	}
	signed, err := fs.bucket.SignedURL(key)
	if err != nil {
		fs.log.Error("signing file url failed", "key", key, "error", err)
		return storedRef
	}
	return signed
}

func (fs *fileService) DeleteStoredFile(ctx context.Context, storedRef string) error {
	storedRef = strings.TrimSpace(storedRef)
	if storedRef == "" {
		return nil
	}
	if fs.bucket == nil {
		return nil
	}
	key, ok := fs.bucket.KeyFromPublicURL(storedRef)
	if !ok {
		// Nothing of ours to delete behind an external reference.
		return nil
	}
	return fs.bucket.DeleteObject(ctx, key)
}
