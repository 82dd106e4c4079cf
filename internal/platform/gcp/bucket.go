package gcp

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/studymind/studymind-backend/internal/platform/envutil"
	"github.com/studymind/studymind-backend/internal/platform/logger"
)

type BucketService interface {
	DeleteObject(ctx context.Context, key string) error
	SignedURL(key string) (string, error)
	KeyFromPublicURL(ref string) (string, bool)
	PublicURL(key string) string
	Close() error
}

type bucketService struct {
	log           *logger.Logger
	storageClient *storage.Client
	bucketName    string
	signedURLTTL  time.Duration
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
	serviceLog := log.With("service", "BucketService")

	bucketName := envutil.Str("BUCKET_NAME", "")
	if bucketName == "" {
		return nil, fmt.Errorf("missing env var BUCKET_NAME")
	}
	ttl := envutil.Duration("SIGNED_URL_TTL", 15*time.Minute)

	var opts []option.ClientOption
	if creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	stClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	serviceLog.Info("Object storage initialized", "bucket", bucketName, "signed_url_ttl", ttl)

	return &bucketService{
		log:           serviceLog,
		storageClient: stClient,
		bucketName:    bucketName,
		signedURLTTL:  ttl,
	}, nil
}

func (bs *bucketService) DeleteObject(ctx context.Context, key string) error {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return fmt.Errorf("empty object key")
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	o := bs.storageClient.Bucket(bs.bucketName).Object(key)
	if err := o.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, bs.bucketName, err)
	}
	return nil
}

// SignedURL produces a V4 read URL that expires after the configured TTL.
func (bs *bucketService) SignedURL(key string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", fmt.Errorf("empty object key")
	}
	u, err := bs.storageClient.Bucket(bs.bucketName).SignedURL(key, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(bs.signedURLTTL),
	})
	if err != nil {
		return "", fmt.Errorf("sign url for %q: %w", key, err)
	}
	return u, nil
}

func (bs *bucketService) KeyFromPublicURL(ref string) (string, bool) {
	return KeyFromPublicURL(bs.bucketName, ref)
}

func (bs *bucketService) PublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.bucketName, key)
}

func (bs *bucketService) Close() error {
	if bs == nil || bs.storageClient == nil {
		return nil
	}
	return bs.storageClient.Close()
}

// KeyFromPublicURL recovers the object key from a stored public-form
// reference. The reference embeds "/{bucket}/" once, with the key after the
// first occurrence. References that do not contain the segment (external or
// legacy URLs) report ok=false and callers fall back to the reference as-is.
func KeyFromPublicURL(bucketName, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.TrimSpace(bucketName) == "" {
		return "", false
	}
	segment := "/" + bucketName + "/"
	idx := strings.Index(ref, segment)
	if idx < 0 {
		return "", false
	}
	key := ref[idx+len(segment):]
	if key == "" {
		return "", false
	}
	return key, true
}
