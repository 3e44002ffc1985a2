package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"newshub/internal/config"
	"newshub/internal/domain"
)

const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectStore is the subset of *minio.Client used for article images.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Service interface {
	UploadArticleImage(ctx context.Context, userID int64, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.UploadedImage, error)
	Delete(ctx context.Context, storagePath string) error
	PublicURL(storagePath string) string
}

type service struct {
	store ObjectStore
	cfg   *config.Config
}

func NewService(store ObjectStore, cfg *config.Config) Service {
	return &service{store: store, cfg: cfg}
}

func (s *service) UploadArticleImage(ctx context.Context, userID int64, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.UploadedImage, error) {
	mimeType = strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	ext, ok := allowedImageTypes[mimeType]
	if !ok {
		return nil, domain.NewValidationError("unsupported image type %q", mimeType)
	}
	if fileSize <= 0 || fileSize > MaxImageSize {
		return nil, domain.NewValidationError("image must be between 1 byte and %d MB", MaxImageSize>>20)
	}

	storagePath := fmt.Sprintf("articles/%d/%s/%s%s", userID, time.Now().UTC().Format("2006/01"), uuid.NewString(), ext)

	_, err := s.store.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return &domain.UploadedImage{
		URL:         s.PublicURL(storagePath),
		StoragePath: storagePath,
		FileName:    filepath.Base(fileName),
		FileSize:    fileSize,
		MimeType:    mimeType,
	}, nil
}

func (s *service) Delete(ctx context.Context, storagePath string) error {
	return s.store.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
}

func (s *service) PublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	segments := strings.Split(storagePath, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, strings.Join(segments, "/"))
}
