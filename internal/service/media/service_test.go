package media_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newshub/internal/config"
	"newshub/internal/domain"
	"newshub/internal/service/media"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, objectSize, opts.ContentType)
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, args.Error(0)
}

func (m *mockStore) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		MinIOBucket:         "newshub-images",
		MinIOPublicEndpoint: "cdn.example.com",
		MinIOPublicUseSSL:   true,
	}
}

func TestMediaService_UploadArticleImage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := new(mockStore)
		svc := media.NewService(store, testConfig())
		store.On("PutObject", ctx, "newshub-images", mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "articles/42/") && strings.HasSuffix(key, ".png")
		}), int64(1024), "image/png").Return(nil).Once()

		img, err := svc.UploadArticleImage(ctx, 42, "../cover.png", 1024, "image/png", strings.NewReader("x"))

		require.NoError(t, err)
		assert.Equal(t, "cover.png", img.FileName)
		assert.True(t, strings.HasPrefix(img.URL, "https://cdn.example.com/newshub-images/articles/42/"))
		store.AssertExpectations(t)
	})

	t.Run("Rejects non-image", func(t *testing.T) {
		store := new(mockStore)
		svc := media.NewService(store, testConfig())

		_, err := svc.UploadArticleImage(ctx, 42, "a.pdf", 10, "application/pdf", strings.NewReader("x"))

		assert.True(t, domain.IsKind(err, domain.KindValidation))
		store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rejects oversized file", func(t *testing.T) {
		svc := media.NewService(new(mockStore), testConfig())

		_, err := svc.UploadArticleImage(ctx, 42, "a.jpg", media.MaxImageSize+1, "image/jpeg", strings.NewReader("x"))

		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("Storage failure", func(t *testing.T) {
		store := new(mockStore)
		svc := media.NewService(store, testConfig())
		store.On("PutObject", ctx, "newshub-images", mock.Anything, int64(10), "image/jpeg").
			Return(errors.New("bucket unavailable")).Once()

		_, err := svc.UploadArticleImage(ctx, 42, "a.jpg", 10, "image/jpeg", strings.NewReader("x"))

		assert.ErrorContains(t, err, "bucket unavailable")
	})
}
