package repository

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/HaxHorizon/AutoHack/internal/models"
)

type BlobRepository interface {
	Upload(ctx context.Context, key string, file io.Reader, size int64) (*models.StoredDocument, error)
}

type minioRepository struct {
	client        *minio.Client
	bucket        string
	region        string
	publicBaseURL string
	logger        zerolog.Logger

	ensureMu      sync.Mutex
	bucketEnsured bool
}

func NewMinIORepository(endpoint, accessKey, secretKey, bucket, region, publicBaseURL string, useSSL bool, connectTimeout time.Duration, logger zerolog.Logger) (BlobRepository, error) {
	// Инициализация клиента MinIO
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	repo := &minioRepository{
		client:        client,
		bucket:        bucket,
		region:        region,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}

	// Best-effort bootstrap: на старте не валим сервис, если MinIO ещё не готов
	if connectTimeout <= 0 {
		connectTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := repo.ensureBucket(ctx); err != nil {
		logger.Error().Err(err).
			Str("endpoint", endpoint).
			Str("bucket", bucket).
			Msg("MinIO not ready during startup; will retry on demand")
	}

	logger.Info().
		Str("endpoint", endpoint).
		Str("bucket", bucket).
		Bool("ssl", useSSL).
		Msg("Connected to MinIO")

	return repo, nil
}

func (r *minioRepository) ensureBucket(ctx context.Context) error {
	r.ensureMu.Lock()
	defer r.ensureMu.Unlock()
	if r.bucketEnsured {
		return nil
	}

	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{Region: r.region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		r.logger.Info().Str("bucket", r.bucket).Msg("Created new bucket")
	}

	r.bucketEnsured = true
	return nil
}

func (r *minioRepository) Upload(ctx context.Context, key string, file io.Reader, size int64) (*models.StoredDocument, error) {
	if err := r.ensureBucket(ctx); err != nil {
		return nil, err
	}

	// Загружаем файл
	uploadInfo, err := r.client.PutObject(ctx, r.bucket, key, file, size, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	r.logger.Debug().
		Str("bucket", r.bucket).
		Str("key", key).
		Str("etag", uploadInfo.ETag).
		Int64("size", size).
		Msg("File uploaded to MinIO")

	return &models.StoredDocument{
		URL:          fmt.Sprintf("%s/%s/%s", r.publicBaseURL, r.bucket, key),
		Bytes:        size,
		CreatedAt:    time.Now().UTC(),
		Format:       strings.TrimPrefix(strings.ToLower(filepath.Ext(key)), "."),
		ResourceType: "raw",
	}, nil
}
