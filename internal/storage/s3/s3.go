package s3

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"live-foto-event-back/internal/uploader"
)

type S3Storage struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	// Создаем AWS конфигурацию с кастомным endpoint
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     cfg.AccessKeyID,
					SecretAccessKey: cfg.SecretAccessKey,
				}, nil
			},
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // path-style для совместимости с S3-совместимыми сервисами
		o.Region = cfg.Region
	})

	return &S3Storage{
		client:   client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: cfg.Endpoint,
	}, nil
}

// GenerateUploadDestination выдаёт ключ и публичный путь для нового
// файла события. Имя генерируется заново: клиентское имя в ключ
// не попадает.
func (s *S3Storage) GenerateUploadDestination(ctx context.Context, eventSlug, filename string) (
	uploader.UploadDestination, error) {

	ext := strings.ToLower(filepath.Ext(filename))
	name := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	key := fmt.Sprintf("event_%s/originals/%s", eventSlug, name)

	return uploader.UploadDestination{
		UploadTarget: key,
		Path:         s.publicURL(key),
	}, nil
}

// Put загружает байты по выданному назначению и возвращает публичную ссылку
func (s *S3Storage) Put(ctx context.Context, dest uploader.UploadDestination, data []byte, contentType string) (
	string, error) {

	if err := s.uploadBytes(ctx, data, dest.UploadTarget, contentType); err != nil {
		return "", err
	}
	return dest.Path, nil
}

// UploadThumbnail создает миниатюру и кладет ее рядом с оригиналом.
// Ошибка миниатюры не фатальна для загрузки — вызывающий решает сам.
func (s *S3Storage) UploadThumbnail(ctx context.Context, dest uploader.UploadDestination, data []byte) (
	string, error) {

	thumbBytes, err := s.createThumbnail(data)
	if err != nil {
		return "", err
	}
	thumbKey := strings.Replace(dest.UploadTarget, "/originals/", "/thumbnails/", 1)
	if err := s.uploadBytes(ctx, thumbBytes, thumbKey, "image/jpeg"); err != nil {
		return "", err
	}
	return s.publicURL(thumbKey), nil
}

// createThumbnail создает миниатюру изображения
func (s *S3Storage) createThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Thumbnail(img, 300, 300, imaging.Lanczos)

	var buf bytes.Buffer
	err = jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85})
	if err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}

// uploadBytes загружает байты в S3
func (s *S3Storage) uploadBytes(ctx context.Context, data []byte, key, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

// DeleteFile удаляет файл из S3
func (s *S3Storage) DeleteFile(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

func (s *S3Storage) publicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
}

// KeyFromURL восстанавливает ключ объекта из публичной ссылки
func (s *S3Storage) KeyFromURL(url string) string {
	return strings.TrimPrefix(url, fmt.Sprintf("%s/%s/", s.endpoint, s.bucket))
}

var _ uploader.DestinationService = (*S3Storage)(nil)
var _ uploader.ObjectStore = (*S3Storage)(nil)
