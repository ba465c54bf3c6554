// Package storage — загрузка файлов (аватарки, картинки новостей)
// в S3-совместимое хранилище. Публичные ссылки отдаём через CDN-базу.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/GogaGogich123/cadet-corps-api/internal/config"
)

type Client struct {
	s3        *s3.Client
	bucket    string
	publicURL string
}

// New поднимает клиент по настройкам из конфига. Если хранилище не
// настроено (cfg.StorageEnabled() == false), вызывающий код должен
// сюда не заходить.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		)),
		awsconfig.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: cfg.S3Endpoint}, nil
			}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: загрузка конфига S3: %w", err)
	}

	return &Client{
		s3:        s3.NewFromConfig(awsCfg),
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(cfg.S3PublicURL, "/"),
	}, nil
}

// Upload кладёт объект и возвращает публичную ссылку.
func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: загрузка %s: %w", key, err)
	}
	return c.publicURL + "/" + key, nil
}

// ObjectKey строит ключ вида "avatars/<uuid>.png" — случайное имя,
// чтобы загрузки не перетирали друг друга.
func ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return prefix + "/" + uuid.NewString() + ext
}
