// Package s3service fetches reference datasets from object storage.
package s3service

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	appConfig "agri-bnpl-engine/internal/config"
	"agri-bnpl-engine/internal/utils"
)

// Service handles S3 operations.
type Service struct {
	client     *s3.Client
	bucketName string
}

// NewService creates a new S3 service bound to the configured dataset bucket.
func NewService(ctx context.Context, appCfg *appConfig.Config) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(appCfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Service{
		client:     s3.NewFromConfig(cfg),
		bucketName: appCfg.S3Bucket,
	}, nil
}

// Download fetches an object and returns its content.
func (s *Service) Download(ctx context.Context, key string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}

	result, err := s.client.GetObject(ctx, input)
	if err != nil {
		utils.Logger.Error("Failed to download object from S3",
			zap.String("bucket", s.bucketName),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to download object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object content: %w", err)
	}

	utils.Logger.Info("Downloaded object from S3",
		zap.String("bucket", s.bucketName),
		zap.String("key", key),
		zap.Int("size", len(data)),
	)

	return data, nil
}

// FetchDataset downloads the farmer and product dataset objects.
func (s *Service) FetchDataset(ctx context.Context, farmersKey, productsKey string) (farmers, products []byte, err error) {
	farmers, err = s.Download(ctx, farmersKey)
	if err != nil {
		return nil, nil, err
	}
	products, err = s.Download(ctx, productsKey)
	if err != nil {
		return nil, nil, err
	}
	return farmers, products, nil
}
