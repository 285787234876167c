package importer

import (
	"compress/gzip"
	"context"
	"fmt"

	"shopkart/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Source implements Source for reading gzipped coupon files from AWS S3.
type s3Source struct {
	client *s3.Client
	bucket string
	logger zerolog.Logger
}

// NewS3Source creates a new S3-based coupon source.
func NewS3Source(ctx context.Context, bucket, region string, logger zerolog.Logger) (Source, error) {
	logger = logger.With().Str("component", "coupon-s3-source").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 coupon source initialised")

	return &s3Source{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

// Load reads a gzipped coupon definition file from S3. The path is used
// as the full object key.
func (s *s3Source) Load(ctx context.Context, path string) ([]model.Coupon, error) {
	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", path).
		Msg("loading coupon file from S3")

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", path).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", s.bucket, path, err)
	}
	defer result.Body.Close()

	gzipReader, err := gzip.NewReader(result.Body)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", path).
			Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for S3 object %s: %w", path, err)
	}
	defer gzipReader.Close()

	coupons, err := parseCoupons(ctx, gzipReader, path, s.logger)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", path).
		Int("coupons_loaded", len(coupons)).
		Msg("coupon file loaded successfully from S3")

	return coupons, nil
}
