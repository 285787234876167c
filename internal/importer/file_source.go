package importer

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"

	"shopkart/internal/model"

	"github.com/rs/zerolog"
)

// fileSource implements Source for reading gzipped coupon files from
// the local file system.
type fileSource struct {
	logger zerolog.Logger
}

// NewFileSource creates a new file-based coupon source.
func NewFileSource(logger zerolog.Logger) Source {
	return &fileSource{
		logger: logger.With().Str("component", "coupon-file-source").Logger(),
	}
}

// Load reads a gzipped coupon definition file from disk.
func (s *fileSource) Load(ctx context.Context, path string) ([]model.Coupon, error) {
	s.logger.Info().Str("file", path).Msg("loading coupon file")

	file, err := os.Open(path)
	if err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to open coupon file")
		return nil, fmt.Errorf("failed to open coupon file %s: %w", path, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
	}
	defer gzipReader.Close()

	coupons, err := parseCoupons(ctx, gzipReader, path, s.logger)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("file", path).
		Int("coupons_loaded", len(coupons)).
		Msg("coupon file loaded successfully")

	return coupons, nil
}
