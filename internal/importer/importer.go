package importer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Source reads a gzipped coupon definition file and returns its records.
type Source interface {
	Load(ctx context.Context, path string) ([]model.Coupon, error)
}

// Importer loads coupon definition files from a Source and upserts them
// into the coupon ledger at startup.
type Importer struct {
	source Source
	repo   repository.CouponRepository
	logger zerolog.Logger
}

// New creates a new coupon importer.
func New(source Source, repo repository.CouponRepository, logger zerolog.Logger) *Importer {
	return &Importer{
		source: source,
		repo:   repo,
		logger: logger.With().Str("component", "coupon-importer").Logger(),
	}
}

// Run imports every file in order. A failing file aborts the import so a
// partial ledger is never silently accepted.
func (i *Importer) Run(ctx context.Context, files []string) error {
	total := 0
	for _, file := range files {
		coupons, err := i.source.Load(ctx, file)
		if err != nil {
			return fmt.Errorf("failed to load coupon file %s: %w", file, err)
		}

		for _, c := range coupons {
			if err := i.repo.Upsert(ctx, &c); err != nil {
				return fmt.Errorf("failed to upsert coupon %s: %w", c.Code, err)
			}
			total++
		}

		i.logger.Info().
			Str("file", file).
			Int("coupons", len(coupons)).
			Msg("coupon file imported")
	}

	i.logger.Info().Int("coupons_imported", total).Msg("coupon import completed")
	return nil
}

// parseCoupons reads coupon definitions line by line. Each line is
// code,discount_type,discount_value,total_count[,description]. Blank
// lines and lines starting with '#' are skipped.
func parseCoupons(ctx context.Context, r io.Reader, name string, logger zerolog.Logger) ([]model.Coupon, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var coupons []model.Coupon
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		// Check context cancellation periodically
		if lineNo%10_000 == 0 {
			select {
			case <-ctx.Done():
				logger.Warn().Str("file", name).Msg("coupon parsing cancelled")
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		coupon, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("invalid coupon record at %s:%d: %w", name, lineNo, err)
		}
		coupons = append(coupons, coupon)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading coupon file %s: %w", name, err)
	}

	return coupons, nil
}

func parseLine(line string) (model.Coupon, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return model.Coupon{}, fmt.Errorf("expected at least 4 fields, got %d", len(fields))
	}

	code := strings.ToUpper(strings.TrimSpace(fields[0]))
	if code == "" {
		return model.Coupon{}, fmt.Errorf("empty coupon code")
	}

	discountType := strings.TrimSpace(fields[1])
	if discountType != model.DiscountPercentage && discountType != model.DiscountFixed {
		return model.Coupon{}, fmt.Errorf("unknown discount type %q", discountType)
	}

	discountValue, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
	if err != nil {
		return model.Coupon{}, fmt.Errorf("invalid discount value %q: %w", fields[2], err)
	}
	if discountValue.IsNegative() {
		return model.Coupon{}, fmt.Errorf("negative discount value %q", fields[2])
	}

	totalCount, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return model.Coupon{}, fmt.Errorf("invalid total count %q: %w", fields[3], err)
	}
	if totalCount < 1 {
		return model.Coupon{}, fmt.Errorf("total count must be at least 1, got %d", totalCount)
	}

	description := ""
	if len(fields) > 4 {
		description = strings.TrimSpace(strings.Join(fields[4:], ","))
	}

	return model.Coupon{
		Code:          code,
		Description:   description,
		DiscountType:  discountType,
		DiscountValue: discountValue,
		TotalCount:    totalCount,
		IsActive:      true,
	}, nil
}
