package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/piracy-detector/internal/core/domain"
	"github.com/99minutos/piracy-detector/internal/core/ports"
	"github.com/99minutos/piracy-detector/internal/core/scanner"
	"github.com/99minutos/piracy-detector/pkg/metrics"
)

type scanService struct {
	fetcher   ports.PageFetcher
	extractor ports.TextExtractor
	log       zerolog.Logger
}

// NewScanService returns a ScanService that fetches with fetcher and reads
// page text with extractor.
func NewScanService(fetcher ports.PageFetcher, extractor ports.TextExtractor, log zerolog.Logger) ports.ScanService {
	return &scanService{
		fetcher:   fetcher,
		extractor: extractor,
		log:       log,
	}
}

// Scan fetches in.URL, extracts its body text and collects the sentences
// containing in.Keyword.
func (s *scanService) Scan(ctx context.Context, in ports.ScanInput) (*domain.ScanResult, error) {
	start := time.Now()
	page, err := s.fetcher.Fetch(ctx, in.URL)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ScansTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("url", in.URL).Msg("page fetch failed")
		return nil, err
	}

	text := s.extractor.Extract(page)
	result := domain.NewScanResult(in.URL, scanner.Scan(text, in.Keyword))

	outcome := "clean"
	if result.Detected() {
		outcome = "detected"
	}
	metrics.ScansTotal.WithLabelValues(outcome).Inc()
	metrics.SentencesMatched.Observe(float64(len(result.Sentences)))

	s.log.Info().
		Str("url", in.URL).
		Str("keyword", in.Keyword).
		Int("matches", len(result.Sentences)).
		Msg("page scanned")

	return &result, nil
}
