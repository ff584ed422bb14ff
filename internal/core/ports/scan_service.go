package ports

import (
	"context"

	"github.com/99minutos/piracy-detector/internal/core/domain"
)

// ScanInput is the DTO passed from the transport layer to ScanService.
type ScanInput struct {
	URL     string
	Keyword string
}

// ScanService fetches a page and scans its visible text for a keyword.
type ScanService interface {
	Scan(ctx context.Context, in ScanInput) (*domain.ScanResult, error)
}

// PageFetcher retrieves the raw HTML of a URL. Failures wrap domain.ErrFetchFailed.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// TextExtractor returns the visible body text of an HTML document.
// It never fails; unparseable input yields an empty string.
type TextExtractor interface {
	Extract(html string) string
}
