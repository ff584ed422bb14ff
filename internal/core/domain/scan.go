package domain

const (
	MessageDetected    = "Potential piracy detected!"
	MessageNotDetected = "No piracy detected."
)

// ScanResult is the outcome of scanning one page for one keyword.
// Sentences is nil when nothing matched so it drops out of the JSON body.
type ScanResult struct {
	Message   string   `json:"message"`
	URL       string   `json:"url"`
	Sentences []string `json:"sentences,omitempty"`
}

// Detected reports whether any sentence matched.
func (r ScanResult) Detected() bool {
	return len(r.Sentences) > 0
}

// NewScanResult shapes the detected / not detected response for url.
func NewScanResult(url string, sentences []string) ScanResult {
	if len(sentences) == 0 {
		return ScanResult{Message: MessageNotDetected, URL: url}
	}
	return ScanResult{Message: MessageDetected, URL: url, Sentences: sentences}
}
