package phei

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// DefaultBaseURL is the page with the government-bond benchmark tables.
const DefaultBaseURL = "https://www.phei.co.id/Data/HPW-dan-Imbal-Hasil"

type Interaction struct {
	logger  *slog.Logger
	client  *http.Client
	baseURL string
}

// NewInteraction creates a new instance of Interaction with the PHEI site.
func NewInteraction(logger *slog.Logger, client *http.Client, baseURL string) *Interaction {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Interaction{
		logger:  logger.With("component", "phei"),
		client:  client,
		baseURL: baseURL,
	}
}

// GetDailySnapshot fetches the benchmark page and returns the published
// date together with the raw rows of the two benchmark tables.
func (that *Interaction) GetDailySnapshot(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, that.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return ParseSnapshot(string(body))
}
