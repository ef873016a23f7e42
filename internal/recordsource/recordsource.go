package recordsource

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tinytelemetry/memberdesk/internal/model"
)

// HTTPSource reads the member list with a single GET of a JSON array.
// There are no request parameters, headers, retries or timeouts.
type HTTPSource struct {
	url    string
	client *http.Client
}

var _ model.RecordSource = (*HTTPSource)(nil)

// NewHTTPSource creates a source for url. A nil client uses http.DefaultClient.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if url == "" {
		url = model.DefaultSourceURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, client: client}
}

// URL returns the feed address.
func (s *HTTPSource) URL() string { return s.url }

// Fetch performs the request and decodes the body.
func (s *HTTPSource) Fetch(ctx context.Context) ([]model.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", s.url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", s.url, resp.Status)
	}

	var records []model.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding records from %s: %w", s.url, err)
	}
	return records, nil
}
