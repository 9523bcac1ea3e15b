package terminology

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// HTTPSearcher queries an external semantic-search service over HTTP.
// The service contract is GET {base}/search?term=...&k=... returning a JSON
// array of candidates. Responses are decoded leniently: items with missing
// or wrong-typed fields become zero-valued candidates and are rejected by
// the resolver's shape check rather than failing the whole response.
type HTTPSearcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSearcher creates a searcher bound by the given request timeout.
func NewHTTPSearcher(baseURL string, timeout time.Duration) *HTTPSearcher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPSearcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSearcher) Search(ctx context.Context, term string, k int) ([]Candidate, error) {
	q := url.Values{}
	q.Set("term", term)
	q.Set("k", strconv.Itoa(k))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build semantic search request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("semantic search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semantic search returned status %d", resp.StatusCode)
	}

	var items []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode semantic search response: %w", err)
	}

	candidates := make([]Candidate, 0, len(items))
	for _, item := range items {
		var c Candidate
		c.System, _ = item["system"].(string)
		c.Code, _ = item["code"].(string)
		c.Display, _ = item["display"].(string)
		c.Score, _ = item["score"].(float64)
		candidates = append(candidates, c)
	}
	return candidates, nil
}
