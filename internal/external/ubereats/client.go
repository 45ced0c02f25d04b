package ubereats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client retrieves full order documents from platform-supplied resource
// references.
type Client struct {
	http *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{http: httpClient}
}

// FetchOrder performs an authorized GET against resourceHref and returns the
// raw order document. Non-2xx responses and non-JSON bodies surface as
// ErrFetch.
func (c *Client) FetchOrder(ctx context.Context, resourceHref string, token Token) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceHref, nil)
	if err != nil {
		return nil, fmt.Errorf("create fetch request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: %s: %s", ErrFetch, resp.Status, string(raw))
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: response body is not valid JSON", ErrFetch)
	}

	return raw, nil
}
