package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client queries the content store's HTTP query API. BaseURL is exported so
// tests can point it at a local server.
type Client struct {
	BaseURL string
	Token   string
	httpc   *http.Client
}

func NewClient(projectID, dataset, token string) *Client {
	return &Client{
		BaseURL: fmt.Sprintf("https://%s.apicdn.sanity.io/v2023-08-01/data/query/%s", projectID, dataset),
		Token:   token,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type queryResponse struct {
	Result []Product `json:"result"`
}

// GetProductsByIDs fetches the given products in one batched query.
func (c *Client) GetProductsByIDs(ctx context.Context, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	quoted := make([]string, 0, len(ids))
	for _, id := range ids {
		quoted = append(quoted, fmt.Sprintf("%q", id))
	}
	query := fmt.Sprintf(
		`*[_type == "product" && _id in [%s]]{_id, title, price, availability, "imageUrl": images[0].asset->url}`,
		strings.Join(quoted, ","),
	)

	return c.query(ctx, query)
}

// ListProducts fetches the newest products for the storefront listing.
func (c *Client) ListProducts(ctx context.Context, limit int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := fmt.Sprintf(
		`*[_type == "product"] | order(_createdAt desc)[0...%d]{_id, title, price, availability, "imageUrl": images[0].asset->url}`,
		limit,
	)
	return c.query(ctx, query)
}

func (c *Client) query(ctx context.Context, query string) ([]Product, error) {
	u := c.BaseURL + "?query=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content store request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content store returned %d", resp.StatusCode)
	}

	var qr queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("content store response decode failed: %w", err)
	}
	if qr.Result == nil {
		qr.Result = []Product{}
	}
	return qr.Result, nil
}
