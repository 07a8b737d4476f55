package products

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/omarshaarawi/sportify/internal/config"
	"github.com/omarshaarawi/sportify/internal/models"
)

const pageSize = 10

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg config.DummyAPI) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
	}
}

// FetchItems never fails; any error is logged and yields no items.
func (c *Client) FetchItems(ctx context.Context) []models.Item {
	items, err := c.fetch(ctx)
	if err != nil {
		slog.Error("Error fetching items", "error", err)
		return []models.Item{}
	}
	return items
}

func (c *Client) fetch(ctx context.Context) ([]models.Item, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("demo product api base url not configured")
	}

	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, pageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var data models.ProductsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	items := make([]models.Item, len(data.Products))
	for i, p := range data.Products {
		items[i] = p.ToItem()
	}
	return items, nil
}
