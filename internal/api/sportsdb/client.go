package sportsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/omarshaarawi/sportify/internal/config"
	"github.com/omarshaarawi/sportify/internal/metrics"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.Recorder
}

func NewClient(cfg config.SportsAPI, rec *metrics.Recorder) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		metrics:    rec,
	}
}

// Get fetches endpoint (e.g. "lookupleague.php") and decodes the JSON body into result.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, result interface{}) (err error) {
	name := strings.TrimSuffix(endpoint, ".php")
	start := time.Now()
	defer func() {
		c.metrics.ObserveRequest(name, OutcomeOf(err).String(), time.Since(start))
	}()

	if c.baseURL == "" {
		return ErrNotConfigured
	}

	u := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: error creating request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	slog.Debug("Sports API request", "url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: error making request: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	// A response arrived, so a bad status is a body we cannot use, not an
	// unreachable API.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code: %d", ErrParse, resp.StatusCode)
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		return fmt.Errorf("%w: unexpected content type %q", ErrParse, resp.Header.Get("Content-Type"))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: error decoding response: %w", ErrParse, err)
	}

	return nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
