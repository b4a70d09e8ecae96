// Catalog data API [Provider] implementation
//
// Fetches single items and channel listings from a YouTube-style JSON API,
// throttled with a token bucket so bulk imports stay inside provider quotas.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/ytdb/internal/models"
	"github.com/desertthunder/ytdb/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultCatalogBaseURL string = "https://www.googleapis.com/youtube/v3"

// CatalogService implements the Provider interface over HTTP.
type CatalogService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewCatalogService creates a catalog provider from configuration.
//
// When an access token is configured, requests go through an [oauth2.NewClient]
// transport that attaches the bearer token; an API key rides along as a query
// parameter either way. A zero rate limit disables throttling.
func NewCatalogService(cfg shared.ProviderConfig) *CatalogService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultCatalogBaseURL
	}

	httpClient := http.DefaultClient
	if cfg.AccessToken != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
		httpClient = oauth2.NewClient(context.Background(), source)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &CatalogService{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

// Name returns the provider name.
func (c *CatalogService) Name() string {
	return "catalog"
}

func (c *CatalogService) doRequest(ctx context.Context, endpoint string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	apiURL := c.baseURL + endpoint
	if c.apiKey != "" {
		apiURL += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return shared.ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("%w (status %d): %s", shared.ErrProviderRequest, resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("%w: status %d", shared.ErrProviderRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Get fetches the attribute mapping for a single item.
//
// Calls GET /{kinds}/{key}; a 404 or an empty document is a nil mapping, not
// an error.
func (c *CatalogService) Get(ctx context.Context, kind models.Kind, key string) (models.Attrs, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownKind, kind)
	}

	var attrs models.Attrs
	endpoint := fmt.Sprintf("/%s/%s", kind.Plural(), url.PathEscape(key))

	err := c.doRequest(ctx, endpoint, &attrs)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(attrs) == 0 {
		return nil, nil
	}

	return attrs, nil
}

// GetChannelItems fetches the ordered listing of a channel's videos and
// playlists.
//
// Calls GET /channels/{key}/items. Each entry carries an "itemKind"
// discriminator alongside its attributes. Entries without one pass through
// with an empty kind so the caller can count and record them instead of the
// client silently dropping them.
func (c *CatalogService) GetChannelItems(ctx context.Context, channelKey string) ([]ItemPayload, error) {
	var raw []models.Attrs
	endpoint := fmt.Sprintf("/channels/%s/items", url.PathEscape(channelKey))

	if err := c.doRequest(ctx, endpoint, &raw); err != nil {
		return nil, err
	}

	items := make([]ItemPayload, 0, len(raw))
	for _, attrs := range raw {
		itemKind := attrs.String("itemKind")
		delete(attrs, "itemKind")
		items = append(items, ItemPayload{ItemKind: itemKind, Attrs: attrs})
	}

	return items, nil
}
