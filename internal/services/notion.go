// Notion database [VideoSource] implementation
//
// Queries one database via the Notion REST API and maps each returned page
// into a flat catalog record. The query never paginates: the first page of
// up to 100 rows is the whole catalog as far as this client is concerned.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/videohub/videohub/internal/catalog"
	"github.com/videohub/videohub/internal/models"
	"github.com/videohub/videohub/internal/shared"
)

const (
	defaultNotionBaseURL = "https://api.notion.com"
	notionVersion        = "2022-06-28"

	// Notion's query endpoint caps page_size at 100; anything beyond the
	// first page is truncated.
	queryPageSize = 100

	// Notion's documented request budget is ~3 requests per second.
	defaultRateLimit = 3.0
)

// NotionService implements [VideoSource] against the Notion database-query API.
type NotionService struct {
	baseURL    string
	apiKey     string
	databaseID string
	version    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NotionOpts contains construction options for [NewNotionService].
// Zero values fall back to the Notion production defaults.
type NotionOpts struct {
	BaseURL    string
	APIKey     string
	DatabaseID string
	Version    string
	RateLimit  float64
	HTTPClient *http.Client
}

// NewNotionService creates a new Notion catalog source.
func NewNotionService(opts NotionOpts) *NotionService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultNotionBaseURL
	}
	if opts.Version == "" {
		opts.Version = notionVersion
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &NotionService{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		databaseID: opts.DatabaseID,
		version:    opts.Version,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
	}
}

// Name returns the source name.
func (n *NotionService) Name() string {
	return "Notion"
}

// QueryDatabase performs a single database query and decodes the response.
//
// Non-2xx responses surface as [shared.UpstreamError] with the raw body
// preserved; nothing is retried.
func (n *NotionService) QueryDatabase(ctx context.Context) (*models.QueryResponse, error) {
	if n.apiKey == "" {
		return nil, shared.ErrMissingAPIKey
	}
	if n.databaseID == "" {
		return nil, shared.ErrMissingDatabase
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/databases/%s/query", n.baseURL, n.databaseID)
	body := strings.NewReader(fmt.Sprintf(`{"page_size":%d}`, queryPageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", n.version)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &shared.UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var result models.QueryResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// FetchVideos queries the database and normalizes every returned page.
//
// A response without results yields an empty catalog, not an error.
func (n *NotionService) FetchVideos(ctx context.Context) ([]models.VideoRecord, error) {
	result, err := n.QueryDatabase(ctx)
	if err != nil {
		return nil, err
	}

	return catalog.NormalizeAll(result.Results), nil
}
