// Package brave provides access to the Brave Web Search API, used as the
// fallback routing target after a retry-eligible primary failure.
package brave

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	appLog "github.com/Laisky/duckduckgo-mcp/library/log"
)

const (
	defaultEndpoint = "https://api.search.brave.com/res/v1/web/search"
	logBodyLimit    = 4096
)

// Query carries the parameters for a single search request.
type Query struct {
	Text       string
	Region     string
	SafeSearch string
	MaxResults int
	Timeout    time.Duration
}

// Result is a single parsed record from the web search payload.
type Result struct {
	Title       string
	URL         string
	Description string
}

// Engine executes queries against the Brave Web Search API.
type Engine struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   logSDK.Logger
}

// NewEngine instantiates a Brave client with the given subscription token.
// An empty endpoint selects the public API.
func NewEngine(endpoint, apiKey string) *Engine {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = defaultEndpoint
	}
	return &Engine{
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(apiKey),
		client:   &http.Client{},
		logger:   appLog.Logger.Named("brave_search"),
	}
}

// webSearchResponse models the JSON payload returned by the web search API.
type webSearchResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search executes the query and returns parsed results in upstream order.
func (e *Engine) Search(ctx context.Context, q Query) ([]Result, error) {
	if e.apiKey == "" {
		return nil, errors.New("brave api key is not configured")
	}
	if strings.TrimSpace(q.Text) == "" {
		return nil, errors.New("query cannot be empty")
	}

	timeout := q.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request to `%s`", e.endpoint)
	}

	limit := q.MaxResults
	if limit <= 0 {
		limit = 5
	}

	params := req.URL.Query()
	params.Set("q", q.Text)
	params.Set("count", strconv.Itoa(limit))
	if country := countryFromRegion(q.Region); country != "" {
		params.Set("country", country)
	}
	if safesearch := braveSafeSearch(q.SafeSearch); safesearch != "" {
		params.Set("safesearch", safesearch)
	}
	req.URL.RawQuery = params.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", e.apiKey)
	req.Header.Set("User-Agent", "duckduckgo-mcp/1.0 (+web-search)")

	e.logger.Debug("outgoing http request",
		zap.String("method", req.Method),
		zap.String("url", e.endpoint),
		zap.String("query", q.Text),
	)

	startAt := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	truncatedBody, truncated := truncateForLog(body, logBodyLimit)
	e.logger.Debug("incoming http response",
		zap.Int("status", resp.StatusCode),
		zap.String("body", truncatedBody),
		zap.Bool("body_truncated", truncated),
		zap.Duration("cost", time.Since(startAt)),
		zap.String("query", q.Text),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("brave search returned status %d: %s", resp.StatusCode, truncatedBody)
	}

	payload := new(webSearchResponse)
	if err := json.Unmarshal(body, payload); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal JSON response")
	}

	results := make([]Result, 0, limit)
	for _, row := range payload.Web.Results {
		title := strings.TrimSpace(row.Title)
		link := strings.TrimSpace(row.URL)
		desc := strings.TrimSpace(row.Description)
		if title == "" && link == "" && desc == "" {
			continue
		}
		results = append(results, Result{
			Title:       title,
			URL:         link,
			Description: desc,
		})
		if len(results) >= limit {
			break
		}
	}

	if len(results) == 0 {
		e.logger.Warn("brave search returned no results",
			zap.String("query", q.Text),
			zap.Int("status", resp.StatusCode),
		)
	}

	return results, nil
}

// countryFromRegion maps a DuckDuckGo-style region code ("us-en", "wt-wt")
// onto the Brave country parameter. The no-region marker maps to none.
func countryFromRegion(region string) string {
	region = strings.ToLower(strings.TrimSpace(region))
	if region == "" || region == "wt-wt" {
		return ""
	}
	parts := strings.SplitN(region, "-", 2)
	return strings.ToUpper(parts[0])
}

// braveSafeSearch maps the shared safesearch enum onto Brave's values.
func braveSafeSearch(safesearch string) string {
	switch safesearch {
	case "on":
		return "strict"
	case "off":
		return "off"
	case "moderate":
		return "moderate"
	default:
		return ""
	}
}

func truncateForLog(body []byte, limit int) (string, bool) {
	if len(body) <= limit {
		return string(body), false
	}
	return string(body[:limit]), true
}
