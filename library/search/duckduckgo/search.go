// Package duckduckgo provides access to the DuckDuckGo Instant Answer API.
package duckduckgo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	appLog "github.com/Laisky/duckduckgo-mcp/library/log"
)

const (
	defaultEndpoint = "https://api.duckduckgo.com/"
	// logBodyLimit caps the number of response bytes logged for debugging.
	logBodyLimit = 4096
)

// Query carries the parameters for a single search request.
type Query struct {
	Text       string
	Region     string
	SafeSearch string
	MaxResults int
	Timeout    time.Duration
}

// Result is a single parsed record from the Instant Answer payload.
type Result struct {
	Title       string
	URL         string
	Description string
}

// Engine executes queries against the DuckDuckGo Instant Answer API.
type Engine struct {
	endpoint string
	client   *http.Client
	logger   logSDK.Logger
}

// NewEngine instantiates a DuckDuckGo client. An empty endpoint selects the
// public API.
func NewEngine(endpoint string) *Engine {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = defaultEndpoint
	}
	return &Engine{
		endpoint: endpoint,
		client:   &http.Client{},
		logger:   appLog.Logger.Named("duckduckgo_search"),
	}
}

// instantAnswerResponse models the JSON payload returned by the Instant
// Answer API. Only the fields the adapter consumes are mapped.
type instantAnswerResponse struct {
	Heading       string  `json:"Heading"`
	AbstractText  string  `json:"AbstractText"`
	AbstractURL   string  `json:"AbstractURL"`
	RelatedTopics []topic `json:"RelatedTopics"`
}

type topic struct {
	Text     string  `json:"Text"`
	FirstURL string  `json:"FirstURL"`
	Topics   []topic `json:"Topics"`
}

// Search executes the query and returns parsed results in upstream order.
func (e *Engine) Search(ctx context.Context, q Query) ([]Result, error) {
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

	params := req.URL.Query()
	params.Set("q", q.Text)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")
	if q.Region != "" {
		params.Set("kl", q.Region)
	}
	switch q.SafeSearch {
	case "on":
		params.Set("kp", "1")
	case "off":
		params.Set("kp", "-1")
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", "duckduckgo-mcp/1.0 (+web-search)")

	e.logger.Debug("outgoing http request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
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
		return nil, errors.Errorf("duckduckgo search returned status %d: %s", resp.StatusCode, truncatedBody)
	}

	payload := new(instantAnswerResponse)
	if err := json.Unmarshal(body, payload); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal JSON response")
	}

	limit := q.MaxResults
	if limit <= 0 {
		limit = 5
	}

	results := make([]Result, 0, limit)
	if strings.TrimSpace(payload.AbstractText) != "" && strings.TrimSpace(payload.AbstractURL) != "" {
		title := strings.TrimSpace(payload.Heading)
		if title == "" {
			title = q.Text
		}
		results = append(results, Result{
			Title:       title,
			URL:         strings.TrimSpace(payload.AbstractURL),
			Description: strings.TrimSpace(payload.AbstractText),
		})
	}
	collectTopics(&results, payload.RelatedTopics)
	results = uniqueByURL(results, limit)

	if len(results) == 0 {
		e.logger.Warn("duckduckgo search returned no results",
			zap.String("query", q.Text),
			zap.Int("status", resp.StatusCode),
		)
	}

	return results, nil
}

// collectTopics flattens the nested related-topic groups in document order.
func collectTopics(results *[]Result, topics []topic) {
	for _, tp := range topics {
		if len(tp.Topics) > 0 {
			collectTopics(results, tp.Topics)
			continue
		}

		text := strings.TrimSpace(tp.Text)
		link := strings.TrimSpace(tp.FirstURL)
		if text == "" || link == "" {
			continue
		}

		title, desc := splitTopicText(text)
		*results = append(*results, Result{
			Title:       title,
			URL:         link,
			Description: desc,
		})
	}
}

// splitTopicText separates "Title - description" topic text into its parts.
func splitTopicText(text string) (string, string) {
	parts := strings.SplitN(text, " - ", 2)
	if len(parts) == 2 {
		title := strings.TrimSpace(parts[0])
		desc := strings.TrimSpace(parts[1])
		if title == "" {
			title = text
		}
		if desc == "" {
			desc = text
		}
		return title, desc
	}
	return text, text
}

func uniqueByURL(results []Result, limit int) []Result {
	seen := make(map[string]struct{}, len(results))
	out := make([]Result, 0, len(results))
	for _, result := range results {
		if result.URL == "" {
			continue
		}
		if _, ok := seen[result.URL]; ok {
			continue
		}
		seen[result.URL] = struct{}{}
		out = append(out, result)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func truncateForLog(body []byte, limit int) (string, bool) {
	if len(body) <= limit {
		return string(body), false
	}
	return string(body[:limit]), true
}
