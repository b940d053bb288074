// Package fetch retrieves URLs and converts them to markdown or structured
// JSON through the Jina Reader service.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	appLog "github.com/Laisky/duckduckgo-mcp/library/log"
	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

// Output formats accepted by the fetch operation.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

const (
	defaultBaseURL = "https://r.jina.ai/"
	// requestTimeout bounds every fetch; content extraction is slower than
	// search so it gets a larger, fixed budget.
	requestTimeout = 30 * time.Second
	// truncationSuffix is appended exactly once when content is cut.
	truncationSuffix = "... (content truncated)"
)

// Options carries the caller-supplied fetch arguments.
type Options struct {
	URL string
	// Format selects markdown (default) or json output.
	Format string
	// MaxLength truncates the content when positive; zero means unlimited.
	MaxLength int
	// WithImages requests generated alt text for images.
	WithImages bool
}

// Result is the outcome of a fetch: rendered markdown text, or the
// provider's structured record when JSON output was requested.
type Result struct {
	Format string
	Text   string
	Data   map[string]any
}

// Render returns the result as a printable string: raw markdown, or
// indented JSON for structured results.
func (r *Result) Render() (string, error) {
	if r.Format != FormatJSON {
		return r.Text, nil
	}
	encoded, err := json.MarshalIndent(r.Data, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encode fetch result")
	}
	return string(encoded), nil
}

// Client fetches URLs through the Jina Reader API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  logSDK.Logger
}

// ClientOption customises a Client during construction.
type ClientOption func(*Client)

// WithLogger overrides the default named logger.
func WithLogger(logger logSDK.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client, primarily for tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

// NewClient constructs a Jina Reader client. An empty baseURL selects the
// public reader endpoint.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	client := &Client{
		baseURL: baseURL,
		client:  &http.Client{},
		logger:  appLog.Logger.Named("jina_fetch"),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Fetch validates the URL, retrieves it through the reader service, and
// returns the converted content. Every failure surfaces as a classified
// taxonomy error.
func (c *Client) Fetch(ctx context.Context, opts Options) (*Result, error) {
	if err := ValidateURL(opts.URL); err != nil {
		return nil, err
	}

	format := normalizeFormat(opts.Format, c.logger)
	target := strings.TrimSpace(opts.URL)
	readerURL := c.baseURL + escapeTarget(target)

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, readerURL, nil)
	if err != nil {
		return nil, mcperr.NewInvalidURLError(
			fmt.Sprintf("URL could not be turned into a request: '%s'", target),
			target,
			mcperr.WithCause(err),
		)
	}

	for key, value := range buildHeaders(format, opts.WithImages) {
		req.Header.Set(key, value)
	}

	c.logger.Debug("fetching url via reader",
		zap.String("url", target),
		zap.String("format", format),
		zap.Bool("with_images", opts.WithImages),
	)

	startAt := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, ClassifyTransportError(err, target)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, ClassifyStatus(resp.StatusCode, resp.Header, target)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ClassifyTransportError(err, target)
	}

	c.logger.Debug("fetch completed",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Int("body_len", len(body)),
		zap.Duration("cost", time.Since(startAt)),
	)

	return processResponse(body, format, opts.MaxLength, target)
}

// escapeTarget percent-escapes the target URL so it rides intact on the
// reader path: `?`, `#`, and non-ASCII runes must not be interpreted by the
// reader endpoint. Slashes are kept so the target stays readable in logs.
func escapeTarget(target string) string {
	segments := strings.Split(target, "/")
	for i, segment := range segments {
		segments[i] = neturl.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

// buildHeaders assembles the reader request headers for the given options.
func buildHeaders(format string, withImages bool) map[string]string {
	headers := map[string]string{"x-no-cache": "true"}

	if format == FormatJSON {
		headers["Accept"] = "application/json"
	}
	if withImages {
		headers["X-With-Generated-Alt"] = "true"
	}

	return headers
}

// normalizeFormat lower-cases the requested format and degrades unknown
// values to markdown with a warning. The hard enum check lives at the tool
// and CLI boundary; this layer only protects direct library callers.
func normalizeFormat(format string, logger logSDK.Logger) string {
	normalized := strings.ToLower(strings.TrimSpace(format))
	switch normalized {
	case FormatJSON, FormatMarkdown:
		return normalized
	case "":
		return FormatMarkdown
	default:
		if logger != nil {
			logger.Warn("unsupported format, using markdown as default",
				zap.String("format", format))
		}
		return FormatMarkdown
	}
}

// processResponse converts the response body into a Result, truncating
// exactly once: the markdown body, or only the `content` field of a
// structured JSON response, never other fields.
func processResponse(body []byte, format string, maxLength int, url string) (*Result, error) {
	if format == FormatJSON {
		data := map[string]any{}
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, mcperr.NewContentParsingError(
				fmt.Sprintf("Failed to decode JSON response for URL: %s", url),
				"json",
				mcperr.WithGuidance("The server returned a response that could not be parsed as JSON. "+
					"This could mean:\n"+
					"  • The URL does not return valid JSON\n"+
					"  • The response was truncated or corrupted\n"+
					"  • Try using format='markdown' instead of 'json'\n"+
					"  • Verify the URL returns the expected content type"),
				mcperr.WithCause(err),
			)
		}

		if content, ok := data["content"].(string); ok && content != "" {
			data["content"] = Truncate(content, maxLength)
		}

		return &Result{Format: FormatJSON, Data: data}, nil
	}

	return &Result{Format: FormatMarkdown, Text: Truncate(string(body), maxLength)}, nil
}

// Truncate cuts content to maxLength characters and appends the truncation
// suffix. A non-positive maxLength leaves the content unchanged. Callers
// must truncate exactly once per fetch; re-applying would measure the
// already-suffixed string.
func Truncate(content string, maxLength int) string {
	if maxLength <= 0 {
		return content
	}
	runes := []rune(content)
	if len(runes) <= maxLength {
		return content
	}
	return string(runes[:maxLength]) + truncationSuffix
}
