package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	fetchlib "github.com/Laisky/duckduckgo-mcp/library/fetch"
	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

// FetchToolName identifies the URL-to-content tool.
const FetchToolName = "jina_fetch"

// FetchProvider abstracts the content retrieval capability used by the tool.
type FetchProvider interface {
	Fetch(ctx context.Context, opts fetchlib.Options) (*fetchlib.Result, error)
}

// WebFetchTool implements the jina_fetch MCP tool.
type WebFetchTool struct {
	provider FetchProvider
	logger   logSDK.Logger
}

// NewWebFetchTool constructs a WebFetchTool with the provided dependencies.
func NewWebFetchTool(provider FetchProvider, logger logSDK.Logger) (*WebFetchTool, error) {
	if provider == nil {
		return nil, errors.New("fetch provider is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &WebFetchTool{
		provider: provider,
		logger:   logger,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *WebFetchTool) Definition() mcp.Tool {
	return mcp.NewTool(
		FetchToolName,
		mcp.WithDescription("Fetch a URL and convert it to markdown or JSON using Jina Reader."),
		mcp.WithString(
			"url",
			mcp.Required(),
			mcp.Description("The URL to fetch and convert."),
		),
		mcp.WithString(
			"format",
			mcp.Description("Output format: 'markdown' or 'json' (default: 'markdown')."),
		),
		mcp.WithNumber(
			"max_length",
			mcp.Description("Maximum content length to return; omit for no limit."),
		),
		mcp.WithBoolean(
			"with_images",
			mcp.Description("Whether to include generated alt text for images."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the jina_fetch tool logic using the configured dependencies.
func (t *WebFetchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	urlValue, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	urlValue = strings.TrimSpace(urlValue)
	if urlValue == "" {
		return toolError(mcperr.NewValidationError(
			"Missing required parameter: url",
			mcperr.WithGuidance("The 'url' parameter is required. Please provide a URL to fetch.\n"+
				"Example: jina_fetch(url='https://example.com')"),
		)), nil
	}

	args := requestArgs(req)

	format := strings.ToLower(stringArg(args, "format", fetchlib.FormatMarkdown))
	if format != fetchlib.FormatMarkdown && format != fetchlib.FormatJSON {
		verr := mcperr.NewValidationError(
			fmt.Sprintf("Invalid format: '%s'. format must be 'markdown' or 'json'.", format),
			mcperr.WithGuidance("The 'format' parameter accepts two values:\n"+
				"  • 'markdown' (default) - Returns the page content as markdown text\n"+
				"  • 'json' - Returns the provider's structured response"),
		)
		t.logger.Info("web fetch validation failed", zap.Error(verr))
		return toolError(verr), nil
	}

	maxLength, err := positiveIntArg(args, "max_length", 0, "max_length")
	if err != nil {
		t.logger.Info("web fetch validation failed", zap.Error(err))
		return toolError(err), nil
	}

	withImages := boolArg(args, "with_images")

	t.logger.Debug("web fetch started",
		zap.String("url", urlValue),
		zap.String("format", format),
		zap.Int("max_length", maxLength),
		zap.Bool("with_images", withImages),
	)

	result, err := t.provider.Fetch(ctx, fetchlib.Options{
		URL:        urlValue,
		Format:     format,
		MaxLength:  maxLength,
		WithImages: withImages,
	})
	if err != nil {
		t.logger.Warn("web fetch failed", zap.Error(err), zap.String("url", urlValue))
		return toolError(err), nil
	}

	if result.Format == fetchlib.FormatJSON {
		toolResult, err := mcp.NewToolResultJSON(result.Data)
		if err != nil {
			t.logger.Error("encode fetch result", zap.Error(err))
			return mcp.NewToolResultError("failed to encode fetch result"), nil
		}
		return toolResult, nil
	}

	return mcp.NewToolResultText(result.Text), nil
}
