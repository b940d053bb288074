package tools

import (
	"context"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
	searchlib "github.com/Laisky/duckduckgo-mcp/library/search"
)

// SearchToolName is the primary tool identifier; AliasSearchToolName is a
// shorter alias some MCP clients expect, registered next to the primary.
const (
	SearchToolName      = "duckduckgo_search"
	AliasSearchToolName = "search"
)

// SearchProvider abstracts the search execution capability used by the tool.
type SearchProvider interface {
	Search(ctx context.Context, params searchlib.Params) ([]searchlib.SearchResultItem, error)
}

// WebSearchTool implements the duckduckgo_search MCP tool.
type WebSearchTool struct {
	provider SearchProvider
	logger   logSDK.Logger
}

// NewWebSearchTool constructs a WebSearchTool with the provided dependencies.
func NewWebSearchTool(provider SearchProvider, logger logSDK.Logger) (*WebSearchTool, error) {
	if provider == nil {
		return nil, errors.New("search provider is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &WebSearchTool{
		provider: provider,
		logger:   logger,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *WebSearchTool) Definition() mcp.Tool {
	return mcp.NewTool(
		SearchToolName,
		mcp.WithDescription("Search the web using DuckDuckGo and return a structured result set."),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Plain text search query."),
		),
		mcp.WithNumber(
			"max_results",
			mcp.Description("Maximum number of search results to return (default: 5)."),
		),
		mcp.WithString(
			"safesearch",
			mcp.Description("Safe search setting: 'on', 'moderate', or 'off' (default: 'moderate')."),
		),
		mcp.WithString(
			"output_format",
			mcp.Description("Output format: 'json' for structured results, 'text' for an LLM-friendly listing (default: 'json')."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the duckduckgo_search tool logic using the configured dependencies.
func (t *WebSearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return toolError(mcperr.NewValidationError(
			"Missing required parameter: query",
			mcperr.WithGuidance("The 'query' parameter is required. Please provide a search query.\n"+
				"Example: duckduckgo_search(query='python web scraping tutorial')"),
		)), nil
	}

	args := requestArgs(req)

	maxResults, err := positiveIntArg(args, "max_results", searchlib.DefaultMaxResults, "max_results")
	if err != nil {
		t.logger.Info("web search validation failed", zap.Error(err))
		return toolError(err), nil
	}

	outputFormat, err := searchlib.ValidateOutputFormat(stringArg(args, "output_format", searchlib.OutputFormatJSON))
	if err != nil {
		t.logger.Info("web search validation failed", zap.Error(err))
		return toolError(err), nil
	}

	safesearch := stringArg(args, "safesearch", searchlib.DefaultSafeSearch)

	start := time.Now().UTC()
	t.logger.Debug("web search started",
		zap.String("query", query),
		zap.Int("max_results", maxResults),
		zap.String("safesearch", safesearch),
		zap.String("output_format", outputFormat),
	)

	items, err := t.provider.Search(ctx, searchlib.Params{
		Query:      query,
		MaxResults: maxResults,
		SafeSearch: safesearch,
	})
	if err != nil {
		t.logSearchFailure(query, err)
		return toolError(err), nil
	}

	if len(items) == 0 {
		t.logger.Warn("web search returned no results", zap.String("query", query))
	} else {
		t.logger.Debug("web search completed",
			zap.String("query", query),
			zap.Int("results_count", len(items)),
			zap.Duration("duration", time.Since(start)),
		)
	}

	if outputFormat == searchlib.OutputFormatText {
		return mcp.NewToolResultText(searchlib.FormatResultsAsText(items, query)), nil
	}

	toolResult, err := mcp.NewToolResultJSON(items)
	if err != nil {
		t.logger.Error("encode search result", zap.Error(err))
		return mcp.NewToolResultError("failed to encode search result"), nil
	}

	return toolResult, nil
}

// logSearchFailure picks the log severity from the error category.
func (t *WebSearchTool) logSearchFailure(query string, err error) {
	me, ok := mcperr.From(err)
	if !ok {
		t.logger.Error("web search failed", zap.Error(err), zap.String("query", query))
		return
	}

	switch me.Category {
	case mcperr.CategoryNetwork, mcperr.CategoryService:
		t.logger.Warn("web search failed", zap.Error(err), zap.String("query", query))
	case mcperr.CategoryValidation:
		t.logger.Info("web search rejected", zap.Error(err), zap.String("query", query))
	default:
		t.logger.Error("web search failed", zap.Error(err), zap.String("query", query))
	}
}
