package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	appLog "github.com/Laisky/duckduckgo-mcp/library/log"
	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

// Client routes queries through the primary backend and applies the
// single-shot fallback policy when the primary attempt fails. There is no
// backoff and no retry budget shared across calls: at most one extra request
// per query, ever.
type Client struct {
	primary  Backend
	fallback Backend
	logger   logSDK.Logger
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

// NewClient constructs a Client with the given primary and fallback backends.
func NewClient(primary, fallback Backend, opts ...ClientOption) (*Client, error) {
	if primary == nil {
		return nil, errors.New("primary backend is required")
	}
	if fallback == nil {
		return nil, errors.New("fallback backend is required")
	}

	client := &Client{
		primary:  primary,
		fallback: fallback,
		logger:   appLog.Logger.Named("search_client"),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Search validates params, executes the primary backend, and on failure
// classifies the error and applies the fallback policy. On success the raw
// records are mapped to the public shape with positions 1..N.
func (c *Client) Search(ctx context.Context, params Params) ([]SearchResultItem, error) {
	params = params.withDefaults()

	normalized, err := ValidateParams(params.Query, params.MaxResults, params.SafeSearch, c.logger)
	if err != nil {
		return nil, err
	}
	params.SafeSearch = normalized

	logger := c.logger.With(zap.String("query", params.Query))

	logger.Debug("executing search",
		zap.String("backend", c.primary.Name()),
		zap.Int("max_results", params.MaxResults),
		zap.String("safesearch", params.SafeSearch),
		zap.String("region", params.Region),
	)

	raws, err := c.primary.Search(ctx, params)
	if err == nil {
		logger.Debug("search completed", zap.Int("results_count", len(raws)))
		return FormatResults(raws), nil
	}

	classified := Classify(err, params.Query, c.primary.Name())

	// Log severity follows the error category: transient network and rate
	// limit conditions are warnings, everything else is an error.
	switch classified.Code {
	case mcperr.CodeRateLimit:
		logger.Warn("rate limited", zap.String("error", classified.Message))
	case mcperr.CodeTimeout, mcperr.CodeNetwork, mcperr.CodeConnection:
		logger.Warn("network issue", zap.String("error", classified.Message))
	default:
		logger.Error("search error", zap.String("error", classified.Message))
	}

	return c.tryFallback(ctx, params, classified)
}

// tryFallback attempts exactly one retry against the fallback backend after
// a classified primary failure.
//
// Suppression rules, evaluated in order:
//  1. rate limiting is typically IP-scoped and affects all backends
//     identically, so a rate-limit failure is re-raised unchanged;
//  2. an error already attributed to a specific backend (detected by the
//     "backend" substring in the classified message, the documented
//     behavioural default) is assumed not recoverable by switching backends.
func (c *Client) tryFallback(ctx context.Context, params Params, originalErr *mcperr.Error) ([]SearchResultItem, error) {
	logger := c.logger.With(zap.String("query", params.Query))

	if originalErr.Code == mcperr.CodeRateLimit {
		logger.Warn("skipping fallback search due to rate limiting",
			zap.String("error", originalErr.Message))
		return nil, originalErr
	}

	if strings.Contains(strings.ToLower(originalErr.Message), "backend") {
		logger.Warn("skipping fallback, original error was backend-specific")
		return nil, originalErr
	}

	logger.Info("primary search failed, retrying with fallback backend",
		zap.String("fallback", c.fallback.Name()))

	raws, err := c.fallback.Search(ctx, params)
	if err == nil {
		logger.Debug("fallback search succeeded", zap.Int("results_count", len(raws)))
		return FormatResults(raws), nil
	}

	fallbackErr := Classify(err, params.Query, c.fallback.Name())
	logger.Warn("fallback search also failed",
		zap.String("fallback_error", fallbackErr.Message),
		zap.String("original_error", originalErr.Message),
	)

	return nil, mcperr.NewNetworkError(
		fmt.Sprintf("Search failed with both backends. Primary (%s): %s. Fallback (%s): %s",
			c.primary.Name(), originalErr.Message, c.fallback.Name(), fallbackErr.Message),
		mcperr.WithGuidance("Both search backends failed. This could indicate:\n"+
			"  • DuckDuckGo may be experiencing widespread issues\n"+
			"  • Your network connection may be unstable\n"+
			"  • You may be rate limited across backends\n"+
			"Please try:\n"+
			"  • Waiting a few minutes before trying again\n"+
			"  • Checking your internet connection\n"+
			"  • Simplifying your search query"),
		mcperr.WithCause(err),
	)
}
