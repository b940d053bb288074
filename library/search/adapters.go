package search

import (
	"context"

	"github.com/Laisky/errors/v2"

	"github.com/Laisky/duckduckgo-mcp/library/search/brave"
	"github.com/Laisky/duckduckgo-mcp/library/search/duckduckgo"
)

// DuckDuckGoAdapter exposes the DuckDuckGo engine as a Backend.
type DuckDuckGoAdapter struct {
	engine *duckduckgo.Engine
}

// NewDuckDuckGoAdapter wraps the provided engine so that it satisfies the
// Backend interface. It returns an error when the input engine is nil.
func NewDuckDuckGoAdapter(engine *duckduckgo.Engine) (*DuckDuckGoAdapter, error) {
	if engine == nil {
		return nil, errors.New("duckduckgo engine cannot be nil")
	}
	return &DuckDuckGoAdapter{engine: engine}, nil
}

// Name returns the fixed backend identifier.
func (a *DuckDuckGoAdapter) Name() string {
	return BackendDuckDuckGo
}

// Search executes the underlying engine and converts its records into the
// shared raw shape.
func (a *DuckDuckGoAdapter) Search(ctx context.Context, params Params) ([]RawResult, error) {
	results, err := a.engine.Search(ctx, duckduckgo.Query{
		Text:       params.Query,
		Region:     params.Region,
		SafeSearch: params.SafeSearch,
		MaxResults: params.MaxResults,
		Timeout:    params.Timeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "duckduckgo search failed")
	}

	raws := make([]RawResult, 0, len(results))
	for _, result := range results {
		raws = append(raws, RawResult{
			Title: result.Title,
			Href:  result.URL,
			Body:  result.Description,
		})
	}
	return raws, nil
}

// BraveAdapter exposes the Brave engine as a Backend.
type BraveAdapter struct {
	engine *brave.Engine
}

// NewBraveAdapter wraps the provided engine so that it satisfies the Backend
// interface. It returns an error when the input engine is nil.
func NewBraveAdapter(engine *brave.Engine) (*BraveAdapter, error) {
	if engine == nil {
		return nil, errors.New("brave engine cannot be nil")
	}
	return &BraveAdapter{engine: engine}, nil
}

// Name returns the fixed backend identifier.
func (a *BraveAdapter) Name() string {
	return BackendBrave
}

// Search executes the underlying engine and converts its records into the
// shared raw shape.
func (a *BraveAdapter) Search(ctx context.Context, params Params) ([]RawResult, error) {
	results, err := a.engine.Search(ctx, brave.Query{
		Text:       params.Query,
		Region:     params.Region,
		SafeSearch: params.SafeSearch,
		MaxResults: params.MaxResults,
		Timeout:    params.Timeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "brave search failed")
	}

	raws := make([]RawResult, 0, len(results))
	for _, result := range results {
		raws = append(raws, RawResult{
			Title: result.Title,
			Href:  result.URL,
			Body:  result.Description,
		})
	}
	return raws, nil
}
