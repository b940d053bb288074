package search

import (
	"context"
	"time"
)

// Backend identifiers. The fallback policy always retries against
// BackendBrave after a retry-eligible BackendDuckDuckGo failure.
const (
	BackendDuckDuckGo = "duckduckgo"
	BackendBrave      = "brave"
)

const (
	// DefaultRegion requests unlocalised results.
	DefaultRegion = "wt-wt"
	// DefaultSafeSearch is the value unrecognised safesearch inputs are
	// normalised to.
	DefaultSafeSearch = "moderate"
	// DefaultMaxResults caps the result count when the caller omits it.
	DefaultMaxResults = 5
	// DefaultTimeout bounds a single backend request.
	DefaultTimeout = 15 * time.Second
)

// Params carries the caller-supplied search arguments after validation.
type Params struct {
	Query      string
	Region     string
	SafeSearch string
	MaxResults int
	Timeout    time.Duration
}

// withDefaults fills the zero-valued fields. Query is left untouched since
// an empty query is a validation failure, not a defaultable value.
func (p Params) withDefaults() Params {
	if p.Region == "" {
		p.Region = DefaultRegion
	}
	if p.SafeSearch == "" {
		p.SafeSearch = DefaultSafeSearch
	}
	if p.MaxResults == 0 {
		p.MaxResults = DefaultMaxResults
	}
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	return p
}

// Backend is a single named routing target within the search provider.
type Backend interface {
	// Name returns the backend identifier used in error messages and logs.
	Name() string
	// Search executes the query and returns raw upstream records.
	Search(ctx context.Context, params Params) ([]RawResult, error)
}
