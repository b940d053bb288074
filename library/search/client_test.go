package search

import (
	"context"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

// stubBackend returns canned results or a canned error and counts calls.
type stubBackend struct {
	name    string
	results []RawResult
	err     error
	calls   int
}

func (b *stubBackend) Name() string { return b.name }

func (b *stubBackend) Search(ctx context.Context, params Params) ([]RawResult, error) {
	b.calls++
	if b.err != nil {
		return nil, b.err
	}
	return b.results, nil
}

func TestNewClientRequiresBackends(t *testing.T) {
	stub := &stubBackend{name: "stub"}

	_, err := NewClient(nil, stub)
	require.Error(t, err)

	_, err = NewClient(stub, nil)
	require.Error(t, err)

	client, err := NewClient(stub, stub)
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestSearchPrimarySuccess(t *testing.T) {
	primary := &stubBackend{name: BackendDuckDuckGo, results: []RawResult{
		{Title: "Python Official Website", Href: "https://python.org", Body: "the language"},
		{Title: "Go", Href: "https://go.dev", Body: "another language"},
	}}
	fallback := &stubBackend{name: BackendBrave}

	client, err := NewClient(primary, fallback)
	require.NoError(t, err)

	items, err := client.Search(context.Background(), Params{Query: "languages"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 1, items[0].Position)
	require.Equal(t, 2, items[1].Position)
	require.Equal(t, "https://python.org", items[0].URL)
	require.Equal(t, 1, primary.calls)
	require.Equal(t, 0, fallback.calls, "fallback must not run on success")
}

func TestSearchValidationShortCircuits(t *testing.T) {
	primary := &stubBackend{name: BackendDuckDuckGo}
	fallback := &stubBackend{name: BackendBrave}
	client, err := NewClient(primary, fallback)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), Params{Query: "   "})
	require.Error(t, err)
	me, ok := mcperr.From(err)
	require.True(t, ok)
	require.Equal(t, mcperr.CodeValidation, me.Code)
	require.Equal(t, 0, primary.calls)
	require.Equal(t, 0, fallback.calls)
}

func TestSearchRateLimitSuppressesFallback(t *testing.T) {
	primary := &stubBackend{name: BackendDuckDuckGo, err: errors.New("429 too many requests")}
	fallback := &stubBackend{name: BackendBrave, results: []RawResult{{Title: "x"}}}

	client, err := NewClient(primary, fallback)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), Params{Query: "q"})
	require.Error(t, err)
	me, ok := mcperr.From(err)
	require.True(t, ok)
	require.Equal(t, mcperr.CodeRateLimit, me.Code)
	require.Equal(t, 0, fallback.calls, "rate limiting is IP-scoped, fallback must be skipped")
}

func TestSearchBackendScopedErrorSuppressesFallback(t *testing.T) {
	primary := &stubBackend{name: BackendDuckDuckGo, err: errors.New("search backend exploded")}
	fallback := &stubBackend{name: BackendBrave, results: []RawResult{{Title: "x"}}}

	client, err := NewClient(primary, fallback)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), Params{Query: "q"})
	require.Error(t, err)
	require.Equal(t, 0, fallback.calls)
}

func TestSearchBackendContextMessageSuppressesFallback(t *testing.T) {
	// The timeout classification interpolates "using backend '...'" into the
	// message, so the suppression substring check catches it too.
	primary := &stubBackend{name: BackendDuckDuckGo, err: errors.New("timed out")}
	fallback := &stubBackend{name: BackendBrave, results: []RawResult{{Title: "x"}}}

	client, err := NewClient(primary, fallback)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), Params{Query: "q"})
	require.Error(t, err)
	me, ok := mcperr.From(err)
	require.True(t, ok)
	require.Equal(t, mcperr.CodeTimeout, me.Code)
	require.Contains(t, me.Message, "using backend 'duckduckgo'")
	require.Equal(t, 0, fallback.calls)
}

func TestSearchFallbackRecovers(t *testing.T) {
	primary := &stubBackend{name: BackendDuckDuckGo, err: errors.New("connection refused")}
	fallback := &stubBackend{name: BackendBrave, results: []RawResult{
		{Title: "rescued", Href: "https://example.com", Body: "ok"},
	}}

	client, err := NewClient(primary, fallback)
	require.NoError(t, err)

	items, err := client.Search(context.Background(), Params{Query: "q"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 1, items[0].Position)
	require.Equal(t, "rescued", items[0].Title)
	require.Equal(t, 1, primary.calls)
	require.Equal(t, 1, fallback.calls)
}

func TestSearchBothBackendsFail(t *testing.T) {
	primary := &stubBackend{name: BackendDuckDuckGo, err: errors.New("no results for this one")}
	fallback := &stubBackend{name: BackendBrave, err: errors.New("connection refused")}

	client, err := NewClient(primary, fallback)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), Params{Query: "q"})
	require.Error(t, err)
	require.Equal(t, 1, primary.calls, "exactly one primary attempt")
	require.Equal(t, 1, fallback.calls, "exactly one fallback attempt")

	me, ok := mcperr.From(err)
	require.True(t, ok)
	require.Equal(t, mcperr.CodeNetwork, me.Code)
	require.Contains(t, me.Message, "Search failed with both backends.")
	require.Contains(t, me.Message, "Primary (duckduckgo):")
	require.Contains(t, me.Message, "Fallback (brave):")
	require.Contains(t, me.Message, "No results returned")
	require.Contains(t, me.Message, "Network error")
}

func TestSearchAppliesDefaults(t *testing.T) {
	var seen Params
	primary := &capturingBackend{name: BackendDuckDuckGo, captured: &seen}
	fallback := &stubBackend{name: BackendBrave}

	client, err := NewClient(primary, fallback)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), Params{Query: "q", SafeSearch: "bogus"})
	require.NoError(t, err)
	require.Equal(t, DefaultMaxResults, seen.MaxResults)
	require.Equal(t, DefaultRegion, seen.Region)
	require.Equal(t, DefaultSafeSearch, seen.SafeSearch, "invalid safesearch degrades to moderate")
}

type capturingBackend struct {
	name     string
	captured *Params
}

func (b *capturingBackend) Name() string { return b.name }

func (b *capturingBackend) Search(ctx context.Context, params Params) ([]RawResult, error) {
	*b.captured = params
	return nil, nil
}
