package cmd

import (
	gconfig "github.com/Laisky/go-config/v2"

	"github.com/Laisky/duckduckgo-mcp/library/fetch"
	"github.com/Laisky/duckduckgo-mcp/library/search"
	"github.com/Laisky/duckduckgo-mcp/library/search/brave"
	"github.com/Laisky/duckduckgo-mcp/library/search/duckduckgo"
)

// newSearchClient assembles the primary and fallback backends from the
// shared configuration. Empty endpoints select the public APIs.
func newSearchClient() (*search.Client, error) {
	primary, err := search.NewDuckDuckGoAdapter(duckduckgo.NewEngine(
		gconfig.Shared.GetString("settings.search.duckduckgo.endpoint"),
	))
	if err != nil {
		return nil, err
	}

	fallback, err := search.NewBraveAdapter(brave.NewEngine(
		gconfig.Shared.GetString("settings.search.brave.endpoint"),
		gconfig.Shared.GetString("settings.search.brave.api_key"),
	))
	if err != nil {
		return nil, err
	}

	return search.NewClient(primary, fallback)
}

func newFetchClient() *fetch.Client {
	return fetch.NewClient(gconfig.Shared.GetString("settings.fetch.jina.endpoint"))
}
