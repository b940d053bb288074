package search

import (
	"fmt"
	"strings"
)

// FormatResult maps a raw upstream record into the public result shape.
// Upstream calls the link "href" and the snippet "body"; missing fields
// become empty strings. The caller assigns the 1-based position.
func FormatResult(raw RawResult, position int) SearchResultItem {
	return SearchResultItem{
		Title:    raw.Title,
		URL:      raw.Href,
		Snippet:  raw.Body,
		Position: position,
	}
}

// FormatResults maps every raw record, assigning positions 1..N in upstream
// order. No re-sorting, no dedup.
func FormatResults(raws []RawResult) []SearchResultItem {
	items := make([]SearchResultItem, 0, len(raws))
	for i, raw := range raws {
		items = append(items, FormatResult(raw, i+1))
	}
	return items
}

// FormatResultsAsText renders results as an LLM-friendly numbered listing.
// An empty result set yields an explanatory message naming the query, never
// an error.
func FormatResultsAsText(results []SearchResultItem, query string) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for '%s'. "+
			"This could be due to DuckDuckGo rate limiting, the query returning no matches, "+
			"or network issues. Try rephrasing your search or try again in a few minutes.", query)
	}

	lines := []string{fmt.Sprintf("Found %d search results:\n", len(results))}

	for _, result := range results {
		title := result.Title
		if title == "" {
			title = "No title"
		}
		url := result.URL
		if url == "" {
			url = "No URL"
		}
		snippet := result.Snippet
		if snippet == "" {
			snippet = "No summary available"
		}

		lines = append(lines,
			fmt.Sprintf("%d. %s", result.Position, title),
			fmt.Sprintf("   URL: %s", url),
			fmt.Sprintf("   Summary: %s", snippet),
			"",
		)
	}

	return strings.Join(lines, "\n")
}
