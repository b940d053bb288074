package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatResultMapsFields(t *testing.T) {
	raw := RawResult{Title: "Python Official Website", Href: "https://python.org", Body: "the language"}

	item := FormatResult(raw, 1)
	require.Equal(t, "Python Official Website", item.Title)
	require.Equal(t, "https://python.org", item.URL)
	require.Equal(t, "the language", item.Snippet)
	require.Equal(t, 1, item.Position)
}

func TestFormatResultsPositionsAreOneBased(t *testing.T) {
	raws := []RawResult{{Title: "a"}, {Title: "b"}, {Title: "c"}}

	items := FormatResults(raws)
	require.Len(t, items, 3)
	for i, item := range items {
		require.Equal(t, i+1, item.Position)
	}
}

func TestFormatResultsEmpty(t *testing.T) {
	require.Empty(t, FormatResults(nil))
	require.Empty(t, FormatResults([]RawResult{}))
}

func TestFormatResultsAsText(t *testing.T) {
	items := []SearchResultItem{
		{Title: "Python Official Website", URL: "https://python.org", Snippet: "the language", Position: 1},
		{Title: "Go", URL: "https://go.dev", Snippet: "", Position: 2},
	}

	text := FormatResultsAsText(items, "languages")
	lines := strings.Split(text, "\n")

	require.Equal(t, "Found 2 search results:", lines[0])
	require.Equal(t, "", lines[1])
	require.Equal(t, "1. Python Official Website", lines[2])
	require.Equal(t, "   URL: https://python.org", lines[3])
	require.Equal(t, "   Summary: the language", lines[4])
	require.Equal(t, "", lines[5])
	require.Equal(t, "2. Go", lines[6])
	require.Equal(t, "   Summary: No summary available", lines[8])
}

func TestFormatResultsAsTextPlaceholders(t *testing.T) {
	text := FormatResultsAsText([]SearchResultItem{{Position: 1}}, "q")
	require.Contains(t, text, "1. No title")
	require.Contains(t, text, "URL: No URL")
	require.Contains(t, text, "Summary: No summary available")
}

func TestFormatResultsAsTextEmptyNamesQuery(t *testing.T) {
	text := FormatResultsAsText(nil, "obscure gadget")
	require.Contains(t, text, "No results found for 'obscure gadget'.")
	require.Contains(t, text, "rate limiting")
}
