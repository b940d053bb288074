package search

// RawResult captures a single record as returned by an upstream search
// backend. The field names mirror the upstream wire shape (href/body), not
// the public result shape.
type RawResult struct {
	Title string `json:"title"`
	Href  string `json:"href"`
	Body  string `json:"body"`
}

// SearchResultItem is the public result shape exposed by the search tool and
// the CLI. Position is the caller-assigned 1-based rank.
type SearchResultItem struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
}
