package duckduckgo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchParsesInstantAnswer(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Heading": "Python",
			"AbstractText": "Python is a programming language.",
			"AbstractURL": "https://python.org",
			"RelatedTopics": [
				{"Text": "Django - A web framework", "FirstURL": "https://djangoproject.com"},
				{"Topics": [
					{"Text": "Flask - A micro framework", "FirstURL": "https://flask.palletsprojects.com"}
				]},
				{"Text": "no link here", "FirstURL": ""}
			]
		}`))
	}))
	defer server.Close()

	engine := NewEngine(server.URL)
	results, err := engine.Search(context.Background(), Query{
		Text:       "python",
		Region:     "us-en",
		SafeSearch: "on",
		MaxResults: 5,
	})
	require.NoError(t, err)

	require.Equal(t, "python", gotQuery.Get("q"))
	require.Equal(t, "json", gotQuery.Get("format"))
	require.Equal(t, "1", gotQuery.Get("no_html"))
	require.Equal(t, "1", gotQuery.Get("skip_disambig"))
	require.Equal(t, "us-en", gotQuery.Get("kl"))
	require.Equal(t, "1", gotQuery.Get("kp"))

	require.Len(t, results, 3)
	require.Equal(t, "Python", results[0].Title)
	require.Equal(t, "https://python.org", results[0].URL)
	require.Equal(t, "Django", results[1].Title)
	require.Equal(t, "A web framework", results[1].Description)
	require.Equal(t, "Flask", results[2].Title)
}

func TestSearchSafeSearchOff(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := NewEngine(server.URL).Search(context.Background(), Query{Text: "q", SafeSearch: "off"})
	require.NoError(t, err)
	require.Equal(t, "-1", gotQuery.Get("kp"))

	// moderate sends no kp parameter at all
	_, err = NewEngine(server.URL).Search(context.Background(), Query{Text: "q", SafeSearch: "moderate"})
	require.NoError(t, err)
	require.False(t, gotQuery.Has("kp"))
}

func TestSearchDeduplicatesAndLimits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"RelatedTopics": [
				{"Text": "A - one", "FirstURL": "https://example.com/a"},
				{"Text": "A again - duplicate", "FirstURL": "https://example.com/a"},
				{"Text": "B - two", "FirstURL": "https://example.com/b"},
				{"Text": "C - three", "FirstURL": "https://example.com/c"}
			]
		}`))
	}))
	defer server.Close()

	results, err := NewEngine(server.URL).Search(context.Background(), Query{Text: "q", MaxResults: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "https://example.com/a", results[0].URL)
	require.Equal(t, "https://example.com/b", results[1].URL)
}

func TestSearchEmptyQuery(t *testing.T) {
	_, err := NewEngine("").Search(context.Background(), Query{Text: "   "})
	require.Error(t, err)
}

func TestSearchNon200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewEngine(server.URL).Search(context.Background(), Query{Text: "q"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 429")
}

func TestSearchMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	_, err := NewEngine(server.URL).Search(context.Background(), Query{Text: "q"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unmarshal")
}

func TestSplitTopicText(t *testing.T) {
	title, desc := splitTopicText("Django - A web framework")
	require.Equal(t, "Django", title)
	require.Equal(t, "A web framework", desc)

	title, desc = splitTopicText("no separator here")
	require.Equal(t, "no separator here", title)
	require.Equal(t, "no separator here", desc)
}
