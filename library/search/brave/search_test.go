package brave

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchParsesWebResults(t *testing.T) {
	var gotQuery url.Values
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotToken = r.Header.Get("X-Subscription-Token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"web": {"results": [
				{"title": "Python", "url": "https://python.org", "description": "the language"},
				{"title": "", "url": "", "description": ""},
				{"title": "Go", "url": "https://go.dev", "description": "another one"}
			]}
		}`))
	}))
	defer server.Close()

	engine := NewEngine(server.URL, "secret-token")
	results, err := engine.Search(context.Background(), Query{
		Text:       "languages",
		Region:     "us-en",
		SafeSearch: "on",
		MaxResults: 5,
	})
	require.NoError(t, err)

	require.Equal(t, "secret-token", gotToken)
	require.Equal(t, "languages", gotQuery.Get("q"))
	require.Equal(t, "5", gotQuery.Get("count"))
	require.Equal(t, "US", gotQuery.Get("country"))
	require.Equal(t, "strict", gotQuery.Get("safesearch"))

	// blank rows are dropped
	require.Len(t, results, 2)
	require.Equal(t, "Python", results[0].Title)
	require.Equal(t, "https://go.dev", results[1].URL)
}

func TestSearchRequiresAPIKey(t *testing.T) {
	_, err := NewEngine("", "  ").Search(context.Background(), Query{Text: "q"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "api key")
}

func TestSearchLimitsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"web": {"results": [
				{"title": "a", "url": "https://a"},
				{"title": "b", "url": "https://b"},
				{"title": "c", "url": "https://c"}
			]}
		}`))
	}))
	defer server.Close()

	results, err := NewEngine(server.URL, "k").Search(context.Background(), Query{Text: "q", MaxResults: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestSearchNon200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewEngine(server.URL, "k").Search(context.Background(), Query{Text: "q"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 401")
}

func TestCountryFromRegion(t *testing.T) {
	require.Equal(t, "US", countryFromRegion("us-en"))
	require.Equal(t, "DE", countryFromRegion("DE-de"))
	require.Equal(t, "", countryFromRegion("wt-wt"))
	require.Equal(t, "", countryFromRegion(""))
}

func TestBraveSafeSearch(t *testing.T) {
	require.Equal(t, "strict", braveSafeSearch("on"))
	require.Equal(t, "moderate", braveSafeSearch("moderate"))
	require.Equal(t, "off", braveSafeSearch("off"))
	require.Equal(t, "", braveSafeSearch("bogus"))
}
