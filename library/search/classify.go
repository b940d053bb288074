package search

import (
	"fmt"
	"strings"

	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

// Keyword sets for the ordered first-match-wins classification scan.
// Earlier sets win on overlap, so the order of the checks in Classify is a
// behavioural contract, not a style choice.
var (
	rateLimitIndicators = []string{
		"rate", "ratelimit", "too many requests", "429", "blocked",
		"temporarily blocked", "please wait", "try again later",
		"exceeded", "throttle",
	}
	timeoutIndicators = []string{
		"timeout", "timed out", "time out", "request timeout",
	}
	networkIndicators = []string{
		"connection", "network", "connect failed", "unable to connect",
		"no internet", "dns", "resolve", "unreachable", "refused",
	}
	serviceIndicators = []string{
		"503", "service unavailable", "unavailable", "maintenance",
		"temporarily", "down",
	}
	backendIndicators = []string{
		"backend", "search backend", "api error",
	}
	emptyIndicators = []string{
		"no results", "empty", "nothing found",
	}
)

func containsAny(s string, indicators []string) bool {
	for _, indicator := range indicators {
		if strings.Contains(s, indicator) {
			return true
		}
	}
	return false
}

// Classify maps a raw search backend failure onto the error taxonomy by
// scanning the lower-cased error text against curated keyword sets. It is
// total: any input yields a concrete taxonomy member, and already-classified
// errors pass through unchanged. query and backend are used only for message
// interpolation.
func Classify(err error, query, backend string) *mcperr.Error {
	if me, ok := mcperr.From(err); ok {
		return me
	}

	errStr := strings.ToLower(err.Error())

	var queryContext string
	if query != "" {
		queryContext = fmt.Sprintf(" for query: '%s'", query)
	}
	var backendContext string
	if backend != "" {
		backendContext = fmt.Sprintf(" using backend '%s'", backend)
	}

	if containsAny(errStr, rateLimitIndicators) {
		return mcperr.NewRateLimitError(
			fmt.Sprintf("Rate limited%s. DuckDuckGo has temporarily blocked requests.", queryContext),
			mcperr.WithGuidance("DuckDuckGo has rate limited your requests. To resolve this:\n"+
				"  • Wait 30-60 seconds before trying again\n"+
				"  • Reduce the frequency of search requests\n"+
				"  • Consider adding delays between consecutive searches\n"+
				"  • If using automated scripts, implement backoff strategies\n"+
				"The rate limit typically resets after a brief waiting period."),
			mcperr.WithCause(err),
		)
	}

	if containsAny(errStr, timeoutIndicators) {
		return mcperr.NewTimeoutError(
			fmt.Sprintf("Search timed out%s%s. The search took too long to complete.",
				queryContext, backendContext),
			mcperr.WithGuidance("The search request timed out. This could be due to:\n"+
				"  • Slow network connection\n"+
				"  • DuckDuckGo servers under heavy load\n"+
				"  • Complex or broad search query\n"+
				"Try:\n"+
				"  • Simplifying your search query\n"+
				"  • Reducing max_results\n"+
				"  • Waiting a moment and trying again"),
			mcperr.WithCause(err),
		)
	}

	if containsAny(errStr, networkIndicators) {
		return mcperr.NewNetworkError(
			fmt.Sprintf("Network error%s. Unable to connect to DuckDuckGo.", queryContext),
			mcperr.WithGuidance("Could not connect to DuckDuckGo. Please check:\n"+
				"  • Your internet connection is working\n"+
				"  • DuckDuckGo is accessible from your network\n"+
				"  • No firewall or proxy is blocking the connection\n"+
				"Try again in a few moments."),
			mcperr.WithCause(err),
		)
	}

	if containsAny(errStr, serviceIndicators) {
		return mcperr.NewServiceUnavailableError(
			fmt.Sprintf("Service unavailable%s. DuckDuckGo is temporarily unavailable.", queryContext),
			mcperr.WithGuidance("DuckDuckGo is temporarily unavailable. This could mean:\n"+
				"  • The service is undergoing maintenance\n"+
				"  • There's a temporary outage\n"+
				"  • The service is experiencing high load\n"+
				"Please try again in a few minutes."),
			mcperr.WithCause(err),
		)
	}

	if containsAny(errStr, backendIndicators) {
		// The word "backend" in the message doubles as the fallback
		// suppression signal; see Client.tryFallback.
		return mcperr.NewNetworkError(
			fmt.Sprintf("Search backend error%s%s.", queryContext, backendContext),
			mcperr.WithGuidance("The search backend encountered an error. The tool will attempt "+
				"to use a fallback backend automatically.\n"+
				"If the error persists:\n"+
				"  • The query may be too complex\n"+
				"  • DuckDuckGo may be experiencing issues\n"+
				"  • Try rephrasing your search query"),
			mcperr.WithBackendScope(),
			mcperr.WithCause(err),
		)
	}

	if containsAny(errStr, emptyIndicators) {
		return mcperr.NewNetworkError(
			fmt.Sprintf("No results returned%s.", queryContext),
			mcperr.WithGuidance("The search returned no results. This could mean:\n"+
				"  • The query is too specific or unusual\n"+
				"  • DuckDuckGo couldn't find matching content\n"+
				"  • There may be a temporary issue\n"+
				"Try:\n"+
				"  • Rephrasing your search query\n"+
				"  • Using broader search terms\n"+
				"  • Checking spelling"),
			mcperr.WithCause(err),
		)
	}

	return mcperr.NewNetworkError(
		fmt.Sprintf("Search error%s%s: %v", queryContext, backendContext, err),
		mcperr.WithGuidance("An unexpected search error occurred. Please:\n"+
			"  • Check your internet connection\n"+
			"  • Try a different search query\n"+
			"  • Wait a moment and try again\n"+
			"If the problem persists, DuckDuckGo may be experiencing issues."),
		mcperr.WithCause(err),
	)
}
