package search

import (
	"fmt"
	"strings"

	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

var validSafeSearch = []string{"on", "moderate", "off"}

// ValidateParams checks query and maxResults, hard-failing on either, and
// normalises safesearch. An unrecognised safesearch value is not an error:
// it degrades to "moderate" with a warning log so enum drift from clients
// never aborts a call.
func ValidateParams(query string, maxResults int, safesearch string, logger logSDK.Logger) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", mcperr.NewValidationError(
			"Search query is required and must be a non-empty string.",
			mcperr.WithGuidance("Please provide a valid search query:\n"+
				"  • The query must be a text string\n"+
				"  • The query cannot be empty\n"+
				"Example: 'python web scraping tutorial'"),
		)
	}

	if maxResults <= 0 {
		return "", mcperr.NewValidationError(
			fmt.Sprintf("Invalid max_results value: %d. Must be a positive integer.", maxResults),
			mcperr.WithGuidance("The max_results parameter must be a positive integer:\n"+
				"  • Valid values: 1, 5, 10, 20, etc.\n"+
				"  • Default value is 5 if not specified\n"+
				"Example: max_results=10"),
		)
	}

	for _, valid := range validSafeSearch {
		if safesearch == valid {
			return safesearch, nil
		}
	}

	if logger != nil {
		logger.Warn("invalid safesearch value, using moderate",
			zap.String("safesearch", safesearch))
	}
	return DefaultSafeSearch, nil
}

// Output formats accepted at the public search boundary.
const (
	OutputFormatJSON = "json"
	OutputFormatText = "text"
)

// ValidateOutputFormat normalises the output format and hard-fails on
// unrecognised values. Unlike safesearch there is no soft correction here;
// the asymmetry is preserved intentionally.
func ValidateOutputFormat(outputFormat string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(outputFormat))
	if normalized == "" {
		return OutputFormatJSON, nil
	}
	if normalized != OutputFormatJSON && normalized != OutputFormatText {
		return "", mcperr.NewValidationError(
			fmt.Sprintf("Invalid output_format: '%s'. output_format must be 'json' or 'text'.", outputFormat),
			mcperr.WithGuidance(fmt.Sprintf("The 'output_format' parameter accepts two values:\n"+
				"  • 'json' (default) - Returns results as a list of records\n"+
				"  • 'text' - Returns results as LLM-friendly formatted text\n"+
				"You provided: '%s'", outputFormat)),
		)
	}
	return normalized, nil
}
