package fetch

import (
	"fmt"
	neturl "net/url"
	"strings"

	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

// ValidateURL checks that the URL is non-empty, free of spaces, uses the
// http or https scheme, and names a host. Each failure mode carries its own
// guidance since they come from distinct caller mistakes.
func ValidateURL(url string) error {
	if url == "" {
		return mcperr.NewInvalidURLError(
			"URL must be a non-empty string.",
			url,
			mcperr.WithGuidance("Please provide a valid URL as a string. For example:\n"+
				"  • https://example.com\n"+
				"  • https://www.example.com/page"),
		)
	}

	stripped := strings.TrimSpace(url)
	if stripped == "" {
		return mcperr.NewInvalidURLError(
			"URL cannot be empty or contain only whitespace.",
			url,
			mcperr.WithGuidance("Please provide a valid URL. For example:\n"+
				"  • https://example.com\n"+
				"  • https://www.example.com/page"),
		)
	}

	if strings.Contains(stripped, " ") {
		return mcperr.NewInvalidURLError(
			fmt.Sprintf("URL contains spaces: '%s'", stripped),
			stripped,
			mcperr.WithGuidance("URLs cannot contain spaces. If the URL has spaces, try:\n"+
				"  • Replacing spaces with %20 (URL encoding)\n"+
				"  • Removing the spaces entirely\n"+
				"  • Checking if you copied the full URL correctly"),
		)
	}

	parsed, err := neturl.Parse(stripped)
	if err != nil {
		return mcperr.NewInvalidURLError(
			fmt.Sprintf("URL could not be parsed: '%s'", stripped),
			stripped,
			mcperr.WithCause(err),
		)
	}

	if parsed.Scheme == "" {
		return mcperr.NewInvalidURLError(
			fmt.Sprintf("URL is missing the scheme (http:// or https://): '%s'", stripped),
			stripped,
			mcperr.WithGuidance(fmt.Sprintf("URLs must start with http:// or https://. Did you mean:\n"+
				"  • https://%s\n"+
				"Example valid URLs:\n"+
				"  • https://example.com\n"+
				"  • http://localhost:8080", stripped)),
		)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return mcperr.NewInvalidURLError(
			fmt.Sprintf("Unsupported URL scheme: '%s'. Only HTTP and HTTPS are supported.", parsed.Scheme),
			stripped,
			mcperr.WithGuidance(fmt.Sprintf("The scheme '%s://' is not supported. Please use:\n"+
				"  • https:// (recommended for secure connections)\n"+
				"  • http:// (for non-secure connections)\n"+
				"Example: https://example.com", parsed.Scheme)),
		)
	}

	if parsed.Host == "" {
		return mcperr.NewInvalidURLError(
			fmt.Sprintf("URL is missing the domain name: '%s'", stripped),
			stripped,
			mcperr.WithGuidance("The URL must include a valid domain name after the scheme. For example:\n"+
				"  • https://example.com (domain is 'example.com')\n"+
				"  • https://www.example.com/page (domain is 'www.example.com')\n"+
				"Make sure the URL follows this format: https://domain.com/path"),
		)
	}

	return nil
}
