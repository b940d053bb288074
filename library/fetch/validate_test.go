package fetch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

func TestValidateURLAccepts(t *testing.T) {
	for _, url := range []string{
		"https://example.com",
		"http://example.com",
		"https://www.example.com/page?a=1#frag",
		"http://localhost:8080",
		"  https://example.com  ",
	} {
		require.NoError(t, ValidateURL(url), "url %q", url)
	}
}

func TestValidateURLRejects(t *testing.T) {
	cases := []struct {
		name        string
		url         string
		wantMessage string
	}{
		{"empty", "", "non-empty"},
		{"whitespace only", "   ", "whitespace"},
		{"contains space", "https://example.com/some page", "spaces"},
		{"missing scheme", "example.com", "missing the scheme"},
		{"ftp scheme", "ftp://example.com", "Unsupported URL scheme"},
		{"file scheme", "file:///etc/passwd", "Unsupported URL scheme"},
		{"missing host", "https://", "missing the domain"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateURL(tc.url)
			require.Error(t, err)
			me, ok := mcperr.From(err)
			require.True(t, ok)
			require.Equal(t, mcperr.CodeInvalidURL, me.Code)
			require.Contains(t, me.Message, tc.wantMessage)
			require.NotEmpty(t, me.Guidance())
		})
	}
}
