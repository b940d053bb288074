package fetch

import (
	"context"
	"crypto/x509"
	"net"
	"net/http"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

// fakeNetError satisfies net.Error with a controllable timeout flag.
type fakeNetError struct {
	msg     string
	timeout bool
}

func (e *fakeNetError) Error() string   { return e.msg }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

func TestClassifyTransportErrorTimeout(t *testing.T) {
	got := ClassifyTransportError(context.DeadlineExceeded, "https://example.com")
	require.Equal(t, mcperr.CodeTimeout, got.Code)
	require.Contains(t, got.Message, "for URL: https://example.com")

	got = ClassifyTransportError(&fakeNetError{msg: "i/o timeout", timeout: true}, "https://example.com")
	require.Equal(t, mcperr.CodeTimeout, got.Code)
}

func TestClassifyTransportErrorCertificateBeforeConnection(t *testing.T) {
	// A certificate failure wrapped in an OpError matches both the TLS and
	// the connection tags; the TLS classification must win.
	err := &net.OpError{Op: "read", Net: "tcp", Err: x509.UnknownAuthorityError{}}

	got := ClassifyTransportError(err, "https://bad-cert.example.com")
	require.Equal(t, mcperr.CodeNetwork, got.Code)
	require.Contains(t, got.Message, "SSL/TLS error")
	require.NotContains(t, got.Message, "Connection failed")
}

func TestClassifyTransportErrorDNS(t *testing.T) {
	got := ClassifyTransportError(
		&net.DNSError{Err: "no such host", Name: "nope.example.com"},
		"https://nope.example.com")
	require.Equal(t, mcperr.CodeDNS, got.Code)
	require.Contains(t, got.Message, "Could not resolve hostname")

	// resolver failures recognised by message when the DNSError type was lost
	got = ClassifyTransportError(
		&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("failed to resolve host")},
		"https://nope.example.com")
	require.Equal(t, mcperr.CodeDNS, got.Code)
}

func TestClassifyTransportErrorConnection(t *testing.T) {
	err := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connect: connection refused")}

	got := ClassifyTransportError(err, "https://example.com")
	require.Equal(t, mcperr.CodeConnection, got.Code)
	require.Contains(t, got.Message, "Connection failed")
}

func TestClassifyTransportErrorDefault(t *testing.T) {
	got := ClassifyTransportError(errors.New("something odd happened"), "https://example.com")
	require.Equal(t, mcperr.CodeNetwork, got.Code)
	require.Contains(t, got.Message, "something odd happened")
}

func TestClassifyTransportErrorIdempotent(t *testing.T) {
	first := ClassifyTransportError(errors.New("boom"), "https://example.com")
	second := ClassifyTransportError(first, "https://other.example.com")
	require.Same(t, first, second)
}

func TestClassifyStatusRateLimit(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "60")

	got := ClassifyStatus(429, header, "https://example.com")
	require.Equal(t, mcperr.CodeRateLimit, got.Code)
	require.Equal(t, 429, got.StatusCode)
	require.NotNil(t, got.RetryAfter)
	require.Equal(t, 60, *got.RetryAfter)
}

func TestClassifyStatusRateLimitNonIntegerRetryAfter(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "Wed, 21 Oct 2026 07:28:00 GMT")

	got := ClassifyStatus(429, header, "https://example.com")
	require.Equal(t, mcperr.CodeRateLimit, got.Code)
	require.Nil(t, got.RetryAfter, "non-integer Retry-After is ignored")

	got = ClassifyStatus(429, nil, "https://example.com")
	require.Nil(t, got.RetryAfter)
}

func TestClassifyStatusTable(t *testing.T) {
	cases := []struct {
		status      int
		wantCode    string
		wantMessage string
	}{
		{503, mcperr.CodeServiceUnavailable, "Service unavailable"},
		{404, mcperr.CodeHTTP, "Not found"},
		{403, mcperr.CodeHTTP, "Access forbidden"},
		{500, mcperr.CodeHTTP, "Server error"},
		{502, mcperr.CodeHTTP, "Server error"},
		{418, mcperr.CodeHTTP, "HTTP error"},
	}

	for _, tc := range cases {
		got := ClassifyStatus(tc.status, nil, "https://example.com")
		require.Equal(t, tc.wantCode, got.Code, "status %d", tc.status)
		require.Equal(t, tc.status, got.StatusCode, "status %d", tc.status)
		require.Contains(t, got.Message, tc.wantMessage, "status %d", tc.status)
		require.NotEmpty(t, got.Guidance(), "status %d", tc.status)
	}
}
