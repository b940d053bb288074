package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/Laisky/errors/v2"

	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

// dnsIndicators recognises resolver failures by message when the error does
// not carry a *net.DNSError, for example when it crossed a wrapping layer
// that flattened the type.
var dnsIndicators = []string{
	"nodename nor servname",
	"name or service not known",
	"getaddrinfo failed",
	"failed to resolve",
	"dns",
	"temporary failure in name resolution",
}

// ClassifyTransportError maps an HTTP transport failure onto the taxonomy
// using ordered tag matching over the client's closed error set. The TLS
// check MUST run before the generic connection check: a certificate failure
// surfaces as a connection-level error, and reordering would silently
// reclassify it. Total: any input yields a taxonomy member, and
// already-classified errors pass through unchanged.
func ClassifyTransportError(err error, url string) *mcperr.Error {
	if me, ok := mcperr.From(err); ok {
		return me
	}

	var urlContext string
	if url != "" {
		urlContext = fmt.Sprintf(" for URL: %s", url)
	}

	if isTimeout(err) {
		return mcperr.NewTimeoutError(
			fmt.Sprintf("Request timed out%s. The server took too long to respond.", urlContext),
			mcperr.WithCause(err),
		)
	}

	if isCertificateError(err) {
		return mcperr.NewNetworkError(
			fmt.Sprintf("SSL/TLS error%s. Could not establish a secure connection.", urlContext),
			mcperr.WithGuidance("There was a problem with the secure connection. This could mean:\n"+
				"  • The server's SSL certificate is invalid or expired\n"+
				"  • There's a certificate chain issue\n"+
				"  • A proxy or firewall is interfering with the connection\n"+
				"Verify the URL uses a valid SSL certificate."),
			mcperr.WithCause(err),
		)
	}

	if isConnectionError(err) {
		if isDNSError(err) {
			return mcperr.NewDNSError(
				fmt.Sprintf("Could not resolve hostname%s. The domain name could not be found.", urlContext),
				mcperr.WithCause(err),
			)
		}
		return mcperr.NewConnectionError(
			fmt.Sprintf("Connection failed%s. Unable to establish a connection to the server.", urlContext),
			mcperr.WithCause(err),
		)
	}

	return mcperr.NewNetworkError(
		fmt.Sprintf("Network error%s: %v", urlContext, err),
		mcperr.WithGuidance("An unexpected network error occurred. Please:\n"+
			"  • Check your internet connection\n"+
			"  • Verify the URL is correct\n"+
			"  • Try again in a few moments"),
		mcperr.WithCause(err),
	)
}

// ClassifyStatus maps a non-success HTTP status onto the taxonomy. A 429
// response with a parseable integer Retry-After header records the delay;
// a non-integer header is ignored without error.
func ClassifyStatus(status int, header http.Header, url string) *mcperr.Error {
	var urlContext string
	if url != "" {
		urlContext = fmt.Sprintf(" for URL: %s", url)
	}

	switch {
	case status == http.StatusTooManyRequests:
		opts := []mcperr.Option{mcperr.WithStatusCode(status)}
		if retryAfter, ok := parseRetryAfter(header); ok {
			opts = append(opts, mcperr.WithRetryAfter(retryAfter))
		}
		return mcperr.NewRateLimitError(
			fmt.Sprintf("Rate limited%s. Too many requests to the service.", urlContext),
			opts...,
		)

	case status == http.StatusServiceUnavailable:
		return mcperr.NewServiceUnavailableError(
			fmt.Sprintf("Service unavailable%s. The server is temporarily unavailable.", urlContext),
			mcperr.WithStatusCode(status),
		)

	case status == http.StatusNotFound:
		return mcperr.NewHTTPError(
			fmt.Sprintf("Not found%s. The requested resource does not exist.", urlContext),
			status,
			mcperr.WithGuidance("The URL may be incorrect or the page may have been removed.\n"+
				"  • Verify the URL is correct\n"+
				"  • Check if the page has moved to a new location\n"+
				"  • Ensure the resource still exists"),
		)

	case status == http.StatusForbidden:
		return mcperr.NewHTTPError(
			fmt.Sprintf("Access forbidden%s. You don't have permission to access this resource.", urlContext),
			status,
			mcperr.WithGuidance("The server refused to grant access. This could mean:\n"+
				"  • The resource requires authentication\n"+
				"  • Your IP may be blocked\n"+
				"  • The site restricts automated access\n"+
				"Try accessing the URL directly in a browser to verify."),
		)

	case status >= 500 && status < 600:
		return mcperr.NewHTTPError(
			fmt.Sprintf("Server error%s. The server encountered an internal error.", urlContext),
			status,
			mcperr.WithGuidance("The server experienced an error while processing the request.\n"+
				"  • Wait a few moments and try again\n"+
				"  • The issue is on the server side, not your request\n"+
				"  • Check if the service has a status page for outage information"),
		)

	default:
		return mcperr.NewHTTPError(
			fmt.Sprintf("HTTP error%s: %d", urlContext, status),
			status,
		)
	}
}

func parseRetryAfter(header http.Header) (int, bool) {
	if header == nil {
		return 0, false
	}
	value := header.Get("Retry-After")
	if value == "" {
		return 0, false
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return seconds, true
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isCertificateError recognises the TLS handshake and certificate
// verification failure tags.
func isCertificateError(err error) bool {
	var (
		certVerifyErr  *tls.CertificateVerificationError
		recordErr      tls.RecordHeaderError
		unknownAuthErr x509.UnknownAuthorityError
		hostnameErr    x509.HostnameError
		invalidCertErr x509.CertificateInvalidError
	)
	return errors.As(err, &certVerifyErr) ||
		errors.As(err, &recordErr) ||
		errors.As(err, &unknownAuthErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidCertErr)
}

func isConnectionError(err error) bool {
	var (
		dnsErr *net.DNSError
		opErr  *net.OpError
	)
	return errors.As(err, &dnsErr) || errors.As(err, &opErr)
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	for _, indicator := range dnsIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}
