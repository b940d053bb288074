// Package mcperr defines the error taxonomy shared by the search and fetch
// adapters. Every failure that crosses a component boundary is represented as
// an *Error carrying a stable code, a category, and actionable guidance text.
package mcperr

import (
	"fmt"
	"strings"

	"github.com/Laisky/errors/v2"
)

// Category classifies an error for log severity and CLI guidance grouping.
type Category string

const (
	CategoryNetwork    Category = "network"
	CategoryService    Category = "service"
	CategoryValidation Category = "validation"
	CategoryContent    Category = "content"
	CategoryUnknown    Category = "unknown"
)

// Stable machine-readable error codes, one per taxonomy variant.
const (
	CodeUnknown            = "MCP_ERROR"
	CodeNetwork            = "NETWORK_ERROR"
	CodeConnection         = "CONNECTION_ERROR"
	CodeTimeout            = "TIMEOUT"
	CodeDNS                = "DNS_ERROR"
	CodeHTTP               = "HTTP_ERROR"
	CodeRateLimit          = "RATE_LIMIT"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidURL         = "INVALID_URL"
	CodeContentParsing     = "CONTENT_PARSING_ERROR"
	CodeService            = "SERVICE_ERROR"
	CodeDependencyMissing  = "DEPENDENCY_MISSING"
	CodeConfiguration      = "CONFIGURATION_ERROR"
	CodePortBinding        = "PORT_BINDING_ERROR"
)

// defaultGuidance holds the per-code fallback used when a constructor did not
// supply instance-specific guidance. Guidance is never empty.
var defaultGuidance = map[string]string{
	CodeNetwork: "Check your internet connection and try again in a few moments.",
	CodeConnection: "Unable to establish a connection to the server.\n" +
		"  • Verify the server address is correct\n" +
		"  • Check that the service is running and reachable\n" +
		"  • Ensure no firewall or proxy is blocking the connection",
	CodeTimeout: "The request timed out. This could be due to:\n" +
		"  • Slow network connection\n" +
		"  • The remote server being under heavy load\n" +
		"Try again in a moment, or simplify the request.",
	CodeDNS: "The domain name could not be resolved.\n" +
		"  • Check the hostname for typos\n" +
		"  • Verify your DNS settings are working\n" +
		"  • Try again in a few moments",
	CodeHTTP: "The server returned an error status. Verify the request and try again.",
	CodeRateLimit: "Too many requests were sent in a short period.\n" +
		"  • Wait 30-60 seconds before trying again\n" +
		"  • Reduce the frequency of requests\n" +
		"  • Implement backoff strategies in automated scripts",
	CodeServiceUnavailable: "The service is temporarily unavailable.\n" +
		"  • The service may be undergoing maintenance\n" +
		"  • There may be a temporary outage\n" +
		"Please try again in a few minutes.",
	CodeValidation:     "Check the provided parameters and try again.",
	CodeInvalidURL:     "Provide a valid URL starting with http:// or https://.",
	CodeContentParsing: "The response content could not be parsed. Try a different output format.",
	CodeService:        "The server encountered an internal error. Check the logs for details.",
	CodeDependencyMissing: "A required dependency is not available.\n" +
		"  • Verify the installation is complete\n" +
		"  • Reinstall the missing package",
	CodeConfiguration: "The configuration is invalid.\n" +
		"  • Check the settings file for syntax errors\n" +
		"  • Verify all required settings are present",
	CodePortBinding: "The server could not bind to the requested port.\n" +
		"  • Check whether another process is using the port\n" +
		"  • Choose a different port\n" +
		"  • Ensure you have permission to bind to the port",
	CodeUnknown: "Please try again or check your configuration.",
}

// Error is the single concrete taxonomy type. Variant-specific context lives
// in the optional fields; Code and Category identify the variant.
type Error struct {
	Message  string
	Code     string
	Category Category

	// StatusCode is the upstream HTTP status when known, 0 otherwise.
	StatusCode int
	// RetryAfter is the parsed Retry-After header in seconds, nil when absent.
	RetryAfter *int
	// URL is the offending URL for invalid-URL errors.
	URL string
	// ContentType hints what the content parser expected.
	ContentType string
	// PackageName identifies a missing dependency.
	PackageName string
	// Port is the port a server failed to bind.
	Port int

	guidance      string
	backendScoped bool
	cause         error
}

// Error renders the machine-readable prefix followed by the human message.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s:%s] %s", strings.ToUpper(string(e.Category)), e.Code, e.Message)
}

// Guidance returns the actionable guidance text, falling back to the
// per-code default so it is never empty.
func (e *Error) Guidance() string {
	if e.guidance != "" {
		return e.guidance
	}
	if g, ok := defaultGuidance[e.Code]; ok {
		return g
	}
	return defaultGuidance[CodeUnknown]
}

// Unwrap exposes the originating error for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// BackendScoped reports whether the error was attributed to a specific search
// backend. The fallback policy keys its suppression on the message text for
// compatibility; this tag records the same fact explicitly.
func (e *Error) BackendScoped() bool {
	return e.backendScoped
}

// From extracts an *Error from err's chain. Used to keep re-classification
// idempotent: an already-classified error is returned unchanged.
func From(err error) (*Error, bool) {
	var me *Error
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}

// Option customises an Error during construction.
type Option func(*Error)

// WithGuidance overrides the default guidance text.
func WithGuidance(guidance string) Option {
	return func(e *Error) {
		if guidance != "" {
			e.guidance = guidance
		}
	}
}

// WithCode overrides the variant's default error code.
func WithCode(code string) Option {
	return func(e *Error) {
		if code != "" {
			e.Code = code
		}
	}
}

// WithCategory overrides the variant's default category.
func WithCategory(category Category) Option {
	return func(e *Error) {
		if category != "" {
			e.Category = category
		}
	}
}

// WithStatusCode records the upstream HTTP status.
func WithStatusCode(status int) Option {
	return func(e *Error) {
		if status > 0 {
			e.StatusCode = status
		}
	}
}

// WithRetryAfter records the parsed Retry-After header in seconds.
func WithRetryAfter(seconds int) Option {
	return func(e *Error) {
		e.RetryAfter = &seconds
	}
}

// WithCause attaches the originating error for unwrapping and stack traces.
func WithCause(cause error) Option {
	return func(e *Error) {
		e.cause = cause
	}
}

// WithBackendScope tags the error as attributed to a specific search backend.
func WithBackendScope() Option {
	return func(e *Error) {
		e.backendScoped = true
	}
}

func newError(code string, category Category, message string, opts ...Option) *Error {
	e := &Error{
		Message:  message,
		Code:     code,
		Category: category,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewNetworkError constructs a generic network-family error.
func NewNetworkError(message string, opts ...Option) *Error {
	return newError(CodeNetwork, CategoryNetwork, message, opts...)
}

// NewConnectionError constructs a connection-refused variant.
func NewConnectionError(message string, opts ...Option) *Error {
	return newError(CodeConnection, CategoryNetwork, message, opts...)
}

// NewTimeoutError constructs a timeout variant.
func NewTimeoutError(message string, opts ...Option) *Error {
	return newError(CodeTimeout, CategoryNetwork, message, opts...)
}

// NewDNSError constructs a DNS-resolution-failure variant.
func NewDNSError(message string, opts ...Option) *Error {
	return newError(CodeDNS, CategoryNetwork, message, opts...)
}

// NewHTTPError constructs a generic HTTP-status variant. Pass 0 when the
// status is unknown.
func NewHTTPError(message string, status int, opts ...Option) *Error {
	e := newError(CodeHTTP, CategoryService, message, opts...)
	if e.StatusCode == 0 && status > 0 {
		e.StatusCode = status
	}
	return e
}

// NewRateLimitError constructs a rate-limit variant, status defaulted to 429.
func NewRateLimitError(message string, opts ...Option) *Error {
	e := newError(CodeRateLimit, CategoryService, message, opts...)
	if e.StatusCode == 0 {
		e.StatusCode = 429
	}
	return e
}

// NewServiceUnavailableError constructs a service-unavailable variant,
// status defaulted to 503.
func NewServiceUnavailableError(message string, opts ...Option) *Error {
	e := newError(CodeServiceUnavailable, CategoryService, message, opts...)
	if e.StatusCode == 0 {
		e.StatusCode = 503
	}
	return e
}

// NewValidationError constructs a generic validation-family error.
func NewValidationError(message string, opts ...Option) *Error {
	return newError(CodeValidation, CategoryValidation, message, opts...)
}

// NewInvalidURLError constructs an invalid-URL variant carrying the
// offending URL.
func NewInvalidURLError(message, url string, opts ...Option) *Error {
	e := newError(CodeInvalidURL, CategoryValidation, message, opts...)
	e.URL = url
	return e
}

// NewContentParsingError constructs a content-parse-failure variant with a
// content type hint.
func NewContentParsingError(message, contentType string, opts ...Option) *Error {
	e := newError(CodeContentParsing, CategoryContent, message, opts...)
	e.ContentType = contentType
	return e
}

// NewServiceError constructs a generic server-lifecycle error.
func NewServiceError(message string, opts ...Option) *Error {
	return newError(CodeService, CategoryService, message, opts...)
}

// NewDependencyMissingError constructs a missing-dependency variant.
func NewDependencyMissingError(message, packageName string, opts ...Option) *Error {
	e := newError(CodeDependencyMissing, CategoryService, message, opts...)
	e.PackageName = packageName
	return e
}

// NewConfigurationError constructs an invalid-configuration variant.
func NewConfigurationError(message string, opts ...Option) *Error {
	return newError(CodeConfiguration, CategoryService, message, opts...)
}

// NewPortBindingError constructs a port-binding-failure variant.
func NewPortBindingError(message string, port int, opts ...Option) *Error {
	e := newError(CodePortBinding, CategoryService, message, opts...)
	e.Port = port
	return e
}
