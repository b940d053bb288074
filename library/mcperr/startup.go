package mcperr

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ClassifyStartupError maps a server startup failure onto the taxonomy.
// Unlike request-lifecycle classification this only runs once per process,
// when `serve` fails to come up. Total: any input yields a taxonomy member,
// already-classified errors pass through unchanged.
func ClassifyStartupError(err error, addr string) *Error {
	if me, ok := From(err); ok {
		return me
	}

	errStr := strings.ToLower(err.Error())
	port := portFromAddr(addr)

	switch {
	case strings.Contains(errStr, "address already in use") ||
		strings.Contains(errStr, "only one usage of each socket address"):
		return NewPortBindingError(
			fmt.Sprintf("Cannot start server: port %d is already in use.", port),
			port,
			WithGuidance(fmt.Sprintf("Another process is already listening on port %d.\n"+
				"  • Stop the other process, or\n"+
				"  • Start the server with a different --listen address\n"+
				"  • Use `lsof -i :%d` to find the conflicting process", port, port)),
			WithCause(err),
		)

	case strings.Contains(errStr, "permission denied"):
		return NewPortBindingError(
			fmt.Sprintf("Cannot start server: permission denied binding port %d.", port),
			port,
			WithGuidance("Binding to ports below 1024 requires elevated privileges.\n"+
				"  • Use a port number above 1024, or\n"+
				"  • Run the server with the required privileges"),
			WithCause(err),
		)

	case strings.Contains(errStr, "config") || strings.Contains(errStr, "setting"):
		return NewConfigurationError(
			fmt.Sprintf("Cannot start server: %v", err),
			WithCause(err),
		)

	default:
		return NewServiceError(
			fmt.Sprintf("Cannot start server: %v", err),
			WithCause(err),
		)
	}
}

func portFromAddr(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0
	}
	return port
}
