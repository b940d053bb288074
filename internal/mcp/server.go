// Package mcp wires the search and fetch tools into an MCP server exposed
// over STDIO or streamable HTTP.
package mcp

import (
	"context"
	"net/http"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/google/uuid"
	mcp "github.com/mark3labs/mcp-go/mcp"
	srv "github.com/mark3labs/mcp-go/server"

	"github.com/Laisky/duckduckgo-mcp/internal/mcp/tools"
	"github.com/Laisky/duckduckgo-mcp/library/log"
)

// Server wraps the MCP server state for the STDIO and HTTP transports.
type Server struct {
	mcpServer  *srv.MCPServer
	handler    http.Handler
	logger     logSDK.Logger
	instanceID string
}

// NewServer constructs an MCP server and registers the enabled tools. The
// search tool is additionally registered under the short "search" alias for
// clients that expect that name.
func NewServer(version string, searchTool, fetchTool tools.Tool, logger logSDK.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Logger
	}

	settings := LoadToolsSettingsFromConfig()
	instanceID := uuid.NewString()

	hooks := newMCPHooks(logger.Named("mcp_hooks").With(zap.String("instance_id", instanceID)))

	mcpServer := srv.NewMCPServer(
		"duckduckgo-mcp",
		version,
		srv.WithToolCapabilities(true),
		srv.WithInstructions("Use the duckduckgo_search tool to run web searches and the jina_fetch tool to retrieve URL content as markdown."),
		srv.WithRecovery(),
		srv.WithHooks(hooks),
	)

	s := &Server{
		mcpServer:  mcpServer,
		handler:    srv.NewStreamableHTTPServer(mcpServer),
		logger:     logger.Named("mcp"),
		instanceID: instanceID,
	}

	if settings.SearchEnabled {
		if searchTool == nil {
			return nil, errors.New("search tool is required")
		}
		mcpServer.AddTool(searchTool.Definition(), searchTool.Handle)

		alias := searchTool.Definition()
		alias.Name = tools.AliasSearchToolName
		mcpServer.AddTool(alias, searchTool.Handle)
	}

	if settings.FetchEnabled {
		if fetchTool == nil {
			return nil, errors.New("fetch tool is required")
		}
		mcpServer.AddTool(fetchTool.Definition(), fetchTool.Handle)
	}

	return s, nil
}

// Handler returns the HTTP handler that should be mounted to serve MCP traffic.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServeStdio blocks serving MCP over standard input and output.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving mcp over stdio", zap.String("instance_id", s.instanceID))
	return srv.ServeStdio(s.mcpServer)
}

func newMCPHooks(logger logSDK.Logger) *srv.Hooks {
	if logger == nil {
		return nil
	}

	hooks := &srv.Hooks{}

	hooks.AddBeforeAny(func(ctx context.Context, id any, method mcp.MCPMethod, message any) {
		fields := hookLogFields(ctx, id, method)
		if message != nil {
			fields = append(fields, zap.Any("request", message))
		}
		logger.Debug("mcp request received", fields...)
	})

	hooks.AddOnSuccess(func(ctx context.Context, id any, method mcp.MCPMethod, message any, result any) {
		logger.Info("mcp request succeeded", hookLogFields(ctx, id, method)...)
	})

	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		fields := hookLogFields(ctx, id, method)
		if message != nil {
			fields = append(fields, zap.Any("request", message))
		}
		fields = append(fields, zap.Error(err))
		logger.Error("mcp request failed", fields...)
	})

	hooks.AddOnRegisterSession(func(ctx context.Context, session srv.ClientSession) {
		logger.Info("mcp session registered", zap.String("session_id", session.SessionID()))
	})

	hooks.AddOnUnregisterSession(func(ctx context.Context, session srv.ClientSession) {
		logger.Info("mcp session unregistered", zap.String("session_id", session.SessionID()))
	})

	return hooks
}

func hookLogFields(ctx context.Context, id any, method mcp.MCPMethod) []zap.Field {
	fields := []zap.Field{
		zap.Any("request_id", id),
		zap.String("method", string(method)),
	}

	if session := srv.ClientSessionFromContext(ctx); session != nil {
		fields = append(fields, zap.String("session_id", session.SessionID()))
	}

	return fields
}
