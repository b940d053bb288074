package cmd

import (
	"net/http"

	gmw "github.com/Laisky/gin-middlewares/v7"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	mcpsrv "github.com/Laisky/duckduckgo-mcp/internal/mcp"
	"github.com/Laisky/duckduckgo-mcp/internal/mcp/tools"
	"github.com/Laisky/duckduckgo-mcp/library/log"
	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long:  `Start the MCP server over STDIO, or over streamable HTTP when --listen is set`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd.Context(), cmd)
	},
	RunE: runServe,
}

func init() {
	serveCMD.Flags().String("listen", "",
		"serve MCP over streamable HTTP on this address, like `localhost:8080` (default: STDIO)")
	rootCMD.AddCommand(serveCMD)
}

func runServe(cmd *cobra.Command, args []string) error {
	listen := gconfig.Shared.GetString("listen")

	searchClient, err := newSearchClient()
	if err != nil {
		return printError(cmd, mcperr.ClassifyStartupError(err, listen))
	}

	searchTool, err := tools.NewWebSearchTool(searchClient, log.Logger.Named("web_search"))
	if err != nil {
		return printError(cmd, mcperr.ClassifyStartupError(err, listen))
	}

	fetchTool, err := tools.NewWebFetchTool(newFetchClient(), log.Logger.Named("web_fetch"))
	if err != nil {
		return printError(cmd, mcperr.ClassifyStartupError(err, listen))
	}

	server, err := mcpsrv.NewServer(Version, searchTool, fetchTool, log.Logger)
	if err != nil {
		return printError(cmd, mcperr.ClassifyStartupError(err, listen))
	}

	if listen == "" {
		log.Logger.Info("starting mcp server over stdio", zap.String("version", Version))
		if err := server.ServeStdio(); err != nil {
			return printError(cmd, mcperr.ClassifyStartupError(err, listen))
		}
		return nil
	}

	if !gconfig.Shared.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		gmw.NewLoggerMiddleware(
			gmw.WithLoggerMwColored(),
			gmw.WithLevel(log.Logger.Level().String()),
			gmw.WithLogger(log.Logger.Named("gin")),
		),
	)

	engine.Any("/health", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world")
	})
	engine.Any("/mcp", gmw.FromStd(server.Handler().ServeHTTP))
	engine.Any("/mcp/*path", gmw.FromStd(server.Handler().ServeHTTP))

	log.Logger.Info("listening on http",
		zap.String("addr", listen), zap.String("version", Version))
	if err := engine.Run(listen); err != nil {
		return printError(cmd, mcperr.ClassifyStartupError(err, listen))
	}
	return nil
}
