// Package cmd implements the duckduckgo-mcp command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/duckduckgo-mcp/library/config"
	"github.com/Laisky/duckduckgo-mcp/library/log"
	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

// Version is the release version reported by the version command and the
// MCP server handshake.
const Version = "1.1.0"

var rootCMD = &cobra.Command{
	Use:           "duckduckgo-mcp",
	Short:         "duckduckgo-mcp",
	Long:          `DuckDuckGo web search and URL content retrieval over the MCP protocol`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errExit marks an error that has already been printed as a CLI error
// block; Execute only converts it into the process exit code.
var errExit = errors.New("command failed")

func initialize(ctx context.Context, cmd *cobra.Command) error {
	if err := gconfig.Shared.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind pflags")
	}

	setupSettings(ctx)
	setupLogger(ctx)

	return nil
}

func setupSettings(ctx context.Context) {
	// mode
	if gconfig.Shared.GetBool("debug") {
		gconfig.Shared.Set("log-level", "debug")
	}

	// load configuration
	config.LoadFromFile(gconfig.Shared.GetString("config"))
}

func setupLogger(ctx context.Context) {
	lvl := gconfig.Shared.GetString("log-level")
	if err := log.Logger.ChangeLevel(glog.Level(lvl)); err != nil {
		log.Logger.Panic("change log level", zap.Error(err), zap.String("level", lvl))
	}
}

func debugEnabled() bool {
	return gconfig.Shared.GetBool("debug")
}

// printError renders err as the structured CLI error block on stderr and
// returns the exit sentinel. The debug flag adds classification metadata and
// a stack trace to stderr; it never changes the stdout payload.
func printError(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), mcperr.FormatCLI(err, debugEnabled()))
	return errExit
}

func init() {
	rootCMD.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCMD.PersistentFlags().StringP("config", "c", "/etc/duckduckgo-mcp/settings.yml", "config file path")
	rootCMD.PersistentFlags().String("log-level", "info", "`debug/info/error`")
}

// Execute runs the root command. Every handled error has already been
// printed by the owning subcommand, so only the exit code remains.
func Execute() {
	if err := rootCMD.Execute(); err != nil {
		os.Exit(1)
	}
}
