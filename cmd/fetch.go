package cmd

import (
	"fmt"
	"strings"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/spf13/cobra"

	"github.com/Laisky/duckduckgo-mcp/library/fetch"
	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

var fetchCMD = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch and convert content from a URL",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd.Context(), cmd)
	},
	RunE: runFetch,
}

func init() {
	fetchCMD.Flags().String("format", fetch.FormatMarkdown, "output format (`markdown/json`)")
	fetchCMD.Flags().Int("max-length", 0, "maximum length of content to return")
	fetchCMD.Flags().Bool("with-images", false, "generate alt text for images")
	rootCMD.AddCommand(fetchCMD)
}

func runFetch(cmd *cobra.Command, args []string) error {
	url := args[0]

	format := strings.ToLower(gconfig.Shared.GetString("format"))
	if format != fetch.FormatMarkdown && format != fetch.FormatJSON {
		return printError(cmd, mcperr.NewValidationError(
			fmt.Sprintf("Invalid format: '%s'. format must be 'markdown' or 'json'.", format),
			mcperr.WithGuidance("The --format flag accepts two values:\n"+
				"  • 'markdown' (default) - Prints the page content as markdown text\n"+
				"  • 'json' - Prints the provider's structured response"),
		))
	}

	maxLength := gconfig.Shared.GetInt("max-length")
	if cmd.Flags().Changed("max-length") && maxLength <= 0 {
		return printError(cmd, mcperr.NewValidationError(
			fmt.Sprintf("Invalid max_length: %d. max_length must be a positive integer.", maxLength),
			mcperr.WithGuidance("The --max-length flag must be a positive integer.\n"+
				"  • Valid values: 100, 1000, 5000, etc.\n"+
				"  • Omit the flag for unlimited content"),
		))
	}

	result, err := newFetchClient().Fetch(cmd.Context(), fetch.Options{
		URL:        url,
		Format:     format,
		MaxLength:  maxLength,
		WithImages: gconfig.Shared.GetBool("with-images"),
	})
	if err != nil {
		return printError(cmd, err)
	}

	rendered, err := result.Render()
	if err != nil {
		return printError(cmd, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}
