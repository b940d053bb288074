package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/spf13/cobra"

	"github.com/Laisky/duckduckgo-mcp/library/search"
)

var searchCMD = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search DuckDuckGo directly",
	Args:  cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd.Context(), cmd)
	},
	RunE: runSearch,
}

func init() {
	searchCMD.Flags().Int("max-results", search.DefaultMaxResults, "maximum number of results to return")
	searchCMD.Flags().String("safesearch", search.DefaultSafeSearch, "safe search setting (`on/moderate/off`)")
	searchCMD.Flags().String("output-format", search.OutputFormatJSON,
		"output format: `json/text`, 'text' is LLM-friendly")
	rootCMD.AddCommand(searchCMD)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	outputFormat, err := search.ValidateOutputFormat(gconfig.Shared.GetString("output-format"))
	if err != nil {
		return printError(cmd, err)
	}

	client, err := newSearchClient()
	if err != nil {
		return printError(cmd, err)
	}

	items, err := client.Search(cmd.Context(), search.Params{
		Query:      query,
		MaxResults: gconfig.Shared.GetInt("max-results"),
		SafeSearch: gconfig.Shared.GetString("safesearch"),
	})
	if err != nil {
		return printError(cmd, err)
	}

	if outputFormat == search.OutputFormatText {
		fmt.Fprintln(cmd.OutOrStdout(), search.FormatResultsAsText(items, query))
		return nil
	}

	encoded, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return printError(cmd, errors.Wrap(err, "encode search results"))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
