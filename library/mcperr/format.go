package mcperr

import (
	"fmt"
	"strings"
)

// FormatCLI renders an error as the structured block printed by the CLI:
//
//	Error [CATEGORY:CODE]
//
//	  message
//
//	What to do:
//	  guidance line
//	  guidance line
//
// With debug enabled the block gains the error code, category, and the full
// stack trace, each line indented for readability. Stdout payloads and exit
// codes are unaffected by the debug flag.
func FormatCLI(err error, debug bool) string {
	var lines []string

	me, classified := From(err)
	if classified {
		lines = append(lines,
			fmt.Sprintf("Error [%s:%s]", strings.ToUpper(string(me.Category)), me.Code),
			"",
			fmt.Sprintf("  %s", me.Message),
			"",
			"What to do:",
		)
		for _, guidanceLine := range strings.Split(me.Guidance(), "\n") {
			lines = append(lines, fmt.Sprintf("  %s", guidanceLine))
		}

		if debug {
			lines = append(lines,
				"",
				"Debug Information:",
				fmt.Sprintf("  Error type: %T", err),
				fmt.Sprintf("  Error code: %s", me.Code),
				fmt.Sprintf("  Category: %s", me.Category),
				"",
				"Stack trace:",
			)
			lines = append(lines, indentedStack(err)...)
		}

		return strings.Join(lines, "\n")
	}

	message := err.Error()
	if message == "" {
		message = "An unexpected error occurred"
	}

	lines = append(lines,
		fmt.Sprintf("Error [%T]", err),
		"",
		fmt.Sprintf("  %s", message),
		"",
	)

	if debug {
		lines = append(lines,
			"Debug Information:",
			fmt.Sprintf("  Error type: %T", err),
			"",
			"Stack trace:",
		)
		lines = append(lines, indentedStack(err)...)
	} else {
		lines = append(lines,
			"What to do:",
			"  Please try again. If the problem persists, run with --debug",
			"  for more details, or report this issue.",
		)
	}

	return strings.Join(lines, "\n")
}

// indentedStack renders err with its stack trace (errors/v2 %+v verb) and
// indents every line by two spaces.
func indentedStack(err error) []string {
	rendered := strings.TrimRight(fmt.Sprintf("%+v", err), "\n")
	stackLines := strings.Split(rendered, "\n")
	indented := make([]string, 0, len(stackLines))
	for _, line := range stackLines {
		indented = append(indented, fmt.Sprintf("  %s", line))
	}
	return indented
}
