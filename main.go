package main

import (
	"github.com/Laisky/duckduckgo-mcp/cmd"
)

func main() {
	cmd.Execute()
}
