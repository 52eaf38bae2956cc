package app

import (
	"fmt"

	"github.com/fatih/color"
)

const splash = `
 __  __  ___ ___ ___   ___   ___
|  \/  |/ __| _ \   \ / _ \ / __|
| |\/| | (__|  _/ |) | (_) | (__
|_|  |_|\___|_| |___/ \___/ \___|
`

// printSplash writes the SSE startup banner. Stdio transport never prints it:
// stdout belongs to the protocol there.
func printSplash(sourceCount int) {
	color.New(color.FgCyan, color.Bold).Print(splash + "\n")
	fmt.Printf("Launching MCPDOC server with %d doc sources\n\n", sourceCount)
}
