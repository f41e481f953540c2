// Command anima is an interactive terminal client for a Letta agent
// server. It streams agent replies into a full-screen TUI by default,
// falls back to a plain-terminal REPL with --simple, and manages the
// autonomous vibe mode through subcommands.
//
// Usage:
//
//	LETTA_API_TOKEN=... anima [flags]
//	anima agents
//	anima vibe start|stop|status
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "anima: %v\n", err)
		os.Exit(1)
	}
}
