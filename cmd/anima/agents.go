package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/animus/anima/config"
	"github.com/animus/anima/letta"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func agentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List agents on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load(flags.envFile)
			if err := cfg.Validate(); err != nil {
				return err
			}
			client := letta.New(cfg.ServerURL, cfg.APIToken)

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			agents, err := client.ListAgents(ctx)
			if err != nil {
				return err
			}
			if len(agents) == 0 {
				fmt.Fprintln(os.Stdout, "No agents found.")
				return nil
			}

			cyan := color.New(color.FgCyan, color.Bold)
			dim := color.New(color.FgHiBlack)
			for _, a := range agents {
				name := runewidth.Truncate(a.Name, 24, "…")
				cyan.Fprint(os.Stdout, runewidth.FillRight(name, 26))
				fmt.Fprint(os.Stdout, a.ID)
				if a.Model != "" {
					dim.Fprintf(os.Stdout, "  [%s]", a.Model)
				}
				fmt.Fprintln(os.Stdout)
			}
			return nil
		},
	}
}
