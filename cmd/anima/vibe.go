package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/animus/anima"
	"github.com/animus/anima/config"
	"github.com/animus/anima/letta"
	"github.com/animus/anima/vibe"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func vibeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vibe",
		Short: "Manage the autonomous vibe mode",
		Long: `Vibe mode runs in the background and periodically sends the configured
prompt (VIBE_MODE_PROMPT) to the selected agent. It is coordinated
through a JSON control file shared with the interactive client.`,
	}
	cmd.AddCommand(vibeStartCmd(), vibeStopCmd(), vibeStatusCmd(), vibeRunCmd())
	return cmd
}

func vibeStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the background runner",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load(flags.envFile)
			if err := cfg.Validate(); err != nil {
				return err
			}

			args := []string{"vibe", "run"}
			if flags.envFile != "" {
				args = append(args, "--env-file", flags.envFile)
			}
			if flags.agent != "" {
				args = append(args, "--agent", flags.agent)
			}

			control := vibe.NewControl(cfg.VibeControlFile)
			pid, err := vibe.Launch(control, args...)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Vibe mode started (pid %d), logging to %s\n", pid, cfg.VibeLogFile)
			return nil
		},
	}
}

func vibeStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Ask the background runner to stop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load(flags.envFile)
			control := vibe.NewControl(cfg.VibeControlFile)
			alive, err := vibe.Stop(control)
			if err != nil {
				return err
			}
			if !alive {
				fmt.Fprintln(os.Stdout, "No runner is alive; stop recorded in the control file.")
				return nil
			}
			fmt.Fprintln(os.Stdout, "Stop requested; the runner exits within a second.")
			return nil
		},
	}
}

func vibeStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the runner's state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load(flags.envFile)
			state, alive := vibe.Status(vibe.NewControl(cfg.VibeControlFile))

			green := color.New(color.FgGreen)
			red := color.New(color.FgRed)
			if alive {
				green.Fprintf(os.Stdout, "Running (pid %d)\n", state.PID)
			} else {
				red.Fprintln(os.Stdout, "Not running")
			}
			if state.LastRun != "" {
				fmt.Fprintf(os.Stdout, "Last cycle: %s\n", state.LastRun)
			}
			if state.LastCommand != "" {
				fmt.Fprintf(os.Stdout, "Last command: %s at %s\n", state.LastCommand, state.Timestamp)
			}
			fmt.Fprintf(os.Stdout, "Control file: %s\n", cfg.VibeControlFile)
			return nil
		},
	}
}

// vibeRunCmd is the foreground loop that "vibe start" re-execs into the
// background. It is also handy under a process supervisor.
func vibeRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "run",
		Short:  "Run the vibe loop in the foreground",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load(flags.envFile)
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := config.NewFileLogger(cfg.VibeLogFile)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client := letta.New(cfg.ServerURL, cfg.APIToken, letta.WithLogger(log))

			// Reasoning stays off: nobody is watching the stream.
			session := anima.NewSession("vibe")
			ref := flags.agent
			if ref == "" {
				ref = cfg.DefaultAgentID
			}
			if ref != "" {
				if _, err := session.SelectAgent(ctx, client, ref); err != nil {
					session.AgentID = ref
				}
			}

			control := vibe.NewControl(cfg.VibeControlFile)
			runner := vibe.NewRunner(client, session, control, cfg.VibePrompt, cfg.VibeInterval, vibe.WithLogger(log))
			if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
