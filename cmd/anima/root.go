package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/animus/anima"
	bt "github.com/animus/anima/bubbletea"
	"github.com/animus/anima/config"
	"github.com/animus/anima/letta"
	"github.com/animus/anima/simplechat"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flags struct {
	envFile   string
	agent     string
	theme     string
	simple    bool
	reasoning bool
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "anima",
		Short: "Chat with agents on a Letta server from your terminal",
		Long: `anima connects to a Letta agent server and streams replies into an
interactive terminal session. Configuration comes from the environment
(LETTA_SERVER_URL, LETTA_API_TOKEN, ...), optionally seeded from a .env
file.`,
		SilenceUsage: true,
		RunE:         runChat,
	}

	root.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Path to a .env file with configuration")
	root.Flags().BoolVar(&flags.simple, "simple", false, "Plain-terminal mode instead of the full-screen TUI")
	root.Flags().BoolVar(&flags.reasoning, "reasoning", false, "Show the agent's reasoning segments")
	root.Flags().StringVar(&flags.agent, "agent", "", "Agent name or ID to talk to")
	root.Flags().StringVar(&flags.theme, "theme", "", "Color theme for the TUI")

	root.AddCommand(agentsCmd())
	root.AddCommand(vibeCmd())
	return root
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg := config.Load(flags.envFile)
	if flags.reasoning {
		cfg.ShowReasoning = true
	}
	if flags.theme != "" {
		cfg.Theme = flags.theme
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	session, transport := buildSession(ctx, cfg, log)
	chat := anima.NewChat(transport, session, anima.WithLogger(log))

	if flags.simple {
		err = simplechat.New(chat, simplechat.WithLogger(log)).Run(ctx)
	} else {
		err = bt.Run(ctx, bt.New(chat, config.ResolveTheme(cfg)))
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// buildSession connects configuration to a session and transport. An
// invalid configuration yields an unavailable session so the UI can
// explain what is missing instead of aborting.
func buildSession(ctx context.Context, cfg *config.Config, log *zap.Logger) (*anima.Session, anima.Transport) {
	client := letta.New(cfg.ServerURL, cfg.APIToken, letta.WithLogger(log))

	if err := cfg.Validate(); err != nil {
		log.Warn("configuration invalid", zap.Error(err))
		return anima.NewUnavailableSession(), client
	}

	session := anima.NewSession(cfg.DisplayName)
	session.ShowReasoning = cfg.ShowReasoning

	ref := flags.agent
	if ref == "" {
		ref = cfg.DefaultAgentID
	}
	if ref != "" {
		if _, err := session.SelectAgent(ctx, client, ref); err != nil {
			// The configured ID is trusted even when the lookup fails;
			// a bad ID surfaces as a stream error on first send.
			log.Warn("agent lookup failed, using raw ID", zap.String("agent", ref), zap.Error(err))
			session.AgentID = ref
		}
	}
	return session, client
}
