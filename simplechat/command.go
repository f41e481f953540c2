package simplechat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

const commandTimeout = 10 * time.Second

const helpText = `Commands:
  /help             show this help
  /status           show session state and check the server
  /agents           list agents on the server
  /agent <name>     switch to an agent by name or ID
  /reasoning        toggle reasoning display
  /quit             exit (so do "exit" and "quit")`

// handleCommand executes a slash command. It returns true when the REPL
// should terminate.
func (r *REPL) handleCommand(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case "/help":
		fmt.Fprintln(r.out, helpText)

	case "/status":
		r.printStatus(ctx)

	case "/agents":
		r.printAgents(ctx)

	case "/agent":
		if len(args) == 0 {
			r.errC.Fprintln(r.out, "usage: /agent <name or ID>")
			break
		}
		r.switchAgent(ctx, strings.Join(args, " "))

	case "/reasoning":
		s := r.chat.Session()
		s.ShowReasoning = !s.ShowReasoning
		state := "off"
		if s.ShowReasoning {
			state = "on"
		}
		r.dimC.Fprintf(r.out, "Reasoning display is now %s.\n", state)

	case "/quit":
		r.dimC.Fprintln(r.out, "Bye.")
		return true

	default:
		r.errC.Fprintf(r.out, "Unknown command %s, try /help.\n", name)
	}
	return false
}

func (r *REPL) printStatus(ctx context.Context) {
	s := r.chat.Session()
	agent := "none"
	if s.AgentID != "" {
		agent = fmt.Sprintf("%s (%s)", s.AgentName, s.AgentID)
	}
	reasoning := "off"
	if s.ShowReasoning {
		reasoning = "on"
	}
	fmt.Fprintf(r.out, "Agent: %s\nReasoning: %s\nDisplay name: %s\n", agent, reasoning, s.DisplayName)

	if !s.Available() {
		r.errC.Fprintln(r.out, "Session: unavailable (configuration missing)")
		return
	}
	hctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	if err := r.chat.Transport().Health(hctx); err != nil {
		r.errC.Fprintf(r.out, "Server: unreachable (%v)\n", err)
		return
	}
	fmt.Fprintln(r.out, "Server: reachable")
}

func (r *REPL) printAgents(ctx context.Context) {
	s := r.chat.Session()
	if !s.Available() {
		r.errC.Fprintln(r.out, "Session is unavailable, configuration is missing.")
		return
	}
	lctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	agents, err := r.chat.Transport().ListAgents(lctx)
	if err != nil {
		r.errC.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if len(agents) == 0 {
		r.dimC.Fprintln(r.out, "No agents found on the server.")
		return
	}
	for _, a := range agents {
		name := runewidth.Truncate(a.Name, 24, "…")
		fmt.Fprintf(r.out, "  %s  %s", runewidth.FillRight(name, 24), a.ID)
		if a.Model != "" {
			fmt.Fprintf(r.out, "  [%s]", a.Model)
		}
		fmt.Fprintln(r.out)
	}
}

func (r *REPL) switchAgent(ctx context.Context, idOrName string) {
	sctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	agent, err := r.chat.Session().SelectAgent(sctx, r.chat.Transport(), idOrName)
	if err != nil {
		r.errC.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	r.dimC.Fprintf(r.out, "Talking to %s.\n", agent.Name)
}
