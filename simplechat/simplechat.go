// Package simplechat provides a plain-terminal REPL over the chat
// pipeline. It is the fallback surface for terminals where the
// full-screen TUI misbehaves: no alternate screen, no redraws, just
// line-oriented output streamed as it arrives.
package simplechat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/animus/anima"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

// REPL reads lines from input and streams exchange output to output.
// One exchange runs at a time; the loop blocks until the turn finishes.
type REPL struct {
	chat       *anima.Chat
	in         *bufio.Scanner
	out        io.Writer
	log        *zap.Logger
	useSpinner bool

	userC   *color.Color
	agentC  *color.Color
	reasonC *color.Color
	errC    *color.Color
	dimC    *color.Color
}

// Option configures a REPL.
type Option func(*REPL)

// WithInput sets the input reader. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(p *REPL) { p.in = bufio.NewScanner(r) }
}

// WithOutput sets the output writer. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *REPL) { p.out = w }
}

// WithLogger sets the structured logger. Defaults to a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *REPL) { p.log = l }
}

// WithSpinner enables or disables the waiting spinner. On by default;
// tests disable it.
func WithSpinner(on bool) Option {
	return func(p *REPL) { p.useSpinner = on }
}

// New creates a REPL over the given chat coordinator.
func New(chat *anima.Chat, opts ...Option) *REPL {
	r := &REPL{
		chat:       chat,
		in:         bufio.NewScanner(os.Stdin),
		out:        os.Stdout,
		log:        zap.NewNop(),
		useSpinner: true,
		userC:      color.New(color.FgGreen, color.Bold),
		agentC:     color.New(color.FgCyan, color.Bold),
		reasonC:    color.New(color.FgMagenta, color.Faint),
		errC:       color.New(color.FgRed),
		dimC:       color.New(color.FgHiBlack),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run executes the read/send/stream loop until input is exhausted, the
// user quits, or the context is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	r.banner()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		r.userC.Fprintf(r.out, "%s > ", r.displayName())
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return r.in.Err()
		}

		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			r.dimC.Fprintln(r.out, "Bye.")
			return nil
		}
		if strings.HasPrefix(line, "/") {
			if quit := r.handleCommand(ctx, line); quit {
				return nil
			}
			continue
		}

		if err := r.exchange(ctx, line); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.errC.Fprintf(r.out, "Error: %v\n", err)
		}
	}
}

// exchange sends one message and streams its updates. Updates carry the
// turn's full content, so only the unseen suffix is printed each time.
func (r *REPL) exchange(ctx context.Context, text string) error {
	e, err := r.chat.Send(ctx, text)
	if err != nil {
		return err
	}
	r.log.Debug("message sent", zap.Int("text_len", len(text)))

	sp := r.startSpinner()
	spinning := sp != nil

	p := &printer{repl: r, curSeq: -1}
	for {
		up, err := e.Next(ctx)
		if err != nil {
			if spinning {
				sp.Stop()
			}
			if err == io.EOF {
				break
			}
			if ctx.Err() != nil {
				e.Cancel()
			}
			return err
		}
		if spinning {
			sp.Stop()
			spinning = false
		}
		p.ApplyUpdate(up)
		if up.Final {
			break
		}
	}
	fmt.Fprintln(r.out)
	return nil
}

var _ anima.Transcript = (*printer)(nil)

// printer renders one exchange's updates to the terminal. Updates carry
// the turn's full content, so only the unseen suffix is written; a seq
// change means a new turn and gets a fresh label line.
type printer struct {
	repl    *REPL
	curSeq  int
	printed int
}

func (p *printer) ApplyUpdate(up anima.TurnUpdate) {
	r := p.repl
	if up.Seq < 0 {
		return
	}
	if up.Seq != p.curSeq {
		if p.curSeq >= 0 {
			fmt.Fprintln(r.out)
		}
		p.printLabel(up)
		p.curSeq, p.printed = up.Seq, 0
	}
	if len(up.Content) > p.printed {
		fmt.Fprint(r.out, up.Content[p.printed:])
		p.printed = len(up.Content)
	}
}

func (p *printer) printLabel(up anima.TurnUpdate) {
	r := p.repl
	switch up.Role {
	case anima.RoleReasoning:
		r.reasonC.Fprintf(r.out, "(%s) ", strings.ToLower(up.Label))
	case anima.RoleSystem:
		// The turn content carries its own "Error: " prefix.
	default:
		r.agentC.Fprintf(r.out, "%s > ", up.Label)
	}
}

func (r *REPL) startSpinner() *spinner.Spinner {
	if !r.useSpinner {
		return nil
	}
	sp := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(os.Stderr))
	sp.Suffix = "  Thinking..."
	sp.Color("cyan")
	sp.Start()
	return sp
}

func (r *REPL) banner() {
	s := r.chat.Session()
	switch {
	case !s.Available():
		r.errC.Fprintln(r.out, "Server configuration is missing. Set LETTA_SERVER_URL and LETTA_API_TOKEN, then restart.")
	case s.AgentName != "":
		r.dimC.Fprintf(r.out, "Talking to %s. Type /help for commands, exit to quit.\n", s.AgentName)
	default:
		r.dimC.Fprintln(r.out, "No agent selected. Use /agents to list and /agent <name> to choose one.")
	}
}

func (r *REPL) displayName() string {
	if n := r.chat.Session().DisplayName; n != "" {
		return n
	}
	return "You"
}
