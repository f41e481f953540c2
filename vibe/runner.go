package vibe

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/animus/anima"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

const (
	// MinInterval is the floor for the cycle interval.
	MinInterval = 10 * time.Second

	previewWidth = 120
	stopPoll     = time.Second
)

// Runner drives the autonomous loop: every interval it sends the
// configured prompt to the session's agent and drains the reply. It stops
// when the context is cancelled or a stop command appears in the control
// file.
type Runner struct {
	transport anima.Transport
	session   *anima.Session
	control   *Control
	prompt    string
	interval  time.Duration
	log       *zap.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the structured logger. Defaults to a nop logger.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

// WithInterval sets the cycle interval as given, without the MinInterval
// clamp. Intended for tests.
func WithInterval(d time.Duration) RunnerOption {
	return func(r *Runner) { r.interval = d }
}

// NewRunner creates a runner. Intervals below MinInterval are raised to
// it; WithInterval overrides the clamp.
func NewRunner(t anima.Transport, s *anima.Session, c *Control, prompt string, interval time.Duration, opts ...RunnerOption) *Runner {
	if interval < MinInterval {
		interval = MinInterval
	}
	r := &Runner{
		transport: t,
		session:   s,
		control:   c,
		prompt:    prompt,
		interval:  interval,
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run executes the loop until stopped. The control file is marked running
// on entry and stopped on exit.
func (r *Runner) Run(ctx context.Context) error {
	s := r.control.Read()
	s.Status = StatusRunning
	s.LastCommand = CommandStart
	s.Timestamp = nowISO()
	s.PID = os.Getpid()
	if err := r.control.Write(s); err != nil {
		return err
	}
	r.log.Info("vibe mode started",
		zap.String("agent_id", r.session.AgentID),
		zap.Duration("interval", r.interval),
	)

	chat := anima.NewChat(r.transport, r.session, anima.WithLogger(r.log))

	for {
		if r.stopRequested() {
			r.log.Info("stop command detected")
			break
		}

		if r.session.AgentID == "" {
			r.log.Warn("no agent selected, skipping cycle")
		} else {
			r.cycle(ctx, chat)
		}

		s = r.control.Read()
		s.Status = StatusRunning
		s.LastRun = nowISO()
		s.PID = os.Getpid()
		if err := r.control.Write(s); err != nil {
			r.log.Error("control file write failed", zap.Error(err))
		}

		if !r.wait(ctx) {
			break
		}
	}

	s = r.control.Read()
	s.Status = StatusStopped
	s.LastCommand = CommandStop
	s.Timestamp = nowISO()
	if err := r.control.Write(s); err != nil {
		r.log.Error("control file write failed", zap.Error(err))
	}
	r.log.Info("vibe mode stopped")
	return ctx.Err()
}

// cycle sends the prompt once and drains the exchange, logging a short
// preview of the reply.
func (r *Runner) cycle(ctx context.Context, chat *anima.Chat) {
	r.log.Info("sending vibe prompt", zap.String("agent_id", r.session.AgentID))

	e, err := chat.Send(ctx, r.prompt)
	if err != nil {
		r.log.Error("vibe prompt failed", zap.Error(err))
		return
	}

	var updates int
	var reply string
	for {
		up, err := e.Next(ctx)
		if err != nil {
			break
		}
		updates++
		if up.Role == anima.RoleAgent && up.Content != "" {
			reply = up.Content
		}
	}
	r.log.Info("vibe cycle complete",
		zap.Int("updates", updates),
		zap.String("preview", preview(reply)),
	)
}

// wait sleeps until the next cycle, polling the control file so a stop
// command takes effect within a second. It returns false when the loop
// should end.
func (r *Runner) wait(ctx context.Context) bool {
	next := time.After(r.interval)
	poll := time.NewTicker(stopPoll)
	defer poll.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-next:
			return true
		case <-poll.C:
			if r.stopRequested() {
				return false
			}
		}
	}
}

func (r *Runner) stopRequested() bool {
	s := r.control.Read()
	return s.LastCommand == CommandStop || s.Status == StatusStopped
}

func preview(s string) string {
	return runewidth.Truncate(strings.ReplaceAll(s, "\n", " "), previewWidth, "…")
}
