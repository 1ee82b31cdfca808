package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/cardio-onc/qtwizard/internal/logging"
	"github.com/cardio-onc/qtwizard/internal/presentation/tui"
	"github.com/cardio-onc/qtwizard/pkg/ports"
)

// Session is the wizard surface the runner drives.
type Session interface {
	ports.Navigator
	// HistoryBack and HistoryForward move through platform history,
	// like the browser buttons.
	HistoryBack() bool
	HistoryForward() bool
}

// Runner reads commands and dispatches them to a Session until quit or EOF.
type Runner struct {
	Session Session
	Handler *TextHandler
	Logger  *slog.Logger
	Banner  string
}

// NewRunner creates a runner over session reading stdin and writing stdout.
func NewRunner(session Session, opts ...Option) *Runner {
	r := &Runner{
		Session: session,
		Logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	return r
}

// Run renders the current step and processes commands.
// It returns nil on quit or EOF and ctx.Err() on cancellation.
func (r *Runner) Run(ctx context.Context) error {
	if r.Banner != "" {
		tui.PrintBanner(r.Handler.Writer, r.Banner)
	}
	r.render()

	for {
		line, err := r.Handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.Logger.Debug("input closed")
				return nil
			}
			return err
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			r.Handler.Printf("%v. Type ? for help.", err)
			continue
		}

		if done := r.dispatch(ctx, cmd); done {
			return nil
		}
	}
}

func (r *Runner) dispatch(ctx context.Context, cmd Command) (quit bool) {
	var moved bool
	switch cmd.Kind {
	case CommandNone:
		return false
	case CommandQuit:
		r.Logger.Debug("quit requested", "step", r.Session.Current())
		return true
	case CommandHelp:
		r.Handler.Printf("%s", helpText)
		return false
	case CommandChoose:
		moved = r.Session.ChooseOption(ctx, cmd.Option)
	case CommandNext:
		moved = r.Session.HandleNext(ctx)
	case CommandBack:
		moved = r.Session.HandleBack(ctx)
	case CommandHistoryBack:
		moved = r.Session.HistoryBack()
	case CommandHistoryForward:
		moved = r.Session.HistoryForward()
	}

	if !moved {
		r.Handler.Printf("Nothing to do here.")
		return false
	}
	r.render()
	return false
}

func (r *Runner) render() {
	r.Handler.Output(tui.StepMarkdown(r.Session.Step()))
}
