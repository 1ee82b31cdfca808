package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/cardio-onc/qtwizard/internal/presentation/tui"
	"github.com/cardio-onc/qtwizard/pkg/runner"
	"golang.org/x/term"
)

// RunSession runs one interactive wizard session on in and out.
func RunSession(ctx context.Context, app *App, in io.Reader, out io.Writer) error {
	w, err := app.NewWizard()
	if err != nil {
		return fmt.Errorf("error initializing wizard: %w", err)
	}
	defer w.Close()

	interactive := runner.IsTerminal(out)
	handlerOpts := []runner.TextHandlerOption{}
	if interactive && !app.Config.Renderer.Plain {
		render, err := tui.NewRenderer(app.Config.Renderer.Style, terminalWidth(out))
		if err != nil {
			app.Logger.Warn("markdown renderer unavailable, using plain output", "error", err)
		} else {
			handlerOpts = append(handlerOpts, runner.WithTextHandlerRenderer(render))
		}
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(app.Logger),
		runner.WithInputHandler(runner.NewTextHandler(in, out, handlerOpts...)),
	}
	if interactive {
		runnerOpts = append(runnerOpts, runner.WithBanner(w.Title()))
	}

	app.Logger.Debug("session started", "steps", w.Registry().Len())
	err = runner.NewRunner(w, runnerOpts...).Run(ctx)
	app.Logger.Debug("session finished", "step", w.Current(), "error", err)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

func terminalWidth(out io.Writer) int {
	f, ok := out.(interface{ Fd() uintptr })
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return min(width, 100)
}
