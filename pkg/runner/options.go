package runner

import "log/slog"

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithInputHandler configures the TextHandler.
func WithInputHandler(handler *TextHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithBanner prints the banner with title before the first step.
func WithBanner(title string) Option {
	return func(r *Runner) {
		r.Banner = title
	}
}
