package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the wizard banner to w.
func PrintBanner(w io.Writer, title string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()
	// Using a subtle gradient-like color scheme (Teal/Cyan)
	lines := []struct {
		text  string
		color string
	}{
		{"   ___ _____     _____ ", "#2dd4bf"},
		{"  / _ \\_   _|__ |  ___|", "#22d3ee"},
		{" | | | || |/ __|| |_   ", "#38bdf8"},
		{" | |_| || | (__ |  _|  ", "#60a5fa"},
		{"  \\__\\_\\|_|\\___||_|    ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	if title != "" {
		fmt.Fprintln(w, out.String(" "+title).Bold())
	}
	fmt.Fprintln(w)
}

// Highlight renders s in the accent color used for option numbers.
func Highlight(w io.Writer, s string) string {
	out := termenv.NewOutput(w)
	return out.String(s).Foreground(out.ColorProfile().Color("#22d3ee")).Bold().String()
}
