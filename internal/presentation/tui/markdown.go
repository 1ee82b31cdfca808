package tui

import (
	"fmt"
	"strings"

	"github.com/cardio-onc/qtwizard/pkg/domain"
)

// StepMarkdown renders a step as markdown.
// Clickable options are numbered from 1 in the order ChooseOption counts them;
// other plain options are bullets and links are markdown links.
func StepMarkdown(step domain.Step) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", step.Title)

	n := 0
	for _, sp := range step.SubPoints {
		switch v := sp.(type) {
		case domain.TextPoint:
			fmt.Fprintf(&sb, "- %s\n", v.Text)
		case domain.Choice:
			if v.Text != "" {
				fmt.Fprintf(&sb, "\n**%s**\n\n", v.Text)
			} else {
				sb.WriteString("\n")
			}
			for _, o := range v.Options {
				switch opt := o.(type) {
				case domain.PlainOption:
					if opt.IsClickable() {
						n++
						fmt.Fprintf(&sb, "%d. %s: **%s**\n", n, opt.Prefix, opt.Clickable)
					} else {
						fmt.Fprintf(&sb, "- %s\n", opt.Label)
					}
				case domain.RichOption:
					fmt.Fprintf(&sb, "- [%s](%s)\n", opt.Text, opt.Href)
				}
			}
		}
	}
	return sb.String()
}
