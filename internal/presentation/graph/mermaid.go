package graph

import (
	"fmt"
	"strings"

	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/cardio-onc/qtwizard/pkg/registry"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedSteps []int
	CurrentStep  int
	HasCurrent   bool
}

// GenerateMermaid produces a Mermaid flowchart of the registry.
// It applies semantic styling:
// - Entry step: ((Circle))
// - Decision (clickable options): {Rhombus}
// - Reference (link options only): [[Subroutine]]
// - Default: [Rectangle]
// DefaultNext edges are solid, option directives are labelled with the option
// prefix, and terminal steps get the terminal class.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(reg *registry.Registry, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var terminals []string
	for _, step := range reg.Steps() {
		id := nodeID(step.Index)
		opener, closer := shape(step)
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escape(step.Title), closer))

		if to, ok := step.DefaultNext.Index(); ok && reg.InRange(to) {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", id, nodeID(to)))
		}

		for _, opt := range step.ClickableOptions() {
			to, ok := opt.Destination.Index()
			if !ok || !reg.InRange(to) {
				continue
			}
			label := opt.Prefix
			if label == "" {
				label = opt.Clickable
			}
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", id, escape(label), nodeID(to)))
		}

		if step.IsTerminal() {
			terminals = append(terminals, id)
		}
	}

	if len(terminals) > 0 {
		sb.WriteString("\n    classDef terminal fill:#fce4ec,stroke:#880e4f,stroke-width:2px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s terminal;\n", strings.Join(terminals, ",")))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, i := range overlay.VisitedSteps {
			if seen[i] || !reg.InRange(i) {
				continue
			}
			seen[i] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(i)))
		}

		if overlay.HasCurrent && reg.InRange(overlay.CurrentStep) {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(overlay.CurrentStep)))
		}
	}

	return sb.String()
}

func shape(step domain.Step) (string, string) {
	switch {
	case step.Index == 0:
		return "((", "))"
	case len(step.ClickableOptions()) > 0:
		return "{", "}"
	case hasRichOption(step):
		return "[[", "]]"
	default:
		return "[", "]"
	}
}

func hasRichOption(step domain.Step) bool {
	for _, c := range step.Choices() {
		for _, o := range c.Options {
			if _, ok := o.(domain.RichOption); ok {
				return true
			}
		}
	}
	return false
}

func nodeID(i int) string {
	return fmt.Sprintf("step%d", i)
}

// escape replaces characters Mermaid treats as syntax inside quoted labels.
func escape(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
