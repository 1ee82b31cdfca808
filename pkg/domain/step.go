package domain

// Step is one node of the guided checklist.
// Index is the step identity and always matches its registry position.
type Step struct {
	Index       int         `json:"index"`
	Title       string      `json:"title"`
	SubPoints   []SubPoint  `json:"sub_points,omitempty"`
	DefaultNext Destination `json:"default_next"`
}

// IsTerminal reports whether option navigation is blocked on this step.
func (s Step) IsTerminal() bool {
	return s.DefaultNext.IsNone()
}

// Choices returns the Choice sub-points in authoring order.
func (s Step) Choices() []Choice {
	var out []Choice
	for _, sp := range s.SubPoints {
		if c, ok := sp.(Choice); ok {
			out = append(out, c)
		}
	}
	return out
}

// SubPoint is a line of step content: either a TextPoint or a Choice.
type SubPoint interface {
	isSubPoint()
}

// TextPoint is a plain display line.
type TextPoint struct {
	Text string `json:"text"`
}

func (TextPoint) isSubPoint() {}

// Choice groups options under an optional lead-in text.
type Choice struct {
	Text    string   `json:"text,omitempty"`
	Options []Option `json:"options"`
}

func (Choice) isSubPoint() {}

// ClickableOptions returns the options offered as navigation targets, in
// authoring order across all choices.
func (s Step) ClickableOptions() []PlainOption {
	var out []PlainOption
	for _, c := range s.Choices() {
		for _, o := range c.Options {
			if p, ok := o.(PlainOption); ok && p.IsClickable() {
				out = append(out, p)
			}
		}
	}
	return out
}
