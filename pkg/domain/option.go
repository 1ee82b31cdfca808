package domain

// Option is an element of a Choice: a PlainOption or a RichOption.
// Only PlainOption takes part in click navigation.
type Option interface {
	isOption()
}

// PlainOption is an option authored as text.
//
// Label is the full authored text. Prefix and Clickable are the halves split at
// the first ": ". Directive is true when Clickable mentions a step directive;
// Destination holds the index parsed once from a trailing directive
// ("Proceed to Step N" / "then Step N") found in Clickable.
type PlainOption struct {
	Label       string      `json:"label"`
	Prefix      string      `json:"prefix"`
	Clickable   string      `json:"clickable,omitempty"`
	Directive   bool        `json:"directive"`
	Destination Destination `json:"destination"`
}

func (PlainOption) isOption() {}

// IsClickable reports whether the option should be offered as a navigation target.
func (o PlainOption) IsClickable() bool {
	return o.Clickable != "" && o.Directive
}

// RichKind classifies embedded rich content.
type RichKind string

const (
	RichLink RichKind = "link"
)

// RichOption embeds renderable content (e.g. a hyperlink) in place of a label.
// It is never clickable.
type RichOption struct {
	Kind RichKind `json:"kind"`
	Text string   `json:"text"`
	Href string   `json:"href,omitempty"`
}

func (RichOption) isOption() {}
