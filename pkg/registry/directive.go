package registry

import (
	"regexp"
	"strconv"
	"strings"
)

// directiveRe matches a trailing "Proceed to Step N" or "then Step N".
// Matching is case-sensitive and tolerates trailing whitespace only.
var directiveRe = regexp.MustCompile(`(?:Proceed to Step (\d+)|then Step (\d+))\s*$`)

const (
	phraseProceed = "Proceed to Step"
	phraseThen    = "then Step"
	labelSep      = ": "
)

// ParseDirective extracts the step number of a trailing directive.
// The number is returned as authored and is used directly as a registry index.
func ParseDirective(text string) (int, bool) {
	m := directiveRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// HasDirectivePhrase reports whether text mentions a step directive anywhere.
// This decides whether an option is offered as clickable.
func HasDirectivePhrase(text string) bool {
	return strings.Contains(text, phraseProceed) || strings.Contains(text, phraseThen)
}

// SplitLabel splits an option label at ": " into its prefix and clickable text.
// Only the first two segments are kept; a label without a separator has no
// clickable text.
func SplitLabel(label string) (prefix, clickable string) {
	parts := strings.Split(label, labelSep)
	prefix = parts[0]
	if len(parts) > 1 {
		clickable = parts[1]
	}
	return prefix, clickable
}
