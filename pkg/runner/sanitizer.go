package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize bounds a command line or option label.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize overrides DefaultMaxInputSize.
	EnvMaxInputSize = "QTWIZARD_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge    = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8      = errors.New("input contains invalid UTF-8 sequences")
	ErrForbiddenControl = errors.New("input contains a forbidden control character")
)

// SanitizeInput checks a command line or option label before it reaches the
// engine.
//
// Oversized input, invalid UTF-8, NUL and ESC are rejected; ESC would smuggle
// terminal escape sequences into rendered output. Whitespace controls become
// spaces, other control characters are removed, and the result is trimmed.
func SanitizeInput(input string) (string, error) {
	limit := maxInputSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	if i := strings.IndexAny(input, "\x00\x1b"); i >= 0 {
		return "", fmt.Errorf("%w: %q at offset %d", ErrForbiddenControl, input[i], i)
	}

	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if !unicode.IsControl(r) {
			return r
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		return -1
	}, input)), nil
}

// NormalizeLabel sanitizes an option label and collapses inner whitespace so
// a label copied from rendered output matches the authored one.
func NormalizeLabel(label string) (string, error) {
	clean, err := SanitizeInput(label)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(clean), " "), nil
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
