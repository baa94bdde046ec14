// Package normalize standardizes user-supplied strings before they are
// validated or stored. Handlers call these at the edge so stores and
// policies never see stray whitespace or mixed-case enum values.
package normalize

import (
	"strings"

	waffletext "github.com/dalemusser/waffle/pantry/text"
)

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Fold returns the case/diacritic-folded form used for *_ci fields.
func Fold(s string) string {
	return waffletext.Fold(strings.TrimSpace(s))
}

// AuthMethod trims and lowercases an auth method value (password, google).
func AuthMethod(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status trims and lowercases a status value (active, disabled).
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role trims and lowercases a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a free-form query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
