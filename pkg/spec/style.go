package spec

import (
	"errors"
	"fmt"
)

// StyleKind selects one of the supported architectural presets. The set is
// closed: every kind has exactly one builder, and anything else is rejected
// at parse time rather than falling through to an empty building.
type StyleKind string

const (
	StyleModern    StyleKind = "modern"
	StyleCyberpunk StyleKind = "cyberpunk"
	StyleOrganic   StyleKind = "organic"
	StyleGeometric StyleKind = "geometric"
	StyleTownhouse StyleKind = "townhouse"
	StyleTerrace   StyleKind = "terrace"
	StyleDetached  StyleKind = "uk-detached"
)

// ErrUnknownStyle is returned for style names outside the supported set.
var ErrUnknownStyle = errors.New("unknown building style")

// AllStyles returns the supported styles in display order.
func AllStyles() []StyleKind {
	return []StyleKind{
		StyleModern,
		StyleCyberpunk,
		StyleOrganic,
		StyleGeometric,
		StyleTownhouse,
		StyleTerrace,
		StyleDetached,
	}
}

// Valid reports whether k is one of the supported styles.
func (k StyleKind) Valid() bool {
	switch k {
	case StyleModern, StyleCyberpunk, StyleOrganic, StyleGeometric,
		StyleTownhouse, StyleTerrace, StyleDetached:
		return true
	}
	return false
}

// String returns the style name as it appears in specs and API payloads.
func (k StyleKind) String() string {
	return string(k)
}

// ParseStyle converts a raw style name into a StyleKind, wrapping
// ErrUnknownStyle for anything outside the supported set.
func ParseStyle(s string) (StyleKind, error) {
	k := StyleKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
	}
	return k, nil
}
