// Package style contains the structural block builder and the per-style
// building builders. Each style composes primitives into the shared building
// group; the block builder is the only sub-builder whose parts stay
// re-toggleable after generation.
package style

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/parataxis/massing/pkg/spec"
)

// Palette holds the hex colors one style builds with. Derived entries come
// from the mass color so the whole building stays in one family.
type Palette struct {
	Mass        string
	MassOpacity float64
	Foundation  string
	Structure   string
	Frame       string
	Glass       string
	Door        string
	Roof        string
	Trim        string
	Accent      string
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// shade shifts the lightness of a hex color by dl in HSL space.
func shade(hex string, dl float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, clamp(l+dl, 0, 1)).Hex()
}

// saturate shifts the saturation of a hex color by ds in HSL space.
func saturate(hex string, ds float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, l := c.Hsl()
	return colorful.Hsl(h, clamp(s+ds, 0, 1), l).Hex()
}

// stylePalette returns the palette for a style. Unknown kinds fall back to
// the modern palette; dispatch rejects them before any builder runs.
func stylePalette(kind spec.StyleKind) Palette {
	switch kind {
	case spec.StyleCyberpunk:
		return Palette{
			Mass:        "#1a1f2e",
			MassOpacity: 0.92,
			Foundation:  "#101320",
			Structure:   "#2a3142",
			Frame:       "#ff2d95",
			Glass:       "#49e9ff",
			Door:        "#3a4154",
			Roof:        "#232938",
			Trim:        shade("#1a1f2e", 0.12),
			Accent:      "#49e9ff",
		}
	case spec.StyleOrganic:
		return Palette{
			Mass:        "#c8b89a",
			MassOpacity: 0.93,
			Foundation:  shade("#c8b89a", -0.25),
			Structure:   shade("#c8b89a", -0.1),
			Frame:       "#8a7a5c",
			Glass:       "#bfe3d8",
			Door:        "#6e5b3e",
			Roof:        "#a98f68",
			Trim:        shade("#c8b89a", -0.15),
			Accent:      "#f2e3b8",
		}
	case spec.StyleGeometric:
		return Palette{
			Mass:        "#7d8ca3",
			MassOpacity: 0.9,
			Foundation:  shade("#7d8ca3", -0.28),
			Structure:   shade("#7d8ca3", -0.12),
			Frame:       "#3d4656",
			Glass:       "#cfe0f0",
			Door:        "#39404e",
			Roof:        "#566378",
			Trim:        saturate("#7d8ca3", 0.15),
			Accent:      "#e8edf4",
		}
	case spec.StyleTownhouse:
		return Palette{
			Mass:        "#9c5a3c",
			MassOpacity: 0.95,
			Foundation:  "#6b6b6b",
			Structure:   shade("#9c5a3c", -0.12),
			Frame:       "#f2ede4",
			Glass:       "#b8d4e6",
			Door:        "#2f4f3e",
			Roof:        "#4a4a52",
			Trim:        "#e8e0d2",
			Accent:      "#f5d98c",
		}
	case spec.StyleTerrace:
		return Palette{
			Mass:        "#b08968",
			MassOpacity: 0.95,
			Foundation:  "#6b6b6b",
			Structure:   shade("#b08968", -0.12),
			Frame:       "#f4f0e8",
			Glass:       "#b8d4e6",
			Door:        "#47352a",
			Roof:        "#535057",
			Trim:        "#ece4d6",
			Accent:      "#f5d98c",
		}
	case spec.StyleDetached:
		return Palette{
			Mass:        "#d8cfc0",
			MassOpacity: 0.95,
			Foundation:  "#8f8a80",
			Structure:   "#d8cfc0",
			Frame:       "#ffffff",
			Glass:       "#bcd8e8",
			Door:        "#2457a8",
			Roof:        "#6e5846",
			Trim:        shade("#d8cfc0", -0.18),
			Accent:      "#f0e8d8",
		}
	default: // modern
		return Palette{
			Mass:        "#8a9bb0",
			MassOpacity: 0.95,
			Foundation:  shade("#8a9bb0", -0.3),
			Structure:   shade("#8a9bb0", -0.12),
			Frame:       "#3c4554",
			Glass:       "#a8d4e8",
			Door:        "#2e3642",
			Roof:        "#5c6878",
			Trim:        shade("#8a9bb0", -0.18),
			Accent:      "#f0f4f8",
		}
	}
}
