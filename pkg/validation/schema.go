package validation

import (
	"fmt"

	"github.com/parataxis/massing/pkg/spec"
)

// Extension limits: an annex footprint beyond these is almost certainly a
// units mistake rather than a design choice.
const (
	maxExtensionLength = 100.0
	maxExtensionWidth  = 100.0
)

// ValidateSchema performs schema-level validation on a parsed BuildingSpec.
// It checks structural correctness before any dimension is computed.
func ValidateSchema(s *spec.BuildingSpec) *Report {
	r := NewReport()

	validateFloors(s, r)
	validateSurfaceArea(s, r)
	validateVolume(s, r)
	validateStyle(s, r)
	validateExtensions(s, r)

	return r
}

func validateFloors(s *spec.BuildingSpec, r *Report) {
	if s.Floors < 1 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "floors must be at least 1",
			SpecPath:    "floors",
			ActualValue: s.Floors,
			Expected:    ">= 1",
		})
	}
	if s.Floors > 200 {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("floors %d is unusually high", s.Floors),
			SpecPath:    "floors",
			ActualValue: s.Floors,
			Expected:    "<= 200",
		})
	}
}

func validateSurfaceArea(s *spec.BuildingSpec, r *Report) {
	if s.SurfaceArea <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "surface_area must be greater than 0",
			SpecPath:    "surface_area",
			ActualValue: s.SurfaceArea,
			Expected:    "> 0",
		})
	}
}

func validateVolume(s *spec.BuildingSpec, r *Report) {
	// Volume does not feed the dimension formula, so a bad value degrades
	// the diagnostics rather than the geometry.
	if s.Volume < 0 {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     "volume is negative and will be ignored",
			SpecPath:    "volume",
			ActualValue: s.Volume,
			Expected:    ">= 0",
		})
	}
}

func validateStyle(s *spec.BuildingSpec, r *Report) {
	if s.Style == "" {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "style is required",
			SpecPath: "style",
			Expected: fmt.Sprintf("one of %v", spec.AllStyles()),
		})
		return
	}
	if !s.Style.Valid() {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("unknown style %q", s.Style),
			SpecPath:    "style",
			ActualValue: string(s.Style),
			Expected:    fmt.Sprintf("one of %v", spec.AllStyles()),
		})
	}
}

func validateExtensions(s *spec.BuildingSpec, r *Report) {
	for i, ext := range s.Extensions {
		path := fmt.Sprintf("extensions[%d]", i)
		if ext.Length <= 0 || ext.Width <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s: length and width must be > 0", path),
				SpecPath:    path,
				ActualValue: fmt.Sprintf("%.1f x %.1f", ext.Length, ext.Width),
				Expected:    "> 0",
			})
		}
		if ext.Floors < 1 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s: floors must be at least 1", path),
				SpecPath:    path + ".floors",
				ActualValue: ext.Floors,
				Expected:    ">= 1",
			})
		}
		if ext.Length > maxExtensionLength || ext.Width > maxExtensionWidth {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s: footprint %.0f x %.0f is larger than any plausible annex", path, ext.Length, ext.Width),
				SpecPath:    path,
				ActualValue: fmt.Sprintf("%.1f x %.1f", ext.Length, ext.Width),
				Expected:    fmt.Sprintf("<= %.0f x %.0f", maxExtensionLength, maxExtensionWidth),
			})
		}
		switch ext.Side {
		case "front", "back", "left", "right":
		case "":
			r.AddInfo(Result{
				Level:    LevelSchema,
				Message:  fmt.Sprintf("%s: no side given, defaulting to right", path),
				SpecPath: path + ".side",
			})
		default:
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s: unrecognized side %q, defaulting to right", path, ext.Side),
				SpecPath:    path + ".side",
				ActualValue: ext.Side,
				Expected:    "front, back, left or right",
			})
		}
	}
}
