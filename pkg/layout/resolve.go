package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/parataxis/massing/pkg/spec"
	"github.com/parataxis/massing/pkg/validation"
)

// FloorHeight is the fixed storey height in metres. Every derived height in
// the system is a multiple of it.
const FloorHeight = 3.5

// The floorplan style composes its blocks on a fixed base footprint and
// rescales the finished assembly to the requested envelope, per axis.
const (
	DetachedBaseWidth = 70.0
	DetachedBaseDepth = 40.0
)

// ErrInvalidParameter is returned when a spec parameter would produce
// degenerate geometry. It is checked before any dimension math runs.
var ErrInvalidParameter = errors.New("invalid building parameter")

// Dimensions is the concrete envelope derived from a BuildingSpec.
type Dimensions struct {
	Width       float64 `json:"width"`
	Depth       float64 `json:"depth"`
	TotalHeight float64 `json:"total_height"`
	FloorHeight float64 `json:"floor_height"`
}

// Resolve converts the coarse spec parameters into concrete envelope
// dimensions. The footprint is square: each storey contributes an equal
// share of the requested surface area, and the side length is the square
// root of that share widened by a fixed facade ratio.
//
// Volume is accepted but does not participate in the formula. That mirrors
// long-standing behavior and is surfaced by Diagnose rather than silently
// changed here.
func Resolve(floors int, volume, surfaceArea float64) (Dimensions, error) {
	if floors < 1 {
		return Dimensions{}, fmt.Errorf("%w: floors must be at least 1, got %d", ErrInvalidParameter, floors)
	}
	if surfaceArea <= 0 {
		return Dimensions{}, fmt.Errorf("%w: surface area must be positive, got %g", ErrInvalidParameter, surfaceArea)
	}
	_ = volume

	baseArea := surfaceArea / float64(floors)
	side := math.Sqrt(baseArea) * 1.5

	return Dimensions{
		Width:       side,
		Depth:       side,
		TotalHeight: float64(floors) * FloorHeight,
		FloorHeight: FloorHeight,
	}, nil
}

// EnvelopeVolume returns the volume of the resolved box envelope.
func (d Dimensions) EnvelopeVolume() float64 {
	return d.Width * d.Depth * d.TotalHeight
}

// Diagnose runs analytical checks on a spec against its resolved dimensions
// and reports findings without failing generation.
func Diagnose(s *spec.BuildingSpec, d Dimensions) *validation.Report {
	r := validation.NewReport()

	// 1. The volume input is recorded but not load-bearing; make the gap
	//    between target and derived envelope visible.
	if s.Volume > 0 {
		derived := d.EnvelopeVolume()
		r.AddInfo(validation.Result{
			Level:       validation.LevelAnalytical,
			Message:     fmt.Sprintf("volume target %.0f m3 recorded; envelope derived from surface area is %.0f m3", s.Volume, derived),
			SpecPath:    "volume",
			ActualValue: derived,
			Expected:    fmt.Sprintf("%.0f (target, not enforced)", s.Volume),
		})
	}

	// 2. Slender towers read badly in the three-quarter view.
	if d.Width > 0 && d.TotalHeight/d.Width > 8 {
		r.AddWarning(validation.Result{
			Level:       validation.LevelAnalytical,
			Message:     fmt.Sprintf("aspect ratio %.1f is extremely slender", d.TotalHeight/d.Width),
			SpecPath:    "floors",
			ActualValue: d.TotalHeight / d.Width,
			Expected:    "<= 8",
			Suggestions: []string{"increase surface_area or reduce floors"},
		})
	}

	// 3. The floorplan style rescales a fixed 70x40 base; extreme factors
	//    distort its proportions.
	if s.Style == spec.StyleDetached {
		sx := d.Width / DetachedBaseWidth
		sz := d.Depth / DetachedBaseDepth
		if sx < 0.25 || sx > 4 || sz < 0.25 || sz > 4 {
			r.AddWarning(validation.Result{
				Level:       validation.LevelAnalytical,
				Message:     fmt.Sprintf("floorplan rescale factors (%.2f, %.2f) are far from 1 and will distort the plan", sx, sz),
				SpecPath:    "surface_area",
				ActualValue: fmt.Sprintf("(%.2f, %.2f)", sx, sz),
				Expected:    "0.25-4 per axis",
			})
		}
	}

	return r
}
