package scene

import (
	"math"

	"github.com/parataxis/massing/pkg/geo"
)

// CameraFit is the framing the renderer should adopt after a regeneration:
// orbit target at the building center, camera pulled back along a fixed
// three-quarter view direction far enough to enclose the bounds.
type CameraFit struct {
	Position geo.Vec3 `json:"position"`
	Target   geo.Vec3 `json:"target"`
	Distance float64  `json:"distance"`
}

// viewDirection is the unit offset from target to camera, a slightly
// elevated three-quarter view.
var viewDirection = geo.V3(1, 0.65, 1).Normalize()

// FitCamera computes the framing for the given bounds, vertical field of
// view in degrees and viewport aspect ratio (width over height). Empty
// bounds frame the origin at a fixed fallback distance.
func FitCamera(bounds geo.Box3, fovDeg, aspect float64) CameraFit {
	if bounds.IsEmpty() {
		return CameraFit{
			Position: viewDirection.Scale(30),
			Target:   geo.Vec3{},
			Distance: 30,
		}
	}
	target := bounds.Center()
	radius := bounds.Size().Length() / 2
	if radius < 1e-9 {
		radius = 1
	}

	fov := fovDeg * math.Pi / 180
	// Narrow viewports clip horizontally first.
	if aspect > 0 && aspect < 1 {
		fov = 2 * math.Atan(math.Tan(fov/2)*aspect)
	}
	distance := radius / math.Sin(fov/2)
	distance *= 1.1

	return CameraFit{
		Position: target.Add(viewDirection.Scale(distance)),
		Target:   target,
		Distance: distance,
	}
}
