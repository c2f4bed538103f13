package layout

import (
	"math"

	"github.com/parataxis/massing/pkg/geo"
)

// Side names the face of the building an extension attaches to. Front is
// the +Z face, where doors are placed.
type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// ParseSide maps a raw side name to a Side. Unrecognized names fall back to
// the right side; that fallback is part of the placement contract, not an
// error.
func ParseSide(s string) Side {
	switch Side(s) {
	case SideFront, SideBack, SideLeft:
		return Side(s)
	default:
		return SideRight
	}
}

// seamOverlapRatio is the fraction of the larger footprint axis the
// extension is pushed into the building so no gap shows at the joint.
const seamOverlapRatio = 0.05

// ExtensionPlacement locates an extension box next to an existing building.
type ExtensionPlacement struct {
	Side    Side     `json:"side"`
	Center  geo.Vec3 `json:"center"`
	Size    geo.Vec3 `json:"size"`
	Overlap float64  `json:"overlap"`
}

// PlaceExtension computes where an annex of the given footprint sits
// against one side of the existing building's bounding box. Length points
// away from the attached face, width runs along it, and the box rests on
// the ground plane. The near face is pushed into the building by the seam
// overlap. The existing building is not touched.
func PlaceExtension(bounds geo.Box3, side Side, length, width float64, floors int) ExtensionPlacement {
	size := bounds.Size()
	overlap := seamOverlapRatio * math.Max(size.X, size.Z)
	height := float64(floors) * FloorHeight
	center := bounds.Center()

	p := ExtensionPlacement{Side: side, Overlap: overlap}
	switch side {
	case SideFront:
		p.Size = geo.V3(width, height, length)
		p.Center = geo.V3(center.X, height/2, bounds.Max.Z-overlap+length/2)
	case SideBack:
		p.Size = geo.V3(width, height, length)
		p.Center = geo.V3(center.X, height/2, bounds.Min.Z+overlap-length/2)
	case SideLeft:
		p.Size = geo.V3(length, height, width)
		p.Center = geo.V3(bounds.Min.X+overlap-length/2, height/2, center.Z)
	default: // right
		p.Side = SideRight
		p.Size = geo.V3(length, height, width)
		p.Center = geo.V3(bounds.Max.X-overlap+length/2, height/2, center.Z)
	}
	return p
}
