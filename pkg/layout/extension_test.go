package layout

import (
	"math"
	"testing"

	"github.com/parataxis/massing/pkg/geo"
)

func buildingBounds() geo.Box3 {
	// A 15x15 footprint centered on the origin, 10.5 high.
	return geo.Box3{
		Min: geo.V3(-7.5, 0, -7.5),
		Max: geo.V3(7.5, 10.5, 7.5),
	}
}

func TestPlaceExtensionRightAdjacency(t *testing.T) {
	b := buildingBounds()
	p := PlaceExtension(b, SideRight, 6, 4, 1)

	if p.Size != geo.V3(6, 3.5, 4) {
		t.Errorf("size = %v, want (6, 3.5, 4)", p.Size)
	}
	wantOverlap := 0.05 * 15.0
	if math.Abs(p.Overlap-wantOverlap) > 1e-9 {
		t.Errorf("overlap = %v, want %v", p.Overlap, wantOverlap)
	}
	nearFace := p.Center.X - p.Size.X/2
	if math.Abs(nearFace-(b.Max.X-wantOverlap)) > 1e-9 {
		t.Errorf("near face at %v, want %v", nearFace, b.Max.X-wantOverlap)
	}
	// The near face touches the building side within the documented overlap.
	if math.Abs(nearFace-b.Max.X) > wantOverlap+1e-9 {
		t.Errorf("near face %v is farther than one overlap from %v", nearFace, b.Max.X)
	}
	if p.Center.Z != 0 {
		t.Errorf("center Z = %v, want centered on the face", p.Center.Z)
	}
}

func TestPlaceExtensionRestsOnGround(t *testing.T) {
	p := PlaceExtension(buildingBounds(), SideRight, 6, 4, 2)
	bottom := p.Center.Y - p.Size.Y/2
	if math.Abs(bottom) > 1e-9 {
		t.Errorf("extension bottom at %v, want ground level 0", bottom)
	}
	if p.Size.Y != 7.0 {
		t.Errorf("height = %v, want 2 floors * 3.5", p.Size.Y)
	}
}

func TestPlaceExtensionFront(t *testing.T) {
	b := buildingBounds()
	p := PlaceExtension(b, SideFront, 5, 3, 1)
	// Front attaches on +Z: length runs along Z, width along X.
	if p.Size != geo.V3(3, 3.5, 5) {
		t.Errorf("size = %v, want (3, 3.5, 5)", p.Size)
	}
	nearFace := p.Center.Z - p.Size.Z/2
	if nearFace >= b.Max.Z {
		t.Errorf("near face %v should overlap into the building below %v", nearFace, b.Max.Z)
	}
}

func TestPlaceExtensionLeftMirrorsRight(t *testing.T) {
	b := buildingBounds()
	left := PlaceExtension(b, SideLeft, 6, 4, 1)
	right := PlaceExtension(b, SideRight, 6, 4, 1)
	if math.Abs(left.Center.X+right.Center.X) > 1e-9 {
		t.Errorf("left center X %v should mirror right %v", left.Center.X, right.Center.X)
	}
}

func TestParseSideDefaultsToRight(t *testing.T) {
	cases := map[string]Side{
		"front":    SideFront,
		"back":     SideBack,
		"left":     SideLeft,
		"right":    SideRight,
		"":         SideRight,
		"diagonal": SideRight,
	}
	for in, want := range cases {
		if got := ParseSide(in); got != want {
			t.Errorf("ParseSide(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayFormatting(t *testing.T) {
	d := Dimensions{Width: 15, Depth: 15, TotalHeight: 10.5, FloorHeight: 3.5}
	set := Display(d)
	if set.Width != "15.0 m" {
		t.Errorf("width display = %q, want %q", set.Width, "15.0 m")
	}
	if set.Height != "10.5 m" {
		t.Errorf("height display = %q, want %q", set.Height, "10.5 m")
	}
	if set.FloorHeight != "3.5 m" {
		t.Errorf("floor height display = %q, want %q", set.FloorHeight, "3.5 m")
	}
}
