package style

import (
	"math"
	"testing"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/layout"
	"github.com/parataxis/massing/pkg/scene"
	"github.com/parataxis/massing/pkg/spec"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func testBuilder(feats spec.Features) *Builder {
	dims := layout.Dimensions{Width: 15, Depth: 15, TotalHeight: 10.5, FloorHeight: 3.5}
	return newBuilder(scene.NewTracker(), dims, 3, feats, stylePalette(spec.StyleModern))
}

func layerCounts(g *scene.Group) map[scene.Layer]int {
	counts := make(map[scene.Layer]int)
	g.Walk(func(p *scene.Primitive) {
		if p.Layer != "" {
			counts[p.Layer]++
		}
	})
	return counts
}

func TestBuildBlockParts(t *testing.T) {
	b := testBuilder(spec.DefaultFeatures())
	g := b.BuildBlock(b.Root, "core", geo.V3(2, 0, -3), 0, 10, 8, 3.5, nil)

	if b.Registry["core"] != g {
		t.Error("expected block registered under its key")
	}
	if g.Position != geo.V3(2, 0, -3) {
		t.Errorf("block position = %v, want (2, 0, -3)", g.Position)
	}
	if n := g.PrimCount(); n != 14 {
		t.Errorf("block has %d primitives, want 14", n)
	}

	counts := layerCounts(g)
	want := map[scene.Layer]int{
		scene.LayerSlab:   1,
		scene.LayerWall:   4,
		scene.LayerColumn: 4,
		scene.LayerBeam:   4,
		scene.LayerPlate:  1,
	}
	for layer, n := range want {
		if counts[layer] != n {
			t.Errorf("layer %s has %d parts, want %d", layer, counts[layer], n)
		}
	}
}

func TestBuildBlockGeometry(t *testing.T) {
	b := testBuilder(spec.DefaultFeatures())
	g := b.BuildBlock(b.Root, "core", geo.Vec3{}, 0, 10, 8, 3.5, nil)

	var slab, wallFront, plate *scene.Primitive
	columns := 0
	g.Walk(func(p *scene.Primitive) {
		switch p.Name {
		case "core_slab":
			slab = p
		case "core_wall_front":
			wallFront = p
		case "core_plate":
			plate = p
		}
		if p.Layer == scene.LayerColumn {
			columns++
			if !approxEqual(math.Abs(p.Position.X), 5, 1e-9) || !approxEqual(math.Abs(p.Position.Z), 4, 1e-9) {
				t.Errorf("column at (%v, %v), want footprint corner", p.Position.X, p.Position.Z)
			}
			if p.Dims.Radius != 0.2 {
				t.Errorf("column radius = %v, want 0.2", p.Dims.Radius)
			}
		}
		if p.Layer == scene.LayerBeam {
			if !approxEqual(p.Position.Y, 3.65, 1e-9) {
				t.Errorf("beam at y=%v, want 3.65", p.Position.Y)
			}
		}
	})

	if slab == nil || wallFront == nil || plate == nil {
		t.Fatal("missing slab, front wall or plate")
	}
	if columns != 4 {
		t.Errorf("found %d columns, want 4", columns)
	}

	if slab.Dims != (scene.Dims{X: 10, Y: 0.3, Z: 8}) {
		t.Errorf("slab dims = %+v", slab.Dims)
	}
	if !approxEqual(slab.Position.Y, 0.15, 1e-9) {
		t.Errorf("slab center y = %v, want 0.15", slab.Position.Y)
	}

	// Walls sit outside the footprint by half their thickness.
	if !approxEqual(wallFront.Position.Z, 4.125, 1e-9) {
		t.Errorf("front wall z = %v, want 4.125", wallFront.Position.Z)
	}
	if wallFront.Dims.Z != 0.25 || wallFront.Dims.Y != 3.5 {
		t.Errorf("front wall dims = %+v", wallFront.Dims)
	}

	if plate.Dims.X != 9.8 || plate.Dims.Z != 7.8 || plate.Dims.Y != 0.1 {
		t.Errorf("plate dims = %+v, want footprint inset by 0.2", plate.Dims)
	}
	if !plate.Material.Transparent || !plate.Material.NoDepthWrite {
		t.Error("plate must be translucent with depth write off")
	}
	if plate.Position.Y <= 3.65 {
		t.Errorf("plate y = %v, want above the beam ring", plate.Position.Y)
	}
}

func TestBuildBlockVisibilityFromToggles(t *testing.T) {
	feats := spec.DefaultFeatures()
	feats.Columns = false
	feats.Plates = false
	b := testBuilder(feats)
	g := b.BuildBlock(b.Root, "core", geo.Vec3{}, 0, 10, 8, 3.5, nil)

	g.Walk(func(p *scene.Primitive) {
		switch p.Layer {
		case scene.LayerColumn, scene.LayerPlate:
			if p.Visible {
				t.Errorf("%s should start hidden", p.Name)
			}
		case scene.LayerSlab, scene.LayerWall, scene.LayerBeam:
			if !p.Visible {
				t.Errorf("%s should start visible", p.Name)
			}
		}
	})

	// Hidden parts are still emitted; toggling is a visibility change only.
	if n := g.PrimCount(); n != 14 {
		t.Errorf("block has %d primitives, want 14 regardless of toggles", n)
	}
}

func TestBuildBlockMaterialOverride(t *testing.T) {
	b := testBuilder(spec.DefaultFeatures())
	mat := scene.Opaque("#123456")
	g := b.BuildBlock(b.Root, "garage", geo.Vec3{}, 0, 6, 6, 3.5, &mat)

	g.Walk(func(p *scene.Primitive) {
		if p.Layer != scene.LayerPlate && p.Material.Color != "#123456" {
			t.Errorf("%s color = %s, want override", p.Name, p.Material.Color)
		}
	})
}

func TestBuildBlockGroundLevel(t *testing.T) {
	b := testBuilder(spec.DefaultFeatures())
	g := b.BuildBlock(b.Root, "upper", geo.Vec3{}, 7, 10, 8, 3.5, nil)

	g.Walk(func(p *scene.Primitive) {
		if p.Layer == scene.LayerSlab && !approxEqual(p.Position.Y, 7.15, 1e-9) {
			t.Errorf("raised slab y = %v, want 7.15", p.Position.Y)
		}
		if p.Layer == scene.LayerBeam && !approxEqual(p.Position.Y, 10.65, 1e-9) {
			t.Errorf("raised beam y = %v, want 10.65", p.Position.Y)
		}
	})
}
