package style

import (
	"testing"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/layout"
	"github.com/parataxis/massing/pkg/scene"
	"github.com/parataxis/massing/pkg/spec"
)

func buildDetachedFor(t *testing.T, width, depth float64, floors int) (*scene.Group, map[string]*scene.Group) {
	t.Helper()
	dims := layout.Dimensions{
		Width:       width,
		Depth:       depth,
		TotalHeight: float64(floors) * layout.FloorHeight,
		FloorHeight: layout.FloorHeight,
	}
	root, registry, err := Build(spec.StyleDetached, scene.NewTracker(), dims, floors, allFeatures())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return root, registry
}

func findGroup(root *scene.Group, name string) *scene.Group {
	var found *scene.Group
	root.WalkGroups(func(g *scene.Group) {
		if g.Name == name && found == nil {
			found = g
		}
	})
	return found
}

func TestDetachedRescale(t *testing.T) {
	root, _ := buildDetachedFor(t, 140, 80, 2)

	plan := findGroup(root, "plan")
	if plan == nil {
		t.Fatal("missing plan group")
	}
	if plan.Scale != geo.V3(2, 1, 2) {
		t.Errorf("plan scale = %v, want (2, 1, 2)", plan.Scale)
	}
}

func TestDetachedRescaleLeavesHeightAlone(t *testing.T) {
	root, _ := buildDetachedFor(t, 35, 20, 2)

	plan := findGroup(root, "plan")
	if plan == nil {
		t.Fatal("missing plan group")
	}
	if plan.Scale != geo.V3(0.5, 1, 0.5) {
		t.Errorf("plan scale = %v, want (0.5, 1, 0.5)", plan.Scale)
	}

	// World bounds confirm the squeeze happens on X and Z only.
	b := scene.Bounds(root)
	if b.Size().X > 40 {
		t.Errorf("scaled footprint width %v, want under 40", b.Size().X)
	}
	if b.Size().Y < 7 {
		t.Errorf("height %v collapsed by rescale, want >= 7", b.Size().Y)
	}
}

func TestDetachedRegistryBlocks(t *testing.T) {
	_, registry := buildDetachedFor(t, 70, 40, 2)

	for _, key := range []string{"core", "leftWing", "masterWing", "garage", "breakfast", "dining"} {
		g, ok := registry[key]
		if !ok {
			t.Errorf("registry missing block %q", key)
			continue
		}
		counts := layerCounts(g)
		if counts[scene.LayerSlab] != 1 || counts[scene.LayerWall] != 4 {
			t.Errorf("block %q layer counts = %v", key, counts)
		}
	}
}

func TestDetachedBlockFootprintsShareEdgesOnly(t *testing.T) {
	_, registry := buildDetachedFor(t, 70, 40, 2)

	rects := BlockFootprints(registry)
	if len(rects) != 6 {
		t.Fatalf("got %d footprints, want 6", len(rects))
	}

	outline, err := geo.RectUnionOutline(rects)
	if err != nil {
		t.Fatalf("block footprints do not tile cleanly: %v", err)
	}
	// 70x40 base minus the notch behind the master wing.
	if !approxEqual(outline.Area(), 2640, 1e-6) {
		t.Errorf("footprint area = %v, want 2640", outline.Area())
	}
}

func TestDetachedDoorPair(t *testing.T) {
	root, _ := buildDetachedFor(t, 70, 40, 2)

	var entry, garage *scene.Primitive
	root.Walk(func(p *scene.Primitive) {
		switch p.Name {
		case "door_entry_leaf":
			entry = p
		case "door_garage_leaf":
			garage = p
		}
	})
	if entry == nil || garage == nil {
		t.Fatal("missing entry or garage door")
	}
	if entry.Material.Color != garage.Material.Color {
		t.Errorf("door pair colors differ: %s vs %s", entry.Material.Color, garage.Material.Color)
	}
	if entry.Material.Color != "#2457a8" {
		t.Errorf("door color = %s, want the blue pair", entry.Material.Color)
	}
}

func TestDetachedGarageSingleStorey(t *testing.T) {
	_, registry := buildDetachedFor(t, 70, 40, 2)

	var garageWall, coreWall *scene.Primitive
	registry["garage"].Walk(func(p *scene.Primitive) {
		if p.Layer == scene.LayerWall && garageWall == nil {
			garageWall = p
		}
	})
	registry["core"].Walk(func(p *scene.Primitive) {
		if p.Layer == scene.LayerWall && coreWall == nil {
			coreWall = p
		}
	})
	if garageWall == nil || coreWall == nil {
		t.Fatal("missing block walls")
	}
	if !approxEqual(garageWall.Dims.Y, 3.5, 1e-9) {
		t.Errorf("garage wall height = %v, want single storey 3.5", garageWall.Dims.Y)
	}
	if !approxEqual(coreWall.Dims.Y, 7.0, 1e-9) {
		t.Errorf("core wall height = %v, want 7.0 for two storeys", coreWall.Dims.Y)
	}
}
