package scene

import (
	"math"
	"testing"

	"github.com/parataxis/massing/pkg/geo"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func boxPrim(id string, layer Layer, x, y, z float64) *Primitive {
	return &Primitive{
		ID:       id,
		Name:     id,
		Kind:     KindBox,
		Dims:     Dims{X: x, Y: y, Z: z},
		Rotation: geo.QuatIdentity(),
		Material: Opaque("#888888"),
		Layer:    layer,
		Visible:  true,
	}
}

func TestParseLayer(t *testing.T) {
	for _, l := range AllLayers() {
		got, err := ParseLayer(string(l))
		if err != nil {
			t.Errorf("ParseLayer(%q) returned error: %v", l, err)
		}
		if got != l {
			t.Errorf("ParseLayer(%q) = %q, want %q", l, got, l)
		}
	}
	if _, err := ParseLayer("girder"); err == nil {
		t.Error("expected error for unknown layer")
	}
}

func TestSetLayerVisible(t *testing.T) {
	root := NewGroup("building")
	block := NewGroup("core")
	root.AddGroup(block)
	wall1 := boxPrim("p1", LayerWall, 1, 3, 0.25)
	wall2 := boxPrim("p2", LayerWall, 1, 3, 0.25)
	slab := boxPrim("p3", LayerSlab, 5, 0.3, 5)
	deco := boxPrim("p4", "", 1, 1, 1)
	block.Add(wall1)
	block.Add(wall2)
	root.Add(slab)
	root.Add(deco)

	n := SetLayerVisible(root, LayerWall, false)
	if n != 2 {
		t.Errorf("affected = %d, want 2", n)
	}
	if wall1.Visible || wall2.Visible {
		t.Error("expected both walls hidden")
	}
	if !slab.Visible || !deco.Visible {
		t.Error("expected other primitives untouched")
	}

	// Identity must be preserved: the same pointers are still in the tree.
	if block.Prims[0] != wall1 || block.Prims[1] != wall2 {
		t.Error("expected primitive identity preserved")
	}

	if SetLayerVisible(nil, LayerWall, true) != 0 {
		t.Error("expected nil group to affect nothing")
	}
}

func TestAllocReleaseAccounting(t *testing.T) {
	tr := NewTracker()
	root := NewGroup("building")
	prims := []*Primitive{
		boxPrim("p1", LayerSlab, 5, 0.3, 5),
		{ID: "p2", Kind: KindCylinder, Dims: Dims{Radius: 0.2, Height: 3}, Rotation: geo.QuatIdentity(), Visible: true},
		{ID: "p3", Kind: KindTorus, Dims: Dims{Radius: 1, Tube: 0.1}, Rotation: geo.QuatIdentity(), Visible: true},
	}
	for _, p := range prims {
		if err := Alloc(tr, p); err != nil {
			t.Fatalf("Alloc failed: %v", err)
		}
		root.Add(p)
	}

	if tr.Live() != 6 {
		t.Errorf("live = %d, want 6 (geometry + material per primitive)", tr.Live())
	}
	if tr.Allocated() != 6 {
		t.Errorf("allocated = %d, want 6", tr.Allocated())
	}

	ReleaseTree(tr, root)
	if tr.Live() != 0 {
		t.Errorf("live after release = %d, want 0", tr.Live())
	}
	if tr.Released() != 6 {
		t.Errorf("released = %d, want 6", tr.Released())
	}
	if tr.BadFrees() != 0 {
		t.Errorf("bad frees = %d, want 0", tr.BadFrees())
	}

	// Handles were cleared, so a second pass must not double free.
	ReleaseTree(tr, root)
	if tr.BadFrees() != 0 {
		t.Errorf("bad frees after second release = %d, want 0", tr.BadFrees())
	}
	tr.Release(Handle(9999))
	if tr.BadFrees() != 1 {
		t.Errorf("bad frees = %d, want 1 after releasing unknown handle", tr.BadFrees())
	}
}

func TestAllocUnknownKind(t *testing.T) {
	tr := NewTracker()
	p := &Primitive{ID: "p1", Kind: "blob"}
	if err := Alloc(tr, p); err == nil {
		t.Error("expected error for unknown primitive kind")
	}
	if tr.Live() != 0 {
		t.Errorf("live = %d, want 0 after failed alloc", tr.Live())
	}
}

func TestBoundsSimpleBox(t *testing.T) {
	root := NewGroup("building")
	p := boxPrim("p1", "", 2, 4, 6)
	p.Position = geo.V3(10, 2, 0)
	root.Add(p)

	b := Bounds(root)
	if !approxEqual(b.Min.X, 9, 1e-9) || !approxEqual(b.Max.X, 11, 1e-9) {
		t.Errorf("X extent [%v, %v], want [9, 11]", b.Min.X, b.Max.X)
	}
	if !approxEqual(b.Min.Y, 0, 1e-9) || !approxEqual(b.Max.Y, 4, 1e-9) {
		t.Errorf("Y extent [%v, %v], want [0, 4]", b.Min.Y, b.Max.Y)
	}
	if !approxEqual(b.Min.Z, -3, 1e-9) || !approxEqual(b.Max.Z, 3, 1e-9) {
		t.Errorf("Z extent [%v, %v], want [-3, 3]", b.Min.Z, b.Max.Z)
	}
}

func TestBoundsScaledGroup(t *testing.T) {
	root := NewGroup("building")
	scaled := NewGroup("plan")
	scaled.Scale = geo.V3(2, 1, 2)
	root.AddGroup(scaled)
	scaled.Add(boxPrim("p1", "", 10, 4, 6))

	b := Bounds(root)
	if !approxEqual(b.Size().X, 20, 1e-9) {
		t.Errorf("scaled X size = %v, want 20", b.Size().X)
	}
	if !approxEqual(b.Size().Y, 4, 1e-9) {
		t.Errorf("Y size = %v, want 4 (unscaled)", b.Size().Y)
	}
	if !approxEqual(b.Size().Z, 12, 1e-9) {
		t.Errorf("scaled Z size = %v, want 12", b.Size().Z)
	}
}

func TestBoundsYawedBox(t *testing.T) {
	root := NewGroup("building")
	p := boxPrim("p1", "", 2, 2, 2)
	p.Rotation = geo.QuatYaw(math.Pi / 4)
	root.Add(p)

	b := Bounds(root)
	want := math.Sqrt2
	if !approxEqual(b.Max.X, want, 1e-9) || !approxEqual(b.Max.Z, want, 1e-9) {
		t.Errorf("yawed box max (%v, %v), want (%v, %v)", b.Max.X, b.Max.Z, want, want)
	}
	if !approxEqual(b.Max.Y, 1, 1e-9) {
		t.Errorf("yawed box max Y = %v, want 1", b.Max.Y)
	}
}

func TestLocalBoundsPerKind(t *testing.T) {
	cases := []struct {
		name string
		prim *Primitive
		want geo.Vec3 // half extents
	}{
		{"box", &Primitive{Kind: KindBox, Dims: Dims{X: 2, Y: 4, Z: 6}}, geo.V3(1, 2, 3)},
		{"cylinder", &Primitive{Kind: KindCylinder, Dims: Dims{Radius: 0.5, Height: 3}}, geo.V3(0.5, 1.5, 0.5)},
		{"cone", &Primitive{Kind: KindCone, Dims: Dims{Radius: 2, Height: 1}}, geo.V3(2, 0.5, 2)},
		{"sphere", &Primitive{Kind: KindSphere, Dims: Dims{Radius: 1.5}}, geo.V3(1.5, 1.5, 1.5)},
		{"plane", &Primitive{Kind: KindPlane, Dims: Dims{X: 4, Z: 2}}, geo.V3(2, 0, 1)},
		{"torus", &Primitive{Kind: KindTorus, Dims: Dims{Radius: 1, Tube: 0.2}}, geo.V3(1.2, 1.2, 0.2)},
	}
	for _, tc := range cases {
		b := LocalBounds(tc.prim)
		if b.Max != tc.want {
			t.Errorf("%s: half extents %v, want %v", tc.name, b.Max, tc.want)
		}
		if b.Min != tc.want.Scale(-1) {
			t.Errorf("%s: min %v, want %v", tc.name, b.Min, tc.want.Scale(-1))
		}
	}
}

func TestFitCameraEnclosesBounds(t *testing.T) {
	b := geo.Box3{Min: geo.V3(-7.5, 0, -7.5), Max: geo.V3(7.5, 10.5, 7.5)}
	fit := FitCamera(b, 50, 16.0/9.0)

	radius := b.Size().Length() / 2
	if fit.Distance <= radius {
		t.Errorf("distance %v should exceed bounding radius %v", fit.Distance, radius)
	}
	if fit.Target != b.Center() {
		t.Errorf("target = %v, want bounds center %v", fit.Target, b.Center())
	}
	if !approxEqual(fit.Position.Distance(fit.Target), fit.Distance, 1e-9) {
		t.Errorf("position-target distance %v != distance %v", fit.Position.Distance(fit.Target), fit.Distance)
	}
}

func TestFitCameraNarrowViewportBacksOff(t *testing.T) {
	b := geo.Box3{Min: geo.V3(-5, 0, -5), Max: geo.V3(5, 10, 5)}
	wide := FitCamera(b, 50, 16.0/9.0)
	narrow := FitCamera(b, 50, 0.5)
	if narrow.Distance <= wide.Distance {
		t.Errorf("narrow viewport distance %v should exceed wide %v", narrow.Distance, wide.Distance)
	}
}

func TestFitCameraEmptyBounds(t *testing.T) {
	fit := FitCamera(geo.EmptyBox3(), 50, 16.0/9.0)
	if fit.Distance != 30 {
		t.Errorf("fallback distance = %v, want 30", fit.Distance)
	}
	if fit.Target != (geo.Vec3{}) {
		t.Errorf("fallback target = %v, want origin", fit.Target)
	}
}

func TestPrimCount(t *testing.T) {
	root := NewGroup("building")
	child := NewGroup("wing")
	root.AddGroup(child)
	root.Add(boxPrim("p1", "", 1, 1, 1))
	child.Add(boxPrim("p2", "", 1, 1, 1))
	child.Add(boxPrim("p3", "", 1, 1, 1))
	if n := root.PrimCount(); n != 3 {
		t.Errorf("PrimCount = %d, want 3", n)
	}
}
