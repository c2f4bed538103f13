package scene

import "fmt"

// Handle identifies one allocated rendering resource. Zero means nothing is
// allocated.
type Handle uint64

// Factory constructs the rendering resources behind primitives. The
// generator is written against this interface so the rendering collaborator
// stays swappable; the in-process Tracker is the default implementation and
// doubles as the resource ledger.
type Factory interface {
	Box(x, y, z float64) Handle
	Cylinder(radius, height float64, segments int) Handle
	Cone(radius, height float64, segments int) Handle
	Sphere(radius float64, segments int) Handle
	Plane(x, z float64) Handle
	Torus(radius, tube float64, segments int) Handle
	Material(m Material) Handle
	Release(h Handle)
}

// Alloc creates geometry and material resources for p through the factory
// and records the handles on the primitive.
func Alloc(f Factory, p *Primitive) error {
	switch p.Kind {
	case KindBox:
		p.Resources.Geometry = f.Box(p.Dims.X, p.Dims.Y, p.Dims.Z)
	case KindCylinder:
		p.Resources.Geometry = f.Cylinder(p.Dims.Radius, p.Dims.Height, p.Dims.Segments)
	case KindCone:
		p.Resources.Geometry = f.Cone(p.Dims.Radius, p.Dims.Height, p.Dims.Segments)
	case KindSphere:
		p.Resources.Geometry = f.Sphere(p.Dims.Radius, p.Dims.Segments)
	case KindPlane:
		p.Resources.Geometry = f.Plane(p.Dims.X, p.Dims.Z)
	case KindTorus:
		p.Resources.Geometry = f.Torus(p.Dims.Radius, p.Dims.Tube, p.Dims.Segments)
	default:
		return fmt.Errorf("alloc: unknown primitive kind %q", p.Kind)
	}
	p.Resources.Material = f.Material(p.Material)
	return nil
}

// ReleaseTree releases every resource owned by the subtree and clears the
// handles. Safe to call on nil.
func ReleaseTree(f Factory, g *Group) {
	if g == nil {
		return
	}
	g.Walk(func(p *Primitive) {
		if p.Resources.Geometry != 0 {
			f.Release(p.Resources.Geometry)
		}
		if p.Resources.Material != 0 {
			f.Release(p.Resources.Material)
		}
		p.Resources = Resources{}
	})
}

// Tracker is a Factory that only accounts: every allocation gets a fresh
// handle and stays in the live set until released. Releasing an unknown
// handle is counted separately so double releases surface in tests.
type Tracker struct {
	next      Handle
	live      map[Handle]string
	allocated int
	released  int
	badFrees  int
}

// NewTracker creates an empty resource tracker.
func NewTracker() *Tracker {
	return &Tracker{live: make(map[Handle]string)}
}

func (t *Tracker) alloc(kind string) Handle {
	t.next++
	t.live[t.next] = kind
	t.allocated++
	return t.next
}

func (t *Tracker) Box(x, y, z float64) Handle { return t.alloc("box") }

func (t *Tracker) Cylinder(radius, height float64, segments int) Handle {
	return t.alloc("cylinder")
}

func (t *Tracker) Cone(radius, height float64, segments int) Handle {
	return t.alloc("cone")
}

func (t *Tracker) Sphere(radius float64, segments int) Handle {
	return t.alloc("sphere")
}

func (t *Tracker) Plane(x, z float64) Handle { return t.alloc("plane") }

func (t *Tracker) Torus(radius, tube float64, segments int) Handle {
	return t.alloc("torus")
}

func (t *Tracker) Material(m Material) Handle { return t.alloc("material") }

// Release frees a handle. Unknown or already-freed handles increment the
// bad-free counter instead of panicking.
func (t *Tracker) Release(h Handle) {
	if _, ok := t.live[h]; !ok {
		t.badFrees++
		return
	}
	delete(t.live, h)
	t.released++
}

// Live returns the number of currently allocated resources.
func (t *Tracker) Live() int { return len(t.live) }

// Allocated returns the total number of allocations ever made.
func (t *Tracker) Allocated() int { return t.allocated }

// Released returns the total number of successful releases.
func (t *Tracker) Released() int { return t.released }

// BadFrees returns the number of releases of unknown handles.
func (t *Tracker) BadFrees() int { return t.badFrees }
