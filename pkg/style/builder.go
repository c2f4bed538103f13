package style

import (
	"fmt"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/layout"
	"github.com/parataxis/massing/pkg/scene"
	"github.com/parataxis/massing/pkg/spec"
)

// Builder carries the shared state one generation pass mutates: the building
// group every sub-builder emits into, the block registry, and a monotonic
// sequence for primitive IDs. One Builder per generation call; never reused.
type Builder struct {
	Root     *scene.Group
	Registry map[string]*scene.Group

	factory  scene.Factory
	dims     layout.Dimensions
	floors   int
	features spec.Features
	palette  Palette
	seq      int
	err      error
}

func newBuilder(f scene.Factory, dims layout.Dimensions, floors int, feats spec.Features, p Palette) *Builder {
	return &Builder{
		Root:     scene.NewGroup("building"),
		Registry: make(map[string]*scene.Group),
		factory:  f,
		dims:     dims,
		floors:   floors,
		features: feats,
		palette:  p,
	}
}

// Err returns the first allocation failure seen during the pass, if any.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) nextID(name string) string {
	b.seq++
	return fmt.Sprintf("%s_%d", name, b.seq)
}

// emit allocates resources for p, assigns its ID and attaches it to parent.
// Allocation failures stick on the builder; later emits still attach so the
// tree stays well formed for disposal.
func (b *Builder) emit(parent *scene.Group, p *scene.Primitive) *scene.Primitive {
	p.ID = b.nextID(p.Name)
	if p.Rotation == ([4]float64{}) {
		p.Rotation = geo.QuatIdentity()
	}
	p.Visible = true
	if err := scene.Alloc(b.factory, p); err != nil && b.err == nil {
		b.err = err
	}
	parent.Add(p)
	return p
}

func (b *Builder) group(parent *scene.Group, name string) *scene.Group {
	g := scene.NewGroup(name)
	parent.AddGroup(g)
	return g
}

func (b *Builder) box(parent *scene.Group, name string, x, y, z float64, pos geo.Vec3, m scene.Material) *scene.Primitive {
	return b.emit(parent, &scene.Primitive{
		Name:     name,
		Kind:     scene.KindBox,
		Dims:     scene.Dims{X: x, Y: y, Z: z},
		Position: pos,
		Material: m,
	})
}

func (b *Builder) cylinder(parent *scene.Group, name string, radius, height float64, segments int, pos geo.Vec3, m scene.Material) *scene.Primitive {
	return b.emit(parent, &scene.Primitive{
		Name:     name,
		Kind:     scene.KindCylinder,
		Dims:     scene.Dims{Radius: radius, Height: height, Segments: segments},
		Position: pos,
		Material: m,
	})
}

func (b *Builder) cone(parent *scene.Group, name string, radius, height float64, segments int, pos geo.Vec3, m scene.Material) *scene.Primitive {
	return b.emit(parent, &scene.Primitive{
		Name:     name,
		Kind:     scene.KindCone,
		Dims:     scene.Dims{Radius: radius, Height: height, Segments: segments},
		Position: pos,
		Material: m,
	})
}

func (b *Builder) sphere(parent *scene.Group, name string, radius float64, pos geo.Vec3, m scene.Material) *scene.Primitive {
	return b.emit(parent, &scene.Primitive{
		Name:     name,
		Kind:     scene.KindSphere,
		Dims:     scene.Dims{Radius: radius},
		Position: pos,
		Material: m,
	})
}

func (b *Builder) torus(parent *scene.Group, name string, radius, tube float64, pos geo.Vec3, m scene.Material) *scene.Primitive {
	return b.emit(parent, &scene.Primitive{
		Name:     name,
		Kind:     scene.KindTorus,
		Dims:     scene.Dims{Radius: radius, Tube: tube},
		Position: pos,
		Material: m,
	})
}

// addMass emits the main rectangular bulk: the full envelope box centered at
// mid-height, semi-transparent so structure reads through it.
func (b *Builder) addMass() *scene.Primitive {
	d := b.dims
	m := scene.Translucent(b.palette.Mass, b.palette.MassOpacity)
	return b.box(b.Root, "mass", d.Width, d.TotalHeight, d.Depth, geo.V3(0, d.TotalHeight/2, 0), m)
}

// addFoundation emits a slab slightly larger than the footprint, flush with
// the ground. Styles with composite footprints use their own plate instead.
func (b *Builder) addFoundation() *scene.Primitive {
	d := b.dims
	return b.box(b.Root, "foundation", d.Width+1, 0.5, d.Depth+1, geo.V3(0, 0.25, 0), scene.Opaque(b.palette.Foundation))
}

// floorY returns the center height of the given storey (0-based).
func (b *Builder) floorY(floor int) float64 {
	return float64(floor)*b.dims.FloorHeight + b.dims.FloorHeight/2
}
