package scene

import (
	"errors"
	"fmt"

	"github.com/parataxis/massing/pkg/geo"
)

// Kind identifies the primitive shape.
type Kind string

const (
	KindBox      Kind = "box"
	KindCylinder Kind = "cylinder"
	KindCone     Kind = "cone"
	KindSphere   Kind = "sphere"
	KindPlane    Kind = "plane"
	KindTorus    Kind = "torus"
)

// Layer identifies a structural layer. Only parts emitted by the block
// builder carry one, and only these parts can be re-toggled in place after
// generation.
type Layer string

const (
	LayerSlab   Layer = "slab"
	LayerWall   Layer = "wall"
	LayerColumn Layer = "column"
	LayerBeam   Layer = "beam"
	LayerPlate  Layer = "plate"
)

// ErrUnknownLayer is returned for layer names outside the structural set.
var ErrUnknownLayer = errors.New("unknown structural layer")

// AllLayers returns the structural layers in build order.
func AllLayers() []Layer {
	return []Layer{LayerSlab, LayerWall, LayerColumn, LayerBeam, LayerPlate}
}

// ParseLayer converts a raw layer name into a Layer.
func ParseLayer(s string) (Layer, error) {
	switch Layer(s) {
	case LayerSlab, LayerWall, LayerColumn, LayerBeam, LayerPlate:
		return Layer(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLayer, s)
}

// Feature tags decorative geometry with the toggle that emitted it.
// Untagged primitives are unconditional (mass, foundation, doors, trim).
type Feature string

const (
	FeatureRoof        Feature = "roof"
	FeatureWindows     Feature = "windows"
	FeatureBalconies   Feature = "balconies"
	FeatureLighting    Feature = "lighting"
	FeatureSolarPanels Feature = "solar_panels"
	FeatureNeonFrames  Feature = "neon_frames"
)

// Material describes primitive surface appearance. The zero NoDepthWrite
// means the primitive writes depth normally; translucent overlays such as
// roof plates set it.
type Material struct {
	Color        string  `json:"color"`
	Opacity      float64 `json:"opacity"`
	Transparent  bool    `json:"transparent,omitempty"`
	Emissive     bool    `json:"emissive,omitempty"`
	NoDepthWrite bool    `json:"no_depth_write,omitempty"`
}

// Opaque returns a fully opaque material in the given color.
func Opaque(color string) Material {
	return Material{Color: color, Opacity: 1}
}

// Translucent returns a transparent material at the given opacity.
func Translucent(color string, opacity float64) Material {
	return Material{Color: color, Opacity: opacity, Transparent: true}
}

// Dims carries the shape parameters for a primitive. Which fields apply
// depends on the kind: boxes use X/Y/Z, planes X/Z, cylinders and cones
// Radius/Height, spheres Radius, tori Radius/Tube. Segments controls radial
// tessellation where it applies; zero takes the renderer default.
type Dims struct {
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Z        float64 `json:"z,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Tube     float64 `json:"tube,omitempty"`
	Segments int     `json:"segments,omitempty"`
}

// Resources holds the opaque rendering handles behind a primitive. They are
// never serialized; the document is pure geometry description.
type Resources struct {
	Geometry Handle
	Material Handle
}

// Primitive is one renderable shape in the building hierarchy. Positions are
// the shape center in the parent group's frame.
type Primitive struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Kind      Kind       `json:"kind"`
	Dims      Dims       `json:"dims"`
	Position  geo.Vec3   `json:"position"`
	Rotation  [4]float64 `json:"rotation"`
	Material  Material   `json:"material"`
	Layer     Layer      `json:"layer,omitempty"`
	Feature   Feature    `json:"feature,omitempty"`
	Visible   bool       `json:"visible"`
	Resources Resources  `json:"-"`
}

// Group is a named node in the building hierarchy. Transforms apply to all
// children; visibility cascades in the renderer but is stored per node.
type Group struct {
	Name     string       `json:"name"`
	Position geo.Vec3     `json:"position"`
	Rotation [4]float64   `json:"rotation"`
	Scale    geo.Vec3     `json:"scale"`
	Visible  bool         `json:"visible"`
	Feature  Feature      `json:"feature,omitempty"`
	Children []*Group     `json:"children,omitempty"`
	Prims    []*Primitive `json:"primitives,omitempty"`
}

// NewGroup creates an empty visible group with an identity transform.
func NewGroup(name string) *Group {
	return &Group{
		Name:     name,
		Rotation: geo.QuatIdentity(),
		Scale:    geo.V3(1, 1, 1),
		Visible:  true,
	}
}

// AddGroup attaches child to g.
func (g *Group) AddGroup(child *Group) {
	g.Children = append(g.Children, child)
}

// Add attaches a primitive to g.
func (g *Group) Add(p *Primitive) {
	g.Prims = append(g.Prims, p)
}

// Transform returns the group's local transform.
func (g *Group) Transform() geo.Affine {
	return geo.TRS(g.Position, g.Rotation, g.Scale)
}

// Walk visits every primitive in the subtree, depth first.
func (g *Group) Walk(fn func(*Primitive)) {
	for _, p := range g.Prims {
		fn(p)
	}
	for _, c := range g.Children {
		c.Walk(fn)
	}
}

// WalkGroups visits g and every descendant group, depth first.
func (g *Group) WalkGroups(fn func(*Group)) {
	fn(g)
	for _, c := range g.Children {
		c.WalkGroups(fn)
	}
}

// PrimCount returns the number of primitives in the subtree.
func (g *Group) PrimCount() int {
	n := 0
	g.Walk(func(*Primitive) { n++ })
	return n
}

// SetLayerVisible flips visibility on every primitive of the given layer in
// the subtree, in place. It never allocates or releases anything; primitive
// identity is preserved. Returns the number of primitives affected.
func SetLayerVisible(g *Group, layer Layer, visible bool) int {
	if g == nil {
		return 0
	}
	n := 0
	g.Walk(func(p *Primitive) {
		if p.Layer == layer {
			p.Visible = visible
			n++
		}
	})
	return n
}
