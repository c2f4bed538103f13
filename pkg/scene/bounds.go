package scene

import "github.com/parataxis/massing/pkg/geo"

// LocalBounds returns the primitive's axis-aligned bounds around its own
// center, before any transform. Tori lie in the XY plane, matching the
// renderer's torus convention; builders rotate them flat where needed.
func LocalBounds(p *Primitive) geo.Box3 {
	var half geo.Vec3
	switch p.Kind {
	case KindBox:
		half = geo.V3(p.Dims.X/2, p.Dims.Y/2, p.Dims.Z/2)
	case KindCylinder, KindCone:
		half = geo.V3(p.Dims.Radius, p.Dims.Height/2, p.Dims.Radius)
	case KindSphere:
		half = geo.V3(p.Dims.Radius, p.Dims.Radius, p.Dims.Radius)
	case KindPlane:
		half = geo.V3(p.Dims.X/2, 0, p.Dims.Z/2)
	case KindTorus:
		r := p.Dims.Radius + p.Dims.Tube
		half = geo.V3(r, r, p.Dims.Tube)
	default:
		return geo.EmptyBox3()
	}
	return geo.Box3{Min: half.Scale(-1), Max: half}
}

// Bounds computes the world-space bounding box of the subtree, walking the
// hierarchy with the accumulated transform of every group on the way down.
// Invisible primitives still count: bounds describe geometry, not current
// visibility.
func Bounds(g *Group) geo.Box3 {
	return boundsUnder(g, geo.AffineIdentity())
}

func boundsUnder(g *Group, parent geo.Affine) geo.Box3 {
	box := geo.EmptyBox3()
	if g == nil {
		return box
	}
	world := parent.Mul(g.Transform())
	for _, p := range g.Prims {
		prim := world.Mul(geo.TRS(p.Position, p.Rotation, geo.V3(1, 1, 1)))
		box = box.Union(prim.ApplyBox(LocalBounds(p)))
	}
	for _, c := range g.Children {
		box = box.Union(boundsUnder(c, world))
	}
	return box
}
