package mesh

import (
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/parataxis/massing/pkg/geo"
)

// ExtrudeProfile sweeps a ground-plane polygon vertically into a closed
// prism. The bottom cap sits at y=0 and the top at y=thickness. Cap
// triangles come from ear clipping; their orientation is normalized per
// triangle since the triangulator does not guarantee a winding.
func ExtrudeProfile(profile geo.Polygon, thickness float64) (*Mesh, error) {
	if profile.Len() < 3 {
		return nil, fmt.Errorf("extrude: profile needs at least 3 vertices, got %d", profile.Len())
	}
	if thickness <= 0 {
		return nil, fmt.Errorf("extrude: thickness must be positive, got %g", thickness)
	}
	p := profile.EnsureCCW()
	tris, err := earcut.Earcut(p.FlatCoords(), nil, 2)
	if err != nil {
		return nil, fmt.Errorf("extrude: triangulating %d-vertex profile: %w", p.Len(), err)
	}

	m := &Mesh{Name: "profile"}
	n := p.Len()
	bottom := make([]uint32, n)
	top := make([]uint32, n)
	for i, v := range p.Vertices {
		bottom[i] = m.addVertex(geo.V3(v.X, 0, v.Z))
	}
	for i, v := range p.Vertices {
		top[i] = m.addVertex(geo.V3(v.X, thickness, v.Z))
	}

	// 1. Side walls, one outward quad per edge.
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.addQuad(bottom[i], top[i], top[j], bottom[j])
	}

	// 2. Caps. A triangle counterclockwise in the (x, z) parametrization
	//    faces -Y, so the bottom keeps the clip order and the top reverses.
	for t := 0; t+2 < len(tris); t += 3 {
		i0, i1, i2 := tris[t], tris[t+1], tris[t+2]
		a, b, c := p.Vertices[i0], p.Vertices[i1], p.Vertices[i2]
		if b.Sub(a).Cross(c.Sub(a)) < 0 {
			i1, i2 = i2, i1
		}
		m.addTriangle(bottom[i0], bottom[i1], bottom[i2])
		m.addTriangle(top[i0], top[i2], top[i1])
	}
	return m, nil
}

// SitePlate extrudes the composite outline of the given ground rectangles
// into a plate whose top face sits at y=0. The scale factors map plan units
// to world units per axis, matching the plan group of composite floorplans.
func SitePlate(rects []geo.Rect, thickness, scaleX, scaleZ float64) (*Mesh, error) {
	outline, err := geo.RectUnionOutline(rects)
	if err != nil {
		return nil, fmt.Errorf("site plate: %w", err)
	}
	m, err := ExtrudeProfile(outline, thickness)
	if err != nil {
		return nil, err
	}
	m.Name = "site_plate"
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		m.Vertices[i] *= scaleX
		m.Vertices[i+1] -= thickness
		m.Vertices[i+2] *= scaleZ
	}
	return m, nil
}
