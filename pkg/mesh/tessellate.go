package mesh

import (
	"math"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/scene"
)

// Segment counts used when a primitive leaves tessellation to the default.
const (
	defaultRadialSegments = 24
	defaultTubeSegments   = 12
	minRadialSegments     = 3
)

// Tessellate walks the building tree and produces one triangle mesh per
// visible primitive, in world space. Hidden primitives and subtrees are
// skipped so the export matches what the viewer shows.
func Tessellate(root *scene.Group) *Model {
	model := &Model{}
	if root != nil {
		walkMeshes(root, geo.AffineIdentity(), model)
	}
	return model
}

func walkMeshes(g *scene.Group, parent geo.Affine, model *Model) {
	if !g.Visible {
		return
	}
	world := parent.Mul(g.Transform())
	for _, p := range g.Prims {
		if !p.Visible {
			continue
		}
		m := primitiveMesh(p)
		if m == nil {
			continue
		}
		m.Name = p.ID
		m.transform(world.Mul(geo.TRS(p.Position, p.Rotation, geo.V3(1, 1, 1))))
		model.Add(m)
	}
	for _, c := range g.Children {
		walkMeshes(c, world, model)
	}
}

func primitiveMesh(p *scene.Primitive) *Mesh {
	d := p.Dims
	switch p.Kind {
	case scene.KindBox:
		return boxMesh(d.X, d.Y, d.Z)
	case scene.KindCylinder:
		return cylinderMesh(d.Radius, d.Height, radial(d.Segments))
	case scene.KindCone:
		return coneMesh(d.Radius, d.Height, radial(d.Segments))
	case scene.KindSphere:
		return sphereMesh(d.Radius, radial(d.Segments))
	case scene.KindPlane:
		return planeMesh(d.X, d.Z)
	case scene.KindTorus:
		return torusMesh(d.Radius, d.Tube, radial(d.Segments), defaultTubeSegments)
	default:
		return nil
	}
}

func radial(segments int) int {
	if segments <= 0 {
		return defaultRadialSegments
	}
	if segments < minRadialSegments {
		return minRadialSegments
	}
	return segments
}

func boxMesh(x, y, z float64) *Mesh {
	hx, hy, hz := x/2, y/2, z/2
	m := &Mesh{}
	var v [8]uint32
	for i, c := range [8]geo.Vec3{
		geo.V3(-hx, -hy, -hz), geo.V3(hx, -hy, -hz), geo.V3(hx, hy, -hz), geo.V3(-hx, hy, -hz),
		geo.V3(-hx, -hy, hz), geo.V3(hx, -hy, hz), geo.V3(hx, hy, hz), geo.V3(-hx, hy, hz),
	} {
		v[i] = m.addVertex(c)
	}
	m.addQuad(v[4], v[5], v[6], v[7]) // front
	m.addQuad(v[1], v[0], v[3], v[2]) // back
	m.addQuad(v[5], v[1], v[2], v[6]) // right
	m.addQuad(v[0], v[4], v[7], v[3]) // left
	m.addQuad(v[3], v[7], v[6], v[2]) // top
	m.addQuad(v[4], v[0], v[1], v[5]) // bottom
	return m
}

func cylinderMesh(r, h float64, n int) *Mesh {
	m := &Mesh{}
	bottom := make([]uint32, n)
	top := make([]uint32, n)
	for i := 0; i < n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n)
		c, s := math.Cos(th), math.Sin(th)
		bottom[i] = m.addVertex(geo.V3(r*c, -h/2, r*s))
		top[i] = m.addVertex(geo.V3(r*c, h/2, r*s))
	}
	cb := m.addVertex(geo.V3(0, -h/2, 0))
	ct := m.addVertex(geo.V3(0, h/2, 0))
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.addQuad(bottom[i], top[i], top[j], bottom[j])
		m.addTriangle(ct, top[j], top[i])
		m.addTriangle(cb, bottom[i], bottom[j])
	}
	return m
}

func coneMesh(r, h float64, n int) *Mesh {
	m := &Mesh{}
	base := make([]uint32, n)
	for i := 0; i < n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n)
		base[i] = m.addVertex(geo.V3(r*math.Cos(th), -h/2, r*math.Sin(th)))
	}
	apex := m.addVertex(geo.V3(0, h/2, 0))
	center := m.addVertex(geo.V3(0, -h/2, 0))
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.addTriangle(base[i], apex, base[j])
		m.addTriangle(center, base[i], base[j])
	}
	return m
}

func sphereMesh(r float64, n int) *Mesh {
	stacks := n / 2
	if stacks < 2 {
		stacks = 2
	}
	m := &Mesh{}
	top := m.addVertex(geo.V3(0, r, 0))
	rings := make([][]uint32, 0, stacks-1)
	for j := 1; j < stacks; j++ {
		phi := math.Pi * float64(j) / float64(stacks)
		y := r * math.Cos(phi)
		rr := r * math.Sin(phi)
		row := make([]uint32, n)
		for i := 0; i < n; i++ {
			th := 2 * math.Pi * float64(i) / float64(n)
			row[i] = m.addVertex(geo.V3(rr*math.Cos(th), y, rr*math.Sin(th)))
		}
		rings = append(rings, row)
	}
	bottom := m.addVertex(geo.V3(0, -r, 0))

	first := rings[0]
	last := rings[len(rings)-1]
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.addTriangle(top, first[j], first[i])
		m.addTriangle(bottom, last[i], last[j])
	}
	for k := 0; k+1 < len(rings); k++ {
		a, b := rings[k], rings[k+1]
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			m.addQuad(a[i], a[j], b[j], b[i])
		}
	}
	return m
}

// planeMesh emits the sheet double-sided: a closed zero-thickness surface
// whose signed-volume contributions cancel exactly.
func planeMesh(x, z float64) *Mesh {
	hx, hz := x/2, z/2
	m := &Mesh{}
	a := m.addVertex(geo.V3(-hx, 0, -hz))
	b := m.addVertex(geo.V3(hx, 0, -hz))
	c := m.addVertex(geo.V3(hx, 0, hz))
	d := m.addVertex(geo.V3(-hx, 0, hz))
	m.addQuad(a, d, c, b)
	m.addQuad(a, b, c, d)
	return m
}

// torusMesh lies in the XY plane with its axis along Z, matching the
// renderer convention the builders rotate against.
func torusMesh(r, tube float64, n, tubeSegs int) *Mesh {
	m := &Mesh{}
	rows := make([][]uint32, n)
	for i := 0; i < n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n)
		ct, st := math.Cos(th), math.Sin(th)
		row := make([]uint32, tubeSegs)
		for j := 0; j < tubeSegs; j++ {
			ph := 2 * math.Pi * float64(j) / float64(tubeSegs)
			d := r + tube*math.Cos(ph)
			row[j] = m.addVertex(geo.V3(d*ct, d*st, tube*math.Sin(ph)))
		}
		rows[i] = row
	}
	for i := 0; i < n; i++ {
		i2 := (i + 1) % n
		for j := 0; j < tubeSegs; j++ {
			j2 := (j + 1) % tubeSegs
			m.addQuad(rows[i][j], rows[i2][j], rows[i2][j2], rows[i][j2])
		}
	}
	return m
}
