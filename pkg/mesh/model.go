// Package mesh converts generated building trees into concrete triangle
// meshes for export. Tessellation happens in world space: the scene walk
// carries the accumulated group transform, so plan rescaling and wing
// rotations land directly in the vertices.
package mesh

import (
	"math"

	"github.com/parataxis/massing/pkg/geo"
)

// Mesh is one part's triangle mesh. Arrays are flat: three floats per
// vertex, three indices per triangle. Winding is counterclockwise seen from
// outside, so recomputed normals face outward.
type Mesh struct {
	Name     string    `json:"name"`
	Vertices []float64 `json:"vertices"`
	Indices  []uint32  `json:"indices"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Triangle returns the t-th triangle's vertices.
func (m *Mesh) Triangle(t int) (geo.Vec3, geo.Vec3, geo.Vec3) {
	return m.vertex(m.Indices[3*t]), m.vertex(m.Indices[3*t+1]), m.vertex(m.Indices[3*t+2])
}

func (m *Mesh) vertex(i uint32) geo.Vec3 {
	return geo.V3(m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2])
}

func (m *Mesh) addVertex(v geo.Vec3) uint32 {
	i := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, v.X, v.Y, v.Z)
	return i
}

func (m *Mesh) addTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

func (m *Mesh) addQuad(a, b, c, d uint32) {
	m.addTriangle(a, b, c)
	m.addTriangle(a, c, d)
}

// transform maps every vertex through a in place and flips winding when the
// transform mirrors, keeping normals outward.
func (m *Mesh) transform(a geo.Affine) {
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		v := a.Apply(geo.V3(m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2]))
		m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2] = v.X, v.Y, v.Z
	}
	if a.Det() < 0 {
		for t := 0; t+2 < len(m.Indices); t += 3 {
			m.Indices[t+1], m.Indices[t+2] = m.Indices[t+2], m.Indices[t+1]
		}
	}
}

// signedVolume sums the signed tetrahedra spanned by the origin and each
// triangle. Positive for a closed mesh with outward winding.
func (m *Mesh) signedVolume() float64 {
	total := 0.0
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		total += a.Dot(b.Cross(c))
	}
	return total / 6
}

// Model is a collection of part meshes with aggregate measures.
type Model struct {
	Parts []*Mesh
}

// Add appends a part mesh. Empty parts are dropped.
func (m *Model) Add(part *Mesh) {
	if part == nil || part.IsEmpty() {
		return
	}
	m.Parts = append(m.Parts, part)
}

// TriangleCount returns the total number of triangles across all parts.
func (m *Model) TriangleCount() int {
	n := 0
	for _, p := range m.Parts {
		n += p.TriangleCount()
	}
	return n
}

// BoundingBox returns the axis-aligned box enclosing every vertex.
func (m *Model) BoundingBox() geo.Box3 {
	box := geo.EmptyBox3()
	for _, p := range m.Parts {
		for i := 0; i+2 < len(p.Vertices); i += 3 {
			box = box.Extend(geo.V3(p.Vertices[i], p.Vertices[i+1], p.Vertices[i+2]))
		}
	}
	return box
}

// SurfaceArea returns the total triangle area across all parts.
func (m *Model) SurfaceArea() float64 {
	total := 0.0
	for _, p := range m.Parts {
		for t := 0; t < p.TriangleCount(); t++ {
			a, b, c := p.Triangle(t)
			total += b.Sub(a).Cross(c.Sub(a)).Length() / 2
		}
	}
	return total
}

// Volume returns the enclosed volume of the model by summing signed
// tetrahedra per part. Parts must be closed with outward winding; open
// sheets are tessellated double-sided so their contributions cancel.
func (m *Model) Volume() float64 {
	total := 0.0
	for _, p := range m.Parts {
		total += p.signedVolume()
	}
	return math.Abs(total)
}
