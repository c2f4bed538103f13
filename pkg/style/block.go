package style

import (
	"sort"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/scene"
)

// Structural block constants. Walls sit outside the slab footprint by half
// their thickness; the beam ring traces the wall centerlines.
const (
	slabThickness  = 0.3
	wallThickness  = 0.25
	columnRadius   = 0.2
	beamSection    = 0.2
	plateThickness = 0.1
	plateInset     = 0.2
	plateOpacity   = 0.35
)

// BuildBlock emits one rectangular room block under parent: slab, four
// perimeter walls, four corner columns, a perimeter beam ring and a
// translucent roof plate. The block group is registered under key and every
// part carries its structural layer with visibility taken from the toggles
// at emission. Material defaults to the palette structure color; pass a
// non-nil override to recolor a whole block.
func (b *Builder) BuildBlock(parent *scene.Group, key string, center geo.Vec3, ground, width, depth, height float64, override *scene.Material) *scene.Group {
	mat := scene.Opaque(b.palette.Structure)
	if override != nil {
		mat = *override
	}

	g := b.group(parent, key)
	g.Position = center
	b.Registry[key] = g

	halfW, halfD := width/2, depth/2
	wallY := ground + height/2

	// 1. Slab resting on the ground line.
	slab := b.box(g, key+"_slab", width, slabThickness, depth, geo.V3(0, ground+slabThickness/2, 0), mat)
	slab.Layer = scene.LayerSlab
	slab.Visible = b.features.Slabs

	// 2. Perimeter walls, offset outward by half their thickness.
	wallOff := wallThickness / 2
	walls := []struct {
		name    string
		x, y, z float64
		pos     geo.Vec3
	}{
		{key + "_wall_front", width, height, wallThickness, geo.V3(0, wallY, halfD+wallOff)},
		{key + "_wall_back", width, height, wallThickness, geo.V3(0, wallY, -halfD-wallOff)},
		{key + "_wall_left", wallThickness, height, depth, geo.V3(-halfW-wallOff, wallY, 0)},
		{key + "_wall_right", wallThickness, height, depth, geo.V3(halfW+wallOff, wallY, 0)},
	}
	for _, w := range walls {
		p := b.box(g, w.name, w.x, w.y, w.z, w.pos, mat)
		p.Layer = scene.LayerWall
		p.Visible = b.features.Walls
	}

	// 3. Corner columns at the footprint corners.
	for _, c := range [][2]float64{{-halfW, -halfD}, {halfW, -halfD}, {-halfW, halfD}, {halfW, halfD}} {
		p := b.cylinder(g, key+"_column", columnRadius, height, 12, geo.V3(c[0], wallY, c[1]), mat)
		p.Layer = scene.LayerColumn
		p.Visible = b.features.Columns
	}

	// 4. Beam ring above the walls, tracing the wall centerlines.
	beamY := ground + height + 0.15
	beams := []struct {
		name    string
		x, y, z float64
		pos     geo.Vec3
	}{
		{key + "_beam_front", width, beamSection, beamSection, geo.V3(0, beamY, halfD+wallOff)},
		{key + "_beam_back", width, beamSection, beamSection, geo.V3(0, beamY, -halfD-wallOff)},
		{key + "_beam_left", beamSection, beamSection, depth, geo.V3(-halfW-wallOff, beamY, 0)},
		{key + "_beam_right", beamSection, beamSection, depth, geo.V3(halfW+wallOff, beamY, 0)},
	}
	for _, bm := range beams {
		p := b.box(g, bm.name, bm.x, bm.y, bm.z, bm.pos, mat)
		p.Layer = scene.LayerBeam
		p.Visible = b.features.Beams
	}

	// 5. Roof plate just above the beam ring, inset from the footprint.
	// Translucent and depth-write off so stacked geometry stays readable.
	plateMat := scene.Translucent(b.palette.Trim, plateOpacity)
	plateMat.NoDepthWrite = true
	plateY := beamY + beamSection/2 + plateThickness/2
	plate := b.box(g, key+"_plate", width-plateInset, plateThickness, depth-plateInset, geo.V3(0, plateY, 0), plateMat)
	plate.Layer = scene.LayerPlate
	plate.Visible = b.features.Plates

	return g
}

// BlockFootprints extracts the ground rectangle of every registered block in
// the plan's design space, keyed off each block's slab. Sorted by key so the
// result is stable across generations.
func BlockFootprints(registry map[string]*scene.Group) []geo.Rect {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rects []geo.Rect
	for _, k := range keys {
		g := registry[k]
		g.Walk(func(p *scene.Primitive) {
			if p.Layer != scene.LayerSlab {
				return
			}
			cx := g.Position.X + p.Position.X
			cz := g.Position.Z + p.Position.Z
			rects = append(rects, geo.R(cx-p.Dims.X/2, cz-p.Dims.Z/2, cx+p.Dims.X/2, cz+p.Dims.Z/2))
		})
	}
	return rects
}
