package style

import (
	"math"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/scene"
)

// glow returns an emissive material for accent geometry.
func glow(color string) scene.Material {
	return scene.Material{Color: color, Opacity: 1, Emissive: true}
}

// tagFeature marks a finished unit group and all its primitives with the
// toggle that emitted it, so one toggle maps to exactly one primitive set.
func tagFeature(g *scene.Group, f scene.Feature) {
	g.Feature = f
	g.Walk(func(p *scene.Primitive) { p.Feature = f })
}

// --- windows ---

// addFramedWindow emits one rectangular window unit: frame, inset glass pane
// and sill, facing +Z before yaw is applied. mullion adds sash bars.
func (b *Builder) addFramedWindow(parent *scene.Group, name string, pos geo.Vec3, yaw, w, h float64, mullion bool) *scene.Group {
	g := b.group(parent, name)
	g.Position = pos
	g.Rotation = geo.QuatYaw(yaw)

	b.box(g, name+"_frame", w, h, 0.12, geo.Vec3{}, scene.Opaque(b.palette.Frame))
	b.box(g, name+"_glass", w-0.2, h-0.2, 0.06, geo.V3(0, 0, 0.04), scene.Translucent(b.palette.Glass, 0.5))
	b.box(g, name+"_sill", w+0.2, 0.1, 0.25, geo.V3(0, -h/2-0.05, 0.08), scene.Opaque(b.palette.Trim))
	if mullion {
		b.box(g, name+"_mullion", 0.08, h-0.2, 0.07, geo.V3(0, 0, 0.05), scene.Opaque(b.palette.Frame))
		b.box(g, name+"_transom", w-0.2, 0.08, 0.07, geo.V3(0, 0, 0.05), scene.Opaque(b.palette.Frame))
	}

	tagFeature(g, scene.FeatureWindows)
	return g
}

// addRoundWindow emits a circular window: torus frame around a glass disc,
// facing +Z before yaw. scaleY stretches the unit into an ellipse.
func (b *Builder) addRoundWindow(parent *scene.Group, name string, pos geo.Vec3, yaw, radius, scaleY float64) *scene.Group {
	g := b.group(parent, name)
	g.Position = pos
	g.Rotation = geo.QuatYaw(yaw)
	g.Scale = geo.V3(1, scaleY, 1)

	b.torus(g, name+"_frame", radius, 0.08, geo.Vec3{}, scene.Opaque(b.palette.Frame))
	disc := b.cylinder(g, name+"_glass", radius-0.02, 0.06, 24, geo.Vec3{}, scene.Translucent(b.palette.Glass, 0.5))
	disc.Rotation = geo.QuatAxisAngle(geo.V3(1, 0, 0), math.Pi/2)

	tagFeature(g, scene.FeatureWindows)
	return g
}

// addHexWindow emits a six-sided coned window cell pointing out of the
// facade, facing +Z before yaw.
func (b *Builder) addHexWindow(parent *scene.Group, name string, pos geo.Vec3, yaw, radius float64) *scene.Group {
	g := b.group(parent, name)
	g.Position = pos
	g.Rotation = geo.QuatYaw(yaw)

	outward := geo.QuatAxisAngle(geo.V3(1, 0, 0), math.Pi/2)
	cell := b.cone(g, name+"_cell", radius, 0.4, 6, geo.V3(0, 0, 0.2), scene.Opaque(b.palette.Frame))
	cell.Rotation = outward
	pane := b.cylinder(g, name+"_glass", radius-0.08, 0.08, 6, geo.Vec3{}, scene.Translucent(b.palette.Glass, 0.5))
	pane.Rotation = outward

	tagFeature(g, scene.FeatureWindows)
	return g
}

// addNeonPane emits a glowing glass pane; the frame strips are gated by the
// separate neon toggle, so the pane group carries two feature tags.
func (b *Builder) addNeonPane(parent *scene.Group, name string, pos geo.Vec3, yaw, w, h float64, frames bool) *scene.Group {
	g := b.group(parent, name)
	g.Position = pos
	g.Rotation = geo.QuatYaw(yaw)

	pane := b.box(g, name+"_glass", w, h, 0.06, geo.Vec3{}, scene.Translucent(b.palette.Glass, 0.65))
	pane.Material.Emissive = true
	pane.Feature = scene.FeatureWindows

	if frames {
		const bar = 0.1
		strips := []struct {
			name string
			x, y float64
			pos  geo.Vec3
		}{
			{name + "_neon_top", w + 2*bar, bar, geo.V3(0, h/2+bar/2, 0.02)},
			{name + "_neon_bottom", w + 2*bar, bar, geo.V3(0, -h/2-bar/2, 0.02)},
			{name + "_neon_left", bar, h, geo.V3(-w/2-bar/2, 0, 0.02)},
			{name + "_neon_right", bar, h, geo.V3(w/2+bar/2, 0, 0.02)},
		}
		for _, s := range strips {
			p := b.box(g, s.name, s.x, s.y, 0.08, s.pos, glow(b.palette.Frame))
			p.Feature = scene.FeatureNeonFrames
		}
	}
	g.Feature = scene.FeatureWindows
	return g
}

// --- doors ---

// addDoor emits a single plain entry door flush on a facade, facing +Z
// before yaw.
func (b *Builder) addDoor(parent *scene.Group, name string, pos geo.Vec3, yaw, w, h float64, color string) *scene.Group {
	g := b.group(parent, name)
	g.Position = pos
	g.Rotation = geo.QuatYaw(yaw)

	b.box(g, name+"_leaf", w, h, 0.15, geo.Vec3{}, scene.Opaque(color))
	b.sphere(g, name+"_handle", 0.06, geo.V3(w/2-0.15, 0, 0.12), scene.Opaque(b.palette.Trim))
	return g
}

// addDoorWithSteps emits an entry door above a short flight of steps.
func (b *Builder) addDoorWithSteps(parent *scene.Group, name string, pos geo.Vec3, yaw, w, h float64, color string) *scene.Group {
	g := b.addDoor(parent, name, pos, yaw, w, h, color)
	for i := 0; i < 3; i++ {
		depth := 0.35
		stepY := -h/2 - 0.075 - 0.15*float64(i)
		stepZ := 0.2 + depth*float64(i)
		b.box(g, name+"_step", w+0.6, 0.15, depth, geo.V3(0, stepY, stepZ), scene.Opaque(b.palette.Foundation))
	}
	return g
}

// --- roofs ---

// addConeRoof emits a conical roof centered over the mass.
func (b *Builder) addConeRoof(parent *scene.Group, name string, radius, height float64, segments int, yaw float64) *scene.Group {
	g := b.group(parent, name)
	g.Rotation = geo.QuatYaw(yaw)
	b.cone(g, name+"_cone", radius, height, segments, geo.V3(0, b.dims.TotalHeight+height/2, 0), scene.Opaque(b.palette.Roof))
	tagFeature(g, scene.FeatureRoof)
	return g
}

// addGableRoof emits a pitched roof as two tilted slabs meeting at a ridge
// along the X axis. Gable ends stay open.
func (b *Builder) addGableRoof(parent *scene.Group, name string, atY, width, depth, rise float64, mat scene.Material) *scene.Group {
	g := b.group(parent, name)

	const overhang = 0.5
	slope := math.Hypot(depth/2, rise) + overhang
	pitch := math.Atan2(rise, depth/2)
	for _, side := range []float64{1, -1} {
		slab := b.box(g, name+"_slope", width+2*overhang, 0.15, slope,
			geo.V3(0, atY+rise/2, side*depth/4), mat)
		slab.Rotation = geo.QuatAxisAngle(geo.V3(1, 0, 0), side*pitch)
	}
	b.box(g, name+"_ridge", width+2*overhang, 0.18, 0.18, geo.V3(0, atY+rise, 0), mat)

	tagFeature(g, scene.FeatureRoof)
	return g
}

// addFlatRoof emits a flat roof slab with a gutter ring.
func (b *Builder) addFlatRoof(parent *scene.Group, name string, atY, width, depth float64, mat scene.Material) *scene.Group {
	g := b.group(parent, name)

	b.box(g, name+"_deck", width+0.4, 0.2, depth+0.4, geo.V3(0, atY+0.1, 0), mat)
	const gut = 0.15
	gutters := []struct {
		x, z float64
		pos  geo.Vec3
	}{
		{width + 0.7, gut, geo.V3(0, atY+0.25, depth/2+0.275)},
		{width + 0.7, gut, geo.V3(0, atY+0.25, -depth/2-0.275)},
		{gut, depth + 0.7, geo.V3(width/2+0.275, atY+0.25, 0)},
		{gut, depth + 0.7, geo.V3(-width/2-0.275, atY+0.25, 0)},
	}
	for _, gu := range gutters {
		b.box(g, name+"_gutter", gu.x, gut, gu.z, gu.pos, scene.Opaque(b.palette.Trim))
	}

	tagFeature(g, scene.FeatureRoof)
	return g
}

// addDomeRoof emits a dome as a sphere half sunk into the roof line.
func (b *Builder) addDomeRoof(parent *scene.Group, name string, radius float64) *scene.Group {
	g := b.group(parent, name)
	b.sphere(g, name+"_dome", radius, geo.V3(0, b.dims.TotalHeight, 0), scene.Opaque(b.palette.Roof))
	tagFeature(g, scene.FeatureRoof)
	return g
}

// --- balconies ---

// addBalcony emits a balcony slab with a railing, facing +Z before yaw.
func (b *Builder) addBalcony(parent *scene.Group, name string, pos geo.Vec3, yaw, w, d float64) *scene.Group {
	g := b.group(parent, name)
	g.Position = pos
	g.Rotation = geo.QuatYaw(yaw)

	b.box(g, name+"_slab", w, 0.12, d, geo.Vec3{}, scene.Opaque(b.palette.Structure))
	railY := 0.55
	b.box(g, name+"_rail_front", w, 0.08, 0.08, geo.V3(0, railY, d/2-0.04), scene.Opaque(b.palette.Trim))
	b.box(g, name+"_rail_left", 0.08, 0.08, d, geo.V3(-w/2+0.04, railY, 0), scene.Opaque(b.palette.Trim))
	b.box(g, name+"_rail_right", 0.08, 0.08, d, geo.V3(w/2-0.04, railY, 0), scene.Opaque(b.palette.Trim))
	for _, px := range []float64{-w / 2 * 0.8, 0, w / 2 * 0.8} {
		b.box(g, name+"_baluster", 0.06, railY, 0.06, geo.V3(px, railY/2, d/2-0.04), scene.Opaque(b.palette.Trim))
	}

	tagFeature(g, scene.FeatureBalconies)
	return g
}

// --- lighting ---

// addLightStrip emits one thin emissive strip, running along X before yaw.
func (b *Builder) addLightStrip(parent *scene.Group, name string, pos geo.Vec3, yaw, length float64) *scene.Primitive {
	p := b.box(parent, name, length, 0.06, 0.06, pos, glow(b.palette.Accent))
	p.Rotation = geo.QuatYaw(yaw)
	p.Feature = scene.FeatureLighting
	return p
}

// addSconce emits a small emissive sphere.
func (b *Builder) addSconce(parent *scene.Group, name string, pos geo.Vec3) *scene.Primitive {
	p := b.sphere(parent, name, 0.12, pos, glow(b.palette.Accent))
	p.Feature = scene.FeatureLighting
	return p
}

// --- solar ---

// addSolarArray emits a rows x cols grid of tilted panels whose lower-left
// panel center sits at origin; panels tilt back toward -Z.
func (b *Builder) addSolarArray(parent *scene.Group, name string, origin geo.Vec3, rows, cols int, panelW, panelD float64) *scene.Group {
	g := b.group(parent, name)
	g.Position = origin

	const tilt = 0.35
	mat := scene.Opaque("#1c2b4a")
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := b.box(g, name+"_panel", panelW, 0.05, panelD,
				geo.V3(float64(c)*(panelW+0.2), 0, float64(r)*(panelD+0.3)), mat)
			p.Rotation = geo.QuatAxisAngle(geo.V3(1, 0, 0), -tilt)
		}
	}

	tagFeature(g, scene.FeatureSolarPanels)
	return g
}

// --- trim ---

// addCornerPillars emits square pillars at the four footprint corners.
func (b *Builder) addCornerPillars(parent *scene.Group, size float64) {
	d := b.dims
	y := d.TotalHeight / 2
	for _, c := range [][2]float64{
		{-d.Width / 2, -d.Depth / 2}, {d.Width / 2, -d.Depth / 2},
		{-d.Width / 2, d.Depth / 2}, {d.Width / 2, d.Depth / 2},
	} {
		b.box(parent, "corner_pillar", size, d.TotalHeight, size, geo.V3(c[0], y, c[1]), scene.Opaque(b.palette.Trim))
	}
}

// addFloorBands emits a thin separator band at every storey line.
func (b *Builder) addFloorBands(parent *scene.Group) {
	d := b.dims
	for i := 1; i < b.floors; i++ {
		y := float64(i) * d.FloorHeight
		b.box(parent, "floor_band", d.Width+0.15, 0.12, d.Depth+0.15, geo.V3(0, y, 0), scene.Opaque(b.palette.Trim))
	}
}

// addParapet emits a low wall ring around the roof edge.
func (b *Builder) addParapet(parent *scene.Group, height float64) {
	d := b.dims
	y := d.TotalHeight + height/2
	const t = 0.2
	b.box(parent, "parapet_wall_front", d.Width, height, t, geo.V3(0, y, d.Depth/2-t/2), scene.Opaque(b.palette.Trim))
	b.box(parent, "parapet_wall_back", d.Width, height, t, geo.V3(0, y, -d.Depth/2+t/2), scene.Opaque(b.palette.Trim))
	b.box(parent, "parapet_wall_left", t, height, d.Depth-2*t, geo.V3(-d.Width/2+t/2, y, 0), scene.Opaque(b.palette.Trim))
	b.box(parent, "parapet_wall_right", t, height, d.Depth-2*t, geo.V3(d.Width/2-t/2, y, 0), scene.Opaque(b.palette.Trim))
}
