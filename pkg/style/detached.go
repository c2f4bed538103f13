package style

import (
	"fmt"
	"math"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/layout"
	"github.com/parataxis/massing/pkg/scene"
)

// The floorplan style lays its blocks out on a fixed design footprint and
// rescales the finished assembly to the requested envelope on X and Z only;
// heights stay in metres. Block rectangles share edges, never interiors, so
// the footprint outline stays traceable.
//
//	leftWing   X[-35,-15] Z[  0,20]
//	garage     X[-35,-15] Z[-20, 0]
//	core       X[-15, 15] Z[ -8,20]
//	breakfast  X[-15,  0] Z[-20,-8]
//	dining     X[  0, 15] Z[-20,-8]
//	masterWing X[ 15, 35] Z[-12,20]
//
// The front of the house faces +Z; the garage door opens on the west face.
func buildDetached(b *Builder) {
	d := b.dims
	fh := d.FloorHeight
	hMain := float64(b.floors) * fh

	plan := b.group(b.Root, "plan")
	plan.Scale = geo.V3(d.Width/layout.DetachedBaseWidth, 1, d.Depth/layout.DetachedBaseDepth)

	roofMat := scene.Opaque(b.palette.Roof)

	// 1. Oversized fixed foundation plate under the whole plan.
	b.box(plan, "foundation", 74, 0.5, 44, geo.V3(0, 0.25, 0), scene.Opaque(b.palette.Foundation))

	// 2. The six blocks.
	core := b.BuildBlock(plan, "core", geo.V3(0, 0, 6), 0, 30, 28, hMain, nil)
	left := b.BuildBlock(plan, "leftWing", geo.V3(-25, 0, 10), 0, 20, 20, hMain, nil)
	garage := b.BuildBlock(plan, "garage", geo.V3(-25, 0, -10), 0, 20, 20, fh, nil)
	breakfast := b.BuildBlock(plan, "breakfast", geo.V3(-7.5, 0, -14), 0, 15, 12, fh, nil)
	dining := b.BuildBlock(plan, "dining", geo.V3(7.5, 0, -14), 0, 15, 12, fh, nil)
	master := b.BuildBlock(plan, "masterWing", geo.V3(25, 0, 4), 0, 20, 32, hMain, nil)

	// 3. Link walls sealing the block joints.
	wallMat := scene.Opaque(b.palette.Structure)
	b.box(plan, "link_wall_west", 0.4, hMain, 28, geo.V3(-15, hMain/2, 6), wallMat)
	b.box(plan, "link_wall_east", 0.4, hMain, 28, geo.V3(15, hMain/2, 6), wallMat)
	b.box(plan, "link_wall_rear", 30, fh, 0.4, geo.V3(0, fh/2, -8), wallMat)

	// 4. Covered porches: entry at the front, patio off the rear rooms.
	b.addPorch(plan, "porch_entry", geo.V3(0, 0, 22.5), 8, 5)
	b.addPorch(plan, "porch_patio", geo.V3(0, 0, -22.5), 14, 5)

	// 5. Per-block roofs: pitched over the living wings, flat with gutters
	//    over garage and the rear rooms. The master roof ridge runs along
	//    its long axis.
	if b.features.Roof {
		b.addGableRoof(core, "roof_core", hMain, 30, 28, 6, roofMat)
		b.addGableRoof(left, "roof_left", hMain, 20, 20, 5, roofMat)
		masterRoof := b.addGableRoof(master, "roof_master", hMain, 32, 20, 5, roofMat)
		masterRoof.Rotation = geo.QuatYaw(math.Pi / 2)
		b.addFlatRoof(garage, "roof_garage", fh, 20, 20, roofMat)
		b.addFlatRoof(breakfast, "roof_breakfast", fh, 15, 12, roofMat)
		b.addFlatRoof(dining, "roof_dining", fh, 15, 12, roofMat)
	}
	if b.features.SolarPanels {
		b.addSolarArray(garage, "solar_garage", geo.V3(-7, fh+0.45, -7), 2, 3, 4, 5)
	}

	// 6. Fixed window placements per block, all sash framed.
	if b.features.Windows {
		for floor := 0; floor < b.floors; floor++ {
			y := b.floorY(floor)
			if floor == 0 {
				// Ground storey: the core front keeps the middle clear
				// for the entry.
				b.addFramedWindow(core, "window_core_gl_0", geo.V3(-9, y, 14.2), 0, 4, 1.8, true)
				b.addFramedWindow(core, "window_core_gl_1", geo.V3(9, y, 14.2), 0, 4, 1.8, true)
			} else {
				for i := 0; i < 3; i++ {
					name := fmt.Sprintf("window_core_%d_%d", floor, i)
					b.addFramedWindow(core, name, geo.V3(float64(i-1)*9, y, 14.2), 0, 4, 1.8, true)
				}
			}
			b.addFramedWindow(left, fmt.Sprintf("window_left_%d", floor), geo.V3(0, y, 10.2), 0, 4, 1.8, true)
			b.addFramedWindow(master, fmt.Sprintf("window_master_front_%d", floor), geo.V3(-5, y, 16.2), 0, 4, 1.8, true)
			b.addFramedWindow(master, fmt.Sprintf("window_master_front2_%d", floor), geo.V3(5, y, 16.2), 0, 4, 1.8, true)
			b.addFramedWindow(master, fmt.Sprintf("window_master_side_%d", floor), geo.V3(10.2, y, 0), math.Pi/2, 4, 1.8, true)
		}
		b.addFramedWindow(breakfast, "window_breakfast", geo.V3(0, fh/2, -6.2), math.Pi, 5, 1.6, true)
		b.addFramedWindow(dining, "window_dining", geo.V3(0, fh/2, -6.2), math.Pi, 5, 1.6, true)
	}

	// 7. The blue entry and garage door pair. The garage opens west.
	b.addDoor(core, "door_entry", geo.V3(0, 1.05, 14.2), 0, 3, 2.1, b.palette.Door)
	b.addDoor(garage, "door_garage", geo.V3(-10.2, 1.25, 0), -math.Pi/2, 7, 2.5, b.palette.Door)

	// 8. Interior partitions in the core and the master-wing fireplace.
	b.box(core, "partition_wall", 0.2, fh, 20, geo.V3(-4, fh/2, 4), wallMat)
	b.box(core, "partition_wall", 14, fh, 0.2, geo.V3(-8, fh/2, -2), wallMat)
	b.box(master, "fireplace_box", 3, 1.8, 1, geo.V3(8.5, 0.9, -6), scene.Opaque(b.palette.Foundation))
	b.box(master, "fireplace_stack", 2, hMain+2.5, 2, geo.V3(11, (hMain+2.5)/2, -6), scene.Opaque(b.palette.Foundation))
	b.box(master, "fireplace_cap", 2.4, 0.4, 2.4, geo.V3(11, hMain+2.7, -6), scene.Opaque(b.palette.Trim))

	// 9. Porch lanterns.
	if b.features.Lighting {
		b.addSconce(plan, "porch_lamp_left", geo.V3(-3.2, 2.8, 24.5))
		b.addSconce(plan, "porch_lamp_right", geo.V3(3.2, 2.8, 24.5))
	}
}

// addPorch emits a covered porch: ground slab, two columns and a flat cover.
// Oriented along X, centered on pos.
func (b *Builder) addPorch(parent *scene.Group, name string, pos geo.Vec3, w, d float64) *scene.Group {
	g := b.group(parent, name)
	g.Position = pos

	b.box(g, name+"_slab", w, 0.2, d, geo.V3(0, 0.1, 0), scene.Opaque(b.palette.Foundation))
	for _, side := range []float64{-1, 1} {
		b.cylinder(g, name+"_column", 0.3, 3.2, 12, geo.V3(side*(w/2-0.8), 1.8, d/2-0.8), scene.Opaque(b.palette.Frame))
	}
	b.box(g, name+"_cover", w+0.5, 0.2, d+0.5, geo.V3(0, 3.5, 0), scene.Opaque(b.palette.Roof))
	return g
}
