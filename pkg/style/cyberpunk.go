package style

import (
	"fmt"
	"math"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/scene"
)

// buildCyberpunk assembles the cyberpunk style: a dark monolith with glowing
// panes, separately toggled neon framing, a rooftop antenna rig, tech
// balconies every third storey and horizontal neon banding.
func buildCyberpunk(b *Builder) {
	d := b.dims

	// 1. Mass and foundation.
	b.addMass()
	b.addFoundation()

	// 2. Glowing panes four across the front per storey. Frame strips ride
	//    the separate neon toggle so panes survive with framing off.
	if b.features.Windows {
		for floor := 0; floor < b.floors; floor++ {
			y := b.floorY(floor)
			for i := 0; i < 4; i++ {
				x := (float64(i) - 1.5) * d.Width / 5
				name := fmt.Sprintf("pane_front_%d_%d", floor, i)
				b.addNeonPane(b.Root, name, geo.V3(x, y, d.Depth/2+0.06), 0, 1.3, 2.0, b.features.NeonFrames)
			}
		}
	}

	// 3. Entry door.
	b.addDoor(b.Root, "door", geo.V3(0, 1.2, d.Depth/2+0.1), 0, 1.4, 2.4, b.palette.Door)

	// 4. Rooftop rig: equipment deck, antenna mast, beacon.
	if b.features.Roof {
		g := b.group(b.Root, "roof")
		b.box(g, "roof_deck", d.Width*0.9, 0.3, d.Depth*0.9, geo.V3(0, d.TotalHeight+0.15, 0), scene.Opaque(b.palette.Roof))
		const mastH = 4.0
		b.cylinder(g, "roof_mast", 0.12, mastH, 12, geo.V3(d.Width*0.2, d.TotalHeight+0.3+mastH/2, d.Depth*0.2), scene.Opaque(b.palette.Trim))
		b.sphere(g, "roof_beacon", 0.25, geo.V3(d.Width*0.2, d.TotalHeight+0.3+mastH+0.25, d.Depth*0.2), glow(b.palette.Frame))
		tagFeature(g, scene.FeatureRoof)
	}

	// 5. Tech balconies every third storey.
	if b.features.Balconies {
		for floor := 3; floor < b.floors; floor += 3 {
			y := float64(floor)*d.FloorHeight + 0.2
			name := fmt.Sprintf("balcony_%d", floor)
			b.addBalcony(b.Root, name, geo.V3(d.Width/4, y, d.Depth/2+0.6), 0, 2.2, 1.1)
		}
	}

	// 6. Neon banding rings every second storey line.
	if b.features.Lighting {
		ringR := math.Hypot(d.Width, d.Depth) / 2 * 1.02
		for floor := 1; floor < b.floors; floor += 2 {
			ring := b.torus(b.Root, "neon_ring", ringR, 0.06, geo.V3(0, float64(floor)*d.FloorHeight, 0), glow(b.palette.Accent))
			ring.Rotation = geo.QuatAxisAngle(geo.V3(1, 0, 0), math.Pi/2)
			ring.Feature = scene.FeatureLighting
		}
	}

	// 7. Trim: corner pillars and storey bands.
	b.addCornerPillars(b.Root, 0.3)
	b.addFloorBands(b.Root)
}
