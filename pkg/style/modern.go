package style

import (
	"fmt"
	"math"

	"github.com/parataxis/massing/pkg/geo"
)

// buildModern assembles the modern style: glass-and-steel mass, wide framed
// windows three across the front and one per side storey, a low cone crown
// and balconies every second storey.
func buildModern(b *Builder) {
	d := b.dims

	// 1. Mass and foundation.
	b.addMass()
	b.addFoundation()

	// 2. Windows: three across the front and one on the right side, per
	//    storey.
	if b.features.Windows {
		for floor := 0; floor < b.floors; floor++ {
			y := b.floorY(floor)
			for i := 0; i < 3; i++ {
				x := (float64(i) - 1) * d.Width / 4
				name := fmt.Sprintf("window_front_%d_%d", floor, i)
				b.addFramedWindow(b.Root, name, geo.V3(x, y, d.Depth/2+0.08), 0, 1.6, 1.9, false)
			}
			name := fmt.Sprintf("window_side_%d", floor)
			b.addFramedWindow(b.Root, name, geo.V3(d.Width/2+0.08, y, 0), math.Pi/2, 1.6, 1.9, false)
		}
	}

	// 3. Entry door at the front center.
	b.addDoor(b.Root, "door", geo.V3(0, 1.1, d.Depth/2+0.1), 0, 1.2, 2.2, b.palette.Door)

	// 4. Roof crown; panel array on the flat zone beside it when enabled.
	if b.features.Roof {
		b.addConeRoof(b.Root, "roof", math.Min(d.Width, d.Depth)*0.32, 1.6, 24, 0)
	}
	if b.features.SolarPanels {
		b.addSolarArray(b.Root, "solar", geo.V3(-d.Width/2+1.2, d.TotalHeight+0.25, -d.Depth/2+1.2), 2, 3, 1.1, 1.8)
	}

	// 5. Balconies every second storey above ground.
	if b.features.Balconies {
		for floor := 2; floor < b.floors; floor += 2 {
			y := float64(floor)*d.FloorHeight + 0.2
			name := fmt.Sprintf("balcony_%d", floor)
			b.addBalcony(b.Root, name, geo.V3(0, y, d.Depth/2+0.7), 0, 2.6, 1.3)
		}
	}

	// 6. Accent strip under each storey line on the front facade.
	if b.features.Lighting {
		for floor := 1; floor <= b.floors; floor++ {
			y := float64(floor)*d.FloorHeight - 0.15
			name := fmt.Sprintf("light_strip_%d", floor)
			b.addLightStrip(b.Root, name, geo.V3(0, y, d.Depth/2+0.1), 0, d.Width*0.8)
		}
	}

	// 7. Trim: corner pillars, storey bands, roof parapet.
	b.addCornerPillars(b.Root, 0.35)
	b.addFloorBands(b.Root)
	b.addParapet(b.Root, 0.9)
}
