package style

import (
	"fmt"
	"math"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/scene"
)

// buildTownhouse assembles the townhouse style: brick mass, sash windows,
// a stepped entry off to one side, pitched crown with a chimney stack and
// balconies every second storey.
func buildTownhouse(b *Builder) {
	d := b.dims

	// 1. Mass and foundation.
	b.addMass()
	b.addFoundation()

	// 2. Sash windows: two across the front, one on the side, per storey.
	if b.features.Windows {
		for floor := 0; floor < b.floors; floor++ {
			y := b.floorY(floor)
			for i := 0; i < 2; i++ {
				x := (float64(i)*2 - 1) * d.Width / 5
				name := fmt.Sprintf("window_sash_%d_%d", floor, i)
				b.addFramedWindow(b.Root, name, geo.V3(x, y, d.Depth/2+0.08), 0, 1.3, 1.8, true)
			}
			name := fmt.Sprintf("window_sash_side_%d", floor)
			b.addFramedWindow(b.Root, name, geo.V3(d.Width/2+0.08, y, 0), math.Pi/2, 1.3, 1.8, true)
		}
	}

	// 3. Stepped entry beside the front windows. The stoop raises the leaf
	//    three risers above grade.
	b.addDoorWithSteps(b.Root, "door", geo.V3(-d.Width/4, 1.05+0.45, d.Depth/2+0.1), 0, 1.1, 2.1, b.palette.Door)

	// 4. Pitched crown aligned with the walls, chimney stack beside it.
	if b.features.Roof {
		b.addConeRoof(b.Root, "roof", math.Min(d.Width, d.Depth)*0.6, 2.2, 4, math.Pi/4)
		chimney := b.box(b.Root, "roof_chimney", 0.6, 1.6, 0.6, geo.V3(d.Width/4, d.TotalHeight+0.8, 0), scene.Opaque(b.palette.Foundation))
		chimney.Feature = scene.FeatureRoof
	}

	// 5. Balconies every second storey.
	if b.features.Balconies {
		for floor := 2; floor < b.floors; floor += 2 {
			y := float64(floor)*d.FloorHeight + 0.2
			name := fmt.Sprintf("balcony_%d", floor)
			b.addBalcony(b.Root, name, geo.V3(d.Width/5, y, d.Depth/2+0.6), 0, 2.2, 1.1)
		}
	}

	// 6. Porch lanterns flanking the entry.
	if b.features.Lighting {
		b.addSconce(b.Root, "porch_lamp_left", geo.V3(-d.Width/4-0.9, 1.8, d.Depth/2+0.15))
		b.addSconce(b.Root, "porch_lamp_right", geo.V3(-d.Width/4+0.9, 1.8, d.Depth/2+0.15))
	}

	// 7. Trim: corner pillars and storey bands.
	b.addCornerPillars(b.Root, 0.3)
	b.addFloorBands(b.Root)
}
