package style

import (
	"fmt"
	"math"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/scene"
)

// buildGeometric assembles the geometric style: faceted mass, hexagonal
// coned window cells, a steep four-sided pyramid crown and lit vertical
// edges. No balconies.
func buildGeometric(b *Builder) {
	d := b.dims

	// 1. Mass and foundation.
	b.addMass()
	b.addFoundation()

	// 2. Hex window cells: three across the front, one on the side.
	if b.features.Windows {
		for floor := 0; floor < b.floors; floor++ {
			y := b.floorY(floor)
			for i := 0; i < 3; i++ {
				x := (float64(i) - 1) * d.Width / 4
				name := fmt.Sprintf("window_hex_%d_%d", floor, i)
				b.addHexWindow(b.Root, name, geo.V3(x, y, d.Depth/2+0.05), 0, 0.6)
			}
			name := fmt.Sprintf("window_hex_side_%d", floor)
			b.addHexWindow(b.Root, name, geo.V3(d.Width/2+0.05, y, 0), math.Pi/2, 0.6)
		}
	}

	// 3. Entry door.
	b.addDoor(b.Root, "door", geo.V3(0, 1.1, d.Depth/2+0.1), 0, 1.3, 2.2, b.palette.Door)

	// 4. Four-sided pyramid crown, yawed to align faces with the walls.
	if b.features.Roof {
		b.addConeRoof(b.Root, "roof", math.Min(d.Width, d.Depth)*0.55, 2.6, 4, math.Pi/4)
	}

	// 5. Lit vertical edges on the front corners.
	if b.features.Lighting {
		for _, x := range []float64{-d.Width / 2, d.Width / 2} {
			p := b.box(b.Root, "edge_light", 0.08, d.TotalHeight, 0.08, geo.V3(x, d.TotalHeight/2, d.Depth/2+0.12), glow(b.palette.Accent))
			p.Feature = scene.FeatureLighting
		}
	}

	// 6. Trim: heavy corner pillars and storey bands.
	b.addCornerPillars(b.Root, 0.4)
	b.addFloorBands(b.Root)
}
