package style

import (
	"fmt"
	"math"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/scene"
)

// buildOrganic assembles the organic style: warm rendered mass, two round
// windows across the front and an elliptical one per side storey, arched
// entry, dome crown and sconce lighting. No balconies.
func buildOrganic(b *Builder) {
	d := b.dims

	// 1. Mass and foundation.
	b.addMass()
	b.addFoundation()

	// 2. Windows: two round across the front, one ellipse on the side.
	if b.features.Windows {
		for floor := 0; floor < b.floors; floor++ {
			y := b.floorY(floor)
			for i := 0; i < 2; i++ {
				x := (float64(i)*2 - 1) * d.Width / 5
				name := fmt.Sprintf("window_round_%d_%d", floor, i)
				b.addRoundWindow(b.Root, name, geo.V3(x, y, d.Depth/2+0.08), 0, 0.55, 1)
			}
			name := fmt.Sprintf("window_oval_%d", floor)
			b.addRoundWindow(b.Root, name, geo.V3(d.Width/2+0.08, y, 0), math.Pi/2, 0.45, 1.4)
		}
	}

	// 3. Arched entry: leaf with a half-round transom above it.
	door := b.addDoor(b.Root, "door", geo.V3(0, 1.05, d.Depth/2+0.1), 0, 1.1, 2.1, b.palette.Door)
	arch := b.cylinder(door, "door_arch", 0.55, 0.15, 24, geo.V3(0, 1.05, 0), scene.Opaque(b.palette.Frame))
	arch.Rotation = geo.QuatAxisAngle(geo.V3(1, 0, 0), math.Pi/2)

	// 4. Dome crown.
	if b.features.Roof {
		b.addDomeRoof(b.Root, "roof", math.Min(d.Width, d.Depth)*0.38)
	}

	// 5. Wall sconces flanking the facade per storey.
	if b.features.Lighting {
		for floor := 0; floor < b.floors; floor++ {
			y := b.floorY(floor) + 0.9
			b.addSconce(b.Root, fmt.Sprintf("sconce_left_%d", floor), geo.V3(-d.Width/3, y, d.Depth/2+0.15))
			b.addSconce(b.Root, fmt.Sprintf("sconce_right_%d", floor), geo.V3(d.Width/3, y, d.Depth/2+0.15))
		}
	}

	// 6. Trim: rounded corner columns and storey bands.
	for _, c := range [][2]float64{
		{-d.Width / 2, -d.Depth / 2}, {d.Width / 2, -d.Depth / 2},
		{-d.Width / 2, d.Depth / 2}, {d.Width / 2, d.Depth / 2},
	} {
		b.cylinder(b.Root, "corner_round", 0.3, d.TotalHeight, 16, geo.V3(c[0], d.TotalHeight/2, c[1]), scene.Opaque(b.palette.Trim))
	}
	b.addFloorBands(b.Root)
}
