package style

import (
	"fmt"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/scene"
)

const terraceBays = 3

// buildTerrace assembles the terrace style: one shared mass divided into
// three bays by party walls, a stepped entry per bay, one long pitched roof
// across the row with chimneys on the party lines.
func buildTerrace(b *Builder) {
	d := b.dims
	bayW := d.Width / terraceBays

	// 1. Mass and foundation.
	b.addMass()
	b.addFoundation()

	// 2. Party walls proud of the facade mark the bay divisions.
	for i := 1; i < terraceBays; i++ {
		x := -d.Width/2 + bayW*float64(i)
		b.box(b.Root, "party_wall", 0.25, d.TotalHeight, d.Depth+0.3, geo.V3(x, d.TotalHeight/2, 0), scene.Opaque(b.palette.Trim))
	}

	// 3. One sash window per bay per storey; the ground-storey window moves
	//    aside to leave room for the door.
	if b.features.Windows {
		for floor := 0; floor < b.floors; floor++ {
			y := b.floorY(floor)
			for bay := 0; bay < terraceBays; bay++ {
				x := -d.Width/2 + bayW*(float64(bay)+0.5)
				if floor == 0 {
					x += bayW / 4
				}
				name := fmt.Sprintf("window_bay_%d_%d", bay, floor)
				b.addFramedWindow(b.Root, name, geo.V3(x, y, d.Depth/2+0.08), 0, 1.2, 1.7, true)
			}
		}
	}

	// 4. Stepped entry per bay.
	for bay := 0; bay < terraceBays; bay++ {
		x := -d.Width/2 + bayW*(float64(bay)+0.5) - bayW/4
		name := fmt.Sprintf("door_%d", bay)
		b.addDoorWithSteps(b.Root, name, geo.V3(x, 1.0+0.45, d.Depth/2+0.1), 0, 1.0, 2.0, b.palette.Door)
	}

	// 5. One long pitched roof over the whole row, chimney per party line.
	if b.features.Roof {
		b.addGableRoof(b.Root, "roof", d.TotalHeight, d.Width, d.Depth, 2.0, scene.Opaque(b.palette.Roof))
		for i := 1; i < terraceBays; i++ {
			x := -d.Width/2 + bayW*float64(i)
			p := b.box(b.Root, "roof_chimney", 0.5, 1.4, 0.5, geo.V3(x, d.TotalHeight+2.0, 0), scene.Opaque(b.palette.Foundation))
			p.Feature = scene.FeatureRoof
		}
	}

	// 6. Balconies every second storey, one per bay.
	if b.features.Balconies {
		for floor := 2; floor < b.floors; floor += 2 {
			for bay := 0; bay < terraceBays; bay++ {
				x := -d.Width/2 + bayW*(float64(bay)+0.5)
				name := fmt.Sprintf("balcony_%d_%d", bay, floor)
				b.addBalcony(b.Root, name, geo.V3(x, float64(floor)*d.FloorHeight+0.2, d.Depth/2+0.6), 0, bayW*0.5, 1.1)
			}
		}
	}

	// 7. Door lamp per bay.
	if b.features.Lighting {
		for bay := 0; bay < terraceBays; bay++ {
			x := -d.Width/2 + bayW*(float64(bay)+0.5) - bayW/4
			b.addSconce(b.Root, fmt.Sprintf("door_lamp_%d", bay), geo.V3(x+0.8, 1.7, d.Depth/2+0.15))
		}
	}

	// 8. Storey bands across the row.
	b.addFloorBands(b.Root)
}
