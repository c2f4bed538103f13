package style

import (
	"fmt"
	"strings"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/layout"
	"github.com/parataxis/massing/pkg/scene"
	"github.com/parataxis/massing/pkg/spec"
)

// BuildExtension emits an annex into an existing building tree at the given
// placement. The operation is additive: nothing already in the tree is
// touched. The annex reuses the building's style palette so it reads as part
// of the same structure, and carries a flat roof cap when withRoof is set.
func BuildExtension(f scene.Factory, building *scene.Group, kind spec.StyleKind, p layout.ExtensionPlacement, withRoof bool) (*scene.Group, error) {
	n := 1
	for _, child := range building.Children {
		if strings.HasPrefix(child.Name, "extension_") {
			n++
		}
	}
	key := fmt.Sprintf("extension_%d", n)

	b := newBuilder(f, layout.Dimensions{}, 0, spec.Features{}, stylePalette(kind))
	g := b.group(building, key)
	g.Position = p.Center

	// 1. The annex mass fills the placement box exactly; the seam overlap is
	//    already baked into the center.
	b.box(g, key+"_mass", p.Size.X, p.Size.Y, p.Size.Z, geo.Vec3{},
		scene.Translucent(b.palette.Mass, b.palette.MassOpacity))

	// 2. A ground skirt ties the annex into the site plate.
	b.box(g, key+"_skirt", p.Size.X+0.6, 0.3, p.Size.Z+0.6,
		geo.V3(0, 0.15-p.Size.Y/2, 0), scene.Opaque(b.palette.Foundation))

	// 3. Flat roof cap, slightly oversailing.
	if withRoof {
		roofCap := b.box(g, key+"_roof", p.Size.X+0.4, 0.2, p.Size.Z+0.4,
			geo.V3(0, p.Size.Y/2+0.1, 0), scene.Opaque(b.palette.Roof))
		roofCap.Feature = scene.FeatureRoof
	}
	return g, b.Err()
}
