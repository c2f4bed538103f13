package style

import (
	"fmt"

	"github.com/parataxis/massing/pkg/layout"
	"github.com/parataxis/massing/pkg/scene"
	"github.com/parataxis/massing/pkg/spec"
)

// Build runs the builder for kind and returns the finished building group
// and the block registry (empty for the single-mass styles). Every primitive
// gets its geometry and material allocated through the factory. On error the
// partial tree is still returned so the caller can release what was
// allocated before the failure.
func Build(kind spec.StyleKind, f scene.Factory, dims layout.Dimensions, floors int, feats spec.Features) (*scene.Group, map[string]*scene.Group, error) {
	if !kind.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", spec.ErrUnknownStyle, kind)
	}

	b := newBuilder(f, dims, floors, feats, stylePalette(kind))
	switch kind {
	case spec.StyleModern:
		buildModern(b)
	case spec.StyleCyberpunk:
		buildCyberpunk(b)
	case spec.StyleOrganic:
		buildOrganic(b)
	case spec.StyleGeometric:
		buildGeometric(b)
	case spec.StyleTownhouse:
		buildTownhouse(b)
	case spec.StyleTerrace:
		buildTerrace(b)
	case spec.StyleDetached:
		buildDetached(b)
	}

	return b.Root, b.Registry, b.Err()
}
