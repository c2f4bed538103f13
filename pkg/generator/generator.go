// Package generator owns the building lifecycle: full regeneration on every
// spec change, additive extensions, and in-place structural layer toggles.
// Regeneration is the only path that replaces geometry, and it disposes the
// previous building completely before constructing the replacement, so
// repeated calls cannot accumulate rendering resources.
package generator

import (
	"fmt"

	"github.com/parataxis/massing/pkg/layout"
	"github.com/parataxis/massing/pkg/scene"
	"github.com/parataxis/massing/pkg/spec"
	"github.com/parataxis/massing/pkg/style"
	"github.com/parataxis/massing/pkg/validation"
)

// Context is the complete generator state between calls. Contexts are passed
// and returned whole: a failed Generate returns its input untouched, so the
// caller always holds a usable context.
type Context struct {
	Factory scene.Factory

	// Spec is the last spec successfully generated; nil before the first
	// generation. Style, Features and Dims are its resolved form.
	Spec     *spec.BuildingSpec
	Style    spec.StyleKind
	Features spec.Features
	Dims     layout.Dimensions

	// Building is the live scene tree, extensions included. Registry maps
	// block keys to their groups for the floorplan style; empty otherwise.
	Building *scene.Group
	Registry map[string]*scene.Group

	// Generation counts successful Generate calls; Extensions counts annexes
	// on the current building.
	Generation int
	Extensions int
}

// New returns an empty context over the given resource factory.
func New(f scene.Factory) Context {
	return Context{Factory: f}
}

// HasBuilding reports whether the context holds a generated building.
func (c Context) HasBuilding() bool {
	return c.Building != nil && c.Building.PrimCount() > 0
}

// Generate replaces the context's building with one built from s.
//
// Input is rejected while the previous building is still intact, so a failed
// call leaves prev usable. On success the previous building's resources are
// fully released before the replacement is constructed; there is no partial
// update path. Extensions carried on the spec are applied in order.
func Generate(prev Context, s *spec.BuildingSpec) (Context, *validation.Report, error) {
	if s == nil {
		return prev, nil, fmt.Errorf("generate: nil spec")
	}

	// 1. Parse and resolve. Sentinel errors stay unwrapped so callers can
	//    map them to responses with errors.Is.
	kind, err := spec.ParseStyle(s.Style.String())
	if err != nil {
		return prev, nil, err
	}
	dims, err := layout.Resolve(s.Floors, s.Volume, s.SurfaceArea)
	if err != nil {
		return prev, nil, err
	}

	// 2. Schema and analytical checks. Warnings ride along with the result;
	//    errors stop the call before anything is disposed.
	report := validation.ValidateSchema(s)
	report.Merge(layout.Diagnose(s, dims))
	if !report.Valid {
		return prev, report, fmt.Errorf("%w: %s", layout.ErrInvalidParameter, report.Summary)
	}

	// 3. Dispose the previous building completely, then construct the
	//    replacement from scratch.
	scene.ReleaseTree(prev.Factory, prev.Building)

	feats := s.Features.Resolved()
	root, registry, err := style.Build(kind, prev.Factory, dims, s.Floors, feats)
	if err != nil {
		// The partial tree owns whatever was allocated before the failure.
		scene.ReleaseTree(prev.Factory, root)
		next := New(prev.Factory)
		next.Generation = prev.Generation + 1
		return next, report, err
	}

	next := Context{
		Factory:    prev.Factory,
		Spec:       s,
		Style:      kind,
		Features:   feats,
		Dims:       dims,
		Building:   root,
		Registry:   registry,
		Generation: prev.Generation + 1,
	}
	for _, ext := range s.Extensions {
		next, err = AddExtension(next, ext)
		if err != nil {
			return next, report, err
		}
	}
	return next, report, nil
}

// AddExtension attaches an annex to one side of the current building. The
// operation is additive: the existing tree is never regenerated or disposed,
// and chained extensions stack against the grown bounding box. Without a
// building it is a no-op and returns the context unchanged.
func AddExtension(ctx Context, ext spec.ExtensionSpec) (Context, error) {
	if !ctx.HasBuilding() {
		return ctx, nil
	}
	if ext.Length <= 0 || ext.Width <= 0 {
		return ctx, fmt.Errorf("%w: extension footprint must be positive, got %g x %g",
			layout.ErrInvalidParameter, ext.Length, ext.Width)
	}
	floors := ext.Floors
	if floors < 1 {
		floors = 1
	}

	placement := layout.PlaceExtension(scene.Bounds(ctx.Building), layout.ParseSide(ext.Side),
		ext.Length, ext.Width, floors)
	if _, err := style.BuildExtension(ctx.Factory, ctx.Building, ctx.Style, placement, ctx.Features.Roof); err != nil {
		return ctx, err
	}
	ctx.Extensions++
	return ctx, nil
}

// SetLayerVisible flips one structural layer's visibility across the current
// building in place and returns the number of primitives affected. This is
// the only mutation that does not rebuild: primitive identity and resource
// handles are preserved.
func SetLayerVisible(ctx Context, layer scene.Layer, visible bool) int {
	return scene.SetLayerVisible(ctx.Building, layer, visible)
}

// Document assembles the serializable scene document for the current
// building, or an empty document before the first generation.
func Document(ctx Context) *scene.Document {
	if !ctx.HasBuilding() {
		return scene.EmptyDocument()
	}
	return scene.BuildDocument(ctx.Spec.SpecVersion, ctx.Style.String(), ctx.Dims, ctx.Building, ctx.Registry)
}

// Release disposes the current building and returns an empty context over
// the same factory. The generation counter survives so document consumers
// can still order states.
func Release(ctx Context) Context {
	scene.ReleaseTree(ctx.Factory, ctx.Building)
	next := New(ctx.Factory)
	next.Generation = ctx.Generation
	return next
}
