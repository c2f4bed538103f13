package scene

import (
	"fmt"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/validation"
)

func tol3(v float64) geo.Vec3 {
	return geo.V3(v, v, v)
}

// ValidateDocument performs structural validation on a generated document.
// It checks primitive integrity, index consistency and bounds enclosure.
func ValidateDocument(doc *Document) *validation.Report {
	r := validation.NewReport()

	if doc == nil || doc.Root == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "document has no root group",
		})
		return r
	}

	validatePrimitiveIDs(doc, r)
	validatePrimitiveDims(doc, r)
	validateIndexIntegrity(doc, r)
	validateIndexMembership(doc, r)
	validateBoundsEnclosure(doc, r)
	validateGroupTransforms(doc, r)

	return r
}

func validatePrimitiveIDs(doc *Document, r *validation.Report) {
	seen := make(map[string]string)
	doc.Root.Walk(func(p *Primitive) {
		if p.ID == "" {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("primitive %q has empty ID", p.Name),
				SpecPath:    "root",
				ActualValue: "",
				Expected:    "non-empty string",
			})
			return
		}
		if prev, exists := seen[p.ID]; exists {
			r.AddError(validation.Result{
				Level:        validation.LevelSpatial,
				Message:      fmt.Sprintf("duplicate primitive ID %q", p.ID),
				SpecPath:     "root",
				ActualValue:  p.Name,
				ConflictWith: prev,
			})
			return
		}
		seen[p.ID] = p.Name
	})
}

func validatePrimitiveDims(doc *Document, r *validation.Report) {
	doc.Root.Walk(func(p *Primitive) {
		bad := false
		switch p.Kind {
		case KindBox:
			bad = p.Dims.X <= 0 || p.Dims.Y <= 0 || p.Dims.Z <= 0
		case KindCylinder, KindCone:
			bad = p.Dims.Radius <= 0 || p.Dims.Height <= 0
		case KindSphere:
			bad = p.Dims.Radius <= 0
		case KindPlane:
			bad = p.Dims.X <= 0 || p.Dims.Z <= 0
		case KindTorus:
			bad = p.Dims.Radius <= 0 || p.Dims.Tube <= 0
		default:
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("primitive %q has unknown kind %q", p.ID, p.Kind),
				SpecPath:    fmt.Sprintf("root.%s.kind", p.ID),
				ActualValue: string(p.Kind),
			})
			return
		}
		if bad {
			r.AddWarning(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("primitive %q (%s) has zero or negative dimensions", p.ID, p.Kind),
				SpecPath:    fmt.Sprintf("root.%s.dims", p.ID),
				ActualValue: p.Dims,
				Expected:    "all applicable dimensions > 0",
			})
		}
	})
}

func validateIndexIntegrity(doc *Document, r *validation.Report) {
	ids := make(map[string]bool)
	doc.Root.Walk(func(p *Primitive) { ids[p.ID] = true })

	check := func(indexName, key string, members []string) {
		for _, id := range members {
			if !ids[id] {
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("index %s.%s references non-existent primitive %q", indexName, key, id),
					SpecPath:    fmt.Sprintf("groups.%s.%s", indexName, key),
					ActualValue: id,
					Expected:    "existing primitive ID",
				})
			}
		}
	}

	for layer, members := range doc.Groups.Layers {
		check("layers", string(layer), members)
	}
	for feature, members := range doc.Groups.Features {
		check("features", string(feature), members)
	}
	for kind, members := range doc.Groups.Kinds {
		check("kinds", string(kind), members)
	}
	for block, members := range doc.Groups.Blocks {
		check("blocks", block, members)
	}
}

func validateIndexMembership(doc *Document, r *validation.Report) {
	layerMembers := make(map[Layer]map[string]bool)
	for layer, members := range doc.Groups.Layers {
		m := make(map[string]bool, len(members))
		for _, id := range members {
			m[id] = true
		}
		layerMembers[layer] = m
	}
	kindMembers := make(map[Kind]map[string]bool)
	for kind, members := range doc.Groups.Kinds {
		m := make(map[string]bool, len(members))
		for _, id := range members {
			m[id] = true
		}
		kindMembers[kind] = m
	}

	doc.Root.Walk(func(p *Primitive) {
		if p.ID == "" {
			return
		}
		if p.Layer != "" && !layerMembers[p.Layer][p.ID] {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("primitive %q has layer %q but is not in the layer index", p.ID, p.Layer),
				SpecPath:    fmt.Sprintf("groups.layers.%s", p.Layer),
				ActualValue: p.ID,
			})
		}
		if !kindMembers[p.Kind][p.ID] {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("primitive %q has kind %q but is not in the kind index", p.ID, p.Kind),
				SpecPath:    fmt.Sprintf("groups.kinds.%s", p.Kind),
				ActualValue: p.ID,
			})
		}
	})
}

func validateBoundsEnclosure(doc *Document, r *validation.Report) {
	computed := Bounds(doc.Root)
	if computed.IsEmpty() {
		return
	}
	stored := doc.Metadata.Bounds
	const tolerance = 0.01
	grown := stored
	grown.Min = grown.Min.Sub(tol3(tolerance))
	grown.Max = grown.Max.Add(tol3(tolerance))
	if !grown.Encloses(computed) {
		r.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     "metadata bounds do not enclose the geometry",
			SpecPath:    "metadata.bounds",
			ActualValue: computed,
			Expected:    fmt.Sprintf("within %v", stored),
		})
	}
}

func validateGroupTransforms(doc *Document, r *validation.Report) {
	doc.Root.WalkGroups(func(g *Group) {
		if g.Scale.X <= 0 || g.Scale.Y <= 0 || g.Scale.Z <= 0 {
			r.AddWarning(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("group %q has non-positive scale", g.Name),
				SpecPath:    fmt.Sprintf("root.%s.scale", g.Name),
				ActualValue: g.Scale,
				Expected:    "all components > 0",
			})
		}
	})
}
