package scene

import (
	"time"

	"github.com/parataxis/massing/pkg/geo"
	"github.com/parataxis/massing/pkg/layout"
)

// Framing defaults used when assembling documents; the renderer may refit
// with its real viewport.
const (
	defaultFOVDeg = 50.0
	defaultAspect = 16.0 / 9.0
)

// Metadata holds document-level information.
type Metadata struct {
	SpecVersion string            `json:"spec_version"`
	GeneratedAt string            `json:"generated_at"`
	Style       string            `json:"style"`
	Primitives  int               `json:"primitives"`
	Bounds      geo.Box3          `json:"bounds"`
	Dimensions  layout.Dimensions `json:"dimensions"`
	Display     layout.DisplaySet `json:"display"`
	Camera      CameraFit         `json:"camera"`
}

// Indices organizes primitive IDs by filtering axes so the renderer can
// toggle or recolor whole classes without walking the tree.
type Indices struct {
	Layers   map[Layer][]string   `json:"layers"`
	Features map[Feature][]string `json:"features"`
	Kinds    map[Kind][]string    `json:"kinds"`
	Blocks   map[string][]string  `json:"blocks"`
}

// NewIndices creates empty index maps.
func NewIndices() Indices {
	return Indices{
		Layers:   make(map[Layer][]string),
		Features: make(map[Feature][]string),
		Kinds:    make(map[Kind][]string),
		Blocks:   make(map[string][]string),
	}
}

// Document is the complete serialized output of one generation: everything
// a renderer needs to draw and filter the building.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Root     *Group   `json:"root"`
	Groups   Indices  `json:"groups"`
}

// BuildDocument assembles the serializable document for a finished building
// tree. blocks maps registry keys to block groups for the floorplan style;
// nil is fine for every other style.
func BuildDocument(specVersion, style string, dims layout.Dimensions, root *Group, blocks map[string]*Group) *Document {
	doc := &Document{
		Root:   root,
		Groups: NewIndices(),
	}

	root.Walk(func(p *Primitive) {
		if p.Layer != "" {
			doc.Groups.Layers[p.Layer] = append(doc.Groups.Layers[p.Layer], p.ID)
		}
		if p.Feature != "" {
			doc.Groups.Features[p.Feature] = append(doc.Groups.Features[p.Feature], p.ID)
		}
		doc.Groups.Kinds[p.Kind] = append(doc.Groups.Kinds[p.Kind], p.ID)
	})
	for key, block := range blocks {
		block.Walk(func(p *Primitive) {
			doc.Groups.Blocks[key] = append(doc.Groups.Blocks[key], p.ID)
		})
	}

	bounds := Bounds(root)
	stored := bounds
	if stored.IsEmpty() {
		// Infinities do not survive JSON encoding.
		stored = geo.Box3{}
	}
	doc.Metadata = Metadata{
		SpecVersion: specVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Style:       style,
		Primitives:  root.PrimCount(),
		Bounds:      stored,
		Dimensions:  dims,
		Display:     layout.Display(dims),
		Camera:      FitCamera(bounds, defaultFOVDeg, defaultAspect),
	}
	return doc
}

// EmptyDocument returns a document with no geometry, served before the
// first generation.
func EmptyDocument() *Document {
	doc := &Document{
		Root:   NewGroup("building"),
		Groups: NewIndices(),
	}
	doc.Metadata = Metadata{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Camera:      FitCamera(geo.EmptyBox3(), defaultFOVDeg, defaultAspect),
	}
	return doc
}
