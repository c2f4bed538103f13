package spec

// FeatureToggles is the optional-boolean form of the feature switches as they
// appear in YAML and API requests. A nil field means the toggle was absent
// from its source and takes the builder default instead.
type FeatureToggles struct {
	Roof        *bool `yaml:"roof,omitempty" json:"roof,omitempty"`
	Windows     *bool `yaml:"windows,omitempty" json:"windows,omitempty"`
	Balconies   *bool `yaml:"balconies,omitempty" json:"balconies,omitempty"`
	Lighting    *bool `yaml:"lighting,omitempty" json:"lighting,omitempty"`
	SolarPanels *bool `yaml:"solar_panels,omitempty" json:"solar_panels,omitempty"`
	NeonFrames  *bool `yaml:"neon_frames,omitempty" json:"neon_frames,omitempty"`
	Slabs       *bool `yaml:"slabs,omitempty" json:"slabs,omitempty"`
	Walls       *bool `yaml:"walls,omitempty" json:"walls,omitempty"`
	Columns     *bool `yaml:"columns,omitempty" json:"columns,omitempty"`
	Beams       *bool `yaml:"beams,omitempty" json:"beams,omitempty"`
	Plates      *bool `yaml:"plates,omitempty" json:"plates,omitempty"`
}

// Features is the concrete snapshot the generator reads once at the start of
// a generation call. The five structural toggles gate visibility only; the
// rest gate whether their geometry is emitted at all.
type Features struct {
	Roof        bool `json:"roof"`
	Windows     bool `json:"windows"`
	Balconies   bool `json:"balconies"`
	Lighting    bool `json:"lighting"`
	SolarPanels bool `json:"solar_panels"`
	NeonFrames  bool `json:"neon_frames"`
	Slabs       bool `json:"slabs"`
	Walls       bool `json:"walls"`
	Columns     bool `json:"columns"`
	Beams       bool `json:"beams"`
	Plates      bool `json:"plates"`
}

// DefaultFeatures returns the defaults applied when a toggle has no source.
// Structural layers default to visible.
func DefaultFeatures() Features {
	return Features{
		Roof:        true,
		Windows:     true,
		Balconies:   true,
		Lighting:    true,
		SolarPanels: false,
		NeonFrames:  true,
		Slabs:       true,
		Walls:       true,
		Columns:     true,
		Beams:       true,
		Plates:      true,
	}
}

// Resolved fills every absent toggle with its default.
func (t FeatureToggles) Resolved() Features {
	f := DefaultFeatures()
	f.Roof = boolOr(t.Roof, f.Roof)
	f.Windows = boolOr(t.Windows, f.Windows)
	f.Balconies = boolOr(t.Balconies, f.Balconies)
	f.Lighting = boolOr(t.Lighting, f.Lighting)
	f.SolarPanels = boolOr(t.SolarPanels, f.SolarPanels)
	f.NeonFrames = boolOr(t.NeonFrames, f.NeonFrames)
	f.Slabs = boolOr(t.Slabs, f.Slabs)
	f.Walls = boolOr(t.Walls, f.Walls)
	f.Columns = boolOr(t.Columns, f.Columns)
	f.Beams = boolOr(t.Beams, f.Beams)
	f.Plates = boolOr(t.Plates, f.Plates)
	return f
}

// Toggles converts a concrete snapshot back to its explicit optional form,
// with every field set. Used when echoing resolved state to API clients.
func (f Features) Toggles() FeatureToggles {
	return FeatureToggles{
		Roof:        &f.Roof,
		Windows:     &f.Windows,
		Balconies:   &f.Balconies,
		Lighting:    &f.Lighting,
		SolarPanels: &f.SolarPanels,
		NeonFrames:  &f.NeonFrames,
		Slabs:       &f.Slabs,
		Walls:       &f.Walls,
		Columns:     &f.Columns,
		Beams:       &f.Beams,
		Plates:      &f.Plates,
	}
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Bool returns a pointer to b, for building FeatureToggles literals.
func Bool(b bool) *bool {
	return &b
}
