package spec

// BuildingSpec is the top-level specification for a generated building.
// It is treated as immutable for the duration of a generation call.
type BuildingSpec struct {
	SpecVersion string          `yaml:"spec_version" json:"spec_version"`
	Floors      int             `yaml:"floors" json:"floors"`
	Volume      float64         `yaml:"volume" json:"volume"`
	SurfaceArea float64         `yaml:"surface_area" json:"surface_area"`
	Style       StyleKind       `yaml:"style" json:"style"`
	Features    FeatureToggles  `yaml:"features" json:"features"`
	Extensions  []ExtensionSpec `yaml:"extensions,omitempty" json:"extensions,omitempty"`
}

// ExtensionSpec describes an annex attached to one side of an existing
// building. Length points away from the attached face, width runs along it.
type ExtensionSpec struct {
	Side   string  `yaml:"side" json:"side"`
	Length float64 `yaml:"length" json:"length"`
	Width  float64 `yaml:"width" json:"width"`
	Floors int     `yaml:"floors" json:"floors"`
}

// Default returns the spec used when no project file or overriding flags are
// given: a three-floor modern building with every default feature.
func Default() *BuildingSpec {
	return &BuildingSpec{
		SpecVersion: "1.0",
		Floors:      3,
		Volume:      1000,
		SurfaceArea: 300,
		Style:       StyleModern,
	}
}
