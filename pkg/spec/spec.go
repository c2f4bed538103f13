package spec

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a building spec from a YAML file.
func Load(path string) (*BuildingSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}

	var spec BuildingSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing spec YAML: %w", err)
	}

	return &spec, nil
}

// LoadProject loads a building spec from a project directory.
// It looks for building.yaml in the given directory.
func LoadProject(projectDir string) (*BuildingSpec, error) {
	specPath := filepath.Join(projectDir, "building.yaml")
	return Load(specPath)
}
