package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parataxis/massing/pkg/generator"
	"github.com/parataxis/massing/pkg/layout"
	"github.com/parataxis/massing/pkg/mesh"
	"github.com/parataxis/massing/pkg/scene"
	"github.com/parataxis/massing/pkg/spec"
	"github.com/parataxis/massing/pkg/style"
	"github.com/parataxis/massing/pkg/validation"
)

// sitePlateThickness is the slab under an exported floorplan model.
const sitePlateThickness = 0.3

// specOverrides are the flag-level knobs shared by the generating commands.
// Zero values leave the loaded spec untouched.
type specOverrides struct {
	style   string
	floors  int
	surface float64
	volume  float64
}

func (o *specOverrides) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.style, "style", "", "architectural style (see `massing styles`)")
	cmd.Flags().IntVar(&o.floors, "floors", 0, "number of floors")
	cmd.Flags().Float64Var(&o.surface, "surface-area", 0, "facade surface area in square metres")
	cmd.Flags().Float64Var(&o.volume, "volume", 0, "target envelope volume in cubic metres")
}

func (o *specOverrides) apply(s *spec.BuildingSpec) {
	if o.style != "" {
		s.Style = spec.StyleKind(o.style)
	}
	if o.floors > 0 {
		s.Floors = o.floors
	}
	if o.surface > 0 {
		s.SurfaceArea = o.surface
	}
	if o.volume > 0 {
		s.Volume = o.volume
	}
}

// loadSpec resolves the effective building spec: the project file when a
// path is given, built-in defaults otherwise, with flag overrides on top.
func loadSpec(projectPath string, o *specOverrides) (*spec.BuildingSpec, error) {
	var (
		s   *spec.BuildingSpec
		err error
	)
	if projectPath != "" {
		s, err = spec.LoadProject(projectPath)
		if err != nil {
			return nil, err
		}
	} else {
		s = spec.Default()
	}
	o.apply(s)
	return s, nil
}

func runValidate(projectPath string, o *specOverrides) error {
	s, err := loadSpec(projectPath, o)
	if err != nil {
		return err
	}

	report := validation.ValidateSchema(s)
	if dims, err := layout.Resolve(s.Floors, s.Volume, s.SurfaceArea); err == nil {
		report.Merge(layout.Diagnose(s, dims))
	}
	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runGenerate(projectPath string, o *specOverrides, outPath string) error {
	s, err := loadSpec(projectPath, o)
	if err != nil {
		return err
	}

	ctx, report, err := generator.Generate(generator.New(scene.NewTracker()), s)
	if err != nil {
		if report != nil {
			printValidationReport(report)
		}
		return err
	}
	if len(report.Warnings) > 0 || len(report.Info) > 0 {
		printValidationReportTo(os.Stderr, report)
	}

	doc := generator.Document(ctx)
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("writing document: %w", err)
		}
		fmt.Printf("Wrote %s: %s, %d floors, %d primitives\n",
			outPath, ctx.Style, s.Floors, doc.Metadata.Primitives)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func runExport(projectPath string, o *specOverrides, outPath string) error {
	s, err := loadSpec(projectPath, o)
	if err != nil {
		return err
	}

	ctx, report, err := generator.Generate(generator.New(scene.NewTracker()), s)
	if err != nil {
		if report != nil {
			printValidationReport(report)
		}
		return err
	}

	model := mesh.Tessellate(ctx.Building)
	if len(ctx.Registry) > 0 {
		plate, err := mesh.SitePlate(style.BlockFootprints(ctx.Registry), sitePlateThickness,
			ctx.Dims.Width/layout.DetachedBaseWidth, ctx.Dims.Depth/layout.DetachedBaseDepth)
		if err != nil {
			return fmt.Errorf("building site plate: %w", err)
		}
		model.Add(plate)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()
	if err := mesh.WriteSTL(f, model); err != nil {
		return fmt.Errorf("writing STL: %w", err)
	}

	printExportSummary(outPath, ctx, model)
	if len(report.Warnings) > 0 {
		fmt.Println()
		printValidationReport(report)
	}
	return nil
}
