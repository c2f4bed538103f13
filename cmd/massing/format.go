package main

import (
	"fmt"
	"io"
	"os"

	"github.com/parataxis/massing/pkg/generator"
	"github.com/parataxis/massing/pkg/mesh"
	"github.com/parataxis/massing/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	printValidationReportTo(os.Stdout, r)
}

func printValidationReportTo(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  [%s] %s\n", e.Level, e.Message)
			if e.SpecPath != "" {
				fmt.Fprintf(w, "    -> %s = %v\n", e.SpecPath, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Fprintf(w, "    expected: %s\n", e.Expected)
			}
			if e.ConflictWith != "" {
				fmt.Fprintf(w, "    conflicts with: %s\n", e.ConflictWith)
			}
			for _, s := range e.Suggestions {
				fmt.Fprintf(w, "    * %s\n", s)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [%s] %s\n", warn.Level, warn.Message)
			if warn.SpecPath != "" {
				fmt.Fprintf(w, "    -> %s = %v\n", warn.SpecPath, warn.ActualValue)
			}
			if warn.Expected != "" {
				fmt.Fprintf(w, "    expected: %s\n", warn.Expected)
			}
			for _, s := range warn.Suggestions {
				fmt.Fprintf(w, "    * %s\n", s)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printExportSummary(outPath string, ctx generator.Context, model *mesh.Model) {
	size := model.BoundingBox().Size()

	fmt.Printf("Exported %s\n", outPath)
	fmt.Printf("  style:     %s\n", ctx.Style)
	fmt.Printf("  parts:     %d\n", len(model.Parts))
	fmt.Printf("  triangles: %d\n", model.TriangleCount())
	fmt.Printf("  bounds:    %.1f x %.1f x %.1f m\n", size.X, size.Y, size.Z)
	fmt.Printf("  area:      %.1f m2\n", model.SurfaceArea())
	if target := ctx.Spec.Volume; target > 0 {
		fmt.Printf("  volume:    %.1f m3 (requested %.1f m3)\n", model.Volume(), target)
	} else {
		fmt.Printf("  volume:    %.1f m3\n", model.Volume())
	}
}
