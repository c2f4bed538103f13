package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parataxis/massing/internal/server"
	"github.com/parataxis/massing/pkg/spec"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "massing",
		Short: "Parametric building generator producing styled massing models",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(stylesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var (
		overrides specOverrides
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "generate [project-path]",
		Short: "Generate a building and write the scene document as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGenerate(optionalArg(args), &overrides, outPath)
		},
	}

	overrides.register(cmd)
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the scene document to a file instead of stdout")
	return cmd
}

func validateCmd() *cobra.Command {
	var overrides specOverrides

	cmd := &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a building spec without generating geometry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(optionalArg(args), &overrides)
		},
	}

	overrides.register(cmd)
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		overrides specOverrides
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "export [project-path]",
		Short: "Generate a building and export its triangle mesh as binary STL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExport(optionalArg(args), &overrides, outPath)
		},
	}

	overrides.register(cmd)
	cmd.Flags().StringVarP(&outPath, "output", "o", "building.stl", "STL output path")
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		overrides specOverrides
		port      int
	)

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local design server with the live regeneration API",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := loadSpec(optionalArg(args), &overrides)
			if err != nil {
				return err
			}
			return server.New(s, port).Start()
		},
	}

	overrides.register(cmd)
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}

func stylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the supported architectural styles",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			for _, k := range spec.AllStyles() {
				fmt.Println(k)
			}
		},
	}
}

func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
