package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hexmap/pkg/errors"
	hexio "github.com/matzehuels/hexmap/pkg/io"
	"github.com/matzehuels/hexmap/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file; its extension selects the format
	format   string  // explicit format, overrides the extension
	fontSize float64 // label size in points
	noCache  bool
}

// renderCommand creates the render command: re-render an exported layout.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render LAYOUT",
		Short: "Render an exported layout document",
		Long: `Render a layout document written by 'hexmap layout'.

The input may be JSON or YAML. The output format follows the extension of
--output (.png, .svg, .groups.svg, .json, .yaml) unless --format is given.`,
		Example: `  hexmap render layout.json -o map.svg
  hexmap render layout.yaml -o layout.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("font-size") {
				opts.fontSize = c.Config.Render.FontSize
			}
			return c.runRender(cmd.Context(), newPrinter(cmd.OutOrStdout()), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (required)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json, yaml, png, svg, groups")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", pipeline.DefaultFontSize, "label size in points")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// runRender imports the layout, renders it and writes the artifact.
func (c *CLI) runRender(ctx context.Context, out printer, input string, opts renderOpts) error {
	prog := newProgress(loggerFromContext(ctx))

	format := opts.format
	if format == "" {
		format = formatFromPath(opts.output)
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}
	if err := errors.ValidateOutputPath(opts.output); err != nil {
		return err
	}

	doc, err := hexio.Import(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := maybeSpinner(ctx, len(doc.Coordinates), "Rendering...")
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, doc, pipeline.Options{
		Formats:  []string{format},
		FontSize: opts.fontSize,
		Logger:   c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if err := hexio.WriteFile(opts.output, artifacts[format]); err != nil {
		return err
	}

	out.success("Rendered %s", format)
	out.file(opts.output)
	out.stats(len(doc.Coordinates), len(doc.Groups), doc.CanvasDimensions, hit)
	prog.done("Finished")
	return nil
}

// formatFromPath infers the artifact format from a file name.
// Unknown extensions are returned as-is so validation can report them.
func formatFromPath(path string) string {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, pipeline.Extension(pipeline.FormatGroups)) {
		return pipeline.FormatGroups
	}
	switch ext := strings.TrimPrefix(filepath.Ext(base), "."); ext {
	case "yml":
		return pipeline.FormatYAML
	default:
		return ext
	}
}
