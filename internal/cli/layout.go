package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hexmap/pkg/errors"
	hexio "github.com/matzehuels/hexmap/pkg/io"
	"github.com/matzehuels/hexmap/pkg/pipeline"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	items    string  // item count, validated as a non-negative decimal integer
	json     string  // JSON document path
	image    string  // PNG picture path
	svg      string  // SVG picture path
	yaml     string  // YAML document path
	groups   string  // group map SVG path
	fontSize float64 // label size in points
	noCache  bool
	refresh  bool
}

// outputs maps each requested format to its path. Explicit flags replace
// the configured defaults entirely.
func (o layoutOpts) outputs(defaults OutputConfig) map[string]string {
	explicit := OutputConfig{JSON: o.json, Image: o.image, SVG: o.svg, YAML: o.yaml, Groups: o.groups}.outputs()
	if len(explicit) > 0 {
		return explicit
	}
	return defaults.outputs()
}

// layoutCommand creates the layout command: lay out N items and write the
// requested outputs.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout -a N",
		Short: "Lay out N items and export coordinates and a picture",
		Long: `Lay out N numbered items on the hex-spiral map.

Items are split into groups of twelve; groups are placed along a hexagonal
spiral and items snake through each group. The command writes the coordinate
document (JSON by default) and a PNG picture of the map.

Without output flags the paths from the config file are used
(default: layout.json and layout.png).

Results are cached locally for faster subsequent runs.`,
		Example: `  hexmap layout -a 100
  hexmap layout -a 5000 -j map.json -i map.png --svg map.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("font-size") {
				opts.fontSize = c.Config.Render.FontSize
			}
			return c.runLayout(cmd.Context(), newPrinter(cmd.OutOrStdout()), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.items, "items", "a", "", "number of items to lay out (required)")
	cmd.Flags().StringVarP(&opts.json, "output-json", "j", "", "write the coordinate document as JSON")
	cmd.Flags().StringVarP(&opts.image, "output-image", "i", "", "write the map as PNG")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "write the map as SVG")
	cmd.Flags().StringVar(&opts.yaml, "yaml", "", "write the coordinate document as YAML")
	cmd.Flags().StringVar(&opts.groups, "groups", "", "write the group spiral as SVG")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", pipeline.DefaultFontSize, "label size in points")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	_ = cmd.MarkFlagRequired("items")

	return cmd
}

// runLayout computes the layout, renders the outputs and writes them.
func (c *CLI) runLayout(ctx context.Context, out printer, opts layoutOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	n, err := errors.ParseItemCount(opts.items)
	if err != nil {
		return err
	}

	outputs := opts.outputs(c.Config.Output)
	if len(outputs) == 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "no outputs requested")
	}
	for _, path := range outputs {
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	formats := orderedFormats(outputs)

	spinner := maybeSpinner(ctx, n, fmt.Sprintf("Laying out %d items...", n))
	result, err := runner.Execute(ctx, pipeline.Options{
		Items:    n,
		Formats:  formats,
		FontSize: opts.fontSize,
		Refresh:  opts.refresh,
		Logger:   logger,
	})
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.step("Layout generation", result.Stats.LayoutTime)

	if err := writeArtifacts(ctx, result.Artifacts, outputs); err != nil {
		return err
	}

	out.success("Layout complete")
	for _, format := range formats {
		out.file(outputs[format])
	}
	out.stats(result.Stats.Items, result.Stats.Groups, result.Layout.CanvasDimensions,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	if path, ok := outputs[pipeline.FormatJSON]; ok {
		out.nextStep("Re-render", "hexmap render "+path+" -o map.svg")
	}
	prog.done("Finished")

	return nil
}

// orderedFormats returns the formats of outputs in canonical order.
func orderedFormats(outputs map[string]string) []string {
	formats := make([]string, 0, len(outputs))
	for _, f := range pipeline.ValidFormats {
		if _, ok := outputs[f]; ok {
			formats = append(formats, f)
		}
	}
	return formats
}

// writeArtifacts writes every artifact to its path concurrently. The first
// failure cancels the writes that have not started.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, outputs map[string]string) error {
	paths := make([]string, 0, len(outputs))
	for _, p := range outputs {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	if dup := firstDuplicate(paths); dup != "" {
		return errors.New(errors.ErrCodeInvalidPath, "output path %s is used twice", dup)
	}

	for format := range outputs {
		if _, ok := artifacts[format]; !ok {
			return errors.New(errors.ErrCodeInternal, "no %s artifact rendered", format)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for format, path := range outputs {
		data := artifacts[format]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return hexio.WriteFile(path, data)
		})
	}
	return g.Wait()
}

func firstDuplicate(sorted []string) string {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return sorted[i]
		}
	}
	return ""
}
