package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hexmap/pkg/errors"
	"github.com/matzehuels/hexmap/pkg/hexgrid"
)

// groupMapScale converts layout pixels to Graphviz points.
const groupMapScale = 0.1

// GroupMapDOT describes the group spiral of l in Graphviz DOT. Every group
// is a hexagon pinned at its anchor and labelled with its number and item
// range; edges follow the spiral visitation order. Odd groups are filled
// darker than even ones.
func GroupMapDOT(l hexgrid.Layout) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=hexagon, style=filled, fontsize=14, fixedsize=true, width=1.6, height=0.8];\n")
	buf.WriteString("  edge [color=\"#00007f\"];\n")
	buf.WriteString("\n")

	for i, a := range l.Anchors {
		group := i + 1
		first, last := itemRange(l.Patterns[i])
		fill := "\"#b3b3e6\""
		if l.Grid.IsOdd(group) {
			fill = "\"#7f7fcc\""
		}
		fmt.Fprintf(&buf, "  g%d [label=\"%d\\n%d-%d\", fillcolor=%s, pos=\"%.2f,%.2f!\"];\n",
			group, group, first, last, fill, a.X*groupMapScale, -a.Y*groupMapScale)
	}

	buf.WriteString("\n")
	for group := 2; group <= len(l.Anchors); group++ {
		fmt.Fprintf(&buf, "  g%d -- g%d;\n", group-1, group)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// itemRange returns the smallest and largest item identifiers in p.
func itemRange(p hexgrid.Pattern) (first, last int) {
	for _, row := range p {
		for _, id := range row {
			if id == hexgrid.Padding {
				continue
			}
			if first == 0 || id < first {
				first = id
			}
			last = max(last, id)
		}
	}
	return first, last
}

// RenderGroupMap renders the group spiral of l to SVG with the neato
// engine, which honours the pinned positions.
func RenderGroupMap(ctx context.Context, l hexgrid.Layout) ([]byte, error) {
	return renderDOT(ctx, GroupMapDOT(l))
}

func renderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailure, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailure, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailure, err, "render group map")
	}
	return buf.Bytes(), nil
}
