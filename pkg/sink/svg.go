package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/hexmap/pkg/fonts"
	"github.com/matzehuels/hexmap/pkg/hexgrid"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontSize float64
	labels   bool
}

// WithSVGFontSize sets the label size in user units (default 48).
func WithSVGFontSize(pt float64) SVGOption {
	return func(r *svgRenderer) { r.fontSize = pt }
}

// WithoutSVGLabels draws bare tiles.
func WithoutSVGLabels() SVGOption {
	return func(r *svgRenderer) { r.labels = false }
}

// RenderSVG renders the tiles at coords as an SVG document of bounds b.
// Each tile is a group with id "item-N" so the document can be styled or
// scripted per item.
func RenderSVG(b hexgrid.Bounds, coords hexgrid.Coords, opts ...SVGOption) []byte {
	r := svgRenderer{fontSize: fonts.DefaultLabelSize, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(b.Width, b.Height)
	canvas.Rect(0, 0, b.Width, b.Height, fillStyle(Background))

	path := diamondPath()
	tileStyle := fillStyle(TileFill) + ";" + strokeStyle(TileStroke)
	labelStyle := fmt.Sprintf("fill:%s;font-family:%s;font-size:%gpx;text-anchor:middle;dominant-baseline:central",
		rgb(LabelColor), fonts.FontFamily, r.fontSize)

	for _, id := range sortedIDs(coords) {
		p := coords[id]
		canvas.Group(
			fmt.Sprintf(`id="item-%d"`, id),
			fmt.Sprintf(`transform="translate(%s %s)"`, num(p.X), num(p.Y)),
		)
		canvas.Path(path, tileStyle)
		if r.labels {
			canvas.Text(0, 0, strconv.Itoa(id), labelStyle)
		}
		canvas.Gend()
	}

	canvas.End()
	return buf.Bytes()
}

// diamondPath returns the tile outline relative to the tile centre.
func diamondPath() string {
	var sb strings.Builder
	for i, p := range diamond {
		p = p.Sub(hexgrid.Point{X: hexgrid.TileHalfWidth, Y: hexgrid.TileHalfHeight})
		if i == 0 {
			sb.WriteString("M")
		} else {
			sb.WriteString(" L")
		}
		sb.WriteString(num(p.X) + " " + num(p.Y))
	}
	sb.WriteString(" Z")
	return sb.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func rgb(c color.NRGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func opacity(c color.NRGBA) string {
	return strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64)
}

func fillStyle(c color.NRGBA) string {
	return "fill:" + rgb(c) + ";fill-opacity:" + opacity(c)
}

func strokeStyle(c color.NRGBA) string {
	return "stroke:" + rgb(c) + ";stroke-opacity:" + opacity(c) + ";stroke-width:1"
}
