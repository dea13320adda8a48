package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"

	"github.com/golang/freetype"
	"github.com/llgcode/draw2d/draw2dimg"
	"golang.org/x/image/font"

	"github.com/matzehuels/hexmap/pkg/errors"
	"github.com/matzehuels/hexmap/pkg/fonts"
	"github.com/matzehuels/hexmap/pkg/hexgrid"
)

// DefaultMaxPixels caps the raster canvas at 256 megapixels.
const DefaultMaxPixels = 1 << 28

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	fontSize  float64
	labels    bool
	maxPixels int64
}

// WithFontSize sets the label size in points (default 48).
func WithFontSize(pt float64) PNGOption {
	return func(r *pngRenderer) { r.fontSize = pt }
}

// WithoutLabels draws bare tiles.
func WithoutLabels() PNGOption {
	return func(r *pngRenderer) { r.labels = false }
}

// WithMaxPixels sets the largest canvas, in pixels, the renderer accepts.
func WithMaxPixels(n int64) PNGOption {
	return func(r *pngRenderer) { r.maxPixels = n }
}

// RenderPNG renders the tiles at coords on a canvas of bounds b and returns
// the PNG encoding.
func RenderPNG(b hexgrid.Bounds, coords hexgrid.Coords, opts ...PNGOption) ([]byte, error) {
	img, err := RenderImage(b, coords, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailure, err, "encode png")
	}
	return buf.Bytes(), nil
}

// RenderImage renders the tiles at coords on a canvas of bounds b.
func RenderImage(b hexgrid.Bounds, coords hexgrid.Coords, opts ...PNGOption) (*image.NRGBA, error) {
	r := pngRenderer{fontSize: fonts.DefaultLabelSize, labels: true, maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(&r)
	}

	if b.Width <= 0 || b.Height <= 0 {
		return nil, errors.New(errors.ErrCodeRenderFailure, "empty canvas %dx%d", b.Width, b.Height)
	}
	if px := int64(b.Width) * int64(b.Height); r.maxPixels > 0 && px > r.maxPixels {
		return nil, errors.New(errors.ErrCodeRenderFailure, "canvas %dx%d exceeds %d pixels", b.Width, b.Height, r.maxPixels)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	fill(canvas, Background)

	var face font.Face
	if r.labels {
		f, err := fonts.LabelFace(r.fontSize)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailure, err, "load label font")
		}
		defer f.Close()
		face = f
	}

	t := newTileCanvas(face)
	for _, id := range sortedIDs(coords) {
		t.paint(strconv.Itoa(id))

		off := topLeft(coords[id])
		x, y := int(math.RoundToEven(off.X)), int(math.RoundToEven(off.Y))
		dst := image.Rect(x, y, x+t.img.Rect.Dx(), y+t.img.Rect.Dy())
		draw.Draw(canvas, dst, t.img, image.Point{}, draw.Over)
	}
	return canvas, nil
}

// tileCanvas is a reusable single-tile image. Each tile is painted on its
// own transparent canvas before compositing, so the label only ever blends
// with its own tile.
type tileCanvas struct {
	img  *image.RGBA
	gc   *draw2dimg.GraphicContext
	face font.Face
}

func newTileCanvas(face font.Face) *tileCanvas {
	img := image.NewRGBA(image.Rect(0, 0, int(hexgrid.TileWidth), int(hexgrid.TileHeight)))
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetFillColor(TileFill)
	gc.SetStrokeColor(TileStroke)
	gc.SetLineWidth(1)
	return &tileCanvas{img: img, gc: gc, face: face}
}

func (t *tileCanvas) paint(label string) {
	draw.Draw(t.img, t.img.Rect, image.Transparent, image.Point{}, draw.Src)

	t.gc.BeginPath()
	t.gc.MoveTo(diamond[0].X, diamond[0].Y)
	for _, p := range diamond[1:] {
		t.gc.LineTo(p.X, p.Y)
	}
	t.gc.Close()
	t.gc.FillStroke()

	if t.face == nil {
		return
	}
	d := &font.Drawer{
		Dst:  t.img,
		Src:  image.NewUniform(LabelColor),
		Face: t.face,
	}
	m := t.face.Metrics()
	w := d.MeasureString(label).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	x := (t.img.Rect.Dx() - w) / 2
	y := (t.img.Rect.Dy()-h)/2 + m.Ascent.Ceil()
	d.Dot = freetype.Pt(x, y)
	d.DrawString(label)
}

// fill sets every pixel of img to c. draw.Draw would go through
// premultiplied colour and drop the colour of a fully transparent c.
func fill(img *image.NRGBA, c color.NRGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}
