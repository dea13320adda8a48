// Package fonts provides the label font used by the raster renderer.
//
// The Go Regular TrueType font ships with golang.org/x/image, so labels
// render identically on every platform without a system font lookup.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultLabelSize is the label size in points.
const DefaultLabelSize = 48

// FontFamily is the CSS font-family used for labels in vector output.
const FontFamily = "Go, Verdana, sans-serif"

var (
	labelFont    *truetype.Font
	labelFontErr error
	labelOnce    sync.Once
)

// Label returns the parsed label font. The font is parsed once.
func Label() (*truetype.Font, error) {
	labelOnce.Do(func() {
		labelFont, labelFontErr = truetype.Parse(goregular.TTF)
	})
	return labelFont, labelFontErr
}

// LabelFace returns a face of the label font at size points and 72 DPI, so
// one point equals one pixel. A non-positive size selects DefaultLabelSize.
func LabelFace(size float64) (font.Face, error) {
	f, err := Label()
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultLabelSize
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
