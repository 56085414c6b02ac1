package text

import (
	"image"
	"image/color"
)

// CoveragePalette maps an 8-bit coverage level i to a color with channels
// 255-i and alpha i: full coverage is opaque black, zero coverage is fully
// transparent white. Coverage bitmaps index this palette directly.
var CoveragePalette = newCoveragePalette()

func newCoveragePalette() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		v := uint8(255 - i)
		p[i] = color.NRGBA{R: v, G: v, B: v, A: uint8(i)}
	}
	return p
}

// newCoverageBitmap wraps an alpha plane as a paletted coverage bitmap
// sharing the same pixels.
func newCoverageBitmap(mask *image.Alpha) *image.Paletted {
	return &image.Paletted{
		Pix:     mask.Pix,
		Stride:  mask.Stride,
		Rect:    mask.Rect,
		Palette: CoveragePalette,
	}
}

// emptyCoverageBitmap returns a zero-size bitmap.
func emptyCoverageBitmap() *image.Paletted {
	return image.NewPaletted(image.Rectangle{}, CoveragePalette)
}
