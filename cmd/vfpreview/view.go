package main

import (
	"image"
	"strings"
)

// inkThreshold is the mean luminance below which a cell half counts as ink.
const inkThreshold = 160

// halfBlocks renders img as terminal art, columns cells wide. Every cell
// covers two vertically stacked pixel blocks, drawn with the upper and
// lower half block characters.
func halfBlocks(img *image.RGBA, columns int) []string {
	b := img.Bounds()
	if b.Empty() || columns <= 0 {
		return nil
	}
	cellW := max((b.Dx()+columns-1)/columns, 1)
	cellH := cellW * 2 // terminal cells are about twice as tall as wide
	halfH := max(cellH/2, 1)

	cols := (b.Dx() + cellW - 1) / cellW
	rows := (b.Dy() + cellH - 1) / cellH

	lines := make([]string, 0, rows)
	var sb strings.Builder
	for row := 0; row < rows; row++ {
		sb.Reset()
		y0 := b.Min.Y + row*cellH
		for col := 0; col < cols; col++ {
			x0 := b.Min.X + col*cellW
			top := ink(img, image.Rect(x0, y0, x0+cellW, y0+halfH))
			bottom := ink(img, image.Rect(x0, y0+halfH, x0+cellW, y0+2*halfH))
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return lines
}

// ink reports whether the mean luminance of r is dark enough to draw.
func ink(img *image.RGBA, r image.Rectangle) bool {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return false
	}
	var sum, n int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.RGBAAt(x, y)
			sum += (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
			n++
		}
	}
	return sum/n < inkThreshold
}
