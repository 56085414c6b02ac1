package text

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"math"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// DefaultMaxGlyphSize bounds the width and height of a glyph bitmap.
const DefaultMaxGlyphSize = 4096

// RasterGlyph is a rasterized glyph.
// Bitmap holds 8-bit coverage over CoveragePalette, with its top-left
// pixel at (0, 0).
type RasterGlyph struct {
	Bitmap *image.Paletted

	// Left is the horizontal distance from the pen to the bitmap's left
	// edge, in pixels.
	Left int

	// Top is the vertical distance from the baseline up to the bitmap's
	// top edge, in pixels.
	Top int

	// Advance is the glyph's own unhinted horizontal advance.
	Advance fixed.Int26_6
}

// Empty reports whether the glyph has no pixels.
func (g *RasterGlyph) Empty() bool {
	return g == nil || g.Bitmap == nil || g.Bitmap.Rect.Empty()
}

// Rasterizer renders glyphs of a FontInstance into coverage bitmaps.
//
// Outlines are never hinted: a preview shows the design as drawn, at any
// fractional pixel size.
type Rasterizer struct {
	logger  *slog.Logger
	maxSize int
}

// NewRasterizer creates a Rasterizer. A nil logger discards output.
func NewRasterizer(logger *slog.Logger) *Rasterizer {
	return &Rasterizer{logger: loggerOrNop(logger), maxSize: DefaultMaxGlyphSize}
}

// Advance returns the isolated horizontal advance of gid in inst at size
// pixels, in 26.6 fixed point. It includes variation deltas but no
// shaping adjustments, and does not depend on the glyph's outline.
func (r *Rasterizer) Advance(gid GlyphID, inst *FontInstance, size float64) fixed.Int26_6 {
	if inst == nil {
		return 0
	}
	adv := inst.face.HorizontalAdvance(font.GID(gid))
	return unitsToPixels(float64(adv), size, inst.upem())
}

// Rasterize loads the outline of gid from inst, scales it to size pixels
// per em and fills it into an anti-aliased coverage bitmap.
//
// A glyph without outline data yields *GlyphLoadError; an outline that
// cannot be turned into a bitmap yields *GlyphRasterError. Glyphs with an
// empty outline, such as spaces, produce an empty bitmap and no error.
func (r *Rasterizer) Rasterize(gid GlyphID, inst *FontInstance, size float64) (*RasterGlyph, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}

	outline, err := r.loadOutline(gid, inst)
	if err != nil {
		r.logger.Debug("text: glyph outline unavailable", "gid", gid, "err", err)
		return nil, err
	}

	glyph := &RasterGlyph{Advance: r.Advance(gid, inst, size)}
	if len(outline.Segments) == 0 {
		glyph.Bitmap = emptyCoverageBitmap()
		return glyph, nil
	}

	scale := float32(size / inst.upem())
	minX, minY, maxX, maxY := outlineBounds(outline, scale)
	if !finite(minX, minY, maxX, maxY) {
		return nil, &GlyphRasterError{GID: gid, Reason: "non-finite outline bounds"}
	}

	x0, y0 := int(math.Floor(float64(minX))), int(math.Floor(float64(minY)))
	x1, y1 := int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY)))
	w, h := x1-x0, y1-y0
	if w > r.maxSize || h > r.maxSize {
		return nil, &GlyphRasterError{GID: gid, Reason: fmt.Sprintf("bitmap %dx%d exceeds %d", w, h, r.maxSize)}
	}
	if w <= 0 || h <= 0 {
		glyph.Bitmap = emptyCoverageBitmap()
		return glyph, nil
	}

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	traceOutline(z, outline, scale, float32(x0), float32(y0))

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	glyph.Bitmap = newCoverageBitmap(mask)
	glyph.Left = x0
	glyph.Top = -y0
	return glyph, nil
}

// loadOutline fetches the vector outline of gid. Color glyphs are drawn
// from their fallback outline when the font provides one.
func (r *Rasterizer) loadOutline(gid GlyphID, inst *FontInstance) (outline font.GlyphOutline, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &GlyphLoadError{GID: gid, Reason: fmt.Sprintf("malformed glyph data: %v", p)}
		}
	}()

	switch data := inst.face.GlyphData(font.GID(gid)).(type) {
	case font.GlyphOutline:
		return data, nil
	case font.GlyphBitmap:
		if data.Outline == nil {
			return outline, &GlyphRasterError{GID: gid, Reason: "bitmap glyph without outline"}
		}
		return *data.Outline, nil
	case font.GlyphSVG:
		if len(data.Outline.Segments) == 0 {
			return outline, &GlyphRasterError{GID: gid, Reason: "SVG glyph without outline"}
		}
		return data.Outline, nil
	case nil:
		return outline, &GlyphLoadError{GID: gid, Reason: "no glyph data"}
	default:
		return outline, &GlyphRasterError{GID: gid, Reason: fmt.Sprintf("unsupported glyph data %T", data)}
	}
}

// outlineBounds returns the y-down pixel bounds of the scaled outline.
func outlineBounds(outline font.GlyphOutline, scale float32) (minX, minY, maxX, maxY float32) {
	minX, minY = float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY = float32(math.Inf(-1)), float32(math.Inf(-1))
	for i := range outline.Segments {
		for _, p := range outline.Segments[i].ArgsSlice() {
			x, y := p.X*scale, -p.Y*scale
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}
	return minX, minY, maxX, maxY
}

// traceOutline feeds the scaled, y-flipped outline into z, translated so
// (dx, dy) lands on the bitmap origin. Every contour is closed explicitly.
func traceOutline(z *vector.Rasterizer, outline font.GlyphOutline, scale, dx, dy float32) {
	pt := func(p font.SegmentPoint) (float32, float32) {
		return p.X*scale - dx, -p.Y*scale - dy
	}

	open := false
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			x, y := pt(seg.Args[0])
			z.MoveTo(x, y)
			open = true
		case ot.SegmentOpLineTo:
			x, y := pt(seg.Args[0])
			z.LineTo(x, y)
		case ot.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			z.QuadTo(cx, cy, x, y)
		case ot.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			z.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		z.ClosePath()
	}
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
