package text

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

// GlyphFailure records a run entry that could not be drawn.
type GlyphFailure struct {
	// Index is the position of the entry in the glyph run.
	Index int
	GID   GlyphID
	Err   error
}

// Canvas is the result of compositing one glyph run.
type Canvas struct {
	// Image is the rendered canvas, 8 bits per RGBA channel.
	Image *image.RGBA

	// Failures lists the entries that were skipped, in run order.
	Failures []GlyphFailure

	// Pens holds the pen position (26.6, y-down canvas space) at which
	// each entry was placed, before its offset is applied.
	Pens []fixed.Point26_6

	// Advance is the total pen displacement of the run, y-up like
	// GlyphRun.Advance.
	Advance fixed.Point26_6
}

// DefaultRasterCacheSize is the soft limit on rasterized glyphs a
// Compositor keeps between passes.
const DefaultRasterCacheSize = 1024

// Compositor lays a glyph run out on a single line and alpha-composites
// each rasterized glyph onto a fresh canvas.
//
// Rasterized glyphs, failures included, are cached by instance generation,
// pixel size and glyph id. A new instance never hits entries of an older
// one, so a pass only ever draws bitmaps of the instance it was given.
type Compositor struct {
	raster     *Rasterizer
	logger     *slog.Logger
	background color.Color
	glyphs     *Cache[rasterKey, rasterResult]
}

// NewCompositor creates a Compositor drawing on an opaque white canvas.
// nil raster uses a default Rasterizer; nil logger discards output.
func NewCompositor(raster *Rasterizer, logger *slog.Logger) *Compositor {
	if raster == nil {
		raster = NewRasterizer(logger)
	}
	return &Compositor{
		raster:     raster,
		logger:     loggerOrNop(logger),
		background: color.White,
		glyphs:     NewCache[rasterKey, rasterResult](DefaultRasterCacheSize),
	}
}

// Reset drops every cached glyph.
func (c *Compositor) Reset() {
	c.glyphs.Clear()
}

type rasterKey struct {
	generation uint64
	size       float64
	gid        GlyphID
}

type rasterResult struct {
	glyph *RasterGlyph
	err   error
}

// Composite renders run against inst onto a canvas of the given size.
//
// The pen starts at (0, baseline), where the baseline sits run.Size pixels
// below the top edge, and moves by each entry's advance. Glyphs that fail
// to rasterize are recorded in Canvas.Failures and contribute no pixels;
// they never change where later glyphs go. Content beyond the canvas is
// clipped, never wrapped.
//
// Composite fails only when run was shaped against a different instance
// (ErrStaleRun) or the canvas size is not positive.
func (c *Compositor) Composite(run *GlyphRun, inst *FontInstance, size image.Point) (*Canvas, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	if run == nil {
		return nil, errors.New("text: nil glyph run")
	}
	if run.generation != inst.generation {
		return nil, ErrStaleRun
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("text: invalid canvas size %v", size)
	}

	img := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.Draw(img, img.Bounds(), image.NewUniform(c.background), image.Point{}, xdraw.Src)

	canvas := &Canvas{
		Image: img,
		Pens:  make([]fixed.Point26_6, len(run.Entries)),
	}

	hits, misses := c.glyphs.Stats()
	pen := fixed.Point26_6{X: 0, Y: floatToFixed(run.Size)}

	for i, e := range run.Entries {
		canvas.Pens[i] = pen

		key := rasterKey{generation: inst.generation, size: run.Size, gid: e.GID}
		res := c.glyphs.GetOrCreate(key, func() rasterResult {
			g, err := c.raster.Rasterize(e.GID, inst, run.Size)
			return rasterResult{glyph: g, err: err}
		})

		switch {
		case res.err != nil:
			canvas.Failures = append(canvas.Failures, GlyphFailure{Index: i, GID: e.GID, Err: res.err})
			c.logger.Debug("text: glyph skipped", "index", i, "gid", e.GID, "err", res.err)
		case !res.glyph.Empty():
			origin := fixed.Point26_6{X: pen.X + e.XOffset, Y: pen.Y - e.YOffset}
			drawGlyph(img, res.glyph, origin)
		}

		pen.X += e.XAdvance
		pen.Y -= e.YAdvance
	}

	canvas.Advance = fixed.Point26_6{X: pen.X, Y: floatToFixed(run.Size) - pen.Y}

	h, m := c.glyphs.Stats()
	c.logger.Debug("text: composited",
		"glyphs", len(run.Entries),
		"failures", len(canvas.Failures),
		"cache_hits", h-hits,
		"cache_misses", m-misses,
	)
	return canvas, nil
}

// drawGlyph composites g over dst with its origin at the 26.6 point origin.
func drawGlyph(dst *image.RGBA, g *RasterGlyph, origin fixed.Point26_6) {
	x := origin.X.Round() + g.Left
	y := origin.Y.Round() - g.Top
	r := g.Bitmap.Rect.Sub(g.Bitmap.Rect.Min).Add(image.Pt(x, y))
	xdraw.Draw(dst, r, g.Bitmap, g.Bitmap.Rect.Min, xdraw.Over)
}
