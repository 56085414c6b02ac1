package text

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ShapeOptions controls a Shape call.
type ShapeOptions struct {
	// Size is the pixel size to shape at. It must be positive.
	Size float64

	// Script selects the writing system. Zero guesses the dominant script
	// of the text.
	Script language.Script

	// Language is a BCP 47 tag. Empty means "en".
	Language string

	// Direction selects the text direction. DirectionAuto guesses the
	// dominant direction of the text. Vertical directions are rejected.
	Direction Direction

	// Mode selects shaped or fallback advances.
	Mode AdvanceMode

	// Features turns optional OpenType features on or off for the whole run.
	Features []shaping.FontFeature
}

// Shaper converts text into glyph runs using go-text/typesetting's
// HarfBuzz implementation. It supports the OpenType features a preview
// needs to show faithfully:
//   - Ligature substitution (fi, fl, ffi, etc.)
//   - Kerning pairs (AV, To, etc.)
//   - Contextual alternates
//   - Right-to-left text (Arabic, Hebrew)
//
// Script, language and direction are resolved once per call and applied
// to the whole string; mixed-direction text is shaped as a single run.
//
// Glyphs are shaped at one em (size = units per em) and the resulting
// positions scaled to the requested size, so fractional pixel sizes get
// the same advances the Rasterizer reports.
//
// Shaper is not safe for concurrent use: the underlying HarfbuzzShaper
// keeps an internal buffer. Use one Shaper per render pipeline.
type Shaper struct {
	hb     shaping.HarfbuzzShaper
	raster *Rasterizer
	logger *slog.Logger

	// generation of the instance hb last shaped with. hb caches its font
	// per *font.Font, which every instance of a resource shares, so it is
	// reset whenever the instance changes.
	generation uint64
}

// NewShaper creates a Shaper. raster reports the isolated glyph advances
// used by AdvanceFallback; nil uses a default Rasterizer.
func NewShaper(raster *Rasterizer, logger *slog.Logger) *Shaper {
	if raster == nil {
		raster = NewRasterizer(logger)
	}
	return &Shaper{raster: raster, logger: loggerOrNop(logger)}
}

// Shape converts text into an ordered glyph run against inst.
//
// Characters the font cannot map become notdef glyphs; shaping never fails
// because of the text content. Both advance modes yield the same glyph ids,
// clusters and offsets; only the advances differ in source. The output is
// deterministic for a given text, instance and options.
func (s *Shaper) Shape(text string, inst *FontInstance, opts ShapeOptions) (*GlyphRun, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	if opts.Size <= 0 || math.IsNaN(opts.Size) || math.IsInf(opts.Size, 0) {
		return nil, fmt.Errorf("text: invalid pixel size %v", opts.Size)
	}
	if opts.Direction.IsVertical() {
		return nil, ErrVerticalText
	}

	runes := []rune(text)

	dir := opts.Direction
	if dir == DirectionAuto {
		dir = guessDirection(text)
	}
	script := opts.Script
	if script == 0 {
		script = guessScript(runes)
	}
	lang := opts.Language
	if lang == "" {
		lang = "en"
	}

	run := &GlyphRun{
		Mode:       opts.Mode,
		Size:       opts.Size,
		Direction:  dir,
		Script:     script,
		Language:   language.NewLanguage(lang),
		generation: inst.generation,
	}
	if len(runes) == 0 {
		return run, nil
	}

	if s.generation != inst.generation {
		s.hb = shaping.HarfbuzzShaper{}
		s.generation = inst.generation
	}

	upem := inst.upem()
	input := shaping.Input{
		Text:         runes,
		RunStart:     0,
		RunEnd:       len(runes),
		Direction:    mapDirection(dir),
		Face:         inst.face,
		FontFeatures: opts.Features,
		Size:         fixed.I(int(upem)),
		Script:       script,
		Language:     run.Language,
	}
	output := s.hb.Shape(input)

	run.Entries = convertGlyphs(output.Glyphs, opts.Size, upem)

	if opts.Mode == AdvanceFallback {
		for i := range run.Entries {
			run.Entries[i].XAdvance = s.raster.Advance(run.Entries[i].GID, inst, opts.Size)
			run.Entries[i].YAdvance = 0
		}
	}

	s.logger.Debug("text: shaped",
		"glyphs", len(run.Entries),
		"advance", fixedToFloat(run.Advance().X),
		"mode", opts.Mode,
		"direction", dir,
		"script", script,
		"generation", inst.generation,
	)
	return run, nil
}

// mapDirection converts our text.Direction to go-text's di.Direction.
func mapDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// convertGlyphs converts go-text/typesetting output shaped at one em
// (positions in 26.6 font units) to run entries at size pixels.
func convertGlyphs(glyphs []shaping.Glyph, size, upem float64) []GlyphRunEntry {
	if len(glyphs) == 0 {
		return nil
	}

	scale := func(v fixed.Int26_6) fixed.Int26_6 {
		return unitsToPixels(fixedToFloat(v), size, upem)
	}
	entries := make([]GlyphRunEntry, len(glyphs))
	for i, g := range glyphs {
		entries[i] = GlyphRunEntry{
			GID:      toGlyphID(g.GlyphID),
			Cluster:  g.TextIndex(),
			XOffset:  scale(g.XOffset),
			YOffset:  scale(g.YOffset),
			XAdvance: scale(g.Advance),
		}
	}
	return entries
}

// toGlyphID narrows a go-text glyph id. Ids beyond the 16-bit range cannot
// come from an sfnt font and map to notdef.
func toGlyphID(gid font.GID) GlyphID {
	if gid > math.MaxUint16 {
		return NotdefGlyph
	}
	return GlyphID(gid)
}
