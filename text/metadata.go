package text

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// metadata is a read-only golang.org/x/image/font/sfnt view of a font.
// It answers naming questions and pair kerning lookups; outlines and
// variations always come from the go-text font.
type metadata struct {
	font *sfnt.Font
	buf  sfnt.Buffer
}

func parseMetadata(data []byte) (*metadata, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &metadata{font: f}, nil
}

// Name returns the font family name, or "".
func (m *metadata) Name() string {
	if buf, err := m.font.Name(&m.buf, sfnt.NameIDFamily); err == nil && buf != "" {
		return buf
	}
	return ""
}

// FullName returns the full font name, or "".
func (m *metadata) FullName() string {
	if buf, err := m.font.Name(&m.buf, sfnt.NameIDFull); err == nil && buf != "" {
		return buf
	}
	return ""
}

// NameByID returns the 'name' table entry id, or "" when the font has
// none or m is nil.
func (m *metadata) NameByID(id uint16) string {
	if m == nil || id == 0 {
		return ""
	}
	name, err := m.font.Name(&m.buf, sfnt.NameID(id))
	if err != nil {
		return ""
	}
	return name
}

// NumGlyphs returns the number of glyphs in the font.
func (m *metadata) NumGlyphs() int {
	return m.font.NumGlyphs()
}

// GlyphIndex returns the glyph index for a rune, or 0 when unmapped.
func (m *metadata) GlyphIndex(r rune) GlyphID {
	idx, err := m.font.GlyphIndex(&m.buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

// kern returns the unhinted pair adjustment between two glyphs, in 26.6
// pixels at ppem.
func (m *metadata) kern(left, right GlyphID, ppem fixed.Int26_6) (fixed.Int26_6, error) {
	return m.font.Kern(&m.buf, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right), ppem, font.HintingNone)
}

// KernAdjust returns the font's declared pair kerning ('kern' table or GPOS
// pair positioning) between the glyphs mapped from left and right, at the
// given pixel size, in 26.6 pixels. Fonts without kerning report zero.
// The value belongs to the default instance.
func (r *FontResource) KernAdjust(left, right rune, pixelSize float64) (fixed.Int26_6, error) {
	r.copyCheck()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.meta == nil {
		return 0, fmt.Errorf("text: no metadata view for %s", r.name)
	}
	a, b := r.meta.GlyphIndex(left), r.meta.GlyphIndex(right)
	k, err := r.meta.kern(a, b, floatToFixed(pixelSize))
	if err != nil {
		return 0, fmt.Errorf("text: kern lookup %q/%q: %w", left, right, err)
	}
	return k, nil
}
