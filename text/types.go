package text

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// GlyphID is a unique identifier for a glyph within a font.
// The glyph ID is assigned by the font file and is font-specific.
type GlyphID uint16

// NotdefGlyph is the glyph shapers emit for characters the font cannot map.
const NotdefGlyph GlyphID = 0

// Direction specifies text direction.
type Direction int

const (
	// DirectionAuto lets the shaper guess the direction from the text.
	DirectionAuto Direction = iota
	// DirectionLTR is left-to-right text (English, French, etc.)
	DirectionLTR
	// DirectionRTL is right-to-left text (Arabic, Hebrew)
	DirectionRTL
	// DirectionTTB is top-to-bottom text (traditional Chinese, Japanese)
	DirectionTTB
	// DirectionBTT is bottom-to-top text (rare)
	DirectionBTT
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionAuto:
		return "Auto"
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	case DirectionTTB:
		return "TTB"
	case DirectionBTT:
		return "BTT"
	default:
		return unknownStr
	}
}

// IsHorizontal returns true if the direction is horizontal (LTR or RTL).
func (d Direction) IsHorizontal() bool {
	return d == DirectionLTR || d == DirectionRTL
}

// IsVertical returns true if the direction is vertical (TTB or BTT).
func (d Direction) IsVertical() bool {
	return d == DirectionTTB || d == DirectionBTT
}

// AdvanceMode selects where glyph advances come from.
type AdvanceMode int

const (
	// AdvanceShaped uses the shaper's per-glyph advances, which include
	// kerning, ligature substitution and contextual spacing.
	AdvanceShaped AdvanceMode = iota
	// AdvanceFallback uses each glyph's own isolated advance, as reported
	// by the rasterizer, ignoring shaping adjustments.
	AdvanceFallback
)

// String returns the string representation of the mode.
func (m AdvanceMode) String() string {
	switch m {
	case AdvanceShaped:
		return "Shaped"
	case AdvanceFallback:
		return "Fallback"
	default:
		return unknownStr
	}
}

// floatToFixed converts a float64 pixel value to fixed.Int26_6.
// The fixed-point representation uses 6 fractional bits, so we multiply by 64.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// unitsToPixels converts a length in font units to 26.6 pixels at size
// pixels per em, rounding to the nearest 1/64 pixel.
func unitsToPixels(units, size, upem float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(units * size * 64 / upem))
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
