package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrClosed is returned when a FontResource is used after Close.
	ErrClosed = errors.New("text: font resource is closed")

	// ErrNilInstance is returned when a pipeline stage receives no FontInstance.
	ErrNilInstance = errors.New("text: nil font instance")

	// ErrStaleRun is returned when a glyph run is composited against an
	// instance other than the one it was shaped with.
	ErrStaleRun = errors.New("text: glyph run was shaped against a stale font instance")

	// ErrVerticalText is returned when a vertical direction is requested.
	ErrVerticalText = errors.New("text: vertical text is not supported")
)

// FontLoadError is returned when a font file is missing or cannot be parsed.
type FontLoadError struct {
	Path string
	Err  error
}

func (e *FontLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("text: failed to load font: %v", e.Err)
	}
	return fmt.Sprintf("text: failed to load font %q: %v", e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// CoordinateArityError is returned when a coordinate vector does not have
// one value per variation axis.
type CoordinateArityError struct {
	Got  int
	Want int
}

func (e *CoordinateArityError) Error() string {
	return fmt.Sprintf("text: coordinate vector has %d values, font has %d axes", e.Got, e.Want)
}

// CoordinateSetError is returned when the font engine rejects a set of
// variation coordinates.
type CoordinateSetError struct {
	Coords []float64
	Err    error
}

func (e *CoordinateSetError) Error() string {
	return fmt.Sprintf("text: cannot apply variation coordinates %v: %v", e.Coords, e.Err)
}

func (e *CoordinateSetError) Unwrap() error { return e.Err }

// AxisIndexError is returned when an axis index is out of range.
type AxisIndexError struct {
	Index int
	Count int
}

func (e *AxisIndexError) Error() string {
	return fmt.Sprintf("text: axis index %d out of range [0, %d)", e.Index, e.Count)
}

// GlyphLoadError reports a glyph whose outline could not be retrieved.
type GlyphLoadError struct {
	GID    GlyphID
	Reason string
}

func (e *GlyphLoadError) Error() string {
	return fmt.Sprintf("text: cannot load glyph %d: %s", e.GID, e.Reason)
}

// GlyphRasterError reports a glyph whose outline could not be converted
// to a coverage bitmap.
type GlyphRasterError struct {
	GID    GlyphID
	Reason string
}

func (e *GlyphRasterError) Error() string {
	return fmt.Sprintf("text: cannot rasterize glyph %d: %s", e.GID, e.Reason)
}
