package text

import (
	"github.com/go-text/typesetting/language"
	"golang.org/x/image/math/fixed"
)

// GlyphRunEntry is one positioned glyph of a shaped run.
// Offsets and advances are 26.6 fixed-point pixels (64 units per pixel);
// offsets use y-up font orientation.
type GlyphRunEntry struct {
	// GID is the glyph index in the font.
	GID GlyphID

	// Cluster is the index of the first rune of the source text this
	// glyph belongs to. Ligatures share the cluster of their first rune.
	Cluster int

	// XOffset, YOffset displace the glyph from the pen position without
	// moving the pen.
	XOffset, YOffset fixed.Int26_6

	// XAdvance, YAdvance move the pen to the next glyph.
	XAdvance, YAdvance fixed.Int26_6
}

// GlyphRun is the ordered output of shaping one line of text.
// Entries are in the order they are laid out; nothing downstream reorders.
type GlyphRun struct {
	Entries []GlyphRunEntry

	// Mode records where the advances came from.
	Mode AdvanceMode

	// Size is the pixel size the run was shaped at.
	Size float64

	Direction Direction
	Script    language.Script
	Language  language.Language

	// generation is the FontInstance generation the run was shaped against.
	generation uint64
}

// Generation returns the generation of the FontInstance the run belongs to.
func (r *GlyphRun) Generation() uint64 { return r.generation }

// Len returns the number of glyphs in the run.
func (r *GlyphRun) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Entries)
}

// Advance returns the sum of all entry advances.
func (r *GlyphRun) Advance() fixed.Point26_6 {
	var p fixed.Point26_6
	if r == nil {
		return p
	}
	for _, e := range r.Entries {
		p.X += e.XAdvance
		p.Y += e.YAdvance
	}
	return p
}

// GlyphIDs returns the glyph ids of the run in order.
func (r *GlyphRun) GlyphIDs() []GlyphID {
	if r == nil {
		return nil
	}
	ids := make([]GlyphID, len(r.Entries))
	for i, e := range r.Entries {
		ids[i] = e.GID
	}
	return ids
}

// Clusters returns the cluster indices of the run in order.
func (r *GlyphRun) Clusters() []int {
	if r == nil {
		return nil
	}
	cl := make([]int, len(r.Entries))
	for i, e := range r.Entries {
		cl[i] = e.Cluster
	}
	return cl
}
