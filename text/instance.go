package text

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// generationSeq stamps every FontInstance with a process-unique id.
var generationSeq atomic.Uint64

// FontInstance is a font resource instantiated at one point in design space.
// Its outlines and metrics reflect the coordinates it was built from.
//
// A FontInstance can only be produced by an Instancer. The Shaper, the
// Rasterizer and the Compositor accept nothing else, so a pass can never
// read outlines from a face whose coordinates were not applied first.
// Instances are immutable; applying new coordinates yields a new instance
// with a new generation.
//
// A FontInstance is not safe for concurrent use; hold the resource lock.
type FontInstance struct {
	res        *FontResource
	face       *font.Face
	coords     []float64
	generation uint64
}

// Resource returns the font resource the instance was derived from.
func (fi *FontInstance) Resource() *FontResource { return fi.res }

// Generation returns the instance's unique id.
func (fi *FontInstance) Generation() uint64 { return fi.generation }

// Coords returns a copy of the design-space coordinates applied to the
// instance, in axis order. It is nil for the default instance.
func (fi *FontInstance) Coords() []float64 {
	if len(fi.coords) == 0 {
		return nil
	}
	return append([]float64(nil), fi.coords...)
}

// IsDefault reports whether the instance uses the font's default outlines.
func (fi *FontInstance) IsDefault() bool { return len(fi.coords) == 0 }

// upem returns the units per em of the instance's font.
func (fi *FontInstance) upem() float64 {
	return float64(fi.face.Upem())
}

// Instancer applies coordinate vectors to font resources.
//
// It remembers the last instance it produced and returns it unchanged
// when asked for the same resource at the same coordinates, so repeated
// renders at an unchanged point skip re-instancing.
type Instancer struct {
	logger *slog.Logger

	last    *FontInstance
	applied int
}

// NewInstancer creates an Instancer. A nil logger discards output.
func NewInstancer(logger *slog.Logger) *Instancer {
	return &Instancer{logger: loggerOrNop(logger)}
}

// Apply instantiates res at coords.
//
// An empty coords selects the default instance. Otherwise coords must hold
// exactly one value per axis of res; any other length is rejected with
// *CoordinateArityError before anything is instanced. Coordinates the font
// engine cannot apply are rejected with *CoordinateSetError. On error the
// previously returned instance stays current.
func (in *Instancer) Apply(res *FontResource, coords []float64) (*FontInstance, error) {
	if res == nil {
		return nil, ErrClosed
	}
	res.copyCheck()

	axisCount := res.AxisCount()
	if len(coords) != 0 && len(coords) != axisCount {
		return nil, &CoordinateArityError{Got: len(coords), Want: axisCount}
	}

	if in.last != nil && in.last.res == res && coordsEqual(in.last.coords, coords) {
		in.logger.Debug("text: instance unchanged", "generation", in.last.generation)
		return in.last, nil
	}

	f, err := res.parsed()
	if err != nil {
		return nil, err
	}

	face := font.NewFace(f)
	var applied []float64
	if axisCount > 0 && len(coords) > 0 {
		axes := res.axisList()
		if err := applyVariations(face, axes, coords); err != nil {
			return nil, &CoordinateSetError{Coords: append([]float64(nil), coords...), Err: err}
		}
		applied = append([]float64(nil), coords...)
	}

	inst := &FontInstance{
		res:        res,
		face:       face,
		coords:     applied,
		generation: generationSeq.Add(1),
	}
	in.last = inst
	in.applied++

	in.logger.Debug("text: font instantiated",
		"font", res.Name(),
		"coords", applied,
		"generation", inst.generation,
	)
	return inst, nil
}

// Current returns the last successfully applied instance, or nil.
func (in *Instancer) Current() *FontInstance { return in.last }

// Instantiations returns how many instances Apply has built (memoized
// calls excluded).
func (in *Instancer) Instantiations() int { return in.applied }

// Invalidate forgets the memoized instance, forcing the next Apply to
// rebuild it.
func (in *Instancer) Invalidate() { in.last = nil }

var errNonFinite = errors.New("non-finite coordinate")

// applyVariations sets user-space coordinates on face. The font engine
// does not report errors, so malformed variation data surfaces as a panic
// and is converted here.
func applyVariations(face *font.Face, axes []AxisDescriptor, coords []float64) (err error) {
	vars := make([]font.Variation, len(coords))
	for i, v := range coords {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("axis %s: %w", axes[i].Tag, errNonFinite)
		}
		vars[i] = font.Variation{Tag: ot.MustNewTag(axes[i].Tag), Value: float32(v)}
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("font engine: %v", r)
		}
	}()
	face.SetVariations(vars)
	return nil
}
