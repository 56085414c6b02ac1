package vfpreview

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/gogpu/vfpreview/text"
)

var (
	// ErrInvalidPixelSize is returned for a pixel size that is not a
	// positive finite number.
	ErrInvalidPixelSize = errors.New("vfpreview: pixel size must be positive and finite")

	// ErrInvalidCanvasSize is returned for a canvas without area.
	ErrInvalidCanvasSize = errors.New("vfpreview: canvas width and height must be positive")

	// ErrUnknownAxis is returned when an axis tag is not in the font.
	ErrUnknownAxis = errors.New("vfpreview: unknown axis")

	// ErrUnknownInstance is returned for a named instance index out of range.
	ErrUnknownInstance = errors.New("vfpreview: unknown named instance")
)

// Previewer renders one line of text in one font at the current point of
// the font's design space.
//
// A Previewer owns the whole pipeline: the font resource, the coordinate
// set, the instancer, the shaper, the rasterizer and the compositor. Every
// Render runs one synchronous pass (instance, shape, composite) while
// holding the font's render lock, so a pass never sees coordinates change
// halfway through.
//
// Previewer is safe for concurrent use.
type Previewer struct {
	mu sync.Mutex

	res    *text.FontResource
	owned  bool
	coords *text.CoordinateSet

	instancer  *text.Instancer
	shaper     *text.Shaper
	compositor *text.Compositor

	// apply instantiates the resource at a coordinate vector (instancer.Apply).
	apply func(*text.FontResource, []float64) (*text.FontInstance, error)

	opts   options
	logger *slog.Logger

	inst *text.FontInstance
	last *text.Canvas
}

// Open loads the font at path and creates a Previewer for it.
// The font is closed together with the Previewer.
func Open(path string, opts ...Option) (*Previewer, error) {
	o := buildOptions(opts)
	res, err := text.LoadFont(path, text.WithSourceLogger(o.logger))
	if err != nil {
		return nil, err
	}
	p, err := newPreviewer(res, o)
	if err != nil {
		_ = res.Close()
		return nil, err
	}
	p.owned = true
	return p, nil
}

// New creates a Previewer for an already loaded font. The caller keeps
// ownership of res.
func New(res *text.FontResource, opts ...Option) (*Previewer, error) {
	if res == nil {
		return nil, text.ErrClosed
	}
	return newPreviewer(res, buildOptions(opts))
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

func newPreviewer(res *text.FontResource, o options) (*Previewer, error) {
	if err := validPixelSize(o.pixelSize); err != nil {
		return nil, err
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, ErrInvalidCanvasSize
	}

	raster := text.NewRasterizer(o.logger)
	p := &Previewer{
		res:        res,
		coords:     text.NewCoordinateSet(text.ExtractAxes(res)),
		instancer:  text.NewInstancer(o.logger),
		shaper:     text.NewShaper(raster, o.logger),
		compositor: text.NewCompositor(raster, o.logger),
		opts:       o,
		logger:     o.logger,
	}
	p.apply = p.instancer.Apply

	p.logger.Info("vfpreview: font opened",
		"font", res.Name(),
		"path", res.Path(),
		"axes", p.coords.Len(),
	)
	return p, nil
}

// Close releases the font if the Previewer opened it.
func (p *Previewer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.inst = nil
	p.instancer.Invalidate()
	p.compositor.Reset()
	if p.owned {
		p.owned = false
		return p.res.Close()
	}
	return nil
}

// Font returns the font being previewed.
func (p *Previewer) Font() *text.FontResource { return p.res }

// Axes returns the variation axes of the font, in font order.
// It is empty for static fonts.
func (p *Previewer) Axes() []text.AxisDescriptor {
	return p.coords.Axes()
}

// NamedInstances returns the predefined instances declared by the font.
func (p *Previewer) NamedInstances() []text.NamedInstance {
	return text.NamedInstances(p.res)
}

// Coordinates returns the current design-space coordinates, in axis order.
func (p *Previewer) Coordinates() []float64 {
	return p.coords.Snapshot()
}

// SetAxisValue moves axis index to the position of a raw control value.
// Values outside the axis range are clamped.
func (p *Previewer) SetAxisValue(index int, raw float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.coords.SetAxisValue(index, text.SliderToDesign(raw))
}

// SetAxisValueByTag is SetAxisValue addressing the axis by its tag.
func (p *Previewer) SetAxisValueByTag(tag string, raw float64) error {
	for i, a := range p.coords.Axes() {
		if a.Tag == tag {
			return p.SetAxisValue(i, raw)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownAxis, tag)
}

// SetCoordinates replaces the whole coordinate vector. values must hold one
// entry per axis; otherwise *text.CoordinateArityError is returned and
// nothing changes. An empty vector selects the default instance.
func (p *Previewer) SetCoordinates(values []float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.coords.Replace(values)
}

// ApplyNamedInstance moves every axis to the coordinates of the font's
// n-th named instance.
func (p *Previewer) ApplyNamedInstance(n int) error {
	named := p.NamedInstances()
	if n < 0 || n >= len(named) {
		return fmt.Errorf("%w: %d of %d", ErrUnknownInstance, n, len(named))
	}
	return p.SetCoordinates(named[n].Coords)
}

// ApplyNamedInstanceByName is ApplyNamedInstance addressing the instance
// by its subfamily name, compared case-insensitively.
func (p *Previewer) ApplyNamedInstanceByName(name string) error {
	for i, n := range p.NamedInstances() {
		if n.Name != "" && strings.EqualFold(n.Name, name) {
			return p.ApplyNamedInstance(i)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownInstance, name)
}

// Text returns the preview string.
func (p *Previewer) Text() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts.text
}

// SetText replaces the preview string.
func (p *Previewer) SetText(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.text = s
}

// PixelSize returns the font size in pixels per em.
func (p *Previewer) PixelSize() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts.pixelSize
}

// SetPixelSize sets the font size in pixels per em.
func (p *Previewer) SetPixelSize(px float64) error {
	if err := validPixelSize(px); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.pixelSize = px
	return nil
}

// SetCanvasSize sets the size of the rendered image.
func (p *Previewer) SetCanvasSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidCanvasSize
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.width, p.opts.height = width, height
	return nil
}

// ShapingEnabled reports whether shaped advances are in use.
func (p *Previewer) ShapingEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts.shaping
}

// SetShapingEnabled switches between shaped advances and the glyphs'
// isolated advances. Glyph selection is the same in both modes.
func (p *Previewer) SetShapingEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.shaping = enabled
}

// Render runs a full pass and returns the canvas image.
func (p *Previewer) Render() (*image.RGBA, error) {
	c, err := p.RenderCanvas()
	if err != nil {
		return nil, err
	}
	return c.Image, nil
}

// RenderCanvas runs a full pass and returns the canvas together with the
// pen positions and the glyphs that could not be drawn.
//
// Coordinates the font engine rejects do not fail the pass: the failure is
// logged and the last instance that worked is used instead.
func (p *Previewer) RenderCanvas() (*text.Canvas, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.res.Lock()
	defer p.res.Unlock()

	inst, err := p.instance()
	if err != nil {
		return nil, err
	}

	mode := text.AdvanceShaped
	if !p.opts.shaping {
		mode = text.AdvanceFallback
	}
	run, err := p.shaper.Shape(p.opts.text, inst, text.ShapeOptions{
		Size:      p.opts.pixelSize,
		Language:  p.opts.language,
		Direction: p.opts.direction,
		Mode:      mode,
	})
	if err != nil {
		return nil, err
	}

	canvas, err := p.compositor.Composite(run, inst, image.Pt(p.opts.width, p.opts.height))
	if err != nil {
		return nil, err
	}
	if n := len(canvas.Failures); n > 0 {
		p.logger.Debug("vfpreview: glyphs skipped", "count", n, "glyphs", run.Len())
	}

	p.last = canvas
	return canvas, nil
}

// instance applies the current coordinates. Caller holds p.mu and the
// resource lock.
func (p *Previewer) instance() (*text.FontInstance, error) {
	coords := p.coords.Snapshot()
	inst, err := p.apply(p.res, coords)
	if err == nil {
		p.inst = inst
		return inst, nil
	}

	var cse *text.CoordinateSetError
	if !errors.As(err, &cse) {
		return nil, err
	}

	p.logger.Warn("vfpreview: coordinates rejected, keeping previous instance",
		"coords", coords,
		"err", err,
	)
	if p.inst != nil {
		return p.inst, nil
	}
	inst, err = p.apply(p.res, nil)
	if err != nil {
		return nil, err
	}
	p.inst = inst
	return inst, nil
}

// LastImage returns the image of the last successful pass, or nil.
func (p *Previewer) LastImage() *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return nil
	}
	return p.last.Image
}

// Instance returns the font instance used by the last pass.
func (p *Previewer) Instance() *text.FontInstance {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inst
}

func validPixelSize(px float64) error {
	if px <= 0 || math.IsNaN(px) || math.IsInf(px, 0) {
		return ErrInvalidPixelSize
	}
	return nil
}
