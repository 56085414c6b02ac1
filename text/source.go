package text

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"
)

// FontResource represents a loaded font file.
// It owns the raw font data, the parsed outline/metric tables and the
// variation axes found in the font. One FontResource is shared by every
// instance derived from it.
//
// A render pass mutates nothing in the resource, but the faces derived
// from it are not safe for concurrent use, so callers serialize passes
// with Lock/Unlock.
// FontResource must not be copied after creation (enforced by copyCheck).
type FontResource struct {
	// addr is used for copy protection (Ebitengine pattern).
	// It must point to the FontResource itself.
	addr *FontResource

	// pass serializes render passes against this resource.
	pass sync.Mutex

	// mu protects the fields below.
	mu sync.RWMutex

	data []byte
	path string
	font *font.Font
	meta *metadata
	axes  []AxisDescriptor
	named []NamedInstance
	name  string

	logger *slog.Logger
}

// NewFontResource creates a FontResource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
// Parse failures are reported as *FontLoadError.
func NewFontResource(data []byte, opts ...SourceOption) (*FontResource, error) {
	if len(data) == 0 {
		return nil, &FontLoadError{Err: ErrEmptyFontData}
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	face, err := font.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, &FontLoadError{Path: config.path, Err: err}
	}

	r := &FontResource{
		data:   dataCopy,
		path:   config.path,
		font:   face.Font,
		logger: config.logger,
	}
	r.addr = r

	// The sfnt view only serves naming and legacy kerning; fonts it cannot
	// read (CFF2 for instance) still load.
	r.meta, err = parseMetadata(dataCopy)
	if err != nil {
		r.logger.Debug("text: metadata view unavailable", "path", config.path, "err", err)
	}

	r.axes, r.named = extractVariations(dataCopy, r.meta, r.logger)
	r.name = extractFontName(r.meta)

	return r, nil
}

// LoadFont loads a FontResource from a font file path.
// A missing or unreadable file is reported as *FontLoadError.
func LoadFont(path string, opts ...SourceOption) (*FontResource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	return NewFontResource(data, append(opts, withPath(path))...)
}

// Name returns the font family name.
func (r *FontResource) Name() string {
	r.copyCheck()
	return r.name
}

// Path returns the file the resource was loaded from, if any.
func (r *FontResource) Path() string {
	r.copyCheck()
	return r.path
}

// AxisCount returns the number of variation axes; zero for static fonts.
func (r *FontResource) AxisCount() int {
	r.copyCheck()
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.axes)
}

// NumGlyphs returns the number of glyphs in the font.
func (r *FontResource) NumGlyphs() int {
	r.copyCheck()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.meta != nil {
		return r.meta.NumGlyphs()
	}
	return 0
}

// Upem returns the units per em of the font.
func (r *FontResource) Upem() int {
	r.copyCheck()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.font == nil {
		return 0
	}
	return int(r.font.Upem())
}

// Lock acquires the exclusive render-pass lock of the resource.
// Instancing, shaping and rasterization for one pass happen while it is held.
func (r *FontResource) Lock() {
	r.copyCheck()
	r.pass.Lock()
}

// Unlock releases the render-pass lock.
func (r *FontResource) Unlock() {
	r.pass.Unlock()
}

// Close releases resources associated with the FontResource.
// Instances created from this resource become invalid after Close.
func (r *FontResource) Close() error {
	r.copyCheck()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = nil
	r.font = nil
	r.meta = nil

	return nil
}

// parsed returns the go-text font, or ErrClosed.
func (r *FontResource) parsed() (*font.Font, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.font == nil {
		return nil, ErrClosed
	}
	return r.font, nil
}

// axisList returns a copy of the axes found at load time.
func (r *FontResource) axisList() []AxisDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.axes) == 0 {
		return nil
	}
	out := make([]AxisDescriptor, len(r.axes))
	copy(out, r.axes)
	return out
}

// copyCheck panics if FontResource was copied by value.
func (r *FontResource) copyCheck() {
	if r.addr != r {
		panic("text: FontResource must not be copied by value")
	}
}

// extractFontName extracts the font family name from the metadata view.
func extractFontName(m *metadata) string {
	if m != nil {
		if name := m.Name(); name != "" {
			return name
		}
		if fullName := m.FullName(); fullName != "" {
			return fullName
		}
	}
	return "Unknown Font"
}

// String implements fmt.Stringer.
func (r *FontResource) String() string {
	return fmt.Sprintf("FontResource(%s, %d axes)", r.Name(), r.AxisCount())
}
