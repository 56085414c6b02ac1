package vfpreview

import (
	"log/slog"

	"github.com/gogpu/vfpreview/text"
)

// Default settings of a Previewer.
const (
	DefaultPixelSize    = 72
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 200
	DefaultLanguage     = "en"
)

// Option configures a Previewer during creation.
//
// Example:
//
//	p, err := vfpreview.Open("Inter.ttf",
//	    vfpreview.WithText("Handgloves"),
//	    vfpreview.WithPixelSize(96),
//	)
type Option func(*options)

// options holds the configuration for a Previewer.
type options struct {
	pixelSize float64
	width     int
	height    int
	text      string
	shaping   bool
	language  string
	direction text.Direction
	logger    *slog.Logger
}

// defaultOptions returns the default Previewer options.
func defaultOptions() options {
	return options{
		pixelSize: DefaultPixelSize,
		width:     DefaultCanvasWidth,
		height:    DefaultCanvasHeight,
		shaping:   true,
		language:  DefaultLanguage,
		direction: text.DirectionAuto,
	}
}

// WithPixelSize sets the font size in pixels per em.
func WithPixelSize(px float64) Option {
	return func(o *options) {
		o.pixelSize = px
	}
}

// WithCanvasSize sets the size of the rendered image.
func WithCanvasSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithText sets the initial preview string.
func WithText(s string) Option {
	return func(o *options) {
		o.text = s
	}
}

// WithShaping selects shaped advances (true, the default) or the glyphs'
// isolated advances (false).
func WithShaping(enabled bool) Option {
	return func(o *options) {
		o.shaping = enabled
	}
}

// WithLanguage sets the BCP 47 language tag used for shaping.
func WithLanguage(tag string) Option {
	return func(o *options) {
		if tag != "" {
			o.language = tag
		}
	}
}

// WithDirection forces a text direction instead of guessing it from the
// text. Vertical directions make Render fail.
func WithDirection(d text.Direction) Option {
	return func(o *options) {
		o.direction = d
	}
}

// WithLogger sets the logger for the Previewer and its pipeline.
// Without it the Previewer uses the package logger current at creation.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
