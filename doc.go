// Package vfpreview renders live previews of variable fonts.
//
// # Overview
//
// A Previewer takes one font, one line of text and a point in the font's
// design space, and produces an RGBA image of the text drawn at that point.
// Moving an axis and rendering again shows the new instance immediately.
//
// # Quick Start
//
//	import "github.com/gogpu/vfpreview"
//
//	p, err := vfpreview.Open("RobotoFlex.ttf", vfpreview.WithText("Handgloves"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	for i, axis := range p.Axes() {
//	    fmt.Println(i, axis.Tag, axis.Minimum, axis.Default, axis.Maximum)
//	}
//
//	p.SetAxisValueByTag("wght", 700)
//	img, err := p.Render()
//
// # Pipeline
//
// Every Render runs one synchronous pass through the text package:
//   - Instancer: applies the coordinate vector to the font
//   - Shaper: turns the text into positioned glyphs (HarfBuzz shaping, or
//     the glyphs' isolated advances when shaping is disabled)
//   - Compositor: rasterizes each glyph and draws it on a white canvas
//
// Glyphs that cannot be drawn are skipped and reported in
// text.Canvas.Failures; the rest of the line keeps its layout.
//
// # Coordinate System
//
// Canvas coordinates put the origin at the top-left, X increasing right
// and Y increasing down. The baseline sits one pixel size below the top.
package vfpreview
