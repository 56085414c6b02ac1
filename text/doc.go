// Package text implements the font pipeline behind vfpreview.
//
// The pipeline follows a separation of concerns:
//
//   - FontResource: heavyweight, shared font file (parses TTF/OTF data)
//   - AxisDescriptor, CoordinateSet: the font's design space and the
//     current point in it
//   - Instancer: turns a FontResource and a coordinate vector into a
//     FontInstance
//   - Shaper: converts a string into a GlyphRun against a FontInstance
//   - Rasterizer: fills glyph outlines into 8-bit coverage bitmaps
//   - Compositor: lays a GlyphRun out on one line of an RGBA canvas
//
// # Example usage
//
//	res, err := text.LoadFont("RobotoFlex.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer res.Close()
//
//	coords := text.NewCoordinateSet(text.ExtractAxes(res))
//	_ = coords.SetAxisValue(0, 700)
//
//	inst, err := text.NewInstancer(nil).Apply(res, coords.Snapshot())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	raster := text.NewRasterizer(nil)
//	run, err := text.NewShaper(raster, nil).Shape("Handgloves", inst, text.ShapeOptions{Size: 72})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	canvas, err := text.NewCompositor(raster, nil).Composite(run, inst, image.Pt(800, 200))
//
// # Instances
//
// Only the Instancer creates FontInstances, and every later stage takes
// one. Outlines and metrics are therefore always read from a face whose
// coordinates have been applied. Each instance carries a generation id;
// glyph runs remember the generation they were shaped with and the
// Compositor refuses runs from another instance.
//
// The Shaper and the Compositor keep state between passes (HarfBuzz fonts
// and rasterized glyphs). Both key it on the instance generation, so a
// new instance is never drawn or shaped with data from an older one.
//
// # Units
//
// Axis values are user design-space units as stored in the font.
// Glyph run offsets and advances are 26.6 fixed-point pixels. Text is
// shaped at one em and scaled, so any positive pixel size, fractional
// ones included, gives the advances the Rasterizer reports.
//
// # Thread Safety
//
// FontResource and CoordinateSet are safe for concurrent use. Faces derived
// from a resource are not: hold the resource's Lock for the whole pass.
package text
