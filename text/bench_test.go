package text

import (
	"image"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func benchInstance(b *testing.B) *FontInstance {
	b.Helper()

	res, err := NewFontResource(goregular.TTF)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = res.Close() })

	inst, err := NewInstancer(nil).Apply(res, nil)
	if err != nil {
		b.Fatal(err)
	}
	return inst
}

// BenchmarkCacheGetOrCreate benchmarks GetOrCreate with cache hits.
func BenchmarkCacheGetOrCreate(b *testing.B) {
	cache := NewCache[GlyphID, int](1000)
	for i := 0; i < 100; i++ {
		cache.GetOrCreate(GlyphID(i), constant(i))
	}

	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		cache.GetOrCreate(GlyphID(i%100), constant(i))
	}
}

// BenchmarkCacheEviction benchmarks inserts into a full cache.
func BenchmarkCacheEviction(b *testing.B) {
	cache := NewCache[int, int](100)

	for i := 0; b.Loop(); i++ {
		cache.GetOrCreate(i, constant(i))
	}
}

func BenchmarkShape(b *testing.B) {
	inst := benchInstance(b)
	s := NewShaper(nil, nil)
	opts := ShapeOptions{Size: 64}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := s.Shape("Sphinx of black quartz, judge my vow", inst, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRasterize(b *testing.B) {
	inst := benchInstance(b)
	r := NewRasterizer(nil)
	gid := inst.Resource().meta.GlyphIndex('g')

	b.ReportAllocs()
	for b.Loop() {
		if _, err := r.Rasterize(gid, inst, 64); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComposite(b *testing.B) {
	inst := benchInstance(b)
	raster := NewRasterizer(nil)
	run, err := NewShaper(raster, nil).Shape("Handgloves", inst, ShapeOptions{Size: 64})
	if err != nil {
		b.Fatal(err)
	}
	c := NewCompositor(raster, nil)
	size := image.Pt(1024, 192)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := c.Composite(run, inst, size); err != nil {
			b.Fatal(err)
		}
	}
}
