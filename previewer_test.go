package vfpreview

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gogpu/vfpreview/internal/fonttest"
	"github.com/gogpu/vfpreview/text"
)

func variableFontPath(t *testing.T) string {
	t.Helper()

	data, err := fonttest.Variable()
	if err != nil {
		t.Fatalf("fonttest.Variable: %v", err)
	}
	path := filepath.Join(t.TempDir(), "variable.ttf")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func openVariable(t *testing.T, opts ...Option) *Previewer {
	t.Helper()

	p, err := Open(variableFontPath(t), opts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func newStatic(t *testing.T, opts ...Option) *Previewer {
	t.Helper()
	return newPreviewerFor(t, fonttest.Static(), opts...)
}

// newPreviewerFor creates a Previewer for font data the test keeps.
func newPreviewerFor(t *testing.T, data []byte, opts ...Option) *Previewer {
	t.Helper()

	res, err := text.NewFontResource(data)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = res.Close() })

	p, err := New(res, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.ttf"))
	var fle *text.FontLoadError
	if !errors.As(err, &fle) {
		t.Errorf("err = %v, want *text.FontLoadError", err)
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	res, err := text.NewFontResource(fonttest.Static())
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if _, err := New(res, WithPixelSize(0)); !errors.Is(err, ErrInvalidPixelSize) {
		t.Errorf("pixel size 0: err = %v", err)
	}
	if _, err := New(res, WithCanvasSize(10, -1)); !errors.Is(err, ErrInvalidCanvasSize) {
		t.Errorf("negative height: err = %v", err)
	}
	if _, err := New(nil); err == nil {
		t.Error("New(nil): expected error")
	}
}

func TestPreviewer_Axes(t *testing.T) {
	p := openVariable(t)

	axes := p.Axes()
	if len(axes) != 1 || axes[0].Tag != "wght" {
		t.Fatalf("Axes() = %+v", axes)
	}
	if got := p.Coordinates(); !reflect.DeepEqual(got, []float64{fonttest.WghtDefault}) {
		t.Errorf("Coordinates() = %v, want default", got)
	}

	if s := newStatic(t); len(s.Axes()) != 0 || s.Coordinates() != nil {
		t.Errorf("static font: axes %v coords %v", s.Axes(), s.Coordinates())
	}
}

func TestPreviewer_RenderIsRepeatable(t *testing.T) {
	p := openVariable(t, WithText("Handgloves"), WithCanvasSize(400, 80), WithPixelSize(48))

	if err := p.SetAxisValue(0, 250); err != nil {
		t.Fatal(err)
	}
	a, err := p.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b, err := p.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two renders with unchanged inputs differ")
	}
	if a.Bounds().Dx() != 400 || a.Bounds().Dy() != 80 {
		t.Errorf("bounds = %v", a.Bounds())
	}
	if p.LastImage() != b {
		t.Error("LastImage does not return the last render")
	}
}

func TestPreviewer_SliderReachesInstance(t *testing.T) {
	p := openVariable(t, WithText("a"))

	if err := p.SetAxisValue(0, 100); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Render(); err != nil {
		t.Fatal(err)
	}
	if got := p.Instance().Coords(); !reflect.DeepEqual(got, []float64{100}) {
		t.Errorf("instance coords = %v, want [100]", got)
	}

	if err := p.SetAxisValueByTag("wght", 1000); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Render(); err != nil {
		t.Fatal(err)
	}
	if got := p.Instance().Coords(); !reflect.DeepEqual(got, []float64{fonttest.WghtMax}) {
		t.Errorf("instance coords = %v, want clamped max", got)
	}

	if err := p.SetAxisValueByTag("wdth", 100); !errors.Is(err, ErrUnknownAxis) {
		t.Errorf("unknown tag: err = %v", err)
	}
}

func TestPreviewer_ArityMismatchChangesNothing(t *testing.T) {
	p := openVariable(t, WithText("wght"))

	if err := p.SetAxisValue(0, 200); err != nil {
		t.Fatal(err)
	}
	before, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}
	inst := p.Instance()

	err = p.SetCoordinates([]float64{200, 100})
	var arity *text.CoordinateArityError
	if !errors.As(err, &arity) {
		t.Fatalf("err = %v, want *text.CoordinateArityError", err)
	}

	if got := p.Coordinates(); !reflect.DeepEqual(got, []float64{200}) {
		t.Errorf("coordinates changed to %v", got)
	}
	if p.Instance() != inst {
		t.Error("instance changed")
	}
	if p.LastImage() != before {
		t.Error("last image changed")
	}

	after, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}
	if p.Instance() != inst {
		t.Error("render after a rejected vector built a new instance")
	}
	if !bytes.Equal(before.Pix, after.Pix) {
		t.Error("render after a rejected vector differs")
	}
}

func TestPreviewer_NamedInstance(t *testing.T) {
	p := openVariable(t)

	if err := p.ApplyNamedInstance(0); err != nil {
		t.Fatal(err)
	}
	if got := p.Coordinates(); !reflect.DeepEqual(got, []float64{fonttest.NamedWeight}) {
		t.Errorf("Coordinates() = %v", got)
	}
	if err := p.ApplyNamedInstance(3); !errors.Is(err, ErrUnknownInstance) {
		t.Errorf("err = %v, want ErrUnknownInstance", err)
	}
}

func TestPreviewer_NamedInstanceByName(t *testing.T) {
	p := newPreviewerFor(t, fonttest.Selawik())

	if err := p.ApplyNamedInstanceByName("semibold"); err != nil {
		t.Fatal(err)
	}
	if got := p.Coordinates(); !reflect.DeepEqual(got, []float64{600}) {
		t.Errorf("Coordinates() = %v, want [600]", got)
	}
	if err := p.ApplyNamedInstanceByName("Black"); !errors.Is(err, ErrUnknownInstance) {
		t.Errorf("err = %v, want ErrUnknownInstance", err)
	}
}

func TestPreviewer_ShapingToggle(t *testing.T) {
	p := newPreviewerFor(t, fonttest.Kerned(), WithText("AVAVAV"), WithCanvasSize(512, 96), WithPixelSize(64))

	shaped, err := p.RenderCanvas()
	if err != nil {
		t.Fatal(err)
	}
	p.SetShapingEnabled(false)
	if p.ShapingEnabled() {
		t.Fatal("ShapingEnabled() = true after disabling")
	}
	fallback, err := p.RenderCanvas()
	if err != nil {
		t.Fatal(err)
	}

	if shaped.Advance.X >= fallback.Advance.X {
		t.Errorf("shaped advance %v, want less than fallback %v for kerned text", shaped.Advance.X, fallback.Advance.X)
	}
	if bytes.Equal(shaped.Image.Pix, fallback.Image.Pix) {
		t.Error("toggling shaping did not change the kerned canvas")
	}
}

func TestPreviewer_ShapingToggleUnkerned(t *testing.T) {
	p := newStatic(t, WithText("llll"), WithCanvasSize(128, 48), WithPixelSize(12.5))

	shaped, err := p.RenderCanvas()
	if err != nil {
		t.Fatal(err)
	}
	p.SetShapingEnabled(false)
	fallback, err := p.RenderCanvas()
	if err != nil {
		t.Fatal(err)
	}
	if shaped.Advance != fallback.Advance {
		t.Errorf("shaped advance %v, fallback %v for unkerned text", shaped.Advance, fallback.Advance)
	}
	if !bytes.Equal(shaped.Image.Pix, fallback.Image.Pix) {
		t.Error("unkerned canvas changed with shaping")
	}
}

// Moving an axis on a live Previewer gives the same pass as a Previewer
// opened at the new coordinates.
func TestPreviewer_AxisChangeReachesEveryStage(t *testing.T) {
	opts := []Option{WithText("aaaa"), WithCanvasSize(480, 120), WithPixelSize(100)}

	live := newPreviewerFor(t, fonttest.Selawik(), opts...)
	if err := live.SetAxisValue(0, fonttest.SelawikMin); err != nil {
		t.Fatal(err)
	}
	light, err := live.RenderCanvas()
	if err != nil {
		t.Fatal(err)
	}
	if err := live.SetAxisValue(0, fonttest.SelawikMax); err != nil {
		t.Fatal(err)
	}
	moved, err := live.RenderCanvas()
	if err != nil {
		t.Fatal(err)
	}

	fresh := newPreviewerFor(t, fonttest.Selawik(), opts...)
	if err := fresh.SetAxisValue(0, fonttest.SelawikMax); err != nil {
		t.Fatal(err)
	}
	want, err := fresh.RenderCanvas()
	if err != nil {
		t.Fatal(err)
	}

	if light.Advance == want.Advance {
		t.Fatalf("advance %v is the same at both ends of the weight axis", want.Advance)
	}
	if moved.Advance != want.Advance {
		t.Errorf("advance after axis change = %v, want %v", moved.Advance, want.Advance)
	}
	if !reflect.DeepEqual(moved.Pens, want.Pens) {
		t.Errorf("pens after axis change = %v, want %v", moved.Pens, want.Pens)
	}
	if !bytes.Equal(moved.Image.Pix, want.Image.Pix) {
		t.Error("canvas after axis change differs from a fresh render")
	}

	for _, shaping := range []bool{true, false} {
		live.SetShapingEnabled(shaping)
		fresh.SetShapingEnabled(shaping)
		a, err := live.RenderCanvas()
		if err != nil {
			t.Fatal(err)
		}
		b, err := fresh.RenderCanvas()
		if err != nil {
			t.Fatal(err)
		}
		if a.Advance != b.Advance {
			t.Errorf("shaping=%v: advance %v, want %v", shaping, a.Advance, b.Advance)
		}
	}
}

func TestPreviewer_StaticFontRenders(t *testing.T) {
	p := newStatic(t, WithText("Go"), WithCanvasSize(128, 80))

	img, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(127, 79); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("corner pixel = %v, want white", got)
	}
	if err := p.SetCoordinates(nil); err != nil {
		t.Errorf("SetCoordinates(nil) on static font: %v", err)
	}
}

func TestPreviewer_Setters(t *testing.T) {
	p := newStatic(t)

	if p.PixelSize() != DefaultPixelSize {
		t.Errorf("PixelSize() = %v, want %v", p.PixelSize(), DefaultPixelSize)
	}
	if err := p.SetPixelSize(-1); !errors.Is(err, ErrInvalidPixelSize) {
		t.Errorf("SetPixelSize(-1): err = %v", err)
	}
	if err := p.SetPixelSize(12.5); err != nil || p.PixelSize() != 12.5 {
		t.Errorf("SetPixelSize(12.5): err = %v, size = %v", err, p.PixelSize())
	}
	p.SetText("abc")
	if p.Text() != "abc" {
		t.Errorf("Text() = %q", p.Text())
	}
	if err := p.SetCanvasSize(0, 10); !errors.Is(err, ErrInvalidCanvasSize) {
		t.Errorf("SetCanvasSize(0, 10): err = %v", err)
	}
}

func TestPreviewer_VerticalDirectionFails(t *testing.T) {
	p := newStatic(t, WithText("a"), WithDirection(text.DirectionTTB))

	if _, err := p.Render(); !errors.Is(err, text.ErrVerticalText) {
		t.Errorf("err = %v, want text.ErrVerticalText", err)
	}
	if p.LastImage() != nil {
		t.Error("failed pass stored an image")
	}
}
