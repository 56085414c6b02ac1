package vfpreview

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/vfpreview/text"
)

// captureLogger returns a debug-level text logger writing to buf.
func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggerDefaultSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(captureLogger(&bytes.Buffer{}))
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) left no logger")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}

	p := newStatic(t, WithText("x"))
	if _, err := p.Render(); err != nil {
		t.Fatal(err)
	}
	if p.logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("Previewer created with the default logger is not silent")
	}
}

func TestPreviewerUsesPackageLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(custom)

	p := openVariable(t)
	if p.logger != custom {
		t.Error("Previewer did not pick up the package logger")
	}
	if !strings.Contains(buf.String(), "font opened") {
		t.Errorf("expected open to be logged, got: %s", buf.String())
	}

	// Previewers keep the logger they were created with.
	SetLogger(nil)
	if p.logger != custom {
		t.Error("SetLogger changed the logger of an existing Previewer")
	}
}

func TestWithLoggerOverridesPackageLogger(t *testing.T) {
	var buf bytes.Buffer
	own := captureLogger(&buf)

	p := newStatic(t, WithLogger(own), WithText("x"))
	if p.logger != own {
		t.Fatal("WithLogger was ignored")
	}
	if _, err := p.Render(); err != nil {
		t.Fatal(err)
	}
	for _, msg := range []string{"text: font instantiated", "text: shaped", "text: composited"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("expected %q in pipeline debug output, got: %s", msg, buf.String())
		}
	}
}

func TestPreviewer_LogsMemoizedInstance(t *testing.T) {
	var buf bytes.Buffer
	p := openVariable(t, WithLogger(captureLogger(&buf)), WithText("a"))

	if _, err := p.Render(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "instance unchanged") {
		t.Fatal("first render reported a memoized instance")
	}
	if _, err := p.Render(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "text: instance unchanged") {
		t.Errorf("second render did not reuse the instance, log: %s", buf.String())
	}
}

// Coordinates the font engine rejects are logged as a warning and the pass
// falls back to the last instance that worked.
func TestPreviewer_LogsRejectedCoordinates(t *testing.T) {
	var buf bytes.Buffer
	p := openVariable(t, WithLogger(captureLogger(&buf)), WithText("ab"), WithCanvasSize(96, 48), WithPixelSize(32))

	good, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}
	inst := p.Instance()

	rejected := errors.New("engine refused")
	p.apply = func(*text.FontResource, []float64) (*text.FontInstance, error) {
		return nil, &text.CoordinateSetError{Coords: []float64{150}, Err: rejected}
	}
	if err := p.SetAxisValue(0, 150); err != nil {
		t.Fatal(err)
	}

	img, err := p.Render()
	if err != nil {
		t.Fatalf("Render with rejected coordinates: %v", err)
	}
	if p.Instance() != inst {
		t.Error("pass did not keep the last good instance")
	}
	if !bytes.Equal(img.Pix, good.Pix) {
		t.Error("pass with the last good instance differs from its first render")
	}

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "coordinates rejected") {
		t.Errorf("expected a warning for the rejected coordinates, got: %s", out)
	}
	if !strings.Contains(out, rejected.Error()) {
		t.Errorf("warning does not carry the engine error: %s", out)
	}
}

// Errors other than CoordinateSetError abort the pass.
func TestPreviewer_InstanceErrorFailsPass(t *testing.T) {
	p := openVariable(t, WithText("a"))

	p.apply = func(*text.FontResource, []float64) (*text.FontInstance, error) {
		return nil, text.ErrClosed
	}
	if _, err := p.Render(); !errors.Is(err, text.ErrClosed) {
		t.Errorf("err = %v, want text.ErrClosed", err)
	}
	if p.LastImage() != nil {
		t.Error("failed pass stored an image")
	}
}
