package text

import (
	"testing"

	"github.com/gogpu/vfpreview/internal/fonttest"
)

// Weight axis of the synthetic variable font.
const (
	testWghtMin     = fonttest.WghtMin
	testWghtDefault = fonttest.WghtDefault
	testWghtMax     = fonttest.WghtMax
	testBoldWeight  = fonttest.NamedWeight
)

// staticResource loads Go Regular, a static font with kerning.
func staticResource(t *testing.T) *FontResource {
	t.Helper()

	res, err := NewFontResource(fonttest.Static())
	if err != nil {
		t.Fatalf("NewFontResource(goregular): %v", err)
	}
	t.Cleanup(func() {
		_ = res.Close()
	})
	return res
}

// variableResource loads Go Regular with a single 'wght' axis attached.
func variableResource(t *testing.T) *FontResource {
	t.Helper()

	res, err := NewFontResource(variableFontData(t))
	if err != nil {
		t.Fatalf("NewFontResource(variable): %v", err)
	}
	t.Cleanup(func() {
		_ = res.Close()
	})
	return res
}

func variableFontData(t *testing.T) []byte {
	t.Helper()

	data, err := fonttest.Variable()
	if err != nil {
		t.Fatalf("fonttest.Variable: %v", err)
	}
	return data
}

// mustInstance applies coords to res with a fresh Instancer.
func mustInstance(t *testing.T, res *FontResource, coords []float64) *FontInstance {
	t.Helper()

	inst, err := NewInstancer(nil).Apply(res, coords)
	if err != nil {
		t.Fatalf("Apply(%v): %v", coords, err)
	}
	return inst
}

// Weight axis of Selawik, whose deltas change outlines and advances.
const (
	selawikMin     = fonttest.SelawikMin
	selawikDefault = fonttest.SelawikDefault
	selawikMax     = fonttest.SelawikMax
)

// selawikResource loads the Selawik variable font.
func selawikResource(t *testing.T) *FontResource {
	t.Helper()

	res, err := NewFontResource(fonttest.Selawik())
	if err != nil {
		t.Fatalf("NewFontResource(selawik): %v", err)
	}
	t.Cleanup(func() {
		_ = res.Close()
	})
	return res
}

// kernedResource loads Roboto, a static font with pair kerning.
func kernedResource(t *testing.T) *FontResource {
	t.Helper()

	res, err := NewFontResource(fonttest.Kerned())
	if err != nil {
		t.Fatalf("NewFontResource(roboto): %v", err)
	}
	t.Cleanup(func() {
		_ = res.Close()
	})
	return res
}
