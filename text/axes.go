package text

import (
	"bytes"
	"encoding/binary"
	"log/slog"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
)

// AxisDescriptor describes one variation axis of a font.
// Values are user design-space units, as stored (16.16 fixed) in the
// font's 'fvar' table.
type AxisDescriptor struct {
	// Tag is the four-character axis identifier, e.g. "wght".
	Tag string

	// Name is a display label for the axis.
	Name string

	Minimum float64
	Default float64
	Maximum float64
}

// Clamp limits v to the axis range.
func (a AxisDescriptor) Clamp(v float64) float64 {
	if v < a.Minimum {
		return a.Minimum
	}
	if v > a.Maximum {
		return a.Maximum
	}
	return v
}

// NamedInstance is a predefined point in design space declared by the font.
type NamedInstance struct {
	// Name is the instance's subfamily name from the font's 'name' table,
	// e.g. "Semibold". It is empty when the font does not provide one.
	Name string

	// Coords holds one value per axis, in axis order.
	Coords []float64
}

// registeredAxisNames labels the axes registered in the OpenType axis registry.
var registeredAxisNames = map[string]string{
	"wght": "Weight",
	"wdth": "Width",
	"ital": "Italic",
	"slnt": "Slant",
	"opsz": "Optical size",
}

var tagFvar = ot.MustNewTag("fvar")

// ExtractAxes returns the variation axes of the font in the font's own
// axis order. A font without (or with an unreadable) 'fvar' table has no
// axes: the result is empty and the font is used at its default outlines.
//
// The result depends only on the font data; repeated calls return equal
// slices. The returned slice is a copy and may be modified.
func ExtractAxes(res *FontResource) []AxisDescriptor {
	if res == nil {
		return nil
	}
	res.copyCheck()
	return res.axisList()
}

// NamedInstances returns the named instances declared in the font's 'fvar'
// table, in font order, with coordinates clamped to the axis ranges.
// The returned slice is a copy and may be modified.
func NamedInstances(res *FontResource) []NamedInstance {
	if res == nil {
		return nil
	}
	res.copyCheck()
	res.mu.RLock()
	defer res.mu.RUnlock()
	if len(res.named) == 0 {
		return nil
	}
	out := make([]NamedInstance, len(res.named))
	for i, n := range res.named {
		out[i] = NamedInstance{Name: n.Name, Coords: append([]float64(nil), n.Coords...)}
	}
	return out
}

// extractVariations decodes the 'fvar' axis and instance records of a font
// file. Labels are looked up in the 'name' table through meta; axes without
// one fall back to the registered axis name, then to the tag.
func extractVariations(data []byte, meta *metadata, logger *slog.Logger) ([]AxisDescriptor, []NamedInstance) {
	fvar, raw, ok := parseFvar(data, logger)
	if !ok {
		return nil, nil
	}

	nameIDs := axisNameIDs(raw, len(fvar.Axis))
	axes := make([]AxisDescriptor, 0, len(fvar.Axis))
	for i, rec := range fvar.Axis {
		tag := rec.Tag.String()
		name := meta.NameByID(nameIDs[i])
		if name == "" {
			name = registeredAxisNames[tag]
		}
		if name == "" {
			name = tag
		}
		axes = append(axes, AxisDescriptor{
			Tag:     tag,
			Name:    name,
			Minimum: float64(rec.Minimum),
			Default: float64(rec.Default),
			Maximum: float64(rec.Maximum),
		})
	}

	var named []NamedInstance
	for _, rec := range fvar.Instances {
		if len(rec.Coordinates) != len(axes) {
			continue
		}
		coords := make([]float64, len(axes))
		for i, c := range rec.Coordinates {
			coords[i] = axes[i].Clamp(float64(c))
		}
		named = append(named, NamedInstance{
			Name:   meta.NameByID(rec.SubfamilyNameID),
			Coords: coords,
		})
	}

	logger.Debug("text: variation axes extracted", "axes", len(axes), "instances", len(named))
	return axes, named
}

// axisNameIDs reads the 'name' table ids of the first n axis records.
// go-text does not export them, so they are taken from the raw table:
// each record stores its id at byte 18. Unreadable ids are 0.
func axisNameIDs(raw []byte, n int) []uint16 {
	ids := make([]uint16, n)
	if len(raw) < 12 {
		return ids
	}
	offset := int(binary.BigEndian.Uint16(raw[4:]))
	size := int(binary.BigEndian.Uint16(raw[10:]))
	for i := range ids {
		at := offset + i*size + 18
		if at+2 > len(raw) {
			break
		}
		ids[i] = binary.BigEndian.Uint16(raw[at:])
	}
	return ids
}

func parseFvar(data []byte, logger *slog.Logger) (tables.Fvar, []byte, bool) {
	ld, err := ot.NewLoader(bytes.NewReader(data))
	if err != nil {
		logger.Debug("text: cannot open font tables", "err", err)
		return tables.Fvar{}, nil, false
	}
	raw, err := ld.RawTable(tagFvar)
	if err != nil {
		logger.Debug("text: font has no variation table")
		return tables.Fvar{}, nil, false
	}
	fvar, _, err := tables.ParseFvar(raw)
	if err != nil {
		logger.Debug("text: malformed variation table", "err", err)
		return tables.Fvar{}, nil, false
	}
	return fvar, raw, true
}
