// Package fonttest builds font files for tests.
package fonttest

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"slices"

	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight axis of the font returned by Variable.
const (
	WghtMin     = 48
	WghtDefault = 100
	WghtMax     = 320

	// NamedWeight is the coordinate of the font's single named instance.
	NamedWeight = 200
)

// Weight axis of the font returned by Selawik.
const (
	SelawikMin     = 300
	SelawikDefault = 400
	SelawikMax     = 700

	// SelawikAxisName is the label the font's name table gives its axis.
	SelawikAxisName = "Weight"
)

// SelawikInstances lists the subfamily names of Selawik's named instances
// in font order.
var SelawikInstances = []string{"Light", "Semilight", "Regular", "Semibold", "Bold"}

var (
	//go:embed testdata/Selawik-VF-Subset.ttf
	selawik []byte

	//go:embed testdata/Roboto-Regular.ttf
	roboto []byte
)

// Static returns Go Regular, a static font without pair kerning.
func Static() []byte {
	return goregular.TTF
}

// Kerned returns Roboto Regular, a static font with GPOS pair kerning
// (for example between 'A' and 'V').
func Kerned() []byte {
	return roboto
}

// Selawik returns a subset of Selawik Variations: one 'wght' axis whose
// 'gvar' and 'HVAR' deltas change outlines and advances across the range.
func Selawik() []byte {
	return selawik
}

// Variable returns Go Regular with an 'fvar' table declaring one 'wght'
// axis and one named instance. The font carries no 'gvar' deltas, so every
// point in design space keeps the default outlines and advances.
func Variable() ([]byte, error) {
	tables, err := readTables(goregular.TTF)
	if err != nil {
		return nil, err
	}
	tables = append(tables, ot.Table{Tag: ot.MustNewTag("fvar"), Content: buildFvar()})
	slices.SortFunc(tables, func(a, b ot.Table) int {
		switch {
		case a.Tag < b.Tag:
			return -1
		case a.Tag > b.Tag:
			return 1
		}
		return 0
	})
	return ot.WriteTTF(tables), nil
}

// readTables splits an sfnt file into its tables.
func readTables(data []byte) ([]ot.Table, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("fonttest: font data too short: %d bytes", len(data))
	}
	n := int(binary.BigEndian.Uint16(data[4:]))
	if len(data) < 12+16*n {
		return nil, fmt.Errorf("fonttest: truncated table directory")
	}
	out := make([]ot.Table, 0, n+1)
	for i := 0; i < n; i++ {
		rec := data[12+16*i:]
		tag := ot.Tag(binary.BigEndian.Uint32(rec))
		off := int(binary.BigEndian.Uint32(rec[8:]))
		length := int(binary.BigEndian.Uint32(rec[12:]))
		if off+length > len(data) {
			return nil, fmt.Errorf("fonttest: table %s out of bounds", tag)
		}
		out = append(out, ot.Table{Tag: tag, Content: data[off : off+length]})
	}
	return out, nil
}

func buildFvar() []byte {
	const (
		axisCount    = 1
		axisSize     = 20
		instCount    = 1
		instSize     = 4 + 4*axisCount
		axesOffset   = 16
		headerLength = 16
	)
	buf := make([]byte, headerLength+axisCount*axisSize+instCount*instSize)

	binary.BigEndian.PutUint16(buf[0:], 1) // major
	binary.BigEndian.PutUint16(buf[2:], 0) // minor
	binary.BigEndian.PutUint16(buf[4:], axesOffset)
	binary.BigEndian.PutUint16(buf[6:], 2)
	binary.BigEndian.PutUint16(buf[8:], axisCount)
	binary.BigEndian.PutUint16(buf[10:], axisSize)
	binary.BigEndian.PutUint16(buf[12:], instCount)
	binary.BigEndian.PutUint16(buf[14:], instSize)

	axis := buf[axesOffset:]
	binary.BigEndian.PutUint32(axis[0:], uint32(ot.MustNewTag("wght")))
	binary.BigEndian.PutUint32(axis[4:], fixed16(WghtMin))
	binary.BigEndian.PutUint32(axis[8:], fixed16(WghtDefault))
	binary.BigEndian.PutUint32(axis[12:], fixed16(WghtMax))
	binary.BigEndian.PutUint16(axis[16:], 0)   // flags
	binary.BigEndian.PutUint16(axis[18:], 256) // axis name id

	inst := buf[axesOffset+axisSize:]
	binary.BigEndian.PutUint16(inst[0:], 257) // subfamily name id
	binary.BigEndian.PutUint16(inst[2:], 0)
	binary.BigEndian.PutUint32(inst[4:], fixed16(NamedWeight))

	return buf
}

// fixed16 encodes v as 16.16 fixed point.
func fixed16(v int) uint32 {
	return uint32(int32(v) << 16)
}
