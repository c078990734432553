// Package hidpack packs runtime field values into wire-format report
// bytes, and back, driven by a report group layout. Packing is pure and
// bounded: no allocation, no clamping. Values outside the logical
// bounds are bit-truncated, which is what relative axes that wrap rely
// on.
package hidpack

import (
	"errors"
	"fmt"

	"github.com/hidforge/hidforge/hidlayout"
	"github.com/hidforge/hidforge/pkg/bits"
)

// ErrBufferTooSmall is the only runtime error the generated packers
// surface: the output buffer is shorter than the report's byte length.
var ErrBufferTooSmall = errors.New("buffer too small")

// Value holds the runtime value of one field: one element for scalars,
// one per element for arrays.
type Value struct {
	Elements []int64
}

func Scalar(v int64) Value {
	return Value{Elements: []int64{v}}
}

func Array(vs ...int64) Value {
	return Value{Elements: vs}
}

type Packer struct {
	layout *hidlayout.GroupLayout
}

func New(layout *hidlayout.GroupLayout) *Packer {
	return &Packer{layout: layout}
}

func (p *Packer) ByteLength() int {
	return p.layout.ByteLength
}

// Pack clears the buffer, writes the report-ID prefix when the group
// carries one, then deposits every field at its bit offset, LSB first.
// Values must line up with the group's fields; constant fields stay
// zero regardless of their value.
func (p *Packer) Pack(values []Value, buf []byte) error {
	if len(buf) < p.layout.ByteLength {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrBufferTooSmall, p.layout.ByteLength, len(buf))
	}
	if len(values) != len(p.layout.Fields) {
		return fmt.Errorf("expected %d field values, got %d", len(p.layout.Fields), len(values))
	}
	for i := range buf {
		buf[i] = 0
	}
	if p.layout.ReportID != 0 {
		buf[0] = p.layout.ReportID
	}
	for i, fr := range p.layout.Fields {
		field := fr.Field
		if field.IsConstant() {
			continue
		}
		w := bits.NewWriter(buf)
		w.Skip(fr.BitOffset)
		size := int(field.ReportSize)
		if field.Element.Array {
			for e := 0; e < int(field.ReportCount); e++ {
				var v int64
				if e < len(values[i].Elements) {
					v = values[i].Elements[e]
				}
				depositValue(w, v, size)
			}
		} else {
			var v int64
			if len(values[i].Elements) > 0 {
				v = values[i].Elements[0]
			}
			depositValue(w, v, fr.BitLength)
		}
	}
	return nil
}

// depositValue writes the low width bits of v. Widths beyond 32 spill
// into further chunks with the sign carried along.
func depositValue(w *bits.Writer, v int64, width int) {
	for width > 32 {
		w.WriteBits(uint32(v), 32)
		v >>= 32
		width -= 32
	}
	w.WriteBits(uint32(v), width)
}
