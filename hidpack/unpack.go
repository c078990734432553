package hidpack

import (
	"fmt"

	"github.com/hidforge/hidforge/pkg/bits"
)

// Unpack extracts field values from report bytes, sign-extending signed
// elements from their report size to the element's natural width.
// Constant fields come back as zeros.
func (p *Packer) Unpack(buf []byte) ([]Value, error) {
	if len(buf) < p.layout.ByteLength {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrBufferTooSmall, p.layout.ByteLength, len(buf))
	}
	if p.layout.ReportID != 0 && buf[0] != p.layout.ReportID {
		return nil, fmt.Errorf("unexpected report id %d, want %d", buf[0], p.layout.ReportID)
	}
	values := make([]Value, len(p.layout.Fields))
	for i, fr := range p.layout.Fields {
		field := fr.Field
		if field.IsConstant() {
			values[i] = Value{Elements: make([]int64, field.Element.Count)}
			continue
		}
		s := bits.NewScanner(buf)
		s.Skip(fr.BitOffset)
		size := int(field.ReportSize)
		if field.Element.Array {
			elements := make([]int64, field.ReportCount)
			for e := range elements {
				elements[e] = extractValue(s, size, field.Element.Signed)
			}
			values[i] = Value{Elements: elements}
		} else {
			values[i] = Scalar(extractValue(s, fr.BitLength, field.Element.Signed))
		}
	}
	return values, nil
}

func extractValue(s *bits.Scanner, width int, signed bool) int64 {
	if width <= 32 {
		raw := s.ReadBits(width)
		if signed {
			return int64(bits.SignExtend(raw, width))
		}
		return int64(raw)
	}
	var v uint64
	shift := 0
	for width > 0 {
		n := width
		if n > 32 {
			n = 32
		}
		v |= uint64(s.ReadBits(n)) << shift
		shift += n
		width -= n
	}
	return int64(v)
}
