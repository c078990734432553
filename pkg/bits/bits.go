package bits

import (
	"fmt"
	"strconv"
	"strings"
)

// Bits is a bit string backed by a byte slice. The final byte may be
// partially filled; missingBits counts its unused bits, which FromString
// and String treat as the low-order bits of that byte.
type Bits struct {
	missingBits uint8
	bytes       []byte
}

func New(data []byte, missingBits int) Bits {
	return Bits{
		bytes:       data,
		missingBits: uint8(missingBits),
	}
}

func (b Bits) String() string {
	result := ""
	for i, byte := range b.bytes {
		isLast := i == len(b.bytes)-1
		if isLast && b.missingBits > 0 {
			result += fmt.Sprintf("%08b", byte)[:8-b.missingBits]
			continue
		}
		result += fmt.Sprintf("%08b", byte)
		if !isLast {
			result += " "
		}
	}
	return result
}

func (b Bits) Equal(other Bits) bool {
	if b.missingBits != other.missingBits {
		return false
	}
	if len(b.bytes) != len(other.bytes) {
		return false
	}
	for i, byte := range b.bytes {
		if byte != other.bytes[i] {
			return false
		}
	}
	return true
}

func (b Bits) Bytes() []byte {
	return b.bytes
}

func (b Bits) Len() int {
	return len(b.bytes)*8 - int(b.missingBits)
}

func (b Bits) IsSet(bit int) bool {
	if bit >= b.Len() {
		return false
	}
	byteOffset := bit / 8
	bitOffset := bit % 8
	return b.bytes[byteOffset]&(1<<bitOffset) != 0
}

func (b Bits) Clone() Bits {
	bytes := make([]byte, len(b.bytes))
	copy(bytes, b.bytes)
	return Bits{
		bytes:       bytes,
		missingBits: b.missingBits,
	}
}

// FromString parses a whitespace-separated binary string, e.g. "00000101 111".
// A trailing group shorter than 8 bits yields missing bits.
func FromString(s string) (Bits, error) {
	byteStrs := strings.Fields(s)
	b := Bits{
		bytes: make([]byte, len(byteStrs)),
	}
	for i, byteStr := range byteStrs {
		if len(byteStr) < 8 {
			if i != len(byteStrs)-1 {
				return Bits{}, fmt.Errorf("incomplete byte in the middle of the string")
			}
			b.missingBits = 8 - uint8(len(byteStr))
			byteStr = byteStr + strings.Repeat("0", 8-len(byteStr))
		}
		byteVal, err := strconv.ParseUint(byteStr, 2, 8)
		if err != nil {
			return Bits{}, fmt.Errorf("invalid byte value %q", byteStr)
		}
		b.bytes[i] = byte(byteVal)
	}
	return b, nil
}
