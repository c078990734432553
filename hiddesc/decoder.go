package hiddesc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Decoder reads descriptor bytes and rebuilds the ReportDescriptor.
// Used by the inspect command and by the encode/decode round-trip
// tests; the compiler itself only encodes.
type Decoder struct {
	reader io.Reader
	buf    []byte
	size   int
	state  *decoderState
}

type decoderState struct {
	global      *globalState
	local       *localState
	globalStack []globalState

	collection      *Collection
	collections     []Collection
	collectionStack []Collection

	command           Tag
	commandFn         commandFn
	commandPayloadLen int
	commandPayload    []byte
}

type globalState struct {
	usagePage       uint16
	logicalMinimum  int32
	logicalMaximum  int32
	physicalMinimum int32
	physicalMaximum int32
	unitExponent    uint32
	unit            uint32
	reportID        uint8
	reportCount     uint32
	reportSize      uint32
	hasPhysical     bool
	hasUnit         bool
}

type localState struct {
	usage        []uint16
	usageMinimum uint16
	usageMaximum uint16
}

func NewDescriptorDecoder(r io.Reader) *Decoder {
	return &Decoder{
		reader: r,
		buf:    make([]byte, 1024),
	}
}

// Decode parses a full descriptor from a byte slice.
func Decode(data []byte) (ReportDescriptor, error) {
	return NewDescriptorDecoder(bytes.NewReader(data)).Decode()
}

func (d *Decoder) Decode() (ReportDescriptor, error) {
	d.state = &decoderState{
		global: &globalState{},
		local:  &localState{},
	}
	for {
		size, err := d.reader.Read(d.buf)
		if size > 0 {
			d.size = size
			if err := d.parseBytes(); err != nil {
				return ReportDescriptor{}, err
			}
		}
		if size == 0 || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ReportDescriptor{}, fmt.Errorf("failed to read descriptor: %w", err)
		}
	}
	if d.state.collection != nil || len(d.state.collectionStack) > 0 {
		return ReportDescriptor{}, errors.New("unbalanced collection: missing end collection")
	}
	if d.state.command != 0 {
		return ReportDescriptor{}, errors.New("truncated item at end of descriptor")
	}
	return ReportDescriptor{Collections: d.state.collections}, nil
}

func (d *Decoder) parseBytes() error {
	for i := 0; i < d.size; i++ {
		b := d.buf[i]
		if d.state.command == 0 {
			tag := Tag(b)
			d.state.command = tag.TagPrefix()
			d.state.commandFn = commandMap[d.state.command]
			if d.state.commandFn == nil {
				return fmt.Errorf("unknown item prefix: %#02x", b)
			}
			d.state.commandPayloadLen = tag.PayloadSize().ByteCount()
			d.state.commandPayload = make([]byte, 0, d.state.commandPayloadLen)
		} else {
			d.state.commandPayload = append(d.state.commandPayload, b)
		}
		if len(d.state.commandPayload) == d.state.commandPayloadLen {
			if err := d.state.commandFn(d.state, d.state.commandPayload); err != nil {
				return fmt.Errorf("failed to apply item: %w", err)
			}
			d.state.command = 0
			d.state.commandFn = nil
			d.state.commandPayload = nil
			d.state.commandPayloadLen = 0
		}
	}
	d.size = 0
	return nil
}
