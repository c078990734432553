package hiddesc

import (
	"bytes"
	"io"
)

// Encoder serializes a ReportDescriptor into descriptor bytes. It
// shadows the host parser's Global and Local item state: a Global item
// is written only when its value differs from the shadow, and the Local
// state is cleared after every Main item, exactly as a conformant host
// parser would track it. Globals start out unset, so the first Main
// item always pins every value it depends on.
//
// Data payloads use the smallest of 1, 2 or 4 bytes that represents the
// value exactly: sign-aware for min/max items, unsigned for usages,
// sizes and counts. The zero-length payload form is never produced; the
// Windows HID parser rejects it, so one data byte is the floor.
type Encoder struct {
	desc   *ReportDescriptor
	w      io.Writer
	global *globalShadow
	local  *localShadow
}

type globalShadow struct {
	usagePage    uint16
	usagePageSet bool

	logicalMinimum int32
	logicalMaximum int32
	logicalSet     bool

	physicalMinimum int32
	physicalMaximum int32
	physicalSet     bool

	unitExponent    uint32
	unitExponentSet bool
	unit            uint32
	unitSet         bool

	reportID    uint8
	reportIDSet bool

	reportSize    uint32
	reportSizeSet bool

	reportCount    uint32
	reportCountSet bool
}

type localShadow struct {
	usageMinimum uint16
	usageMaximum uint16
	usageRange   bool
}

func NewDescriptorEncoder(w io.Writer, desc *ReportDescriptor) *Encoder {
	return &Encoder{
		desc:   desc,
		w:      w,
		global: &globalShadow{},
		local:  &localShadow{},
	}
}

// Encode renders the whole descriptor to a byte slice.
func Encode(desc ReportDescriptor) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := NewDescriptorEncoder(buf, &desc).Encode(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) Encode() error {
	for _, collection := range e.desc.Collections {
		if err := e.encodeCollection(collection); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeCollection(collection Collection) error {
	if err := e.encodeUsagePage(collection.UsagePage); err != nil {
		return err
	}
	if collection.UsageID != 0 {
		if err := e.encodeUnsigned(TagUsage, uint32(collection.UsageID)); err != nil {
			return err
		}
	}
	if err := e.encodeByte(TagCollection, uint8(collection.Type)); err != nil {
		return err
	}
	e.local = &localShadow{}
	for _, item := range collection.Items {
		if err := e.encodeMainItem(item); err != nil {
			return err
		}
	}
	if _, err := e.w.Write([]byte{byte(TagEndCollection)}); err != nil {
		return err
	}
	e.local = &localShadow{}
	return nil
}

func (e *Encoder) encodeMainItem(item MainItem) error {
	if item.Collection != nil {
		return e.encodeCollection(*item.Collection)
	}
	if item.DataItem == nil {
		return nil
	}
	if err := e.encodeDataItemState(*item.DataItem); err != nil {
		return err
	}

	var tag Tag
	switch item.Type {
	case MainItemTypeInput:
		tag = TagInput
	case MainItemTypeOutput:
		tag = TagOutput
	case MainItemTypeFeature:
		tag = TagFeature
	}
	if err := e.encodeUnsigned(tag, uint32(item.DataItem.Flags)); err != nil {
		return err
	}
	// Main item: host parsers drop Local state here.
	e.local = &localShadow{}
	return nil
}

// encodeDataItemState emits the Global and Local items the Main item
// depends on, suppressing Globals the shadow already holds.
func (e *Encoder) encodeDataItemState(item DataItem) error {
	if err := e.encodeUsagePage(item.UsagePage); err != nil {
		return err
	}
	for _, usageID := range item.UsageIDs {
		if err := e.encodeUnsigned(TagUsage, uint32(usageID)); err != nil {
			return err
		}
	}
	hasRange := item.UsageMinimum != 0 || item.UsageMaximum != 0
	if hasRange && (!e.local.usageRange || item.UsageMinimum != e.local.usageMinimum || item.UsageMaximum != e.local.usageMaximum) {
		if err := e.encodeUnsigned(TagUsageMinimum, uint32(item.UsageMinimum)); err != nil {
			return err
		}
		if err := e.encodeUnsigned(TagUsageMaximum, uint32(item.UsageMaximum)); err != nil {
			return err
		}
		e.local.usageMinimum = item.UsageMinimum
		e.local.usageMaximum = item.UsageMaximum
		e.local.usageRange = true
	}

	if item.HasLogical {
		if !e.global.logicalSet || item.LogicalMinimum != e.global.logicalMinimum || item.LogicalMaximum != e.global.logicalMaximum {
			if err := e.encodeSigned(TagLogicalMinimum, item.LogicalMinimum); err != nil {
				return err
			}
			if err := e.encodeSigned(TagLogicalMaximum, item.LogicalMaximum); err != nil {
				return err
			}
			e.global.logicalMinimum = item.LogicalMinimum
			e.global.logicalMaximum = item.LogicalMaximum
			e.global.logicalSet = true
		}
	}
	if item.HasPhysical {
		if !e.global.physicalSet || item.PhysicalMinimum != e.global.physicalMinimum || item.PhysicalMaximum != e.global.physicalMaximum {
			if err := e.encodeSigned(TagPhysicalMinimum, item.PhysicalMinimum); err != nil {
				return err
			}
			if err := e.encodeSigned(TagPhysicalMaximum, item.PhysicalMaximum); err != nil {
				return err
			}
			e.global.physicalMinimum = item.PhysicalMinimum
			e.global.physicalMaximum = item.PhysicalMaximum
			e.global.physicalSet = true
		}
	}
	if item.HasUnit {
		if !e.global.unitExponentSet || item.UnitExponent != e.global.unitExponent {
			if err := e.encodeUnsigned(TagUnitExponent, item.UnitExponent); err != nil {
				return err
			}
			e.global.unitExponent = item.UnitExponent
			e.global.unitExponentSet = true
		}
		if !e.global.unitSet || item.Unit != e.global.unit {
			if err := e.encodeUnsigned(TagUnit, item.Unit); err != nil {
				return err
			}
			e.global.unit = item.Unit
			e.global.unitSet = true
		}
	}
	if item.ReportID != 0 {
		if !e.global.reportIDSet || item.ReportID != e.global.reportID {
			if err := e.encodeByte(TagReportID, item.ReportID); err != nil {
				return err
			}
			e.global.reportID = item.ReportID
			e.global.reportIDSet = true
		}
	}
	if !e.global.reportSizeSet || item.ReportSize != e.global.reportSize {
		if err := e.encodeUnsigned(TagReportSize, item.ReportSize); err != nil {
			return err
		}
		e.global.reportSize = item.ReportSize
		e.global.reportSizeSet = true
	}
	if !e.global.reportCountSet || item.ReportCount != e.global.reportCount {
		if err := e.encodeUnsigned(TagReportCount, item.ReportCount); err != nil {
			return err
		}
		e.global.reportCount = item.ReportCount
		e.global.reportCountSet = true
	}
	return nil
}

func (e *Encoder) encodeUsagePage(usagePage uint16) error {
	if usagePage == 0 {
		return nil
	}
	if e.global.usagePageSet && usagePage == e.global.usagePage {
		return nil
	}
	if err := e.encodeUnsigned(TagUsagePage, uint32(usagePage)); err != nil {
		return err
	}
	e.global.usagePage = usagePage
	e.global.usagePageSet = true
	return nil
}

func (e *Encoder) encodeByte(tag Tag, value uint8) error {
	_, err := e.w.Write([]byte{byte(tag.WithItemSize(TagItemSize8)), value})
	return err
}

// encodeUnsigned writes the value with the smallest unsigned payload.
func (e *Encoder) encodeUnsigned(tag Tag, value uint32) error {
	switch {
	case value < 0x100:
		return e.encodeByte(tag, uint8(value))
	case value < 0x10000:
		_, err := e.w.Write([]byte{byte(tag.WithItemSize(TagItemSize16)), byte(value), byte(value >> 8)})
		return err
	default:
		_, err := e.w.Write([]byte{byte(tag.WithItemSize(TagItemSize32)), byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24)})
		return err
	}
}

// encodeSigned writes the value with the smallest two's complement
// payload that round-trips: 128 needs two bytes even though its low
// byte is all it has, because 0x80 alone reads back as -128.
func (e *Encoder) encodeSigned(tag Tag, value int32) error {
	switch {
	case value >= -128 && value <= 127:
		return e.encodeByte(tag, uint8(value))
	case value >= -32768 && value <= 32767:
		_, err := e.w.Write([]byte{byte(tag.WithItemSize(TagItemSize16)), byte(value), byte(value >> 8)})
		return err
	default:
		_, err := e.w.Write([]byte{byte(tag.WithItemSize(TagItemSize32)), byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24)})
		return err
	}
}
