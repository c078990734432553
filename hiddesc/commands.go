package hiddesc

import (
	"encoding/binary"
	"errors"
	"fmt"
)

type commandFn func(state *decoderState, payload []byte) error

var commandMap = map[Tag]commandFn{
	TagInput:         cmdInput,
	TagOutput:        cmdOutput,
	TagFeature:       cmdFeature,
	TagCollection:    cmdCollection,
	TagEndCollection: cmdEndCollection,

	TagUsagePage:       cmdUsagePage,
	TagLogicalMinimum:  cmdLogicalMinimum,
	TagLogicalMaximum:  cmdLogicalMaximum,
	TagPhysicalMinimum: cmdPhysicalMinimum,
	TagPhysicalMaximum: cmdPhysicalMaximum,
	TagUnitExponent:    cmdUnitExponent,
	TagUnit:            cmdUnit,
	TagReportSize:      cmdReportSize,
	TagReportID:        cmdReportID,
	TagReportCount:     cmdReportCount,
	TagPush:            cmdPush,
	TagPop:             cmdPop,

	TagUsage:        cmdUsage,
	TagUsageMinimum: cmdUsageMinimum,
	TagUsageMaximum: cmdUsageMaximum,
	TagDelimiter:    cmdDelimiter,
}

func toUint16(payload []byte) (uint16, error) {
	if len(payload) > 2 {
		return 0, fmt.Errorf("uint16 payload too long")
	}
	if len(payload) == 0 {
		return 0, fmt.Errorf("uint16 payload is missing")
	}
	if len(payload) == 1 {
		payload = append(payload, 0)
	}
	return binary.LittleEndian.Uint16(payload), nil
}

func toUint32(payload []byte) (uint32, error) {
	if len(payload) > 4 {
		return 0, fmt.Errorf("uint32 payload too long")
	}
	if len(payload) == 0 {
		return 0, fmt.Errorf("uint32 payload is missing")
	}
	if len(payload) < 4 {
		payload = append(payload, make([]byte, 4-len(payload))...)
	}
	return binary.LittleEndian.Uint32(payload), nil
}

func toInt32(payload []byte) (int32, error) {
	switch len(payload) {
	case 1:
		return int32(int8(payload[0])), nil
	case 2:
		val, err := toUint16(payload)
		if err != nil {
			return 0, fmt.Errorf("int32: %w", err)
		}
		return int32(int16(val)), nil
	case 4:
		val, err := toUint32(payload)
		if err != nil {
			return 0, fmt.Errorf("int32: %w", err)
		}
		return int32(val), nil
	case 0:
		return 0, nil
	default:
		return 0, fmt.Errorf("int32: payload length is not 1, 2 or 4")
	}
}

func newDataItem(state *decoderState, flags DataFlags) *DataItem {
	return &DataItem{
		Flags:        flags,
		UsagePage:    state.global.usagePage,
		UsageIDs:     state.local.usage,
		UsageMinimum: state.local.usageMinimum,
		UsageMaximum: state.local.usageMaximum,
		ReportCount:  state.global.reportCount,
		ReportSize:   state.global.reportSize,
		ReportID:     state.global.reportID,

		LogicalMinimum:  state.global.logicalMinimum,
		LogicalMaximum:  state.global.logicalMaximum,
		PhysicalMinimum: state.global.physicalMinimum,
		PhysicalMaximum: state.global.physicalMaximum,
		UnitExponent:    state.global.unitExponent,
		Unit:            state.global.unit,

		HasLogical:  true,
		HasPhysical: state.global.hasPhysical,
		HasUnit:     state.global.hasUnit,
	}
}

func addDataItem(state *decoderState, typ MainItemType, payload []byte) error {
	if state.collection == nil {
		return fmt.Errorf("%s: no open collection", typ)
	}
	if len(payload) == 0 {
		// zero-size form, all flags zero
		payload = []byte{0}
	}
	flags, err := toUint32(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", typ, err)
	}
	state.collection.Items = append(state.collection.Items, MainItem{
		Type:     typ,
		DataItem: newDataItem(state, DataFlags(flags)),
	})
	state.local = &localState{}
	return nil
}

func cmdInput(state *decoderState, payload []byte) error {
	return addDataItem(state, MainItemTypeInput, payload)
}

func cmdOutput(state *decoderState, payload []byte) error {
	return addDataItem(state, MainItemTypeOutput, payload)
}

func cmdFeature(state *decoderState, payload []byte) error {
	return addDataItem(state, MainItemTypeFeature, payload)
}

func cmdCollection(state *decoderState, payload []byte) error {
	if len(payload) != 1 {
		return fmt.Errorf("collection: payload length is not 1")
	}
	c := Collection{
		Type:      CollectionType(payload[0]),
		UsagePage: state.global.usagePage,
	}
	if len(state.local.usage) > 0 {
		c.UsageID = state.local.usage[0]
	}
	if state.collection != nil {
		state.collectionStack = append(state.collectionStack, *state.collection)
	}
	state.collection = &c
	state.local = &localState{}
	return nil
}

func cmdEndCollection(state *decoderState, payload []byte) error {
	if len(payload) != 0 {
		return fmt.Errorf("end collection: payload length is not 0")
	}
	if state.collection == nil {
		return errors.New("end collection: no open collection")
	}
	if len(state.collectionStack) == 0 {
		state.collections = append(state.collections, *state.collection)
		state.collection = nil
	} else {
		parent := state.collectionStack[len(state.collectionStack)-1]
		parent.Items = append(parent.Items, MainItem{
			Type:       MainItemTypeCollection,
			Collection: state.collection,
		})
		state.collectionStack = state.collectionStack[:len(state.collectionStack)-1]
		state.collection = &parent
	}
	state.local = &localState{}
	return nil
}

func cmdUsagePage(state *decoderState, payload []byte) error {
	val, err := toUint16(payload)
	if err != nil {
		return fmt.Errorf("usage page: %w", err)
	}
	state.global.usagePage = val
	return nil
}

func cmdLogicalMinimum(state *decoderState, payload []byte) error {
	val, err := toInt32(payload)
	if err != nil {
		return fmt.Errorf("logical minimum: %w", err)
	}
	state.global.logicalMinimum = val
	return nil
}

func cmdLogicalMaximum(state *decoderState, payload []byte) error {
	val, err := toInt32(payload)
	if err != nil {
		return fmt.Errorf("logical maximum: %w", err)
	}
	state.global.logicalMaximum = val
	return nil
}

func cmdPhysicalMinimum(state *decoderState, payload []byte) error {
	val, err := toInt32(payload)
	if err != nil {
		return fmt.Errorf("physical minimum: %w", err)
	}
	state.global.physicalMinimum = val
	state.global.hasPhysical = true
	return nil
}

func cmdPhysicalMaximum(state *decoderState, payload []byte) error {
	val, err := toInt32(payload)
	if err != nil {
		return fmt.Errorf("physical maximum: %w", err)
	}
	state.global.physicalMaximum = val
	state.global.hasPhysical = true
	return nil
}

func cmdUnitExponent(state *decoderState, payload []byte) error {
	val, err := toUint32(payload)
	if err != nil {
		return fmt.Errorf("unit exponent: %w", err)
	}
	state.global.unitExponent = val
	state.global.hasUnit = true
	return nil
}

func cmdUnit(state *decoderState, payload []byte) error {
	val, err := toUint32(payload)
	if err != nil {
		return fmt.Errorf("unit: %w", err)
	}
	state.global.unit = val
	state.global.hasUnit = true
	return nil
}

func cmdReportSize(state *decoderState, payload []byte) error {
	val, err := toUint32(payload)
	if err != nil {
		return fmt.Errorf("report size: %w", err)
	}
	state.global.reportSize = val
	return nil
}

func cmdReportID(state *decoderState, payload []byte) error {
	val, err := toUint32(payload)
	if err != nil {
		return fmt.Errorf("report id: %w", err)
	}
	state.global.reportID = uint8(val)
	return nil
}

func cmdReportCount(state *decoderState, payload []byte) error {
	val, err := toUint32(payload)
	if err != nil {
		return fmt.Errorf("report count: %w", err)
	}
	state.global.reportCount = val
	return nil
}

func cmdPush(state *decoderState, payload []byte) error {
	state.globalStack = append(state.globalStack, *state.global)
	return nil
}

func cmdPop(state *decoderState, payload []byte) error {
	if len(state.globalStack) == 0 {
		return errors.New("pop: stack is empty")
	}
	*state.global = state.globalStack[len(state.globalStack)-1]
	state.globalStack = state.globalStack[:len(state.globalStack)-1]
	return nil
}

func cmdUsage(state *decoderState, payload []byte) error {
	val, err := toUint16(payload)
	if err != nil {
		return fmt.Errorf("usage: %w", err)
	}
	state.local.usage = append(state.local.usage, val)
	return nil
}

func cmdUsageMinimum(state *decoderState, payload []byte) error {
	val, err := toUint16(payload)
	if err != nil {
		return fmt.Errorf("usage minimum: %w", err)
	}
	state.local.usageMinimum = val
	return nil
}

func cmdUsageMaximum(state *decoderState, payload []byte) error {
	val, err := toUint16(payload)
	if err != nil {
		return fmt.Errorf("usage maximum: %w", err)
	}
	state.local.usageMaximum = val
	return nil
}

func cmdDelimiter(state *decoderState, payload []byte) error {
	return errors.New("delimiter items are not supported")
}
