package hiddesc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vendorItem(usageID uint16, logicalMax int32) *DataItem {
	return &DataItem{
		Flags:          DataFlagVariable,
		UsagePage:      0xFF00,
		UsageIDs:       []uint16{usageID},
		ReportSize:     8,
		ReportCount:    1,
		LogicalMinimum: 0,
		LogicalMaximum: logicalMax,
		HasLogical:     true,
	}
}

func singleItemDescriptor(item *DataItem) ReportDescriptor {
	return ReportDescriptor{
		Collections: []Collection{{
			Type:      CollectionTypeApplication,
			UsagePage: item.UsagePage,
			UsageID:   0x01,
			Items: []MainItem{{
				Type:     MainItemTypeInput,
				DataItem: item,
			}},
		}},
	}
}

func TestEncodeSizeSelection(t *testing.T) {
	// 127 fits one signed byte; 128 must widen to two, because 0x80
	// alone reads back as -128.
	small, err := Encode(singleItemDescriptor(vendorItem(0x01, 127)))
	require.NoError(t, err)
	assert.Contains(t, bytesToPairs(small), [2]byte{0x25, 0x7F})

	big, err := Encode(singleItemDescriptor(vendorItem(0x01, 128)))
	require.NoError(t, err)
	assert.True(t, bytes.Contains(big, []byte{0x26, 0x80, 0x00}))
	assert.Equal(t, len(small)+1, len(big))
}

func bytesToPairs(data []byte) [][2]byte {
	pairs := make([][2]byte, 0, len(data)-1)
	for i := 0; i+1 < len(data); i++ {
		pairs = append(pairs, [2]byte{data[i], data[i+1]})
	}
	return pairs
}

func TestEncodeNegativeBounds(t *testing.T) {
	item := vendorItem(0x01, 127)
	item.LogicalMinimum = -127
	data, err := Encode(singleItemDescriptor(item))
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte{0x15, 0x81, 0x25, 0x7F}))
}

func TestEncodeGlobalSuppression(t *testing.T) {
	// Two consecutive items sharing page, bounds, size and count: the
	// second must contribute only its usage and the Main item.
	desc := ReportDescriptor{
		Collections: []Collection{{
			Type:      CollectionTypeApplication,
			UsagePage: 0xFF00,
			UsageID:   0x01,
			Items: []MainItem{
				{Type: MainItemTypeInput, DataItem: vendorItem(0x02, 127)},
				{Type: MainItemTypeInput, DataItem: vendorItem(0x03, 127)},
			},
		}},
	}
	data, err := Encode(desc)
	require.NoError(t, err)

	// wrapper: page(3) usage(2) collection(2) end(1)
	// first: usage(2) logical(4) size(2) count(2) main(2)
	// second: usage(2) main(2)
	assert.Len(t, data, 8+12+4)
	assert.Equal(t, []byte{0x09, 0x03, 0x81, 0x02, 0xC0}, data[len(data)-5:])
}

func TestEncodeUnsetShadowAlwaysEmits(t *testing.T) {
	// Zero bounds differ from "never emitted": the first item must pin
	// logical 0..0 even though the shadow's zero values match.
	item := vendorItem(0x01, 0)
	data, err := Encode(singleItemDescriptor(item))
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte{0x15, 0x00, 0x25, 0x00}))
}

func TestEncodeReportIDAndFlags(t *testing.T) {
	item := vendorItem(0x01, 127)
	item.ReportID = 5
	item.Flags = DataFlagVariable | DataFlagRelative
	data, err := Encode(singleItemDescriptor(item))
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte{0x85, 0x05}))
	assert.True(t, bytes.Contains(data, []byte{0x81, 0x06}))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	desc := ReportDescriptor{
		Collections: []Collection{{
			Type:      CollectionTypeApplication,
			UsagePage: 0x01,
			UsageID:   0x06,
			Items: []MainItem{
				{Type: MainItemTypeInput, DataItem: &DataItem{
					Flags:          DataFlagVariable,
					UsagePage:      0x07,
					UsageMinimum:   0xE0,
					UsageMaximum:   0xE7,
					ReportSize:     1,
					ReportCount:    8,
					LogicalMinimum: 0,
					LogicalMaximum: 1,
					HasLogical:     true,
				}},
				{Type: MainItemTypeOutput, DataItem: &DataItem{
					Flags:          DataFlagVariable,
					UsagePage:      0x08,
					UsageMinimum:   0x01,
					UsageMaximum:   0x05,
					ReportSize:     1,
					ReportCount:    5,
					LogicalMinimum: 0,
					LogicalMaximum: 1,
					HasLogical:     true,
				}},
			},
		}},
	}
	data, err := Encode(desc)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded.Collections, 1)
	col := decoded.Collections[0]
	assert.Equal(t, CollectionTypeApplication, col.Type)
	assert.Equal(t, uint16(0x01), col.UsagePage)
	assert.Equal(t, uint16(0x06), col.UsageID)
	require.Len(t, col.Items, 2)

	in := col.Items[0]
	assert.Equal(t, MainItemTypeInput, in.Type)
	assert.Equal(t, uint16(0x07), in.DataItem.UsagePage)
	assert.Equal(t, uint16(0xE0), in.DataItem.UsageMinimum)
	assert.Equal(t, uint16(0xE7), in.DataItem.UsageMaximum)
	assert.Equal(t, uint32(1), in.DataItem.ReportSize)
	assert.Equal(t, uint32(8), in.DataItem.ReportCount)
	assert.Equal(t, int32(1), in.DataItem.LogicalMaximum)

	out := col.Items[1]
	assert.Equal(t, MainItemTypeOutput, out.Type)
	assert.Equal(t, uint16(0x08), out.DataItem.UsagePage)
	assert.Equal(t, uint32(5), out.DataItem.ReportCount)
}

func TestDecodeRejectsUnbalancedCollections(t *testing.T) {
	_, err := Decode([]byte{0x05, 0x01, 0x09, 0x02, 0xA1, 0x01})
	require.Error(t, err)

	_, err = Decode([]byte{0xC0})
	require.Error(t, err)
}

func TestDecodeRejectsTruncatedItem(t *testing.T) {
	_, err := Decode([]byte{0x05, 0x01, 0x09, 0x02, 0xA1, 0x01, 0xC0, 0x26, 0x80})
	require.Error(t, err)
}

func TestNestedCollectionsBalance(t *testing.T) {
	desc := ReportDescriptor{
		Collections: []Collection{{
			Type:      CollectionTypeApplication,
			UsagePage: 0x01,
			UsageID:   0x02,
			Items: []MainItem{{
				Type: MainItemTypeCollection,
				Collection: &Collection{
					Type:      CollectionTypePhysical,
					UsagePage: 0x01,
					UsageID:   0x01,
					Items: []MainItem{
						{Type: MainItemTypeInput, DataItem: vendorItem(0x30, 127)},
					},
				},
			}},
		}},
	}
	data, err := Encode(desc)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded.Collections, 1)
	require.Len(t, decoded.Collections[0].Items, 1)
	nested := decoded.Collections[0].Items[0].Collection
	require.NotNil(t, nested)
	assert.Equal(t, CollectionTypePhysical, nested.Type)
}
