package usagepages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageByName(t *testing.T) {
	page, ok := PageByName("GENERIC_DESKTOP")
	require.True(t, ok)
	assert.Equal(t, uint16(0x01), page.Code)

	page, ok = PageByName("GenericDesktop")
	require.True(t, ok)
	assert.Equal(t, uint16(0x01), page.Code)

	_, ok = PageByName("NO_SUCH_PAGE")
	assert.False(t, ok)
}

func TestUsageByName(t *testing.T) {
	page, ok := PageByCode(GenericDesktop)
	require.True(t, ok)

	usage, ok := page.UsageByName("MOUSE")
	require.True(t, ok)
	assert.Equal(t, uint16(0x02), usage.ID)

	usage, ok = page.UsageByName("WHEEL")
	require.True(t, ok)
	assert.Equal(t, uint16(0x38), usage.ID)

	_, ok = page.UsageByName("NOT_A_USAGE")
	assert.False(t, ok)
}

func TestButtonUsages(t *testing.T) {
	page, ok := PageByName("BUTTON")
	require.True(t, ok)
	for id := uint16(1); id <= 8; id++ {
		info, ok := page.UsageByID(id)
		require.True(t, ok)
		assert.Equal(t, id, info.ID)
	}
}
