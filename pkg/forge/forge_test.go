package forge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hidforge/hidforge/hiddesc"
)

func newTestForge(t *testing.T, config Config) *Forge {
	t.Helper()
	f, err := New(zap.NewNop(), config)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = f.Close()
	})
	return f
}

const keyboardSource = `
record KeyboardReport {
	usage_page = GENERIC_DESKTOP;
	usage = KEYBOARD;
	collection = APPLICATION {
		usage_page = KEYBOARD;
		usage_min = 0xE0; usage_max = 0xE7;
		logical_min = 0; logical_max = 1;
		report_size = 1; report_count = 8;
		input(variable, absolute): modifiers -> u8;
		input(constant): _reserved -> u8;
		usage_page = LEDS;
		usage_min = NUM_LOCK; usage_max = KANA;
		report_size = 1; report_count = 5;
		output(variable, absolute): leds -> u8;
		usage_page = KEYBOARD;
		usage_min = 0; usage_max = 101;
		logical_min = 0; logical_max = 101;
		report_size = 8; report_count = 6;
		input(array): keys -> [u8; 6];
	}
}
`

const mouseSource = `
record MouseReport {
	usage_page = GENERIC_DESKTOP;
	usage = MOUSE;
	collection = APPLICATION {
		usage = POINTER;
		collection = PHYSICAL {
			usage_page = BUTTON; usage_min = 1; usage_max = 3;
			logical_min = 0; logical_max = 1;
			report_size = 1; report_count = 3;
			input(variable, absolute): buttons -> u8;
			report_size = 5; report_count = 1;
			input(constant): _padding -> u8;
			usage_page = GENERIC_DESKTOP; usage = X; usage = Y;
			logical_min = -127; logical_max = 127;
			report_size = 8; report_count = 2;
			input(variable, relative): xy -> [i8; 2];
		}
	}
}
`

func TestCompileBootKeyboard(t *testing.T) {
	f := newTestForge(t, DefaultConfig())
	result, err := f.CompileSource("keyboard.hid", keyboardSource)
	require.NoError(t, err)
	require.Len(t, result.Artifacts, 1)
	artifact := result.Artifacts[0]

	assert.Len(t, artifact.Descriptor, 63)
	assert.Equal(t, []byte{0x05, 0x01, 0x09, 0x06, 0xA1, 0x01}, artifact.Descriptor[:6])

	require.Len(t, artifact.Reports, 2)
	assert.Equal(t, ReportInfo{Kind: "input", ByteLength: 8}, artifact.Reports[0])
	assert.Equal(t, ReportInfo{Kind: "output", ByteLength: 1}, artifact.Reports[1])

	// a conformant parser accepts the emitted bytes and reconstructs
	// the report structure
	decoded, err := hiddesc.Decode(artifact.Descriptor)
	require.NoError(t, err)
	require.Len(t, decoded.Collections, 1)

	var inputBits, outputBits int
	decoded.Walk(func(item hiddesc.MainItem) bool {
		if item.DataItem == nil {
			return true
		}
		bits := int(item.DataItem.ReportSize) * int(item.DataItem.ReportCount)
		switch item.Type {
		case hiddesc.MainItemTypeInput:
			inputBits += bits
		case hiddesc.MainItemTypeOutput:
			outputBits += bits
		}
		return true
	})
	assert.Equal(t, 64, inputBits)
	assert.Equal(t, 8, outputBits)

	items := decoded.Collections[0].Items
	require.Len(t, items, 5)
	modifiers := items[0].DataItem
	assert.Equal(t, uint16(0x07), modifiers.UsagePage)
	assert.Equal(t, uint16(0xE0), modifiers.UsageMinimum)
	assert.Equal(t, uint16(0xE7), modifiers.UsageMaximum)
	keys := items[4].DataItem
	assert.True(t, keys.Flags.IsArray())
	assert.Equal(t, int32(101), keys.LogicalMaximum)
	assert.Equal(t, uint32(6), keys.ReportCount)
}

func TestCompileMouse(t *testing.T) {
	f := newTestForge(t, DefaultConfig())
	result, err := f.CompileSource("mouse.hid", mouseSource)
	require.NoError(t, err)
	require.Len(t, result.Artifacts, 1)
	artifact := result.Artifacts[0]

	expected := []byte{
		0x05, 0x01, // Usage Page (Generic Desktop)
		0x09, 0x02, // Usage (Mouse)
		0xA1, 0x01, // Collection (Application)
		0x09, 0x01, //   Usage (Pointer)
		0xA1, 0x00, //   Collection (Physical)
		0x05, 0x09, //     Usage Page (Button)
		0x19, 0x01, //     Usage Minimum (1)
		0x29, 0x03, //     Usage Maximum (3)
		0x15, 0x00, //     Logical Minimum (0)
		0x25, 0x01, //     Logical Maximum (1)
		0x75, 0x01, //     Report Size (1)
		0x95, 0x03, //     Report Count (3)
		0x81, 0x02, //     Input (Data,Var,Abs)
		0x75, 0x05, //     Report Size (5)
		0x95, 0x01, //     Report Count (1)
		0x81, 0x01, //     Input (Const)
		0x05, 0x01, //     Usage Page (Generic Desktop)
		0x09, 0x30, //     Usage (X)
		0x09, 0x31, //     Usage (Y)
		0x15, 0x81, //     Logical Minimum (-127)
		0x25, 0x7F, //     Logical Maximum (127)
		0x75, 0x08, //     Report Size (8)
		0x95, 0x02, //     Report Count (2)
		0x81, 0x06, //     Input (Data,Var,Rel)
		0xC0, //   End Collection
		0xC0, // End Collection
	}
	assert.Equal(t, expected, artifact.Descriptor)
	assert.Len(t, artifact.Descriptor, 50)

	require.Len(t, artifact.Reports, 1)
	assert.Equal(t, 3, artifact.Reports[0].ByteLength)
}

func TestCompileMultiReport(t *testing.T) {
	f := newTestForge(t, DefaultConfig())
	result, err := f.CompileSource("multi.hid", `
record VendorDevice {
	usage_page = 0xFF00;
	usage = 0x01;
	collection = APPLICATION {
		report_id = 1;
		usage = 0x02;
		input(variable): status -> u16;
		report_id = 2;
		usage = 0x03;
		feature(variable): config -> u32;
	}
}
`)
	require.NoError(t, err)
	artifact := result.Artifacts[0]
	require.Len(t, artifact.Reports, 2)
	assert.Equal(t, ReportInfo{Kind: "input", ReportID: 1, ByteLength: 3}, artifact.Reports[0])
	assert.Equal(t, ReportInfo{Kind: "feature", ReportID: 2, ByteLength: 5}, artifact.Reports[1])
}

func TestCompileErrorsNoArtifacts(t *testing.T) {
	f := newTestForge(t, DefaultConfig())
	result, err := f.CompileSource("bad.hid", `
record Bad {
	usage_page = 0xFF00;
	usage = 0x01;
	collection = APPLICATION {
		usage = 0x02;
		logical_min = 10; logical_max = 5;
		input(variable): v -> u8;
	}
}
`)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "LogicalBoundsInverted")
	assert.Contains(t, err.Error(), "bad.hid")
}

func TestCompileDeterministic(t *testing.T) {
	f := newTestForge(t, DefaultConfig())
	a, err := f.CompileSource("mouse.hid", mouseSource)
	require.NoError(t, err)
	b, err := f.CompileSource("mouse.hid", mouseSource)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompileMultipleRecordsIndependent(t *testing.T) {
	f := newTestForge(t, DefaultConfig())
	result, err := f.CompileSource("two.hid", mouseSource+keyboardSource)
	require.NoError(t, err)
	require.Len(t, result.Artifacts, 2)
	assert.Equal(t, "MouseReport", result.Artifacts[0].Name)
	assert.Equal(t, "KeyboardReport", result.Artifacts[1].Name)
	assert.Len(t, result.Artifacts[0].Descriptor, 50)
	assert.Len(t, result.Artifacts[1].Descriptor, 63)
}

func TestCompileFileWithCache(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "mouse.hid")
	require.NoError(t, os.WriteFile(srcPath, []byte(mouseSource), 0o644))

	config := DefaultConfig()
	config.CacheDir = filepath.Join(dir, "cache")
	f := newTestForge(t, config)

	first, err := f.CompileFile(srcPath)
	require.NoError(t, err)
	second, err := f.CompileFile(srcPath)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// a source change must miss the cache
	require.NoError(t, os.WriteFile(srcPath, []byte(keyboardSource), 0o644))
	third, err := f.CompileFile(srcPath)
	require.NoError(t, err)
	assert.Equal(t, "KeyboardReport", third.Artifacts[0].Name)
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	config := DefaultConfig()
	config.OutDir = dir
	config.EmitBinary = true
	f := newTestForge(t, config)

	result, err := f.CompileSource("mouse.hid", mouseSource)
	require.NoError(t, err)
	require.NoError(t, f.WriteArtifacts(result))

	src, err := os.ReadFile(filepath.Join(dir, "mouse_report_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "package reports")

	blob, err := os.ReadFile(filepath.Join(dir, "mouse_report.bin"))
	require.NoError(t, err)
	assert.Len(t, blob, 50)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hidforge.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
package: devreports
outDir: gen
emitBinary: true
`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "devreports", config.Package)
	assert.Equal(t, "gen", config.OutDir)
	assert.True(t, config.EmitBinary)
}

func TestIsSourceFile(t *testing.T) {
	assert.True(t, IsSourceFile("reports.hid"))
	assert.False(t, IsSourceFile("reports.go"))
}
