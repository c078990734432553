package hidgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidforge/hidforge/hiddesc"
	"github.com/hidforge/hidforge/hiddsl"
	"github.com/hidforge/hidforge/hidlayout"
	"github.com/hidforge/hidforge/hidspec"
	"github.com/hidforge/hidforge/internal/diag"
)

func generate(t *testing.T, source string) string {
	t.Helper()
	var diags diag.List
	file := hiddsl.ParseString("test.hid", source, &diags)
	require.False(t, diags.HasErrors(), "parse: %v", diags.Err())
	records := hidspec.Resolve(file, &diags)
	require.False(t, diags.HasErrors(), "resolve: %v", diags.Err())
	require.Len(t, records, 1)

	rec := records[0]
	plan := hidlayout.PlanRecord(rec)
	descriptor, err := hiddesc.Encode(hidlayout.Lower(rec, plan))
	require.NoError(t, err)

	src, err := GenerateRecord(rec, plan, descriptor, Options{Package: "reports"})
	require.NoError(t, err)
	return string(src)
}

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

func TestGenerateMouse(t *testing.T) {
	src := generate(t, mouseSource)

	assert.Contains(t, src, "// Code generated by hidforge. DO NOT EDIT.")
	assert.Contains(t, src, "package reports")
	assert.Contains(t, src, "var MouseReportDescriptor = [50]byte{")
	assert.Contains(t, src, "Buttons uint8")
	assert.Contains(t, src, "[2]int8")
	assert.NotContains(t, src, "Padding")

	assert.Contains(t, src, "const MouseReportInputReportLength = 3")
	assert.Contains(t, src, "func (r *MouseReport) PackInputReport(buf []byte) error {")
	assert.Contains(t, src, "w.WriteBits(uint32(r.Buttons), 3)")
	assert.Contains(t, src, "w.Skip(5)")
	assert.Contains(t, src, "w.WriteBits(uint32(r.Xy[0]), 8)")
	assert.Contains(t, src, "w.WriteBits(uint32(r.Xy[1]), 8)")

	// input-only record: no unpack methods
	assert.NotContains(t, src, "Unpack")
}

func TestGenerateDescriptorBytes(t *testing.T) {
	src := generate(t, mouseSource)
	assert.Contains(t, src, "0x05, 0x01, 0x09, 0x02, 0xa1, 0x01")
}

func TestGenerateFeatureUnpack(t *testing.T) {
	src := generate(t, `
record Config {
	usage_page = 0xFF00;
	usage = 0x01;
	collection = APPLICATION {
		report_id = 2;
		usage = 0x02;
		logical_min = -127; logical_max = 127;
		feature(variable): gain -> i8;
		usage = 0x03;
		feature(variable): window -> u16;
	}
}
`)
	assert.Contains(t, src, "const ConfigFeatureReport2Length = 4")
	assert.Contains(t, src, "func (r *Config) PackFeatureReport2(buf []byte) error {")
	assert.Contains(t, src, "buf[0] = 0x02")
	assert.Contains(t, src, "func (r *Config) UnpackFeatureReport2(buf []byte) error {")
	assert.Contains(t, src, "r.Gain = int8(bits.SignExtend(s.ReadBits(8), 8))")
	assert.Contains(t, src, "r.Window = uint16(s.ReadBits(16))")
	assert.Contains(t, src, "s.Skip(8)")
}

func TestGenerateDeterministic(t *testing.T) {
	a := generate(t, mouseSource)
	b := generate(t, mouseSource)
	assert.Equal(t, a, b)
}

func TestGenerateIsGofmted(t *testing.T) {
	src := generate(t, mouseSource)
	assert.False(t, strings.Contains(src, "\t\n"))
	assert.True(t, strings.HasSuffix(src, "}\n"))
}
