// Package hidgen renders the generated Go source for a compiled
// record: the descriptor constant, the record struct and the
// per-report pack/unpack methods with every bit offset baked in.
package hidgen

import (
	"fmt"
	"go/format"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/hidforge/hidforge/hidlayout"
	"github.com/hidforge/hidforge/hidspec"
)

type Options struct {
	// Package is the package clause of the generated file.
	Package string
}

// GenerateRecord renders one record to gofmt-formatted source.
// Output is fully deterministic: same IR, same bytes.
func GenerateRecord(rec *hidspec.Record, plan *hidlayout.Plan, descriptor []byte, opts Options) ([]byte, error) {
	if opts.Package == "" {
		opts.Package = "main"
	}
	g := &generator{
		rec:  rec,
		plan: plan,
	}
	g.file(descriptor, opts)
	src, err := format.Source([]byte(g.b.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to format generated source for %s: %w", rec.Name, err)
	}
	return src, nil
}

type generator struct {
	rec  *hidspec.Record
	plan *hidlayout.Plan
	b    strings.Builder
}

func (g *generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.b, format, args...)
}

func (g *generator) file(descriptor []byte, opts Options) {
	name := g.rec.Name
	g.printf("// Code generated by hidforge. DO NOT EDIT.\n\n")
	g.printf("package %s\n\n", opts.Package)
	if len(g.plan.Groups) > 0 {
		g.printf("import (\n")
		g.printf("\t%q\n", "github.com/hidforge/hidforge/hidpack")
		g.printf("\t%q\n", "github.com/hidforge/hidforge/pkg/bits")
		g.printf(")\n\n")
	}

	g.printf("// %sDescriptor is the HID report descriptor for %s.\n", name, name)
	g.printf("var %sDescriptor = [%d]byte{", name, len(descriptor))
	for i, b := range descriptor {
		if i%12 == 0 {
			g.printf("\n\t")
		}
		g.printf("0x%02x, ", b)
	}
	g.printf("\n}\n\n")

	g.structDecl()

	g.printf("func (r *%s) Descriptor() []byte {\n", name)
	g.printf("\treturn %sDescriptor[:]\n", name)
	g.printf("}\n\n")

	for _, group := range g.plan.Groups {
		g.lengthConst(group)
		g.packMethod(group)
		if group.Kind == hidspec.ReportKindOutput || group.Kind == hidspec.ReportKindFeature {
			g.unpackMethod(group)
		}
	}
}

func (g *generator) structDecl() {
	g.printf("type %s struct {\n", g.rec.Name)
	for _, group := range g.plan.Groups {
		for _, fr := range group.Fields {
			if fr.Field.IsConstant() {
				continue
			}
			g.printf("\t%s %s\n", fieldName(fr.Field), fr.Field.Element.GoType())
		}
	}
	g.printf("}\n\n")
}

func (g *generator) lengthConst(group *hidlayout.GroupLayout) {
	g.printf("const %s%sLength = %d\n\n", g.rec.Name, reportSuffix(group), group.ByteLength)
}

func (g *generator) packMethod(group *hidlayout.GroupLayout) {
	name := g.rec.Name
	suffix := reportSuffix(group)
	g.printf("// Pack%s serializes the %s fields of report %s into buf.\n", suffix, group.Kind, suffix)
	g.printf("func (r *%s) Pack%s(buf []byte) error {\n", name, suffix)
	g.printf("\tif len(buf) < %s%sLength {\n", name, suffix)
	g.printf("\t\treturn hidpack.ErrBufferTooSmall\n")
	g.printf("\t}\n")
	g.printf("\tfor i := range buf {\n\t\tbuf[i] = 0\n\t}\n")
	if group.ReportID != 0 {
		g.printf("\tbuf[0] = 0x%02x\n", group.ReportID)
	}
	g.printf("\tw := bits.NewWriter(buf)\n")
	if group.ReportID != 0 {
		g.printf("\tw.Skip(8)\n")
	}
	for _, fr := range group.Fields {
		field := fr.Field
		if field.IsConstant() {
			g.printf("\tw.Skip(%d)\n", fr.BitLength)
			continue
		}
		if field.Element.Array {
			for e := 0; e < int(field.ReportCount); e++ {
				g.printf("\tw.WriteBits(uint32(r.%s[%d]), %d)\n", fieldName(field), e, field.ReportSize)
			}
			continue
		}
		g.printf("\tw.WriteBits(uint32(r.%s), %d)\n", fieldName(field), fr.BitLength)
	}
	g.printf("\treturn nil\n")
	g.printf("}\n\n")
}

func (g *generator) unpackMethod(group *hidlayout.GroupLayout) {
	name := g.rec.Name
	suffix := reportSuffix(group)
	g.printf("// Unpack%s extracts the %s fields of report %s from buf.\n", suffix, group.Kind, suffix)
	g.printf("func (r *%s) Unpack%s(buf []byte) error {\n", name, suffix)
	g.printf("\tif len(buf) < %s%sLength {\n", name, suffix)
	g.printf("\t\treturn hidpack.ErrBufferTooSmall\n")
	g.printf("\t}\n")
	g.printf("\ts := bits.NewScanner(buf)\n")
	if group.ReportID != 0 {
		g.printf("\ts.Skip(8)\n")
	}
	for _, fr := range group.Fields {
		field := fr.Field
		if field.IsConstant() {
			g.printf("\ts.Skip(%d)\n", fr.BitLength)
			continue
		}
		if field.Element.Array {
			for e := 0; e < int(field.ReportCount); e++ {
				g.printf("\tr.%s[%d] = %s\n", fieldName(field), e, readExpr(field, int(field.ReportSize)))
			}
			continue
		}
		g.printf("\tr.%s = %s\n", fieldName(field), readExpr(field, fr.BitLength))
	}
	g.printf("\treturn nil\n")
	g.printf("}\n\n")
}

func readExpr(field *hidspec.FieldSpec, width int) string {
	goScalar := fmt.Sprintf("uint%d", field.Element.Bits)
	if field.Element.Signed {
		goScalar = fmt.Sprintf("int%d", field.Element.Bits)
		return fmt.Sprintf("%s(bits.SignExtend(s.ReadBits(%d), %d))", goScalar, width, width)
	}
	return fmt.Sprintf("%s(s.ReadBits(%d))", goScalar, width)
}

func reportSuffix(group *hidlayout.GroupLayout) string {
	suffix := strcase.ToCamel(group.Kind.String()) + "Report"
	if group.ReportID != 0 {
		suffix = fmt.Sprintf("%s%d", suffix, group.ReportID)
	}
	return suffix
}

func fieldName(field *hidspec.FieldSpec) string {
	return strcase.ToCamel(strings.TrimPrefix(field.Name, "_"))
}
