package hidlayout

import (
	"github.com/hidforge/hidforge/hiddesc"
	"github.com/hidforge/hidforge/hidspec"
)

// Lower converts the record IR into the descriptor model the encoder
// walks. Fields become data items in tree order; the tail padding of
// each report group is appended as a constant item right after the
// group's last field.
func Lower(rec *hidspec.Record, plan *Plan) hiddesc.ReportDescriptor {
	l := lowering{
		plan:      plan,
		lastField: make(map[*hidspec.FieldSpec]int),
	}
	for _, group := range plan.Groups {
		if len(group.Fields) > 0 && group.PaddingBits > 0 {
			last := group.Fields[len(group.Fields)-1].Field
			l.lastField[last] = group.PaddingBits
		}
	}
	desc := hiddesc.ReportDescriptor{
		Collections: make([]hiddesc.Collection, 0, len(rec.Collections)),
	}
	for _, c := range rec.Collections {
		desc.Collections = append(desc.Collections, l.lowerCollection(c))
	}
	return desc
}

type lowering struct {
	plan      *Plan
	lastField map[*hidspec.FieldSpec]int
}

func (l *lowering) lowerCollection(c *hidspec.Collection) hiddesc.Collection {
	out := hiddesc.Collection{
		Type:      c.Kind,
		UsagePage: c.UsagePage,
		UsageID:   c.UsageID,
	}
	for _, entry := range c.Entries {
		if entry.Collection != nil {
			nested := l.lowerCollection(entry.Collection)
			out.Items = append(out.Items, hiddesc.MainItem{
				Type:       hiddesc.MainItemTypeCollection,
				Collection: &nested,
			})
			continue
		}
		field := entry.Field
		out.Items = append(out.Items, hiddesc.MainItem{
			Type:     field.Kind.MainItemType(),
			DataItem: lowerField(field),
		})
		if pad := l.lastField[field]; pad > 0 {
			out.Items = append(out.Items, hiddesc.MainItem{
				Type:     field.Kind.MainItemType(),
				DataItem: padItem(field, pad),
			})
		}
	}
	return out
}

func lowerField(f *hidspec.FieldSpec) *hiddesc.DataItem {
	return &hiddesc.DataItem{
		Flags:        f.Flags,
		UsagePage:    f.UsagePage,
		UsageIDs:     f.UsageIDs,
		UsageMinimum: f.UsageMinimum,
		UsageMaximum: f.UsageMaximum,
		ReportCount:  f.ReportCount,
		ReportSize:   f.ReportSize,
		ReportID:     f.ReportID,

		LogicalMinimum:  f.LogicalMinimum,
		LogicalMaximum:  f.LogicalMaximum,
		PhysicalMinimum: f.PhysicalMinimum,
		PhysicalMaximum: f.PhysicalMaximum,
		UnitExponent:    f.UnitExponent,
		Unit:            f.Unit,

		HasLogical:  f.HasLogical,
		HasPhysical: f.HasPhysical,
		HasUnit:     f.HasUnit,
	}
}

// padItem carries no usages and pins no bounds, so the encoder only
// writes size, count and the constant-qualified Main item for it.
func padItem(f *hidspec.FieldSpec, bits int) *hiddesc.DataItem {
	return &hiddesc.DataItem{
		Flags:       hiddesc.DataFlagConstant,
		ReportSize:  uint32(bits),
		ReportCount: 1,
		ReportID:    f.ReportID,
	}
}
