// Package hidlayout assigns bit positions to every field of a report
// group and computes final report sizes. Offsets are bit positions
// within the wire report, so a report-ID prefix occupies bits 0..7 and
// pushes every field up by one byte.
package hidlayout

import (
	"github.com/hidforge/hidforge/hidspec"
)

type FieldRange struct {
	Field     *hidspec.FieldSpec
	BitOffset int
	BitLength int
}

type GroupLayout struct {
	ReportID uint8
	Kind     hidspec.ReportKind

	Fields []FieldRange

	// PaddingBits pads the last field up to the byte boundary; the
	// emitter renders it as a constant item.
	PaddingBits int

	// BitLength and ByteLength cover the whole report, report-ID
	// prefix and padding included.
	BitLength  int
	ByteLength int
}

type Plan struct {
	Groups []*GroupLayout
}

func (p *Plan) Group(reportID uint8, kind hidspec.ReportKind) *GroupLayout {
	for _, g := range p.Groups {
		if g.ReportID == reportID && g.Kind == kind {
			return g
		}
	}
	return nil
}

// PlanRecord lays out every report group of the record. Fields pack
// contiguously in source order starting right after the report-ID
// prefix, if any.
func PlanRecord(rec *hidspec.Record) *Plan {
	plan := &Plan{
		Groups: make([]*GroupLayout, 0, len(rec.Groups)),
	}
	for _, group := range rec.Groups {
		plan.Groups = append(plan.Groups, planGroup(group))
	}
	return plan
}

func planGroup(group *hidspec.ReportGroup) *GroupLayout {
	layout := &GroupLayout{
		ReportID: group.ReportID,
		Kind:     group.Kind,
	}
	offset := 0
	if group.ReportID != 0 {
		offset = 8
	}
	for _, field := range group.Fields {
		length := field.BitLength()
		layout.Fields = append(layout.Fields, FieldRange{
			Field:     field,
			BitOffset: offset,
			BitLength: length,
		})
		offset += length
	}
	layout.PaddingBits = (8 - offset%8) % 8
	layout.BitLength = offset + layout.PaddingBits
	layout.ByteLength = layout.BitLength / 8
	return layout
}
