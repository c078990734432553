// Package hidspec defines the typed report-group IR produced by
// attribute resolution. The IR is built once per record, consumed
// read-only by the layout planner, the descriptor emitter and the
// packer, and then discarded.
package hidspec

import (
	"fmt"

	"github.com/hidforge/hidforge/hiddesc"
	"github.com/hidforge/hidforge/internal/diag"
)

type ReportKind uint8

const (
	ReportKindInput ReportKind = iota
	ReportKindOutput
	ReportKindFeature
)

func (k ReportKind) String() string {
	switch k {
	case ReportKindInput:
		return "input"
	case ReportKindOutput:
		return "output"
	case ReportKindFeature:
		return "feature"
	}
	return "unknown"
}

func (k ReportKind) MainItemType() hiddesc.MainItemType {
	switch k {
	case ReportKindOutput:
		return hiddesc.MainItemTypeOutput
	case ReportKindFeature:
		return hiddesc.MainItemTypeFeature
	default:
		return hiddesc.MainItemTypeInput
	}
}

// Element is the machine shape of a field: a scalar integer or a
// fixed-length array of them.
type Element struct {
	Signed bool
	Bits   int
	Count  int
	Array  bool
}

func (e Element) GoType() string {
	scalar := fmt.Sprintf("uint%d", e.Bits)
	if e.Signed {
		scalar = fmt.Sprintf("int%d", e.Bits)
	}
	if e.Array {
		return fmt.Sprintf("[%d]%s", e.Count, scalar)
	}
	return scalar
}

// FieldSpec is one resolved data field of a record.
type FieldSpec struct {
	Name string
	Span diag.Span

	Element Element
	Kind    ReportKind
	Flags   hiddesc.DataFlags

	UsagePage     uint16
	UsageIDs      []uint16
	UsageMinimum  uint16
	UsageMaximum  uint16
	HasUsageRange bool

	LogicalMinimum int32
	LogicalMaximum int32
	HasLogical     bool

	PhysicalMinimum int32
	PhysicalMaximum int32
	HasPhysical     bool

	UnitExponent uint32
	Unit         uint32
	HasUnit      bool

	ReportSize  uint32
	ReportCount uint32
	ReportID    uint8

	// Path lists the collection kinds enclosing the field, outermost
	// first.
	Path []hiddesc.CollectionType
}

func (f *FieldSpec) BitLength() int {
	return int(f.ReportSize) * int(f.ReportCount)
}

func (f *FieldSpec) IsConstant() bool {
	return f.Flags.IsConstant()
}

// Collection is one node of the record's collection tree.
type Collection struct {
	Kind      hiddesc.CollectionType
	UsagePage uint16
	UsageID   uint16
	Entries   []Entry
}

// Entry is a oneOf: nested collection or field, in source order.
type Entry struct {
	Field      *FieldSpec
	Collection *Collection
}

// ReportGroup is the set of fields sharing one (report ID, kind) pair.
// Fields appear in source order; the layout planner packs them
// contiguously.
type ReportGroup struct {
	ReportID uint8
	Kind     ReportKind
	Fields   []*FieldSpec
}

// Record is the root IR node. It owns the collection tree and the
// report groups jointly; downstream stages borrow it read-only.
type Record struct {
	Name string
	Span diag.Span

	Collections []*Collection
	Groups      []*ReportGroup
}

func (r *Record) Group(reportID uint8, kind ReportKind) *ReportGroup {
	for _, g := range r.Groups {
		if g.ReportID == reportID && g.Kind == kind {
			return g
		}
	}
	return nil
}

// HasReportIDs reports whether the record's reports carry ID prefixes.
func (r *Record) HasReportIDs() bool {
	for _, g := range r.Groups {
		if g.ReportID != 0 {
			return true
		}
	}
	return false
}
