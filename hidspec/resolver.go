package hidspec

import (
	"github.com/hidforge/hidforge/hiddesc"
	"github.com/hidforge/hidforge/hiddsl"
	"github.com/hidforge/hidforge/hidusage/usagepages"
	"github.com/hidforge/hidforge/internal/diag"
)

// Resolve typechecks the parse tree and builds one Record IR per record
// definition. Resolution keeps going after errors so a single run
// reports as many independent problems as possible; a record that
// produced diagnostics must not be fed to downstream stages.
func Resolve(file *hiddsl.File, diags *diag.List) []*Record {
	records := make([]*Record, 0, len(file.Records))
	for _, rec := range file.Records {
		records = append(records, resolveRecord(rec, diags))
	}
	return records
}

type resolver struct {
	diags  *diag.List
	record *Record

	groups map[groupKey]*ReportGroup

	// pending accumulates attributes between field declarations; it is
	// consumed by the next field (usages also by a collection open).
	pending pendingAttrs
}

type groupKey struct {
	reportID uint8
	kind     ReportKind
}

// scope carries the lexically inherited state. Each collection block
// starts from a copy of its parent's scope, so updates inside a block
// do not leak back out.
type scope struct {
	usagePage    uint16
	usagePageSet bool
	reportID     uint8
	path         []hiddesc.CollectionType
}

type pendingAttrs struct {
	usages []uint16

	usageMin *uint16
	usageMax *uint16

	logicalMin *int32
	logicalMax *int32

	physicalMin *int32
	physicalMax *int32

	unitExponent *uint32
	unit         *uint32

	reportSize  *uint32
	reportCount *uint32
}

func resolveRecord(rec *hiddsl.Record, diags *diag.List) *Record {
	r := &resolver{
		diags: diags,
		record: &Record{
			Name: rec.Name,
			Span: diag.SpanAt(rec.Pos),
		},
		groups: make(map[groupKey]*ReportGroup),
	}

	sc := scope{}
	for _, entry := range rec.Entries {
		switch {
		case entry.Attr != nil:
			r.applyAttr(entry.Attr, &sc)
		case entry.Collection != nil:
			if c := r.resolveCollection(entry.Collection, sc); c != nil {
				r.record.Collections = append(r.record.Collections, c)
			}
		case entry.Field != nil:
			r.diags.Add(diag.CollectionMisnesting, diag.SpanAt(entry.Field.Pos),
				"field %q declared outside of a collection", entry.Field.Name)
			r.pending = pendingAttrs{}
		}
	}

	r.checkReportIDs()
	return r.record
}

func (r *resolver) resolveCollection(block *hiddsl.CollectionBlock, parent scope) *Collection {
	kind, ok := hiddesc.CollectionTypeByName(usagepages.Normalize(block.Kind))
	if !ok {
		r.diags.Add(diag.BadAttributeValue, diag.SpanAt(block.Pos), "unknown collection kind %q", block.Kind)
		return nil
	}

	c := &Collection{Kind: kind}
	if !parent.usagePageSet {
		r.diags.Add(diag.UsagePageOutOfScope, diag.SpanAt(block.Pos),
			"no usage_page in scope for collection %s", block.Kind)
	} else {
		c.UsagePage = parent.usagePage
	}
	if len(r.pending.usages) > 1 {
		r.diags.Add(diag.BadAttributeValue, diag.SpanAt(block.Pos),
			"collection takes a single usage, got %d", len(r.pending.usages))
	}
	if len(r.pending.usages) > 0 {
		c.UsageID = r.pending.usages[0]
	}
	r.pending.usages = nil

	sc := parent
	sc.path = append(append([]hiddesc.CollectionType{}, parent.path...), kind)

	for _, entry := range block.Entries {
		switch {
		case entry.Attr != nil:
			r.applyAttr(entry.Attr, &sc)
		case entry.Collection != nil:
			if nested := r.resolveCollection(entry.Collection, sc); nested != nil {
				c.Entries = append(c.Entries, Entry{Collection: nested})
			}
		case entry.Field != nil:
			if f := r.resolveField(entry.Field, sc); f != nil {
				c.Entries = append(c.Entries, Entry{Field: f})
				r.addToGroup(f)
			}
		}
	}
	return c
}

func (r *resolver) addToGroup(f *FieldSpec) {
	key := groupKey{reportID: f.ReportID, kind: f.Kind}
	group, ok := r.groups[key]
	if !ok {
		group = &ReportGroup{
			ReportID: f.ReportID,
			Kind:     f.Kind,
		}
		r.groups[key] = group
		r.record.Groups = append(r.record.Groups, group)
	}
	group.Fields = append(group.Fields, f)
}

func (r *resolver) checkReportIDs() {
	hasZero, hasNonZero := false, false
	for _, g := range r.record.Groups {
		if g.ReportID == 0 {
			hasZero = true
		} else {
			hasNonZero = true
		}
	}
	if hasZero && hasNonZero {
		r.diags.Add(diag.BadAttributeValue, r.record.Span,
			"record %s mixes fields with and without report_id; the wire format cannot carry both", r.record.Name)
	}
}
