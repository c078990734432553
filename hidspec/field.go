package hidspec

import (
	"github.com/hidforge/hidforge/hiddesc"
	"github.com/hidforge/hidforge/hiddsl"
	"github.com/hidforge/hidforge/internal/diag"
)

// Qualifier flags, spec 6.2.2.5. Each entry either sets or clears a
// DataFlags bit; the all-clear default is Data, Array, Absolute.
var qualifierFlags = map[string]struct {
	flag hiddesc.DataFlags
	set  bool
}{
	"data":           {flag: hiddesc.DataFlagConstant, set: false},
	"constant":       {flag: hiddesc.DataFlagConstant, set: true},
	"array":          {flag: hiddesc.DataFlagVariable, set: false},
	"variable":       {flag: hiddesc.DataFlagVariable, set: true},
	"absolute":       {flag: hiddesc.DataFlagRelative, set: false},
	"relative":       {flag: hiddesc.DataFlagRelative, set: true},
	"no_wrap":        {flag: hiddesc.DataFlagWrap, set: false},
	"wrap":           {flag: hiddesc.DataFlagWrap, set: true},
	"linear":         {flag: hiddesc.DataFlagNonLinear, set: false},
	"non_linear":     {flag: hiddesc.DataFlagNonLinear, set: true},
	"preferred":      {flag: hiddesc.DataFlagNoPreferred, set: false},
	"no_preferred":   {flag: hiddesc.DataFlagNoPreferred, set: true},
	"no_null":        {flag: hiddesc.DataFlagNullState, set: false},
	"null_state":     {flag: hiddesc.DataFlagNullState, set: true},
	"non_volatile":   {flag: hiddesc.DataFlagVolatile, set: false},
	"volatile":       {flag: hiddesc.DataFlagVolatile, set: true},
	"buffered_bytes": {flag: hiddesc.DataFlagBufferedBytes, set: true},
}

var elementKinds = map[string]Element{
	"u8":  {Signed: false, Bits: 8},
	"u16": {Signed: false, Bits: 16},
	"u32": {Signed: false, Bits: 32},
	"i8":  {Signed: true, Bits: 8},
	"i16": {Signed: true, Bits: 16},
	"i32": {Signed: true, Bits: 32},
}

func (r *resolver) resolveField(decl *hiddsl.FieldDecl, sc scope) *FieldSpec {
	span := diag.SpanAt(decl.Pos)
	pending := r.pending
	r.pending.clearForField()

	f := &FieldSpec{
		Name:     decl.Name,
		Span:     span,
		ReportID: sc.reportID,
		Path:     sc.path,
	}

	switch decl.Kind {
	case "input":
		f.Kind = ReportKindInput
	case "output":
		f.Kind = ReportKindOutput
	case "feature":
		f.Kind = ReportKindFeature
	default:
		r.diags.Add(diag.MissingReportKind, span,
			"field %q must be declared input, output or feature, got %q", decl.Name, decl.Kind)
		return nil
	}

	for _, q := range decl.Qualifiers {
		entry, ok := qualifierFlags[q]
		if !ok {
			r.diags.Add(diag.BadAttributeValue, span, "unknown qualifier %q on field %q", q, decl.Name)
			continue
		}
		if entry.set {
			f.Flags |= entry.flag
		} else {
			f.Flags &^= entry.flag
		}
	}

	elem, ok := r.resolveElement(decl, span)
	if !ok {
		return nil
	}
	f.Element = elem

	if !sc.usagePageSet && !f.IsConstant() {
		r.diags.Add(diag.UsagePageOutOfScope, span, "no usage_page in scope for field %q", decl.Name)
		return nil
	}
	f.UsagePage = sc.usagePage

	r.resolveFieldUsages(f, pending, span)
	r.resolveFieldBounds(f, pending, span)

	if pending.physicalMin != nil || pending.physicalMax != nil {
		if pending.physicalMin == nil || pending.physicalMax == nil {
			r.diags.Add(diag.BadAttributeValue, span,
				"field %q needs both physical_min and physical_max", decl.Name)
		} else {
			f.PhysicalMinimum = *pending.physicalMin
			f.PhysicalMaximum = *pending.physicalMax
			f.HasPhysical = true
		}
	}
	if pending.unitExponent != nil || pending.unit != nil {
		if pending.unitExponent != nil {
			f.UnitExponent = *pending.unitExponent
		}
		if pending.unit != nil {
			f.Unit = *pending.unit
		}
		f.HasUnit = true
	}

	f.ReportSize = uint32(elem.Bits)
	if pending.reportSize != nil {
		f.ReportSize = *pending.reportSize
	}
	f.ReportCount = uint32(elem.Count)
	if pending.reportCount != nil {
		f.ReportCount = *pending.reportCount
	}

	r.checkBoundsFit(f, span)
	return f
}

func (r *resolver) resolveElement(decl *hiddsl.FieldDecl, span diag.Span) (Element, bool) {
	typ := decl.Type
	if typ.Scalar != nil {
		elem, ok := elementKinds[*typ.Scalar]
		if !ok {
			r.diags.Add(diag.BadAttributeValue, span, "unsupported field type %q", *typ.Scalar)
			return Element{}, false
		}
		elem.Count = 1
		return elem, true
	}
	elem, ok := elementKinds[typ.Array.Scalar]
	if !ok {
		r.diags.Add(diag.BadAttributeValue, span, "unsupported element type %q", typ.Array.Scalar)
		return Element{}, false
	}
	if typ.Array.Len < 1 {
		r.diags.Add(diag.BadAttributeValue, span, "array length must be positive, got %d", typ.Array.Len)
		return Element{}, false
	}
	elem.Count = int(typ.Array.Len)
	elem.Array = true
	return elem, true
}

func (r *resolver) resolveFieldUsages(f *FieldSpec, pending pendingAttrs, span diag.Span) {
	hasRange := pending.usageMin != nil || pending.usageMax != nil
	if len(pending.usages) > 0 && hasRange {
		r.diags.Add(diag.ConflictingAttributes, span,
			"field %q has both usage and usage_min/usage_max", f.Name)
		return
	}
	if hasRange {
		if pending.usageMin == nil || pending.usageMax == nil {
			r.diags.Add(diag.BadAttributeValue, span,
				"field %q needs both usage_min and usage_max", f.Name)
			return
		}
		if *pending.usageMin > *pending.usageMax {
			r.diags.Add(diag.BadAttributeValue, span,
				"field %q usage_min %d exceeds usage_max %d", f.Name, *pending.usageMin, *pending.usageMax)
			return
		}
		f.UsageMinimum = *pending.usageMin
		f.UsageMaximum = *pending.usageMax
		f.HasUsageRange = true
		return
	}
	f.UsageIDs = pending.usages
}

// resolveFieldBounds pins logical bounds: explicit values win, constant
// padding carries none, and everything else defaults from the field's
// width and signedness.
func (r *resolver) resolveFieldBounds(f *FieldSpec, pending pendingAttrs, span diag.Span) {
	if pending.logicalMin != nil || pending.logicalMax != nil {
		min, max := int32(0), int32(0)
		if pending.logicalMin != nil {
			min = *pending.logicalMin
		}
		if pending.logicalMax != nil {
			max = *pending.logicalMax
		}
		if min > max {
			r.diags.Add(diag.LogicalBoundsInverted, span,
				"field %q logical_min %d exceeds logical_max %d", f.Name, min, max)
			return
		}
		f.LogicalMinimum = min
		f.LogicalMaximum = max
		f.HasLogical = true
		return
	}
	if f.IsConstant() {
		// Padding inherits whatever bounds the descriptor state holds.
		return
	}
	width := f.Element.Bits
	if pending.reportSize != nil {
		width = int(*pending.reportSize)
	}
	if f.Element.Signed {
		f.LogicalMinimum = -(1 << (width - 1))
		f.LogicalMaximum = 1<<(width-1) - 1
	} else {
		f.LogicalMinimum = 0
		if width >= 32 {
			// Logical bounds are 32-bit signed on the wire; the full
			// u32 range is not expressible.
			f.LogicalMaximum = 1<<31 - 1
		} else {
			f.LogicalMaximum = 1<<width - 1
		}
	}
	f.HasLogical = true
}

// checkBoundsFit rejects logical bounds that cannot round-trip through
// report_size bits.
func (r *resolver) checkBoundsFit(f *FieldSpec, span diag.Span) {
	if !f.HasLogical {
		return
	}
	size := int(f.ReportSize)
	var fits bool
	if f.LogicalMinimum < 0 {
		fits = size >= 32 || (int64(f.LogicalMinimum) >= -(int64(1)<<(size-1)) &&
			int64(f.LogicalMaximum) <= (int64(1)<<(size-1))-1)
	} else {
		fits = size >= 32 || int64(f.LogicalMaximum) <= (int64(1)<<size)-1
	}
	if !fits {
		r.diags.Add(diag.ValueOverflowsSize, span,
			"field %q bounds %d..%d do not fit in %d bit(s)", f.Name, f.LogicalMinimum, f.LogicalMaximum, size)
	}
}

// clearForField drops everything a field consumes. usages are also
// consumed by collection opens, which reset them separately.
func (p *pendingAttrs) clearForField() {
	*p = pendingAttrs{}
}
