package hidspec

import (
	"github.com/hidforge/hidforge/hiddsl"
	"github.com/hidforge/hidforge/hidusage/usagepages"
	"github.com/hidforge/hidforge/internal/diag"
)

// applyAttr interprets one `name = value;` assignment. usage_page and
// report_id update the lexical scope immediately; everything else is
// held pending for the next field.
func (r *resolver) applyAttr(attr *hiddsl.AttrDecl, sc *scope) {
	span := diag.SpanAt(attr.Pos)
	switch attr.Name {
	case "usage_page":
		if page, ok := r.resolveUsagePage(attr.Value); ok {
			sc.usagePage = page
			sc.usagePageSet = true
		}
	case "usage":
		if id, ok := r.resolveUsageID(attr.Value, sc); ok {
			r.pending.usages = append(r.pending.usages, id)
		}
	case "usage_min":
		if id, ok := r.resolveUsageID(attr.Value, sc); ok {
			r.pending.usageMin = &id
		}
	case "usage_max":
		if id, ok := r.resolveUsageID(attr.Value, sc); ok {
			r.pending.usageMax = &id
		}
	case "logical_min":
		if v, ok := r.resolveInt32(attr.Value, span); ok {
			r.pending.logicalMin = &v
		}
	case "logical_max":
		if v, ok := r.resolveInt32(attr.Value, span); ok {
			r.pending.logicalMax = &v
		}
	case "physical_min":
		if v, ok := r.resolveInt32(attr.Value, span); ok {
			r.pending.physicalMin = &v
		}
	case "physical_max":
		if v, ok := r.resolveInt32(attr.Value, span); ok {
			r.pending.physicalMax = &v
		}
	case "unit_exponent":
		if v, ok := r.resolveUint32(attr.Value, span, 0xFF); ok {
			r.pending.unitExponent = &v
		}
	case "unit":
		if v, ok := r.resolveUint32(attr.Value, span, 0xFFFFFFFF); ok {
			r.pending.unit = &v
		}
	case "report_size":
		if v, ok := r.resolveUint32(attr.Value, span, 32); ok && v > 0 {
			r.pending.reportSize = &v
		} else if ok {
			r.diags.Add(diag.BadAttributeValue, span, "report_size must be positive")
		}
	case "report_count":
		if v, ok := r.resolveUint32(attr.Value, span, 0xFFFF); ok && v > 0 {
			r.pending.reportCount = &v
		} else if ok {
			r.diags.Add(diag.BadAttributeValue, span, "report_count must be positive")
		}
	case "report_id":
		if v, ok := r.resolveUint32(attr.Value, span, 0xFF); ok {
			sc.reportID = uint8(v)
		}
	case "collection":
		r.diags.Add(diag.CollectionMisnesting, span,
			"collection takes a block: collection = KIND { ... }")
	default:
		r.diags.Add(diag.UnknownAttribute, span, "unknown attribute %q", attr.Name)
	}
}

func (r *resolver) resolveUsagePage(value *hiddsl.Value) (uint16, bool) {
	span := diag.SpanAt(value.Pos)
	if value.Num != nil {
		n := int64(*value.Num)
		if n < 0 || n > 0xFFFF {
			r.diags.Add(diag.BadAttributeValue, span, "usage_page %d out of 16-bit range", n)
			return 0, false
		}
		return uint16(n), true
	}
	page, ok := usagepages.PageByName(*value.Const)
	if !ok {
		r.diags.Add(diag.BadAttributeValue, span, "unknown usage page %q", *value.Const)
		return 0, false
	}
	return page.Code, true
}

func (r *resolver) resolveUsageID(value *hiddsl.Value, sc *scope) (uint16, bool) {
	span := diag.SpanAt(value.Pos)
	if value.Num != nil {
		n := int64(*value.Num)
		if n < 0 || n > 0xFFFF {
			r.diags.Add(diag.BadAttributeValue, span, "usage %d out of 16-bit range", n)
			return 0, false
		}
		return uint16(n), true
	}
	if !sc.usagePageSet {
		r.diags.Add(diag.UsagePageOutOfScope, span,
			"named usage %q needs a usage_page in scope", *value.Const)
		return 0, false
	}
	page, ok := usagepages.PageByCode(sc.usagePage)
	if !ok {
		r.diags.Add(diag.BadAttributeValue, span,
			"usage page %#04x has no usage table; use a numeric usage", sc.usagePage)
		return 0, false
	}
	usage, ok := page.UsageByName(*value.Const)
	if !ok {
		r.diags.Add(diag.BadAttributeValue, span,
			"unknown usage %q on page %s", *value.Const, page.Name)
		return 0, false
	}
	return usage.ID, true
}

func (r *resolver) resolveInt32(value *hiddsl.Value, span diag.Span) (int32, bool) {
	if value.Num == nil {
		r.diags.Add(diag.BadAttributeValue, span, "expected a numeric value, got %q", *value.Const)
		return 0, false
	}
	n := int64(*value.Num)
	if n < -(1<<31) || n > (1<<31)-1 {
		r.diags.Add(diag.BadAttributeValue, span, "value %d out of 32-bit range", n)
		return 0, false
	}
	return int32(n), true
}

func (r *resolver) resolveUint32(value *hiddsl.Value, span diag.Span, max uint32) (uint32, bool) {
	if value.Num == nil {
		r.diags.Add(diag.BadAttributeValue, span, "expected a numeric value, got %q", *value.Const)
		return 0, false
	}
	n := int64(*value.Num)
	if n < 0 || n > int64(max) {
		r.diags.Add(diag.BadAttributeValue, span, "value %d out of range 0..%d", n, max)
		return 0, false
	}
	return uint32(n), true
}
