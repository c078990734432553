package hiddesc

type CollectionType uint8

const (
	CollectionTypePhysical CollectionType = iota
	CollectionTypeApplication
	CollectionTypeLogical
	CollectionTypeReport
	CollectionTypeNamedArray
	CollectionTypeUsageSwitch
	CollectionTypeUsageModifier
)

var collectionTypeNames = map[CollectionType]string{
	CollectionTypePhysical:      "PHYSICAL",
	CollectionTypeApplication:   "APPLICATION",
	CollectionTypeLogical:       "LOGICAL",
	CollectionTypeReport:        "REPORT",
	CollectionTypeNamedArray:    "NAMED_ARRAY",
	CollectionTypeUsageSwitch:   "USAGE_SWITCH",
	CollectionTypeUsageModifier: "USAGE_MODIFIER",
}

func (c CollectionType) String() string {
	return collectionTypeNames[c]
}

// CollectionTypeByName resolves the DSL collection kind identifier.
func CollectionTypeByName(name string) (CollectionType, bool) {
	for typ, n := range collectionTypeNames {
		if n == name {
			return typ, true
		}
	}
	return 0, false
}

type DataFlags uint32

const (
	DataFlagConstant      DataFlags = 1 << iota // 0 = Data, 1 = Constant
	DataFlagVariable                            // 0 = Array, 1 = Variable
	DataFlagRelative                            // 0 = Absolute, 1 = Relative
	DataFlagWrap                                // 0 = No wrap, 1 = Wrap
	DataFlagNonLinear                           // 0 = Linear, 1 = Non-linear
	DataFlagNoPreferred                         // 0 = Preferred state, 1 = No preferred
	DataFlagNullState                           // 0 = No null position, 1 = Null state
	DataFlagVolatile                            // 0 = Non-volatile, 1 = Volatile, not applicable to Input
	DataFlagBufferedBytes                       // 0 = Bit field, 1 = Buffered bytes
)

func (d DataFlags) IsConstant() bool {
	return d&DataFlagConstant != 0
}

func (d DataFlags) IsVariable() bool {
	return d&DataFlagVariable != 0
}

func (d DataFlags) IsArray() bool {
	return !d.IsVariable()
}

func (d DataFlags) IsRelative() bool {
	return d&DataFlagRelative != 0
}

// MainItemType is not a part of the spec, but an internal abstraction.
// Input, output and feature items carry mostly the same information.
// Collection is also included here.
type MainItemType uint8

const (
	MainItemTypeInput MainItemType = iota
	MainItemTypeOutput
	MainItemTypeFeature
	MainItemTypeCollection
)

func (t MainItemType) String() string {
	switch t {
	case MainItemTypeInput:
		return "input"
	case MainItemTypeOutput:
		return "output"
	case MainItemTypeFeature:
		return "feature"
	case MainItemTypeCollection:
		return "collection"
	}
	return "unknown"
}

// ReportDescriptor is the typed form of a full report descriptor.
type ReportDescriptor struct {
	// Top-level Application Collections
	Collections []Collection
}

// A Collection item identifies a relationship between two or more data
// items. All Main items between the Collection item and the End
// Collection item are included in the collection; collections nest.
type Collection struct {
	Type      CollectionType
	UsagePage uint16
	UsageID   uint16
	// Items contains the ordered list of Main items, including nested
	// collections.
	Items []MainItem
}

// MainItem is a oneOf type.
// Avoiding pointers to nested values would cost copies on every walk.
type MainItem struct {
	Type       MainItemType
	DataItem   *DataItem
	Collection *Collection
}

// DataItem describes one Input, Output or Feature item. The number of
// data fields it carries is ReportCount fields of ReportSize bits each.
type DataItem struct {
	Flags        DataFlags
	UsagePage    uint16
	UsageIDs     []uint16
	UsageMinimum uint16
	UsageMaximum uint16
	ReportCount  uint32
	ReportSize   uint32
	ReportID     uint8

	LogicalMinimum  int32
	LogicalMaximum  int32
	PhysicalMinimum int32
	PhysicalMaximum int32
	UnitExponent    uint32
	Unit            uint32

	// HasLogical / HasPhysical distinguish items that pin their bounds
	// from padding items that inherit whatever the descriptor state
	// currently holds.
	HasLogical  bool
	HasPhysical bool
	HasUnit     bool
}

func (r ReportDescriptor) Walk(fn func(item MainItem) bool) {
	for _, c := range r.Collections {
		c.Walk(fn)
	}
}

func (c Collection) Walk(fn func(item MainItem) bool) {
	for _, item := range c.Items {
		if !fn(item) {
			return
		}
		if item.Collection != nil {
			item.Collection.Walk(fn)
		}
	}
}
