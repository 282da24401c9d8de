package datasource

// FieldValueKind classifies a selectable option in the field pickers.
type FieldValueKind string

const (
	KindTag         FieldValueKind = "tag"
	KindMeasurement FieldValueKind = "measurement"
	KindFunction    FieldValueKind = "function"
	KindField       FieldValueKind = "field"
)

// FieldDataType is the underlying data type of an option, where known.
type FieldDataType string

const (
	TypeString   FieldDataType = "string"
	TypeNumber   FieldDataType = "number"
	TypeInteger  FieldDataType = "integer"
	TypeDuration FieldDataType = "duration"
	TypePercent  FieldDataType = "percentage"
)

// Numeric reports whether the data type is a numeric family member.
func (t FieldDataType) Numeric() bool {
	switch t {
	case TypeNumber, TypeInteger, TypeDuration, TypePercent:
		return true
	}
	return false
}

// AggregateParameter declares one accepted parameter of an aggregate
// function.
type AggregateParameter struct {
	Name         string
	Kind         string // "column" or "value"
	DataTypes    []FieldDataType
	Required     bool
	DefaultValue string
}

// FieldValueOption is one selectable field/aggregate choice. Unknown marks
// values observed in live data but missing from the local tag catalog; they
// stay selectable as aggregate parameters so live data is never hidden.
type FieldValueOption struct {
	Kind       FieldValueKind
	Name       string
	Label      string
	DataType   FieldDataType
	Unknown    bool
	Sortable   bool
	Parameters []AggregateParameter
}

// Key returns the option map key, "<kind>:<name>".
func (o FieldValueOption) Key() string {
	return string(o.Kind) + ":" + o.Name
}

// TagKind classifies entries in the externally supplied tag catalog. An
// empty kind is treated as the plain "tag" kind.
type TagKind string

const (
	TagKindTag         TagKind = "tag"
	TagKindMeasurement TagKind = "measurement"
)

// Tag is one known searchable/groupable attribute key.
type Tag struct {
	Key     string
	Name    string
	Kind    TagKind
	Unknown bool
}

func (t Tag) kind() TagKind {
	if t.Kind == "" {
		return TagKindTag
	}
	return t.Kind
}

// tagOption converts a catalog tag into a selectable option. Non-plain-tag
// kinds carry numeric values.
func tagOption(tag Tag) FieldValueOption {
	kind := tag.kind()
	dataType := TypeString
	optionKind := KindTag
	if kind != TagKindTag {
		dataType = TypeNumber
		optionKind = KindMeasurement
	}
	name := tag.Name
	if name == "" {
		name = tag.Key
	}
	return FieldValueOption{
		Kind:     optionKind,
		Name:     tag.Key,
		Label:    name,
		DataType: dataType,
		Unknown:  tag.Unknown,
		Sortable: true,
	}
}

// tagOptionKey builds the map key for a catalog tag, "<tagKind>:<tagKey>".
func tagOptionKey(tag Tag) string {
	return string(tag.kind()) + ":" + tag.Key
}
