package constants

// FieldID is the canonical id of a dish field the extractor can populate.
type FieldID string

// Stable values (these exact strings appear in dictionary config files).
const (
	FieldName        FieldID = "name"
	FieldComposition FieldID = "composition"
	FieldDescription FieldID = "description"
	FieldPrice       FieldID = "price"
	FieldWeight      FieldID = "weight"
	FieldCategory    FieldID = "category"
	FieldIKPU        FieldID = "ikpu"
)

// FieldOrder is the declared resolution order for alias lookups. When a synonym
// token belongs to more than one field, the first field in this order wins.
var FieldOrder = []FieldID{
	FieldName,
	FieldComposition,
	FieldDescription,
	FieldPrice,
	FieldWeight,
	FieldCategory,
	FieldIKPU,
}

// EditableFields are the fields the operator can rewrite from the review card.
var EditableFields = []FieldID{
	FieldName,
	FieldComposition,
	FieldWeight,
	FieldPrice,
	FieldIKPU,
}

// IsEditable reports whether the operator may edit the given field.
func IsEditable(f FieldID) bool {
	for _, e := range EditableFields {
		if e == f {
			return true
		}
	}
	return false
}
