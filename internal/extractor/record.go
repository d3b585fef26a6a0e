package extractor

import "github.com/tezkor/menu-tracker/constants"

// PriceVariant is one purchasable option of a dish: a free-form label
// (usually a weight or size) and its integer price.
type PriceVariant struct {
	Label string `json:"label"`
	Price int    `json:"price"`
}

// Record is a structured dish produced by the extraction engine. String fields
// use "" for absent; Price uses nil so a cleared price is distinguishable.
//
// Invariant: when Variants is non-empty, Price equals the minimum variant
// price and Weight is empty; a single weight is meaningless once several
// weight/price options exist.
type Record struct {
	Name        string                                     `json:"name,omitempty"`
	Composition string                                     `json:"composition,omitempty"`
	Weight      string                                     `json:"weight,omitempty"`
	Price       *int                                       `json:"price,omitempty"`
	Variants    []PriceVariant                             `json:"price_variants,omitempty"`
	ProductCode string                                     `json:"product_code,omitempty"`
	Structured  bool                                       `json:"structured"`
	Provenance  map[constants.FieldID]constants.Provenance `json:"provenance"`
}

// NewRecord returns an all-empty record with no provenance.
func NewRecord() *Record {
	return &Record{
		Provenance: make(map[constants.FieldID]constants.Provenance),
	}
}

func (r *Record) setSource(f constants.FieldID, p constants.Provenance) {
	r.Provenance[f] = p
}

func (r *Record) clearSource(f constants.FieldID) {
	delete(r.Provenance, f)
}

// HasPrice reports whether a scalar price is set.
func (r *Record) HasPrice() bool {
	return r.Price != nil
}

func intPtr(v int) *int { return &v }
