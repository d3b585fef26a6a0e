// Package export flattens confirmed dish records into spreadsheet rows and
// writes them out as XLSX workbooks.
package export

import (
	"github.com/tezkor/menu-tracker/internal/extractor"
)

// Row is one flat export row. Column order is fixed by
// constants.ExportColumns: name, composition, weight, price, product code,
// photo reference.
type Row struct {
	Name        string
	Composition string
	Weight      string
	Price       *int
	ProductCode string
	PhotoURL    string
}

// Values returns the row cells in export column order.
func (r Row) Values() []any {
	price := any("")
	if r.Price != nil {
		price = *r.Price
	}
	return []any{r.Name, r.Composition, r.Weight, price, r.ProductCode, r.PhotoURL}
}

// BuildRows expands a dish record into export rows. A record with price
// variants yields one row per variant, sharing name/composition/product code/
// photo but carrying the variant's label as weight and its own price. A record
// without variants yields exactly one row.
func BuildRows(rec *extractor.Record, photoURL string) []Row {
	if len(rec.Variants) > 0 {
		rows := make([]Row, 0, len(rec.Variants))
		for _, v := range rec.Variants {
			price := v.Price
			rows = append(rows, Row{
				Name:        rec.Name,
				Composition: rec.Composition,
				Weight:      v.Label,
				Price:       &price,
				ProductCode: rec.ProductCode,
				PhotoURL:    photoURL,
			})
		}
		return rows
	}

	return []Row{{
		Name:        rec.Name,
		Composition: rec.Composition,
		Weight:      rec.Weight,
		Price:       rec.Price,
		ProductCode: rec.ProductCode,
		PhotoURL:    photoURL,
	}}
}
