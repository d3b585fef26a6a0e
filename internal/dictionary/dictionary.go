// Package dictionary holds the keyword alias table: for every canonical dish
// field, the set of synonym tokens (Russian, Uzbek-Latin and English spellings,
// plus frequent typos) the extractor recognizes as that field's label.
package dictionary

import (
	"strings"

	"github.com/tezkor/menu-tracker/constants"
	"github.com/tezkor/menu-tracker/internal/textnorm"
)

// defaultAliases is the built-in synonym table. It carries common
// misspellings seen in operator chats ("ipku", "ипку").
// Synonym sets are not required to be disjoint across fields; collisions are
// resolved by the first matching field in constants.FieldOrder.
var defaultAliases = map[constants.FieldID][]string{
	constants.FieldName: {
		"наименование", "название", "имя", "товар", "позиция",
		"nomi", "nom", "name", "title", "naming",
	},
	constants.FieldComposition: {
		"состав", "ингредиенты", "ингр", "сост", "композиция",
		"tarkib", "tarkibi", "ingred", "ingredients",
	},
	constants.FieldDescription: {
		"описание", "опис", "описание товара",
		"tavsif", "ta'rif", "tarif", "description", "desc",
	},
	constants.FieldPrice: {
		"цена", "стоимость", "сумма", "цена сум", "цена (сум)",
		"narx", "price", "cost",
	},
	constants.FieldWeight: {
		"вес", "масса", "нетто", "объем", "объём", "порция", "выход",
		"og'irlik", "ogirlik", "vazn", "hajm", "weight", "size",
	},
	constants.FieldCategory: {
		"категория", "раздел", "группа",
		"kategoriya", "category",
	},
	constants.FieldIKPU: {
		"икпу", "ikpu", "ipku", "ипку",
	},
}

// Dictionary is the immutable alias table consumed by the extractor.
type Dictionary struct {
	aliases map[constants.FieldID][]string
	all     []string // every alias across all fields, for stop-key scans
	allSet  map[string]struct{}
}

// Default returns a dictionary with the built-in aliases only.
func Default() *Dictionary {
	return build(defaultAliases)
}

func build(src map[constants.FieldID][]string) *Dictionary {
	d := &Dictionary{
		aliases: make(map[constants.FieldID][]string, len(src)),
		allSet:  make(map[string]struct{}),
	}
	for _, f := range constants.FieldOrder {
		for _, a := range src[f] {
			a = textnorm.FoldKey(a)
			if a == "" {
				continue
			}
			d.aliases[f] = append(d.aliases[f], a)
			if _, dup := d.allSet[a]; !dup {
				d.allSet[a] = struct{}{}
				d.all = append(d.all, a)
			}
		}
	}
	return d
}

// Canonical maps a raw key token to its canonical field. When the token is a
// synonym of several fields, the first field in declared order wins.
func (d *Dictionary) Canonical(raw string) (constants.FieldID, bool) {
	k := textnorm.FoldKey(raw)
	if k == "" {
		return "", false
	}
	for _, f := range constants.FieldOrder {
		for _, a := range d.aliases[f] {
			if k == a {
				return f, true
			}
		}
	}
	return "", false
}

// IsAlias reports whether the folded token is a known synonym of any field.
func (d *Dictionary) IsAlias(raw string) bool {
	_, ok := d.allSet[textnorm.FoldKey(raw)]
	return ok
}

// Aliases returns the synonym set of one field, in declared order.
func (d *Dictionary) Aliases(f constants.FieldID) []string {
	return d.aliases[f]
}

// AllAliases returns every known synonym across all fields. Used by the
// extractor as stop keys when collecting multi-line blocks.
func (d *Dictionary) AllAliases() []string {
	return d.all
}

// ContainsAlias reports whether the lowercased line contains any known synonym
// as a substring. This is the (intentionally blunt) legacy-fallback filter.
func (d *Dictionary) ContainsAlias(line string) bool {
	low := strings.ToLower(line)
	for _, a := range d.all {
		if strings.Contains(low, a) {
			return true
		}
	}
	return false
}
