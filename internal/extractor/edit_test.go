package extractor

import (
	"reflect"
	"testing"

	"github.com/tezkor/menu-tracker/constants"
)

func TestIsClearToken(t *testing.T) {
	for _, s := range []string{"", "—", "-", "  —  ", " - "} {
		if !IsClearToken(s) {
			t.Errorf("IsClearToken(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"0", "--", "нет", "— 100"} {
		if IsClearToken(s) {
			t.Errorf("IsClearToken(%q) = true, want false", s)
		}
	}
}

func TestParsePriceLines(t *testing.T) {
	variants := ParsePriceLines("400 г - 60000\nбез соуса\n1000 г - 135.000\nx - 1234567890")

	want := []PriceVariant{
		{Label: "400 г", Price: 60000},
		{Label: "1000 г", Price: 135000},
	}
	if !reflect.DeepEqual(variants, want) {
		t.Errorf("variants = %v, want %v", variants, want)
	}
}

func TestApplyEditClearPriceDropsVariants(t *testing.T) {
	rec := NewRecord()
	rec.Weight = "400 г"
	rec.Variants = []PriceVariant{{Label: "400 г", Price: 60000}}
	rec.Price = intPtr(60000)
	rec.setSource(constants.FieldPrice, constants.SourceVariantList)
	rec.setSource(constants.FieldWeight, constants.SourceExplicitAttr)

	ApplyEdit(rec, constants.FieldPrice, "—")

	if rec.Price != nil {
		t.Errorf("price = %v, want nil", rec.Price)
	}
	if len(rec.Variants) != 0 {
		t.Errorf("variants = %v, want none", rec.Variants)
	}
	if rec.Weight != "400 г" {
		t.Errorf("weight = %q, clearing price must not touch it", rec.Weight)
	}
	if _, ok := rec.Provenance[constants.FieldPrice]; ok {
		t.Error("price provenance should be dropped on clear")
	}
	if rec.Provenance[constants.FieldWeight] != constants.SourceExplicitAttr {
		t.Error("weight provenance must survive a price clear")
	}
}

func TestApplyEditPriceReparse(t *testing.T) {
	rec := NewRecord()
	rec.Weight = "150 г"
	rec.Price = intPtr(45000)

	ApplyEdit(rec, constants.FieldPrice, "400 г - 60000\n1000 г - 135000")

	want := []PriceVariant{
		{Label: "400 г", Price: 60000},
		{Label: "1000 г", Price: 135000},
	}
	if !reflect.DeepEqual(rec.Variants, want) {
		t.Errorf("variants = %v, want %v", rec.Variants, want)
	}
	if rec.Price == nil || *rec.Price != 60000 {
		t.Errorf("price = %v, want 60000 (new minimum)", rec.Price)
	}
	if rec.Weight != "" {
		t.Errorf("weight = %q, variant prices carry the sizes", rec.Weight)
	}
	if rec.Provenance[constants.FieldPrice] != constants.SourceManualEdit {
		t.Errorf("price provenance = %q", rec.Provenance[constants.FieldPrice])
	}
}

func TestApplyEditPriceUnparseable(t *testing.T) {
	rec := NewRecord()
	rec.Price = intPtr(45000)

	ApplyEdit(rec, constants.FieldPrice, "договорная")

	if rec.Price != nil || len(rec.Variants) != 0 {
		t.Errorf("price = %v variants = %v, unparseable input must clear both", rec.Price, rec.Variants)
	}
}

func TestApplyEditTextFields(t *testing.T) {
	rec := NewRecord()

	ApplyEdit(rec, constants.FieldName, "  Плов свадебный  ")
	ApplyEdit(rec, constants.FieldComposition, "рис, мясо")
	ApplyEdit(rec, constants.FieldWeight, "1 кг")
	ApplyEdit(rec, constants.FieldIKPU, "10202003001000000")

	if rec.Name != "Плов свадебный" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.Composition != "рис, мясо" {
		t.Errorf("composition = %q", rec.Composition)
	}
	if rec.Weight != "1 кг" {
		t.Errorf("weight = %q", rec.Weight)
	}
	if rec.ProductCode != "10202003001000000" {
		t.Errorf("product code = %q", rec.ProductCode)
	}
	for _, f := range []constants.FieldID{
		constants.FieldName, constants.FieldComposition, constants.FieldWeight, constants.FieldIKPU,
	} {
		if rec.Provenance[f] != constants.SourceManualEdit {
			t.Errorf("%s provenance = %q, want manual edit", f, rec.Provenance[f])
		}
	}
}

func TestApplyEditClearName(t *testing.T) {
	rec := NewRecord()
	rec.Name = "Плов"
	rec.setSource(constants.FieldName, constants.SourceTextFallback)

	ApplyEdit(rec, constants.FieldName, "-")

	if rec.Name != "" {
		t.Errorf("name = %q, want cleared", rec.Name)
	}
	if _, ok := rec.Provenance[constants.FieldName]; ok {
		t.Error("name provenance should be dropped on clear")
	}
}
