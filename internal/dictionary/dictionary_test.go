package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tezkor/menu-tracker/constants"
)

func TestCanonicalKnownAliases(t *testing.T) {
	d := Default()
	cases := []struct {
		raw  string
		want constants.FieldID
	}{
		{"Цена", constants.FieldPrice},
		{"цена (сум)", constants.FieldPrice},
		{"СОСТАВ", constants.FieldComposition},
		{"tarkibi", constants.FieldComposition},
		{"ИКПУ", constants.FieldIKPU},
		{"ipku", constants.FieldIKPU},
		{"выход", constants.FieldWeight},
		{"Наименование", constants.FieldName},
	}
	for _, c := range cases {
		got, ok := d.Canonical(c.raw)
		if !ok || got != c.want {
			t.Errorf("Canonical(%q) = %q, %v; want %q", c.raw, got, ok, c.want)
		}
	}
}

func TestCanonicalUnknown(t *testing.T) {
	d := Default()
	if _, ok := d.Canonical("плов"); ok {
		t.Fatal("expected плов to be unknown")
	}
	if _, ok := d.Canonical(""); ok {
		t.Fatal("expected empty token to be unknown")
	}
}

// Collisions across synonym sets resolve to the first field in declared order,
// not to an error.
func TestCanonicalCollisionDeclaredOrder(t *testing.T) {
	merged := map[constants.FieldID][]string{
		constants.FieldComposition: {"инфо"},
		constants.FieldDescription: {"инфо"},
	}
	d := build(merged)
	got, ok := d.Canonical("инфо")
	if !ok || got != constants.FieldComposition {
		t.Fatalf("Canonical(инфо) = %q, %v; want composition (declared order)", got, ok)
	}
}

func TestContainsAlias(t *testing.T) {
	d := Default()
	if !d.ContainsAlias("Состав: рис, морковь") {
		t.Error("expected line with состав to contain an alias")
	}
	if d.ContainsAlias("Плов по-фергански") {
		t.Error("expected plain dish line to contain no alias")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	body := "aliases:\n  price:\n    - прайс\n  ikpu:\n    - налоговый код\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, ok := d.Canonical("Прайс"); !ok || got != constants.FieldPrice {
		t.Fatalf("Canonical(Прайс) = %q, %v; want price", got, ok)
	}
	if got, ok := d.Canonical("налоговый  код"); !ok || got != constants.FieldIKPU {
		t.Fatalf("Canonical(налоговый код) = %q, %v; want ikpu", got, ok)
	}
	// Built-ins survive a merge.
	if got, ok := d.Canonical("цена"); !ok || got != constants.FieldPrice {
		t.Fatalf("Canonical(цена) = %q, %v; want price", got, ok)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	body := "aliases:\n  pricee:\n    - прайс\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected schema violation for unknown field id")
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	d, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if !d.IsAlias("narx") {
		t.Fatal("expected built-in alias narx")
	}
}
