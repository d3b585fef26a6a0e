package render

import (
	"strings"
	"testing"

	"github.com/tezkor/menu-tracker/constants"
	"github.com/tezkor/menu-tracker/internal/extractor"
)

func intPtr(n int) *int { return &n }

func TestDishCardAbsentFields(t *testing.T) {
	card := DishCard(extractor.NewRecord(), 0)

	for _, want := range []string{
		"Название: —",
		"Состав: —",
		"Вес: —",
		"Цены:\n—",
		"ИКПУ: —",
		"Фото: 0",
	} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
}

func TestDishCardVariants(t *testing.T) {
	rec := extractor.NewRecord()
	rec.Name = "Плов"
	rec.Variants = []extractor.PriceVariant{
		{Label: "400 г", Price: 60000},
		{Label: "1000 г", Price: 135000},
	}
	rec.Price = intPtr(60000)

	card := DishCard(rec, 1)
	if !strings.Contains(card, "400 г — 60000\n1000 г — 135000") {
		t.Errorf("card missing variant lines:\n%s", card)
	}
	if strings.Contains(card, "Цены:\n60000") {
		t.Error("scalar price must not be shown when variants exist")
	}
}

func TestDishCardScalarPrice(t *testing.T) {
	rec := extractor.NewRecord()
	rec.Price = intPtr(45000)

	if card := DishCard(rec, 0); !strings.Contains(card, "Цены:\n45000") {
		t.Errorf("card missing scalar price:\n%s", card)
	}
}

func TestPositionHeaderIsOneBased(t *testing.T) {
	if got := PositionHeader(0, 5); got != "📋 Проверка позиции 1 из 5" {
		t.Errorf("header = %q", got)
	}
}

func TestExplainCoversPopulatedFields(t *testing.T) {
	rec := extractor.NewRecord()
	rec.Structured = true
	rec.Provenance = map[constants.FieldID]constants.Provenance{
		constants.FieldName:        constants.SourceTextFallback,
		constants.FieldPrice:       constants.SourceVariantList,
		constants.FieldComposition: constants.SourceCompositionBlock,
		constants.FieldIKPU:        constants.SourceDetectedAnywhere,
	}

	exp := Explain(rec)
	for _, want := range []string{
		"🔍 Сообщение распознано как структурированное",
		"🏷 Название:",
		"💰 Цена: нашел несколько вариантов цены",
		"🧾 Состав: взял состав из блока «Состав»",
		"🏷 ИКПУ: нашел ИКПУ в тексте автоматически",
	} {
		if !strings.Contains(exp, want) {
			t.Errorf("explanation missing %q:\n%s", want, exp)
		}
	}
	if strings.Contains(exp, "⚖️ Вес:") {
		t.Error("explanation mentions a field with no provenance")
	}
}

func TestExplainDeterministic(t *testing.T) {
	rec := extractor.NewRecord()
	rec.Provenance = map[constants.FieldID]constants.Provenance{
		constants.FieldName:   constants.SourceManualEdit,
		constants.FieldPrice:  constants.SourceExplicitAttr,
		constants.FieldWeight: constants.SourceTextFallback,
	}

	first := Explain(rec)
	for i := 0; i < 10; i++ {
		if got := Explain(rec); got != first {
			t.Fatalf("explanation order unstable:\n%s\nvs\n%s", first, got)
		}
	}
}

func TestCardWithExplanation(t *testing.T) {
	rec := extractor.NewRecord()
	rec.Name = "Плов"
	rec.Provenance = map[constants.FieldID]constants.Provenance{
		constants.FieldName: constants.SourceTextFallback,
	}

	full := CardWithExplanation(rec, 1)
	if !strings.Contains(full, "📌 Как я это понял:") {
		t.Errorf("missing explanation separator:\n%s", full)
	}

	bare := CardWithExplanation(extractor.NewRecord(), 0)
	if strings.Contains(bare, "📌") {
		t.Error("record without provenance should render the card alone")
	}
}

func TestEditPromptFallback(t *testing.T) {
	if got := EditPrompt(constants.FieldName); got != editPrompts[constants.FieldName] {
		t.Errorf("prompt = %q", got)
	}
	if got := EditPrompt(constants.FieldCategory); !strings.Contains(got, string(constants.FieldCategory)) {
		t.Errorf("fallback prompt = %q", got)
	}
}
