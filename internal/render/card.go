// Package render builds the operator-facing text for dish cards, provenance
// explanations and workflow notices. The transport/UI collaborator owns
// presentation; this package only produces strings.
package render

import (
	"fmt"
	"strings"

	"github.com/tezkor/menu-tracker/constants"
	"github.com/tezkor/menu-tracker/internal/extractor"
)

const absent = "—"

// DishCard renders the review card for a dish record.
func DishCard(rec *extractor.Record, photoCount int) string {
	prices := absent
	if len(rec.Variants) > 0 {
		var b strings.Builder
		for i, v := range rec.Variants {
			if i > 0 {
				b.WriteByte('\n')
			}
			label := v.Label
			if label == "" {
				label = absent
			}
			fmt.Fprintf(&b, "%s — %d", label, v.Price)
		}
		prices = b.String()
	} else if rec.Price != nil {
		prices = fmt.Sprintf("%d", *rec.Price)
	}

	return fmt.Sprintf(
		"📦 Блюдо разобрано\n\n"+
			"Название: %s\n"+
			"Состав: %s\n"+
			"Вес: %s\n"+
			"Цены:\n%s\n"+
			"ИКПУ: %s\n"+
			"Фото: %d",
		orAbsent(rec.Name),
		orAbsent(rec.Composition),
		orAbsent(rec.Weight),
		prices,
		orAbsent(rec.ProductCode),
		photoCount,
	)
}

// PositionHeader renders the bulk review progress line. idx is zero-based.
func PositionHeader(idx, total int) string {
	return fmt.Sprintf("📋 Проверка позиции %d из %d", idx+1, total)
}

var priceExplanations = map[constants.Provenance]string{
	constants.SourceVariantList:  "нашел несколько вариантов цены (формат «вариант — цена»)",
	constants.SourceExplicitAttr: "нашел цену по ключу «Цена»",
	constants.SourceTextFallback: "нашел цену в тексте",
	constants.SourceManualEdit:   "цена задана вручную",
}

var weightExplanations = map[constants.Provenance]string{
	constants.SourceExplicitAttr: "нашел вес по ключу «Вес»",
	constants.SourceTextFallback: "определил вес из текста",
	constants.SourceManualEdit:   "вес задан вручную",
}

var compositionExplanations = map[constants.Provenance]string{
	constants.SourceCompositionBlock:  "взял состав из блока «Состав»",
	constants.SourceExplicitAttr:      "взял состав из строки",
	constants.SourceDescriptionReused: "использовал описание как состав",
	constants.SourceTextFallback:      "собрал состав из текста",
	constants.SourceLongestLine:       "взял самую информативную строку как состав",
	constants.SourceManualEdit:        "состав задан вручную",
}

var codeExplanations = map[constants.Provenance]string{
	constants.SourceDetectedAnywhere: "нашел ИКПУ в тексте автоматически",
	constants.SourceManualEdit:       "ИКПУ задан вручную",
}

var nameExplanations = map[constants.Provenance]string{
	constants.SourceExplicitAttr: "нашел название по ключу «Название»",
	constants.SourceTextFallback: "взял первую строку без цифр как название",
	constants.SourceManualEdit:   "название задано вручную",
}

// Explain renders the human-readable justification of how each field was
// populated. Reproducible byte-for-byte for identical extraction input.
func Explain(rec *extractor.Record) string {
	var lines []string

	if rec.Structured {
		lines = append(lines, "🔍 Сообщение распознано как структурированное")
	}
	if txt := explanation(nameExplanations, rec.Provenance, constants.FieldName); txt != "" {
		lines = append(lines, "🏷 Название: "+txt)
	}
	if txt := explanation(priceExplanations, rec.Provenance, constants.FieldPrice); txt != "" {
		lines = append(lines, "💰 Цена: "+txt)
	}
	if txt := explanation(weightExplanations, rec.Provenance, constants.FieldWeight); txt != "" {
		lines = append(lines, "⚖️ Вес: "+txt)
	}
	if txt := explanation(compositionExplanations, rec.Provenance, constants.FieldComposition); txt != "" {
		lines = append(lines, "🧾 Состав: "+txt)
	}
	if txt := explanation(codeExplanations, rec.Provenance, constants.FieldIKPU); txt != "" {
		lines = append(lines, "🏷 ИКПУ: "+txt)
	}

	return strings.Join(lines, "\n")
}

func explanation(m map[constants.Provenance]string, prov map[constants.FieldID]constants.Provenance, f constants.FieldID) string {
	src, ok := prov[f]
	if !ok {
		return ""
	}
	if txt, ok := m[src]; ok {
		return txt
	}
	return string(src)
}

// CardWithExplanation renders the full caption: card, then the justification.
func CardWithExplanation(rec *extractor.Record, photoCount int) string {
	card := DishCard(rec, photoCount)
	if exp := Explain(rec); exp != "" {
		return card + "\n\n📌 Как я это понял:\n" + exp
	}
	return card
}

func orAbsent(s string) string {
	if s == "" {
		return absent
	}
	return s
}
