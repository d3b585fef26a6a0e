package constants

// Provenance records which extraction rule populated a field. The values are
// stable: they are surfaced to the operator as part of the card explanation and
// must be byte-for-byte reproducible for identical input.
type Provenance string

const (
	// SourceVariantList: the field was derived from "label — price" variant lines.
	SourceVariantList Provenance = "multi_price_pairs"
	// SourceExplicitAttr: the field came from a "key: value" labeled line.
	SourceExplicitAttr Provenance = "explicit_attr"
	// SourceCompositionBlock: composition collected from a header-delimited block.
	SourceCompositionBlock Provenance = "composition_block"
	// SourceDescriptionReused: labeled description reused as composition.
	SourceDescriptionReused Provenance = "description_used_as_composition"
	// SourceTextFallback: the field was inferred by scanning unlabeled text.
	SourceTextFallback Provenance = "fallback_from_text"
	// SourceLongestLine: legacy composition fallback, longest candidate line.
	SourceLongestLine Provenance = "legacy_longest_line_fallback"
	// SourceDetectedAnywhere: 17-digit product code found anywhere in the text.
	SourceDetectedAnywhere Provenance = "detected_anywhere"
	// SourceManualEdit: the operator rewrote the field during review.
	SourceManualEdit Provenance = "manual_edit"
)
