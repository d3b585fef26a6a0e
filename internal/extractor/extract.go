// Package extractor converts an unordered bag of chat text lines into a
// structured dish record. The engine is a fixed, ordered pipeline of rules;
// the precedence between rules is part of the contract and covered by tests.
package extractor

import (
	"log/slog"
	"strings"

	"github.com/tezkor/menu-tracker/constants"
	"github.com/tezkor/menu-tracker/internal/dictionary"
	"github.com/tezkor/menu-tracker/internal/textnorm"
)

// Engine is the field extraction engine. Stateless: Extract is a pure
// function of its input and the dictionary.
type Engine struct {
	dict   *dictionary.Dictionary
	logger *slog.Logger
	passes []pass
}

// scan is the working state threaded through the passes of one extraction.
type scan struct {
	lines     []string
	full      string // all lines joined with \n
	labeled   map[constants.FieldID]string
	remaining []string
	rec       *Record
}

type pass struct {
	name string
	run  func(*scan)
}

func New(dict *dictionary.Dictionary, logger *slog.Logger) *Engine {
	if dict == nil {
		dict = dictionary.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{dict: dict, logger: logger}
	e.passes = []pass{
		{"labeled_fields", e.passLabeledFields},
		{"classify", e.passClassify},
		{"product_code", e.passProductCode},
		{"variant_prices", e.passVariantPrices},
		{"labeled_price_weight", e.passLabeledPriceWeight},
		{"name", e.passName},
		{"composition", e.passComposition},
		{"fallback_price_weight", e.passFallbackPriceWeight},
	}
	return e
}

// Extract runs the full rule pipeline over normalized lines. It never fails:
// empty input yields an all-empty record with no provenance.
func (e *Engine) Extract(lines []string) *Record {
	rec := NewRecord()
	if len(lines) == 0 {
		return rec
	}

	s := &scan{
		lines: lines,
		full:  strings.Join(lines, "\n"),
		rec:   rec,
	}
	for _, p := range e.passes {
		p.run(s)
	}

	e.logger.Debug("extract.ok",
		"lines", len(lines), "structured", rec.Structured,
		"variants", len(rec.Variants), "has_price", rec.HasPrice(),
	)
	return rec
}

// Pass 1: pull key/value pairs out, keep the rest as the remaining pool.
func (e *Engine) passLabeledFields(s *scan) {
	s.labeled, s.remaining = e.extractLabeledFields(s.lines)
}

// Pass 2: classify the message as structured or free text. Structured input
// restricts later fallbacks to the remaining pool.
func (e *Engine) passClassify(s *scan) {
	if len(s.labeled) >= 2 {
		s.rec.Structured = true
		return
	}
	for _, f := range []constants.FieldID{
		constants.FieldPrice, constants.FieldIKPU, constants.FieldCategory, constants.FieldWeight,
	} {
		if _, ok := s.labeled[f]; ok {
			s.rec.Structured = true
			return
		}
	}
	// A bare composition header also counts as structure.
	for _, line := range s.lines {
		low := textnorm.FoldKey(line)
		for _, a := range e.dict.Aliases(constants.FieldComposition) {
			if low == a {
				s.rec.Structured = true
				return
			}
		}
	}
}

// Pass 3: 17 consecutive digits anywhere is the product tax code.
func (e *Engine) passProductCode(s *scan) {
	if m := productCodeRE.FindString(s.full); m != "" {
		s.rec.ProductCode = m
		s.rec.setSource(constants.FieldIKPU, constants.SourceDetectedAnywhere)
	}
}

// Pass 4: every "label — number" line becomes a price variant. When any
// variant matches, the scalar price becomes the minimum and weight is forced
// absent. This pass outranks the labeled price below: once variant lines
// exist, a labeled "Цена" is never consulted.
func (e *Engine) passVariantPrices(s *scan) {
	for _, line := range s.lines {
		m := pairRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if price, ok := digitsToInt(m[2]); ok {
			s.rec.Variants = append(s.rec.Variants, PriceVariant{
				Label: strings.TrimSpace(m[1]),
				Price: price,
			})
		}
	}
	if len(s.rec.Variants) == 0 {
		return
	}

	min := s.rec.Variants[0].Price
	for _, v := range s.rec.Variants[1:] {
		if v.Price < min {
			min = v.Price
		}
	}
	s.rec.Price = intPtr(min)
	s.rec.Weight = ""
	s.rec.setSource(constants.FieldPrice, constants.SourceVariantList)
}

// Pass 5: single price/weight from labeled fields, structured messages only.
func (e *Engine) passLabeledPriceWeight(s *scan) {
	if !s.rec.Structured || len(s.rec.Variants) > 0 {
		return
	}
	if !s.rec.HasPrice() {
		if raw, ok := s.labeled[constants.FieldPrice]; ok {
			if price, ok := digitsToInt(raw); ok {
				s.rec.Price = intPtr(price)
				s.rec.setSource(constants.FieldPrice, constants.SourceExplicitAttr)
			}
		}
	}
	if s.rec.Weight == "" {
		if raw, ok := s.labeled[constants.FieldWeight]; ok {
			if w := normalizeWeightValue(raw); w != "" {
				s.rec.Weight = w
				s.rec.setSource(constants.FieldWeight, constants.SourceExplicitAttr)
			}
		}
	}
}

// Pass 6: labeled name, else the first digit-free line that is not a keyword.
func (e *Engine) passName(s *scan) {
	if v := strings.TrimSpace(s.labeled[constants.FieldName]); v != "" {
		s.rec.Name = v
		s.rec.setSource(constants.FieldName, constants.SourceExplicitAttr)
		return
	}
	for _, line := range s.lines {
		low := textnorm.FoldKey(line)
		if low == "" || containsDigit(low) {
			continue
		}
		if e.dict.IsAlias(low) {
			continue
		}
		if e.keywordPrefixed(low) {
			continue
		}
		s.rec.Name = strings.TrimSpace(line)
		s.rec.setSource(constants.FieldName, constants.SourceTextFallback)
		return
	}
}

// Pass 7: composition cascade: block, labeled, description, pool scan,
// legacy longest line. First success wins.
func (e *Engine) passComposition(s *scan) {
	if block := e.collectBlock(s.lines, constants.FieldComposition); len(block) > 0 {
		if comp := e.compositionFromLines(block, true); comp != "" {
			s.rec.Composition = comp
			s.rec.setSource(constants.FieldComposition, constants.SourceCompositionBlock)
			return
		}
	}

	if v := strings.TrimSpace(s.labeled[constants.FieldComposition]); v != "" {
		s.rec.Composition = v
		s.rec.setSource(constants.FieldComposition, constants.SourceExplicitAttr)
		return
	}

	// Reuse a labeled description rather than lose it.
	if v := strings.TrimSpace(s.labeled[constants.FieldDescription]); v != "" {
		s.rec.Composition = v
		s.rec.setSource(constants.FieldComposition, constants.SourceDescriptionReused)
		return
	}

	pool := s.lines
	if s.rec.Structured {
		pool = s.remaining
	}
	if comp := e.compositionFromLines(pool, true); comp != "" {
		s.rec.Composition = comp
		s.rec.setSource(constants.FieldComposition, constants.SourceTextFallback)
		return
	}

	// Legacy fallback: the longest line that looks like nothing else.
	var best string
	for _, line := range pool {
		if line == s.rec.Name {
			continue
		}
		if productCodeRE.MatchString(line) {
			continue
		}
		if pairRE.MatchString(line) {
			continue
		}
		if priceLineRE.MatchString(line) {
			continue
		}
		if hasWeightToken(line) {
			continue
		}
		if e.dict.ContainsAlias(line) {
			continue
		}
		if !containsLetter(line) {
			continue
		}
		if len(line) > len(best) {
			best = line
		}
	}
	if best != "" {
		s.rec.Composition = strings.TrimSpace(best)
		s.rec.setSource(constants.FieldComposition, constants.SourceLongestLine)
	}
}

// Pass 8: weight and price from unstructured text, only when passes 4-5
// produced neither a price nor variants.
func (e *Engine) passFallbackPriceWeight(s *scan) {
	if len(s.rec.Variants) > 0 || s.rec.HasPrice() {
		return
	}

	if s.rec.Weight == "" {
		if w := findWeightToken(strings.ToLower(s.full)); w != "" {
			s.rec.Weight = w
			s.rec.setSource(constants.FieldWeight, constants.SourceTextFallback)
		}
	}

	var candidates []int
	for _, line := range s.lines {
		low := strings.ToLower(strings.TrimSpace(line))
		if productCodeRE.MatchString(low) {
			continue
		}
		if hasWeightToken(low) {
			continue
		}
		if priceLineRE.MatchString(low) {
			if price, ok := digitsToInt(low); ok {
				candidates = append(candidates, price)
			}
			continue
		}
		for _, tok := range inlineDigitsRE.FindAllString(low, -1) {
			if price, ok := digitsToInt(tok); ok {
				candidates = append(candidates, price)
			}
		}
	}
	if len(candidates) > 0 {
		min := candidates[0]
		for _, c := range candidates[1:] {
			if c < min {
				min = c
			}
		}
		s.rec.Price = intPtr(min)
		s.rec.setSource(constants.FieldPrice, constants.SourceTextFallback)
	}
}
