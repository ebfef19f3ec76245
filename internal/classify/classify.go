// Package classify assigns a document category and extracts metadata
// fields from raw text. All heuristics are deliberately lightweight; the
// suggestion collaborator does the semantic work later.
package classify

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// categoryKeywords maps a category to the phrases that indicate it.
var categoryKeywords = map[string][]string{
	"invoice":   {"invoice", "invoice number", "bill to", "amount due", "remit to", "purchase order"},
	"receipt":   {"receipt", "thank you for shopping", "cashier", "pos", "change due"},
	"contract":  {"agreement", "contract", "terms and conditions", "effective date"},
	"insurance": {"policy", "coverage", "premium", "claim number"},
	"tax":       {"tax", "irs", "revenue agency", "h&r block", "form t"},
	"medical":   {"patient", "diagnosis", "clinic", "physician", "healthcare"},
	"school":    {"university", "college", "transcript", "semester", "student id"},
	"id":        {"passport", "driver license", "identification", "national id", "dob"},
}

// baseConfidence is the starting confidence per category before field
// bonuses are applied.
var baseConfidence = map[string]float64{
	"invoice":   0.6,
	"receipt":   0.55,
	"contract":  0.55,
	"insurance": 0.5,
	"tax":       0.55,
	"medical":   0.5,
	"school":    0.5,
	"id":        0.45,
	"other":     0.4,
}

// Classification is the result of categorizing a document.
type Classification struct {
	Category    string
	Confidence  float64
	AppliedRule string
}

// NormalizeText collapses whitespace and lowercases for matching.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Classify scores the text against every category's keyword set and
// returns the best match, falling back to "other".
//
// Exact phrase hits score 2; near-miss spellings found by fuzzy matching
// score 1, so a single typo cannot outvote a real keyword.
func Classify(text string) Classification {
	normalized := NormalizeText(text)
	words := strings.Fields(normalized)

	best := Classification{Category: "other", AppliedRule: "fallback"}
	bestScore := 0

	for category, keywords := range categoryKeywords {
		score := 0
		for _, keyword := range keywords {
			if strings.Contains(normalized, keyword) {
				score += 2
			} else if fuzzyHit(keyword, words) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best.Category = category
			best.AppliedRule = "keyword:" + category
		}
	}

	best.Confidence = baseConfidence[best.Category]
	return best
}

// fuzzyHit reports whether any word in the text is a near-miss spelling of
// the keyword. Short keywords are excluded: almost everything fuzzy-matches
// a four-letter word.
func fuzzyHit(keyword string, words []string) bool {
	if len(keyword) < 5 || strings.ContainsRune(keyword, ' ') {
		return false
	}
	for _, m := range fuzzy.Find(keyword, words) {
		if len(m.Str) >= len(keyword) && len(m.Str) <= len(keyword)+2 {
			return true
		}
	}
	return false
}

// EstimateConfidence adds per-field bonuses to the base confidence,
// capped at 0.95.
func EstimateConfidence(base float64, doc FieldSet) float64 {
	bonus := 0.0
	if doc.Vendor != "" {
		bonus += 0.12
	}
	if doc.InvoiceNumber != "" {
		bonus += 0.1
	}
	if doc.Total > 0 {
		bonus += 0.1
	}
	if doc.Date != "" {
		bonus += 0.08
	}
	if doc.PersonOrOrg != "" {
		bonus += 0.05
	}
	confidence := base + bonus
	if confidence > 0.95 {
		confidence = 0.95
	}
	return confidence
}
