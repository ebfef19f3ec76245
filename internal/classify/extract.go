package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

// FieldSet holds the fields extracted from document text.
type FieldSet struct {
	Vendor        string
	InvoiceNumber string
	Total         float64
	Currency      string
	Date          string // ISO date (YYYY-MM-DD)
	PersonOrOrg   string
}

var (
	totalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:total(?: amount)?|amount due|balance due)\D{0,12}([$€£₹]?\s?[A-Z]{0,3}\s?\d[\d,]*(?:\.\d{2})?)`),
		regexp.MustCompile(`(?i)\$?\s?[A-Z]{0,3}\s?\d[\d,]*\.\d{2}\s*(?:total|amount due)`),
	}

	invoiceNumberPattern = regexp.MustCompile(`(?i)(?:invoice|inv)\s*(?:number|no\.?|#)?\s*[:#]?\s*([A-Z0-9\-]{3,})`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:date|dated|issued)\s*[:\-]?\s*([0-9]{4}[/\-][0-9]{1,2}[/\-][0-9]{1,2})`),
		regexp.MustCompile(`(?i)(?:date|dated|issued)\s*[:\-]?\s*([0-9]{1,2}[/\-][0-9]{1,2}[/\-][0-9]{2,4})`),
	}

	isoDatePattern = regexp.MustCompile(`\b([0-9]{4})[-/](0[1-9]|1[0-2])[-/](0[1-9]|[12][0-9]|3[01])\b`)

	amountDigits = regexp.MustCompile(`[^0-9.]`)
	manyDigits   = regexp.MustCompile(`\d{2,}`)
	longDigits   = regexp.MustCompile(`\d{4,}`)
	addressLike  = regexp.MustCompile(`\d{1,5}\s+\w+`)
)

// headerExclusions are line prefixes that never name the vendor.
var headerExclusions = []string{
	"invoice", "receipt", "total", "amount due", "bill to", "ship to",
	"page", "date", "customer", "due", "description", "account",
	"statement", "balance", "subtotal", "tax",
}

var currencyCodes = map[string]string{
	"cad": "CAD", "usd": "USD", "eur": "EUR", "gbp": "GBP", "aud": "AUD", "nzd": "NZD",
}

var currencySymbols = map[string]string{
	"$": "USD", "€": "EUR", "£": "GBP", "₹": "INR",
}

// ExtractFields runs every extractor over the text.
func ExtractFields(text string) FieldSet {
	fields := FieldSet{
		Vendor:        extractVendor(text),
		InvoiceNumber: extractInvoiceNumber(text),
		Date:          ExtractDate(text),
		PersonOrOrg:   extractPersonOrOrg(text),
	}
	fields.Total, fields.Currency = extractTotalAndCurrency(text)
	return fields
}

func extractInvoiceNumber(text string) string {
	if m := invoiceNumberPattern.FindStringSubmatch(text); m != nil {
		num := strings.TrimSpace(m[1])
		if len(num) > 64 {
			num = num[:64]
		}
		return num
	}
	return ""
}

func extractTotalAndCurrency(text string) (float64, string) {
	for _, pattern := range totalPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		fragment := m[0]
		amountStr := fragment
		if len(m) > 1 && m[1] != "" {
			amountStr = m[1]
		}
		if amount, ok := parseAmount(amountStr); ok {
			return amount, inferCurrency(fragment)
		}
	}
	return 0, ""
}

func parseAmount(value string) (float64, bool) {
	cleaned := amountDigits.ReplaceAllString(value, "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

func inferCurrency(fragment string) string {
	lower := strings.ToLower(fragment)
	for key, code := range currencyCodes {
		if strings.Contains(lower, key) {
			return code
		}
	}
	for symbol, code := range currencySymbols {
		if strings.Contains(fragment, symbol) {
			return code
		}
	}
	return ""
}

// extractVendor scans the first dozen lines for a short, address-free,
// mostly-alphabetic line. Header boilerplate is skipped.
func extractVendor(text string) string {
	lines := nonEmptyLines(text)
	if len(lines) > 12 {
		lines = lines[:12]
	}
	for _, line := range lines {
		lower := strings.ToLower(line)
		if containsAny(lower, headerExclusions) {
			continue
		}
		if len(line) <= 2 || len(line) > 60 {
			continue
		}
		if addressLike.MatchString(line) || manyDigits.MatchString(line) {
			continue
		}
		if len(line) > 120 {
			line = line[:120]
		}
		return line
	}
	return ""
}

// extractPersonOrOrg looks for the addressee under a "bill to"/"sold to"
// header.
func extractPersonOrOrg(text string) string {
	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		lower := strings.ToLower(raw)
		if !strings.Contains(lower, "bill to") && !strings.Contains(lower, "sold to") {
			continue
		}
		end := i + 4
		if end > len(lines) {
			end = len(lines)
		}
		for _, follow := range lines[i+1 : end] {
			cleaned := strings.TrimSpace(follow)
			if cleaned == "" || longDigits.MatchString(cleaned) {
				continue
			}
			if len(cleaned) > 120 {
				cleaned = cleaned[:120]
			}
			return cleaned
		}
	}
	return ""
}

// ExtractDate finds a labeled date, falling back to any ISO-like date in
// the text. Returns an ISO date string or "".
func ExtractDate(text string) string {
	for _, pattern := range datePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if iso := parseDate(m[1]); iso != "" {
				return iso
			}
		}
	}
	if m := isoDatePattern.FindString(text); m != "" {
		return parseDate(m)
	}
	return ""
}

// ResolveDate prefers a date extracted from text over one carried in file
// metadata (e.g. EXIF).
func ResolveDate(extracted, metadataDate string) string {
	if extracted != "" {
		return extracted
	}
	if metadataDate == "" {
		return ""
	}
	return parseDate(metadataDate)
}

// parseDate normalizes any recognizable date string to YYYY-MM-DD.
func parseDate(value string) string {
	parsed, err := dateparse.ParseAny(value)
	if err != nil {
		return ""
	}
	return parsed.Format("2006-01-02")
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
