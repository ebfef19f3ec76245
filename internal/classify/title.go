package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	nonAlnum     = regexp.MustCompile(`[^A-Za-z0-9]+`)
	repeatedDash = regexp.MustCompile(`-{2,}`)
)

// Slugify lowercases and reduces a string to dash-separated alphanumerics.
func Slugify(value string) string {
	slug := nonAlnum.ReplaceAllString(strings.TrimSpace(value), "-")
	slug = repeatedDash.ReplaceAllString(slug, "-")
	return strings.ToLower(strings.Trim(slug, "-"))
}

// MakeTitle builds a filing title like "2025-03-01_Invoice_Acme_#INV-42",
// capped at 80 characters.
func MakeTitle(date, category, vendor, invoiceNumber string) string {
	var pieces []string
	if date != "" {
		pieces = append(pieces, date)
	}
	pieces = append(pieces, humanizeSlug(titlePart(category, "Document", 32)))
	if vendor != "" {
		pieces = append(pieces, humanizeSlug(titlePart(vendor, "", 24)))
	}
	if invoiceNumber != "" {
		pieces = append(pieces, "#"+strings.ToUpper(titlePart(invoiceNumber, "", 16)))
	}
	title := strings.Join(pieces, "_")
	if len(title) > 80 {
		title = title[:80]
	}
	return title
}

// BuildTags returns the category plus a vendor slug when one exists.
func BuildTags(category, vendor string) []string {
	tags := []string{category}
	if slug := Slugify(vendor); slug != "" {
		tags = append(tags, slug)
	}
	return tags
}

// DefaultPath builds the deterministic fallback destination when no
// suggestion is available: "<Category>/<year>".
func DefaultPath(category string, year int) string {
	return fmt.Sprintf("%s/%d", Capitalize(category), year)
}

// YearOf returns the year of an ISO date string, or the current year when
// the date is missing or unparseable.
func YearOf(isoDate string) int {
	if len(isoDate) >= 4 {
		if year, err := strconv.Atoi(isoDate[:4]); err == nil {
			return year
		}
	}
	return time.Now().UTC().Year()
}

// Capitalize uppercases the first letter, special-casing the "id"
// category which reads better fully uppercased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	if s == "id" {
		return "ID"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func titlePart(value, fallback string, maxLen int) string {
	slug := Slugify(value)
	if slug == "" {
		slug = Slugify(fallback)
	}
	if slug == "" {
		slug = "document"
	}
	if len(slug) > maxLen {
		slug = slug[:maxLen]
	}
	return slug
}

func humanizeSlug(slug string) string {
	if slug == "" {
		return "Document"
	}
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, "-")
}

// Analyze runs classification and extraction over the text and assembles
// the full document metadata.
func Analyze(text, metadataDate string) (Classification, FieldSet, string) {
	cls := Classify(text)
	fields := ExtractFields(text)
	fields.Date = ResolveDate(fields.Date, metadataDate)
	cls.Confidence = EstimateConfidence(cls.Confidence, fields)
	title := MakeTitle(fields.Date, cls.Category, fields.Vendor, fields.InvoiceNumber)
	return cls, fields, title
}
