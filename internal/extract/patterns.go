package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Patterns holds the compiled heuristics shared by the extractors. It is
// immutable after construction and passed into each extractor so pattern
// sets can be unit-tested in isolation.
type Patterns struct {
	structuredID *regexp.Regexp
	labeledID    *regexp.Regexp
	numberedID   *regexp.Regexp
	number       *regexp.Regexp
	currency     *regexp.Regexp
	dateToken    *regexp.Regexp
	vendorSuffix *regexp.Regexp
	boilerplate  *regexp.Regexp
	dateLayouts  []string
	departments  []string
}

// DefaultPatterns returns the stock pattern set.
func DefaultPatterns() *Patterns {
	return &Patterns{
		structuredID: regexp.MustCompile(`(?i)\b(INV|PO|APV|REF)[-\s]?\d{2,4}[-\s]?\d{1,6}\b`),
		labeledID:    regexp.MustCompile(`(?i)\b(?:INV|INVOICE|PO|APV|REF)[:\s\-#]+([A-Z]{0,4}[-_/]?\d[\dA-Z\-_/]{2,39})\b`),
		numberedID:   regexp.MustCompile(`(?i)\b(?:#|No\.)\s*(\d{3,12})\b`),
		number:       regexp.MustCompile(`\b(\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+\.\d{1,2}|\d{1,3})\b`),
		currency:     regexp.MustCompile(`(?i)\b(AED|USD|EUR|SAR|OMR)\b`),
		dateToken:    regexp.MustCompile(`\b(\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}|\d{1,2} [A-Za-z]{3,9} \d{2,4})\b`),
		vendorSuffix: regexp.MustCompile(`\b([A-Z][A-Za-z&. ]{3,60}(?:LLC|LTD|FZ|CO|COMPANY|SERVICES|SOLUTIONS|TRADING))\b`),
		boilerplate:  regexp.MustCompile(`(?i)\b(invoice|purchase order|approval|tax|bill to|vat|date|total|amount|no\.|#)\b`),
		dateLayouts: []string{
			"2006-01-02",
			"2006/01/02",
			"2006.01.02",
			"02-01-2006",
			"02/01/2006",
			"02.01.2006",
			"01-02-2006",
			"01/02/2006",
			"2 Jan 2006",
			"02 Jan 2006",
			"2 January 2006",
			"02 January 2006",
			"02-01-06",
			"02/01/06",
		},
		departments: []string{"Finance", "Procurement", "Operations", "HR", "IT", "Facilities"},
	}
}

// DocumentID finds an invoice/PO/approval-style identifier. Structured
// codes score 0.9, label-prefixed captures 0.85, bare "#"/"No." numbers
// 0.7.
func (p *Patterns) DocumentID(text string) (string, float64, bool) {
	if m := p.structuredID.FindString(text); m != "" {
		return strings.ToUpper(strings.ReplaceAll(m, " ", "-")), 0.9, true
	}
	if m := p.labeledID.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1]), 0.85, true
	}
	if m := p.numberedID.FindStringSubmatch(text); m != nil {
		return m[1], 0.7, true
	}
	return "", 0, false
}

// StructuredCode matches one specific code prefix, e.g. "APV" or "PO".
func (p *Patterns) StructuredCode(text, prefix string) (string, bool) {
	re := regexp.MustCompile(`(?i)\b` + prefix + `[-\s]?\d{2,4}[-\s]?\d{1,6}\b`)
	if m := re.FindString(text); m != "" {
		return strings.ToUpper(strings.ReplaceAll(m, " ", "-")), true
	}
	return "", false
}

// LargestNumber returns the largest parseable numeric token in the text.
// Totals are typically the largest number on an invoice; this is a
// documented heuristic, not a guarantee.
func (p *Patterns) LargestNumber(text string) (float64, bool) {
	best, found := 0.0, false
	for _, m := range p.number.FindAllString(text, -1) {
		v, ok := parseAmount(m)
		if ok && (!found || v > best) {
			best, found = v, true
		}
	}
	return best, found
}

// LabeledNumber captures a numeric value directly after a label.
func (p *Patterns) LabeledNumber(text, label string) (float64, bool) {
	re := regexp.MustCompile(`(?i)\b` + label + `[:\s-]+([0-9][0-9.,]*)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return parseAmount(m[1])
}

// Currency finds a recognized currency code.
func (p *Patterns) Currency(text string) (string, bool) {
	if m := p.currency.FindString(text); m != "" {
		return strings.ToUpper(m), true
	}
	return "", false
}

// Date finds the first date-shaped token and returns it in YYYY-MM-DD form.
func (p *Patterns) Date(text string) (string, bool) {
	for _, m := range p.dateToken.FindAllString(text, -1) {
		if iso, ok := p.parseDate(m); ok {
			return iso, true
		}
	}
	return "", false
}

// LabeledDate parses a date-shaped token only when it directly follows the
// given label.
func (p *Patterns) LabeledDate(text, label string) (string, bool) {
	re := regexp.MustCompile(`(?i)\b` + label + `[:\s-]+(` + p.dateToken.String() + `)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return p.parseDate(m[1])
}

// GuessVendor looks for a business-suffix company name, falling back to
// the leading capitalized span of the text (letterhead position). The
// positional fallback caps out at 0.6 confidence.
func (p *Patterns) GuessVendor(text string) (string, float64, bool) {
	if m := p.vendorSuffix.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), 0.75, true
	}
	lead := text
	if loc := p.boilerplate.FindStringIndex(text); loc != nil {
		lead = text[:loc[0]]
	}
	lead = strings.TrimSpace(lead)
	if len(lead) > 60 {
		lead = strings.TrimSpace(lead[:60])
	}
	if len(lead) > 8 && upperRatio(lead) > 0.2 {
		return lead, 0.6, true
	}
	return "", 0, false
}

// Department scans for a known department name.
func (p *Patterns) Department(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, d := range p.departments {
		if strings.Contains(lower, strings.ToLower(d)) {
			return d, true
		}
	}
	return "", false
}

func (p *Patterns) parseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range p.dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// labelValue builds a matcher for free text following a label, bounded by
// the next known label or end of text. Normalized blobs are one long line,
// so the stop set is what keeps captures from swallowing the rest of the
// document.
func labelValue(label string, stops ...string) *regexp.Regexp {
	tail := `$`
	if len(stops) > 0 {
		tail = `(?:\s+(?:` + strings.Join(stops, `|`) + `)\b|$)`
	}
	return regexp.MustCompile(`(?i)\b` + label + `[:\s-]+(.+?)` + tail)
}

func capture(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	v := strings.Trim(strings.TrimSpace(m[1]), ":-")
	return v, v != ""
}

// parseAmount strips thousands separators and parses a decimal number.
// Non-finite results are rejected.
func parseAmount(s string) (float64, bool) {
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(strings.TrimSpace(s))
	cleaned = strings.TrimRight(cleaned, ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func upperRatio(s string) float64 {
	if s == "" {
		return 0
	}
	upper := 0
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			upper++
		}
	}
	return float64(upper) / float64(len(s))
}
