package extract

import (
	"regexp"

	"docuparse/internal/domain"
)

var invoiceStops = []string{
	`invoice`, `vendor`, `date`, `amount`, `grand\s+total`, `total`,
	`subtotal`, `vat`, `tax`, `currency`, `bill\s+to`, `due`,
}

// InvoiceExtractor pulls document_id, vendor, date, amount, and currency
// out of invoice text. The amount prefers an explicit total label and only
// then falls back to the largest-number heuristic at reduced confidence.
type InvoiceExtractor struct {
	p        *Patterns
	vendorRe *regexp.Regexp
	dateRe   *regexp.Regexp
}

func NewInvoiceExtractor(p *Patterns) *InvoiceExtractor {
	return &InvoiceExtractor{
		p:        p,
		vendorRe: labelValue(`(?:vendor|supplier|from|bill\s+from)`, invoiceStops...),
		dateRe:   labelValue(`(?:invoice\s+date|date)`, invoiceStops...),
	}
}

func (e *InvoiceExtractor) DocType() domain.DocType { return domain.DocTypeInvoice }

func (e *InvoiceExtractor) Extract(text string) Result {
	r := NewResult()

	if id, conf, ok := e.p.DocumentID(text); ok {
		r.Set(domain.FieldDocumentID, id, conf)
	}

	if v, ok := capture(e.vendorRe, text); ok {
		r.Set(domain.FieldVendor, v, 0.8)
	} else if v, conf, ok := e.p.GuessVendor(text); ok {
		r.Set(domain.FieldVendor, v, conf)
	}

	if v, ok := capture(e.dateRe, text); ok {
		if iso, ok := e.p.parseDate(v); ok {
			r.Set(domain.FieldDate, iso, 0.85)
		}
	}
	if !r.Has(domain.FieldDate) {
		if iso, ok := e.p.Date(text); ok {
			r.Set(domain.FieldDate, iso, 0.7)
		}
	}

	for _, label := range []string{`grand\s+total`, `amount\s+due`, `total\s+due`, `total`, `amount`} {
		if v, ok := e.p.LabeledNumber(text, label); ok {
			r.Set(domain.FieldAmount, v, 0.85)
			break
		}
	}
	if !r.Has(domain.FieldAmount) {
		if v, ok := e.p.LargestNumber(text); ok {
			r.Set(domain.FieldAmount, v, 0.65)
			r.AddIssue("missing_total")
		}
	}

	if c, ok := e.p.Currency(text); ok {
		r.Set(domain.FieldCurrency, c, 0.85)
	}

	return r
}
