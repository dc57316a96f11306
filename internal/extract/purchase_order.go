package extract

import (
	"regexp"

	"docuparse/internal/domain"
)

var poStops = []string{
	`purchase\s+order`, `supplier`, `vendor`, `delivery\s+date`, `date`,
	`grand\s+total`, `total`, `currency`, `items?`, `qty`, `quantity`,
}

// PurchaseOrderExtractor pulls po_number, vendor, date, delivery_date, and
// total. The delivery date is only ever read from behind its label; a bare
// second date token on the page is too ambiguous to assign.
type PurchaseOrderExtractor struct {
	p          *Patterns
	supplierRe *regexp.Regexp
	dateRe     *regexp.Regexp
}

func NewPurchaseOrderExtractor(p *Patterns) *PurchaseOrderExtractor {
	return &PurchaseOrderExtractor{
		p:          p,
		supplierRe: labelValue(`(?:supplier|vendor)`, poStops...),
		dateRe:     labelValue(`(?:order\s+date|date)`, poStops...),
	}
}

func (e *PurchaseOrderExtractor) DocType() domain.DocType { return domain.DocTypePurchaseOrder }

func (e *PurchaseOrderExtractor) Extract(text string) Result {
	r := NewResult()

	if code, ok := e.p.StructuredCode(text, "PO"); ok {
		r.Set(domain.FieldPONumber, code, 0.9)
	} else if id, conf, ok := e.p.DocumentID(text); ok {
		r.Set(domain.FieldPONumber, id, conf)
	}

	if v, ok := capture(e.supplierRe, text); ok {
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

	if iso, ok := e.p.LabeledDate(text, `delivery\s+date`); ok {
		r.Set(domain.FieldDeliveryDate, iso, 0.7)
	}

	for _, label := range []string{`grand\s+total`, `total`, `amount`} {
		if v, ok := e.p.LabeledNumber(text, label); ok {
			r.Set(domain.FieldTotal, v, 0.85)
			break
		}
	}
	if !r.Has(domain.FieldTotal) {
		if v, ok := e.p.LargestNumber(text); ok {
			r.Set(domain.FieldTotal, v, 0.65)
			r.AddIssue("missing_total")
		}
	}

	if c, ok := e.p.Currency(text); ok {
		r.Set(domain.FieldCurrency, c, 0.85)
	}

	return r
}
