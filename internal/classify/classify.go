// Package classify assigns a document type to a page's text blob using
// ordered keyword rules.
package classify

import (
	"strings"

	"docuparse/internal/domain"
)

// rule binds a document type to its signal keywords.
type rule struct {
	docType  domain.DocType
	keywords []string
}

// Rules are evaluated in order; the first rule with any case-insensitive
// substring hit wins. Approval vocabulary is the most distinctive and is
// checked first so approval forms that mention monetary amounts are not
// misread as invoices.
var rules = []rule{
	{domain.DocTypeApproval, []string{"approval", "request id", "requested by", "approver", "status"}},
	{domain.DocTypeInvoice, []string{"invoice", "vat", "subtotal", "grand total", "bill to"}},
	{domain.DocTypePurchaseOrder, []string{"purchase order", "delivery date", "supplier"}},
}

// DocType classifies a text blob. Empty text always yields unknown.
func DocType(text string) domain.DocType {
	if strings.TrimSpace(text) == "" {
		return domain.DocTypeUnknown
	}
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.docType
			}
		}
	}
	return domain.DocTypeUnknown
}
