package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docuparse/internal/classify"
	"docuparse/internal/domain"
)

func TestDocType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.DocType
	}{
		{"invoice keywords", "TAX INVOICE Subtotal: 90.00 Grand Total: 100.00", domain.DocTypeInvoice},
		{"purchase order keywords", "PURCHASE ORDER PO-2024-0042 Delivery Date: 2024-03-01", domain.DocTypePurchaseOrder},
		{"approval keywords", "APPROVAL FORM Requested By: Jane Doe", domain.DocTypeApproval},
		{"case insensitive", "this invoice covers march", domain.DocTypeInvoice},
		{"no signal", "quarterly newsletter for staff", domain.DocTypeUnknown},
		{"empty", "", domain.DocTypeUnknown},
		{"whitespace only", "   ", domain.DocTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.DocType(tt.text))
		})
	}
}

func TestDocType_ApprovalBeatsInvoice(t *testing.T) {
	// Approval vocabulary is checked before invoice vocabulary, so a form
	// that mentions both classifies as approval.
	text := "Approver: John Smith re invoice 42"
	assert.Equal(t, domain.DocTypeApproval, classify.DocType(text))
}
