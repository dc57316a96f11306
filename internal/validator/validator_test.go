package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuparse/internal/domain"
	"docuparse/internal/validator"
)

func invoiceResult() domain.DocumentResult {
	return domain.DocumentResult{
		DocType: domain.DocTypeInvoice,
		Fields: domain.FieldSet{
			domain.FieldDocumentID: "INV-2024-0031",
			domain.FieldVendor:     "ACME TRADING LLC",
			domain.FieldDate:       "2024-03-15",
			domain.FieldAmount:     945.00,
		},
		Confidence: domain.ConfidenceSet{
			domain.FieldDocumentID: 0.9,
			domain.FieldVendor:     0.75,
			domain.FieldDate:       0.85,
			domain.FieldAmount:     0.85,
		},
	}
}

func TestValidate_WellFormedInvoice(t *testing.T) {
	report := validator.Validate(invoiceResult())

	assert.True(t, report.Valid)
	assert.True(t, report.FieldResults[domain.FieldDate].OK)
	assert.True(t, report.FieldResults[domain.FieldAmount].OK)

	// Currency is optional and absent, so validity holds but a suggestion
	// is emitted.
	assert.Contains(t, report.Suggestions, "Optional field not found: currency")

	require.NotNil(t, report.FieldResults[domain.FieldAmount].Confidence)
	assert.InDelta(t, 0.85, *report.FieldResults[domain.FieldAmount].Confidence, 1e-9)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	doc := invoiceResult()
	delete(doc.Fields, domain.FieldAmount)
	delete(doc.Confidence, domain.FieldAmount)

	report := validator.Validate(doc)

	assert.False(t, report.Valid)
	assert.Equal(t, domain.FieldCheck{OK: false, Reason: validator.ReasonMissing}, report.FieldResults[domain.FieldAmount])
	assert.Contains(t, report.Suggestions, "Missing required field: amount")
}

func TestValidate_FormatChecks(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		value  any
		reason string
	}{
		{"non positive amount", domain.FieldAmount, -5.0, validator.ReasonNonPositive},
		{"non numeric amount", domain.FieldAmount, "nine hundred", validator.ReasonNotNumeric},
		{"malformed date", domain.FieldDate, "15/03/2024", validator.ReasonInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := invoiceResult()
			doc.Fields[tt.field] = tt.value

			report := validator.Validate(doc)

			assert.False(t, report.Valid)
			got := report.FieldResults[tt.field]
			assert.False(t, got.OK)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestValidate_OptionalCurrencyFormat(t *testing.T) {
	doc := invoiceResult()
	doc.Fields[domain.FieldCurrency] = "dirhams"

	report := validator.Validate(doc)

	// A malformed optional field is reported but does not fail the document.
	assert.True(t, report.Valid)
	got := report.FieldResults[domain.FieldCurrency]
	assert.False(t, got.OK)
	assert.Equal(t, validator.ReasonInvalidCurrency, got.Reason)
}

func TestValidate_ApprovalStatus(t *testing.T) {
	doc := domain.DocumentResult{
		DocType: domain.DocTypeApproval,
		Fields: domain.FieldSet{
			domain.FieldRequestID: "APV-2024-0012",
			domain.FieldAmount:    1250.00,
			domain.FieldApprover:  "John Smith",
			domain.FieldStatus:    "Approved",
		},
	}
	assert.True(t, validator.Validate(doc).Valid)

	doc.Fields[domain.FieldStatus] = "Maybe"
	report := validator.Validate(doc)
	assert.False(t, report.Valid)
	assert.Equal(t, validator.ReasonInvalidStatus, report.FieldResults[domain.FieldStatus].Reason)
}

func TestValidate_UnknownTypeIsVacuouslyValid(t *testing.T) {
	report := validator.Validate(domain.DocumentResult{DocType: domain.DocTypeUnknown})

	assert.True(t, report.Valid)
	assert.Contains(t, report.Suggestions, "Optional field not found: amount")
}

func TestValidate_IssueTagsBecomeSuggestions(t *testing.T) {
	doc := invoiceResult()
	doc.Issues = domain.IssueList{"missing_total", "vendor_suspect"}

	report := validator.Validate(doc)

	assert.Contains(t, report.Suggestions, "Issue detected: missing_total")
	assert.Contains(t, report.Suggestions, "Issue detected: vendor_suspect")
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	doc := invoiceResult()
	doc.Fields[domain.FieldAmount] = "not a number"

	_ = validator.Validate(doc)

	assert.Equal(t, "not a number", doc.Fields[domain.FieldAmount], "values are preserved even when invalid")
}
