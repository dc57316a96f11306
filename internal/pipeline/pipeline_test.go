package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuparse/internal/domain"
	"docuparse/internal/pipeline"
	"docuparse/internal/port"
)

func staticSource(text string) pipeline.TextSource {
	return func(ctx context.Context) (string, error) { return text, nil }
}

func failingSource(err error) pipeline.TextSource {
	return func(ctx context.Context) (string, error) { return "", err }
}

func TestTokensToText(t *testing.T) {
	tokens := []port.Token{
		{Text: "ĠInvoice", LabelID: 1},
		{Text: "ĠINV-2024-0031", LabelID: 2},
		{Text: "", LabelID: 0},
		{Text: "<pad>", LabelID: 0},
	}
	assert.Equal(t, "Invoice INV-2024-0031", pipeline.TokensToText(tokens))
	assert.Equal(t, "", pipeline.TokensToText(nil))
}

func TestExtractPage_ApprovalEndToEnd(t *testing.T) {
	o := pipeline.NewOrchestrator(nil, time.Second)
	text := "APPROVAL FORM Request ID: APV-2024-0012 Requested By: Jane Doe " +
		"Department: Finance Amount: 1,250.00 Purpose: Travel " +
		"Approver: John Smith Status: Approved"

	got := o.ExtractPage(context.Background(), staticSource(text), nil)

	assert.Equal(t, domain.DocTypeApproval, got.DocType)
	assert.Equal(t, "APV-2024-0012", got.Fields[domain.FieldRequestID])
	assert.Equal(t, "Jane Doe", got.Fields[domain.FieldRequestedBy])
	assert.Equal(t, "Finance", got.Fields[domain.FieldDepartment])
	assert.Equal(t, 1250.00, got.Fields[domain.FieldAmount])
	assert.Equal(t, "Travel", got.Fields[domain.FieldPurpose])
	assert.Equal(t, "John Smith", got.Fields[domain.FieldApprover])
	assert.Equal(t, "Approved", got.Fields[domain.FieldStatus])
	assert.Equal(t, text, got.RawSources.Primary)

	// Every extracted field carries a confidence entry in (0, 1] and vice versa.
	for name := range got.Fields {
		assert.Contains(t, got.Confidence, name)
	}
	for name, c := range got.Confidence {
		assert.Contains(t, got.Fields, name)
		assert.Greater(t, c, 0.0, name)
		assert.LessOrEqual(t, c, 1.0, name)
	}
}

func TestExtractPage_PrimaryFailure(t *testing.T) {
	o := pipeline.NewOrchestrator(nil, time.Second)

	got := o.ExtractPage(context.Background(), failingSource(errors.New("model crashed")), staticSource("unused"))

	assert.Equal(t, domain.DocTypeUnknown, got.DocType)
	assert.Empty(t, got.Fields)
	assert.Contains(t, []string(got.Issues), pipeline.IssuePrimarySourceFailed)
}

func TestExtractPage_UnknownText(t *testing.T) {
	o := pipeline.NewOrchestrator(nil, time.Second)

	got := o.ExtractPage(context.Background(), staticSource("quarterly newsletter for staff"), nil)

	assert.Equal(t, domain.DocTypeUnknown, got.DocType)
	assert.Contains(t, []string(got.Issues), pipeline.IssueUnknownDocument)
}

func TestExtractPage_FallbackPatchesMissingCriticalFields(t *testing.T) {
	o := pipeline.NewOrchestrator(nil, time.Second)
	primary := "TAX INVOICE Date: 2024-03-15 Grand Total: 945.00 AED"

	got := o.ExtractPage(context.Background(), staticSource(primary), staticSource("INV-2024-0031"))

	require.Contains(t, got.Fields, domain.FieldDocumentID)
	assert.Equal(t, "INV-2024-0031", got.Fields[domain.FieldDocumentID])
	assert.InDelta(t, 0.9*0.8, got.Confidence[domain.FieldDocumentID], 1e-9)
	assert.Contains(t, []string(got.Issues), pipeline.IssueFallbackUsed)
	assert.Equal(t, "INV-2024-0031", got.RawSources.Fallback)

	// Fields the primary pass already filled keep their original scores.
	assert.InDelta(t, 0.85, got.Confidence[domain.FieldAmount], 1e-9)
}

func TestExtractPage_FallbackNotInvokedWithoutGaps(t *testing.T) {
	o := pipeline.NewOrchestrator(nil, time.Second)
	primary := "ACME TRADING LLC TAX INVOICE INV-2024-0031 Date: 2024-03-15 Grand Total: 945.00 AED"

	called := false
	fallback := func(ctx context.Context) (string, error) {
		called = true
		return "", nil
	}

	got := o.ExtractPage(context.Background(), staticSource(primary), fallback)

	assert.False(t, called, "fallback must stay lazy when criticals are filled")
	assert.Empty(t, got.RawSources.Fallback)
}

func TestExtractPage_FallbackFailureIsTagged(t *testing.T) {
	o := pipeline.NewOrchestrator(nil, 10*time.Millisecond)
	primary := "TAX INVOICE Date: 2024-03-15 Grand Total: 945.00 AED"

	got := o.ExtractPage(context.Background(), staticSource(primary), failingSource(errors.New("ocr binary missing")))

	// Partial primary result survives the fallback failure.
	assert.Equal(t, 945.00, got.Fields[domain.FieldAmount])
	assert.Contains(t, []string(got.Issues), pipeline.IssueFallbackUnavailable)
}

func TestExtractPage_AmountSanityCheck(t *testing.T) {
	o := pipeline.NewOrchestrator(nil, time.Second)

	got := o.ExtractPage(context.Background(), staticSource("TAX INVOICE INV-2024-0001 Grand Total: 9,999,999,999.00 AED"), nil)

	assert.NotContains(t, got.Fields, domain.FieldAmount)
	assert.NotContains(t, got.Confidence, domain.FieldAmount)
	assert.Contains(t, []string(got.Issues), pipeline.IssueAmountOutOfRange)
}

func TestExtractPage_SuspectVendorIsCappedNotDropped(t *testing.T) {
	o := pipeline.NewOrchestrator(nil, time.Second)

	got := o.ExtractPage(context.Background(), staticSource("TAX INVOICE Vendor: X1 Grand Total: 100.00"), nil)

	assert.Equal(t, "X1", got.Fields[domain.FieldVendor])
	assert.LessOrEqual(t, got.Confidence[domain.FieldVendor], 0.3)
	assert.Contains(t, []string(got.Issues), pipeline.IssueVendorSuspect)
}

func TestMerge_EmptySequence(t *testing.T) {
	_, err := pipeline.Merge(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyPageSequence)
}

func TestMerge_FirstPageWins(t *testing.T) {
	pages := []domain.PageResult{
		{
			DocType:    domain.DocTypeInvoice,
			Fields:     domain.FieldSet{domain.FieldDate: "2024-03-15"},
			Confidence: domain.ConfidenceSet{domain.FieldDate: 0.85},
			Issues:     domain.IssueList{"missing_total"},
		},
		{
			DocType: domain.DocTypeInvoice,
			Fields: domain.FieldSet{
				domain.FieldDate:   "2024-04-01",
				domain.FieldAmount: 945.00,
			},
			Confidence: domain.ConfidenceSet{
				domain.FieldDate:   0.7,
				domain.FieldAmount: 0.85,
			},
			Issues: domain.IssueList{"missing_total"},
		},
	}

	got, err := pipeline.Merge(pages)
	require.NoError(t, err)

	assert.Equal(t, domain.DocTypeInvoice, got.DocType)
	assert.Equal(t, "2024-03-15", got.Fields[domain.FieldDate], "first page keeps the field")
	assert.InDelta(t, 0.85, got.Confidence[domain.FieldDate], 1e-9)
	assert.Equal(t, 945.00, got.Fields[domain.FieldAmount], "later pages fill gaps")
	assert.Equal(t, domain.IssueList{"missing_total", "missing_total"}, got.Issues, "issues concatenate, duplicates kept")
}

func TestMerge_IsOrderSensitive(t *testing.T) {
	a := domain.PageResult{
		DocType:    domain.DocTypeInvoice,
		Fields:     domain.FieldSet{domain.FieldDate: "2024-03-15"},
		Confidence: domain.ConfidenceSet{domain.FieldDate: 0.85},
	}
	b := domain.PageResult{
		DocType:    domain.DocTypeInvoice,
		Fields:     domain.FieldSet{domain.FieldDate: "2024-04-01"},
		Confidence: domain.ConfidenceSet{domain.FieldDate: 0.7},
	}

	ab, err := pipeline.Merge([]domain.PageResult{a, b})
	require.NoError(t, err)
	ba, err := pipeline.Merge([]domain.PageResult{b, a})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15", ab.Fields[domain.FieldDate])
	assert.Equal(t, "2024-04-01", ba.Fields[domain.FieldDate])
}

func TestMerge_DocTypeConflictTagged(t *testing.T) {
	pages := []domain.PageResult{
		{DocType: domain.DocTypeInvoice, Fields: domain.FieldSet{}, Confidence: domain.ConfidenceSet{}},
		{DocType: domain.DocTypeApproval, Fields: domain.FieldSet{}, Confidence: domain.ConfidenceSet{}},
	}

	got, err := pipeline.Merge(pages)
	require.NoError(t, err)

	assert.Equal(t, domain.DocTypeInvoice, got.DocType, "first page classification wins")
	assert.Contains(t, []string(got.Issues), pipeline.IssueDocTypeConflict)
}
