package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docuparse/internal/domain"
	"docuparse/internal/schema"
)

func TestFor_KnownTypes(t *testing.T) {
	inv := schema.For(domain.DocTypeInvoice)
	assert.Contains(t, inv.Required, domain.FieldAmount)
	assert.Contains(t, inv.Critical, domain.FieldDocumentID)

	apv := schema.For(domain.DocTypeApproval)
	assert.Contains(t, apv.Required, domain.FieldStatus)
	assert.NotContains(t, apv.Required, domain.FieldDate)
}

func TestFor_UnknownRequiresNothing(t *testing.T) {
	s := schema.For(domain.DocTypeUnknown)
	assert.Empty(t, s.Required)
	assert.NotEmpty(t, s.Optional)

	// Unrecognized labels degrade to the unknown schema.
	assert.Equal(t, s, schema.For(domain.DocType("receipt")))
}

func TestFieldKind(t *testing.T) {
	assert.Equal(t, schema.KindAmount, schema.FieldKind(domain.FieldTotal))
	assert.Equal(t, schema.KindDate, schema.FieldKind(domain.FieldDeliveryDate))
	assert.Equal(t, schema.KindCurrency, schema.FieldKind(domain.FieldCurrency))
	assert.Equal(t, schema.KindStatus, schema.FieldKind(domain.FieldStatus))
	assert.Equal(t, schema.KindText, schema.FieldKind(domain.FieldVendor))
}
