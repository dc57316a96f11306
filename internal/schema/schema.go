// Package schema is the single source of truth for the per-document-type
// field vocabulary consulted by extractor dispatch and the validator.
package schema

import "docuparse/internal/domain"

// Kind tells the validator which format check applies to a field.
type Kind int

const (
	KindText Kind = iota
	KindAmount
	KindDate
	KindCurrency
	KindStatus
)

// Schema lists the field sets for one document type. Critical fields are
// those whose absence after the primary pass triggers the fallback-text
// re-extraction.
type Schema struct {
	Required []string
	Optional []string
	Critical []string
}

var kinds = map[string]Kind{
	domain.FieldAmount:       KindAmount,
	domain.FieldTotal:        KindAmount,
	domain.FieldDate:         KindDate,
	domain.FieldDeliveryDate: KindDate,
	domain.FieldCurrency:     KindCurrency,
	domain.FieldStatus:       KindStatus,
}

var schemas = map[domain.DocType]Schema{
	domain.DocTypeInvoice: {
		Required: []string{domain.FieldDate, domain.FieldAmount},
		Optional: []string{domain.FieldDocumentID, domain.FieldVendor, domain.FieldCurrency},
		Critical: []string{domain.FieldDocumentID, domain.FieldDate, domain.FieldAmount, domain.FieldCurrency},
	},
	domain.DocTypePurchaseOrder: {
		Required: []string{domain.FieldPONumber, domain.FieldDate, domain.FieldTotal},
		Optional: []string{domain.FieldVendor, domain.FieldDeliveryDate, domain.FieldCurrency},
		Critical: []string{domain.FieldPONumber, domain.FieldDate, domain.FieldTotal},
	},
	domain.DocTypeApproval: {
		Required: []string{domain.FieldRequestID, domain.FieldAmount, domain.FieldApprover, domain.FieldStatus},
		Optional: []string{domain.FieldRequestedBy, domain.FieldDepartment, domain.FieldPurpose, domain.FieldDate},
		Critical: []string{domain.FieldRequestID, domain.FieldDate, domain.FieldAmount},
	},
	domain.DocTypeUnknown: {
		Optional: []string{domain.FieldAmount, domain.FieldDate, domain.FieldVendor},
		Critical: []string{domain.FieldDate, domain.FieldAmount},
	},
}

// For returns the schema for a document type. Unrecognized types degrade
// to the unknown schema, which requires nothing.
func For(dt domain.DocType) Schema {
	if s, ok := schemas[dt]; ok {
		return s
	}
	return schemas[domain.DocTypeUnknown]
}

// FieldKind returns the format-check kind for a field name.
func FieldKind(field string) Kind {
	return kinds[field]
}
