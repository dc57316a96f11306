// Package extract implements the per-document-type field extractors. Each
// extractor owns a fixed field vocabulary and the heuristics that pull
// those fields out of a cleaned text blob. Extractors never fail on
// malformed input; patterns that do not parse are dropped, optionally
// leaving an issue tag.
package extract

import "docuparse/internal/domain"

// Field is one extracted value with its heuristic confidence. Keeping the
// pair together makes "absent" structurally distinct from "low
// confidence".
type Field struct {
	Value      any
	Confidence float64
}

// Result is the outcome of one extraction pass.
type Result struct {
	Fields map[string]Field
	Issues []string
}

// NewResult returns an empty Result.
func NewResult() Result {
	return Result{Fields: make(map[string]Field)}
}

// Set records a field. Empty string values are refused; extractors omit
// absent fields rather than null-filling them.
func (r *Result) Set(name string, value any, confidence float64) {
	if s, ok := value.(string); ok && s == "" {
		return
	}
	r.Fields[name] = Field{Value: value, Confidence: confidence}
}

// Has reports whether a field was extracted.
func (r *Result) Has(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

// AddIssue appends a diagnostic tag.
func (r *Result) AddIssue(tag string) {
	r.Issues = append(r.Issues, tag)
}

// Extractor pulls a fixed field vocabulary out of a text blob.
type Extractor interface {
	DocType() domain.DocType
	Extract(text string) Result
}

// ForType returns the extractor bound to a document type. Unknown types
// get the generic best-effort extractor.
func ForType(dt domain.DocType, p *Patterns) Extractor {
	switch dt {
	case domain.DocTypeInvoice:
		return NewInvoiceExtractor(p)
	case domain.DocTypePurchaseOrder:
		return NewPurchaseOrderExtractor(p)
	case domain.DocTypeApproval:
		return NewApprovalExtractor(p)
	default:
		return NewGenericExtractor(p)
	}
}
