// Package pipeline runs the page extraction flow: normalize, classify,
// extract, patch critical gaps from a fallback text source, and merge the
// per-page results into one document outcome.
package pipeline

import (
	"context"
	"log"
	"time"

	"docuparse/internal/classify"
	"docuparse/internal/domain"
	"docuparse/internal/extract"
	"docuparse/internal/normalize"
	"docuparse/internal/schema"
)

// Diagnostic tags emitted by the orchestrator.
const (
	IssuePrimarySourceFailed = "primary_source_failed"
	IssueFallbackUnavailable = "fallback_unavailable"
	IssueFallbackUsed        = "fallback_used"
	IssueUnknownDocument     = "unknown_document"
	IssueAmountOutOfRange    = "amount_out_of_range"
	IssueDateInvalid         = "date_invalid"
	IssueVendorSuspect       = "vendor_suspect"
	IssueDocTypeConflict     = "doc_type_conflict"
)

// Fallback-sourced fields inherit the extractor's confidence scaled down,
// and a suspect vendor is kept but capped rather than dropped.
const (
	fallbackConfidenceScale = 0.8
	vendorSuspectCap        = 0.3
	maxAmount               = 1e9
)

// TextSource lazily produces raw page text. The fallback source is only
// invoked when the primary pass leaves critical fields unfilled, so
// expensive OCR work is deferred behind this closure.
type TextSource func(ctx context.Context) (string, error)

// Orchestrator drives single-page extraction.
type Orchestrator struct {
	patterns        *extract.Patterns
	fallbackTimeout time.Duration
}

// NewOrchestrator builds an Orchestrator. A non-positive fallbackTimeout
// disables the per-page deadline on the fallback source.
func NewOrchestrator(patterns *extract.Patterns, fallbackTimeout time.Duration) *Orchestrator {
	if patterns == nil {
		patterns = extract.DefaultPatterns()
	}
	return &Orchestrator{patterns: patterns, fallbackTimeout: fallbackTimeout}
}

// ExtractPage runs the full flow for one page. It never returns an error:
// source failures degrade to an empty or partial result with diagnostic
// tags, so one bad page cannot abort a multi-page document.
func (o *Orchestrator) ExtractPage(ctx context.Context, primary, fallback TextSource) domain.PageResult {
	result := domain.PageResult{
		DocType:    domain.DocTypeUnknown,
		Fields:     domain.FieldSet{},
		Confidence: domain.ConfidenceSet{},
	}

	raw, err := primary(ctx)
	if err != nil {
		log.Printf("pipeline.Orchestrator: primary text source failed: %v", err)
		result.Issues = append(result.Issues, IssuePrimarySourceFailed)
		return result
	}
	result.RawSources.Primary = raw

	text := normalize.Text(raw)
	docType := classify.DocType(text)
	result.DocType = docType
	if docType == domain.DocTypeUnknown {
		result.Issues = append(result.Issues, IssueUnknownDocument)
	}

	extractor := extract.ForType(docType, o.patterns)
	extracted := extractor.Extract(text)
	result.Issues = append(result.Issues, extracted.Issues...)

	missing := missingCritical(schema.For(docType), extracted)
	if len(missing) > 0 && fallback != nil {
		o.patchFromFallback(ctx, fallback, extractor, missing, &extracted, &result)
	}

	for name, f := range extracted.Fields {
		result.Fields[name] = f.Value
		result.Confidence[name] = f.Confidence
	}

	o.applySanityChecks(&result)
	return result
}

// patchFromFallback re-runs the extractor over the fallback text and copies
// over only the still-missing critical fields, at scaled-down confidence.
func (o *Orchestrator) patchFromFallback(ctx context.Context, fallback TextSource, extractor extract.Extractor, missing []string, extracted *extract.Result, result *domain.PageResult) {
	fctx := ctx
	if o.fallbackTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, o.fallbackTimeout)
		defer cancel()
	}

	raw, err := fallback(fctx)
	if err != nil {
		log.Printf("pipeline.Orchestrator: fallback text source failed: %v", err)
		result.Issues = append(result.Issues, IssueFallbackUnavailable)
		return
	}
	result.RawSources.Fallback = raw

	fallbackResult := extractor.Extract(normalize.Text(raw))
	patched := false
	for _, name := range missing {
		f, ok := fallbackResult.Fields[name]
		if !ok {
			continue
		}
		extracted.Set(name, f.Value, f.Confidence*fallbackConfidenceScale)
		patched = true
	}
	if patched {
		result.Issues = append(result.Issues, IssueFallbackUsed)
	}
}

// applySanityChecks drops or downgrades fields that passed the regexes but
// fail basic plausibility. Confidence entries for dropped fields go too.
func (o *Orchestrator) applySanityChecks(result *domain.PageResult) {
	for _, name := range []string{domain.FieldAmount, domain.FieldTotal} {
		v, ok := result.Fields[name].(float64)
		if !ok {
			continue
		}
		if v <= 0 || v > maxAmount {
			delete(result.Fields, name)
			delete(result.Confidence, name)
			result.Issues = append(result.Issues, IssueAmountOutOfRange)
		}
	}

	for _, name := range []string{domain.FieldDate, domain.FieldDeliveryDate} {
		s, ok := result.Fields[name].(string)
		if !ok {
			continue
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			delete(result.Fields, name)
			delete(result.Confidence, name)
			result.Issues = append(result.Issues, IssueDateInvalid)
		}
	}

	if s, ok := result.Fields[domain.FieldVendor].(string); ok {
		if letterCount(s) < 3 {
			if result.Confidence[domain.FieldVendor] > vendorSuspectCap {
				result.Confidence[domain.FieldVendor] = vendorSuspectCap
			}
			result.Issues = append(result.Issues, IssueVendorSuspect)
		}
	}

	for name := range result.Confidence {
		if _, ok := result.Fields[name]; !ok {
			delete(result.Confidence, name)
		}
	}
}

func missingCritical(s schema.Schema, r extract.Result) []string {
	var missing []string
	for _, name := range s.Critical {
		if !r.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			n++
		}
	}
	return n
}
