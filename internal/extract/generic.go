package extract

import "docuparse/internal/domain"

// GenericExtractor is the best-effort pass for unclassified text. It only
// attempts the universal trio of amount, date, and vendor, all at low
// confidence; a caller that wants more should classify first.
type GenericExtractor struct {
	p *Patterns
}

func NewGenericExtractor(p *Patterns) *GenericExtractor {
	return &GenericExtractor{p: p}
}

func (e *GenericExtractor) DocType() domain.DocType { return domain.DocTypeUnknown }

func (e *GenericExtractor) Extract(text string) Result {
	r := NewResult()

	if v, ok := e.p.LargestNumber(text); ok {
		r.Set(domain.FieldAmount, v, 0.6)
	}

	if iso, ok := e.p.Date(text); ok {
		r.Set(domain.FieldDate, iso, 0.65)
	}

	if v, conf, ok := e.p.GuessVendor(text); ok {
		if conf > 0.6 {
			conf = 0.6
		}
		r.Set(domain.FieldVendor, v, conf)
	}

	return r
}
