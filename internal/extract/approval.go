package extract

import (
	"regexp"
	"strings"

	"docuparse/internal/domain"
)

var approvalStops = []string{
	`request\s+id`, `requested\s+by`, `department`, `amount`, `purpose`,
	`approver`, `status`, `date`,
}

// ApprovalExtractor pulls the approval-form vocabulary: request_id,
// requested_by, department, purpose, amount, approver, and status. Status
// values are canonicalized to title case and checked against the closed
// status set; anything else is dropped with an issue tag.
type ApprovalExtractor struct {
	p             *Patterns
	requestedByRe *regexp.Regexp
	purposeRe     *regexp.Regexp
	approverRe    *regexp.Regexp
	statusRe      *regexp.Regexp
	dateRe        *regexp.Regexp
}

func NewApprovalExtractor(p *Patterns) *ApprovalExtractor {
	return &ApprovalExtractor{
		p:             p,
		requestedByRe: labelValue(`requested\s+by`, approvalStops...),
		purposeRe:     labelValue(`purpose`, approvalStops...),
		approverRe:    labelValue(`approver`, approvalStops...),
		statusRe:      labelValue(`status`, approvalStops...),
		dateRe:        labelValue(`date`, approvalStops...),
	}
}

func (e *ApprovalExtractor) DocType() domain.DocType { return domain.DocTypeApproval }

func (e *ApprovalExtractor) Extract(text string) Result {
	r := NewResult()

	if code, ok := e.p.StructuredCode(text, "APV"); ok {
		r.Set(domain.FieldRequestID, code, 0.9)
	} else if id, conf, ok := e.p.DocumentID(text); ok {
		r.Set(domain.FieldRequestID, id, conf)
	}

	if v, ok := capture(e.requestedByRe, text); ok {
		r.Set(domain.FieldRequestedBy, v, 0.8)
	}

	if d, ok := e.p.Department(text); ok {
		r.Set(domain.FieldDepartment, d, 0.75)
	}

	if v, ok := capture(e.purposeRe, text); ok {
		r.Set(domain.FieldPurpose, v, 0.7)
	}

	if v, ok := e.p.LabeledNumber(text, `amount`); ok {
		r.Set(domain.FieldAmount, v, 0.85)
	} else if v, ok := e.p.LargestNumber(text); ok {
		r.Set(domain.FieldAmount, v, 0.6)
	}

	if v, ok := capture(e.approverRe, text); ok {
		r.Set(domain.FieldApprover, v, 0.8)
	}

	if v, ok := capture(e.statusRe, text); ok {
		canonical := canonicalStatus(v)
		if domain.ApprovalStatuses[canonical] {
			r.Set(domain.FieldStatus, canonical, 0.85)
		} else {
			r.AddIssue("unrecognized_status")
		}
	}

	if v, ok := capture(e.dateRe, text); ok {
		if iso, ok := e.p.parseDate(v); ok {
			r.Set(domain.FieldDate, iso, 0.85)
		}
	}

	return r
}

func canonicalStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
