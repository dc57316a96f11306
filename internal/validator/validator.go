// Package validator checks a merged document result against the field
// schema for its document type. It always returns a verdict; malformed
// values produce per-field reasons and suggestions, never errors.
package validator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"docuparse/internal/domain"
	"docuparse/internal/schema"
)

// Reason strings reported in per-field verdicts.
const (
	ReasonMissing         = "missing"
	ReasonNonPositive     = "non_positive"
	ReasonNotNumeric      = "not_numeric"
	ReasonInvalidFormat   = "invalid_format"
	ReasonInvalidCurrency = "invalid_currency"
	ReasonInvalidStatus   = "invalid_status"
)

var (
	isoDatePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	currencyCodeRe  = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Validate produces a ValidationReport for a merged document result.
// Required-field verdicts determine validity; optional fields that are
// present are format-checked too but cannot fail the document. The input
// is never mutated.
func Validate(doc domain.DocumentResult) domain.ValidationReport {
	s := schema.For(doc.DocType)

	report := domain.ValidationReport{
		Valid:        true,
		FieldResults: make(map[string]domain.FieldCheck),
	}

	for _, name := range s.Required {
		check := checkField(doc, name, true)
		report.FieldResults[name] = check
		if !check.OK {
			report.Valid = false
			if check.Reason == ReasonMissing {
				report.Suggestions = append(report.Suggestions, fmt.Sprintf("Missing required field: %s", name))
			} else {
				report.Suggestions = append(report.Suggestions, fmt.Sprintf("Field %s failed validation: %s", name, check.Reason))
			}
		}
	}

	for _, name := range s.Optional {
		if _, present := doc.Fields[name]; !present {
			report.Suggestions = append(report.Suggestions, fmt.Sprintf("Optional field not found: %s", name))
			continue
		}
		report.FieldResults[name] = checkField(doc, name, false)
	}

	for _, tag := range doc.Issues {
		report.Suggestions = append(report.Suggestions, fmt.Sprintf("Issue detected: %s", tag))
	}

	return report
}

func checkField(doc domain.DocumentResult, name string, required bool) domain.FieldCheck {
	value, present := doc.Fields[name]
	if !present || isEmpty(value) {
		return domain.FieldCheck{OK: false, Reason: ReasonMissing}
	}

	check := domain.FieldCheck{OK: true}
	if conf, ok := doc.Confidence[name]; ok {
		c := conf
		check.Confidence = &c
	}

	switch schema.FieldKind(name) {
	case schema.KindAmount:
		v, ok := asNumber(value)
		if !ok {
			check.OK, check.Reason = false, ReasonNotNumeric
		} else if v <= 0 {
			check.OK, check.Reason = false, ReasonNonPositive
		}
	case schema.KindDate:
		s, ok := value.(string)
		if !ok || !isoDatePrefixRe.MatchString(s) {
			check.OK, check.Reason = false, ReasonInvalidFormat
		}
	case schema.KindCurrency:
		s, ok := value.(string)
		if !ok || !currencyCodeRe.MatchString(s) {
			check.OK, check.Reason = false, ReasonInvalidCurrency
		}
	case schema.KindStatus:
		s, ok := value.(string)
		if !ok || !domain.ApprovalStatuses[s] {
			check.OK, check.Reason = false, ReasonInvalidStatus
		}
	}
	return check
}

func isEmpty(value any) bool {
	s, ok := value.(string)
	return ok && s == ""
}

// asNumber accepts the numeric shapes a FieldSet value can take after a
// JSON round trip.
func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	default:
		return 0, false
	}
}

func finite(v float64) (float64, bool) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
