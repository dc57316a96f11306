package pipeline

import "docuparse/internal/domain"

// Merge folds per-page results into one document outcome. The first page's
// classification wins, the first page to fill a field wins it, and issues
// concatenate in page order. An empty page sequence is a caller bug and is
// rejected rather than silently producing an empty document.
func Merge(pages []domain.PageResult) (domain.DocumentResult, error) {
	if len(pages) == 0 {
		return domain.DocumentResult{}, domain.ErrEmptyPageSequence
	}

	merged := domain.DocumentResult{
		DocType:    pages[0].DocType,
		Fields:     domain.FieldSet{},
		Confidence: domain.ConfidenceSet{},
	}

	conflict := false
	for i, page := range pages {
		if i > 0 && page.DocType != merged.DocType {
			conflict = true
		}
		for name, value := range page.Fields {
			if _, taken := merged.Fields[name]; taken {
				continue
			}
			merged.Fields[name] = value
			merged.Confidence[name] = page.Confidence[name]
		}
		merged.Issues = append(merged.Issues, page.Issues...)
	}
	if conflict {
		merged.Issues = append(merged.Issues, IssueDocTypeConflict)
	}

	return merged, nil
}
