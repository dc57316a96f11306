package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FieldSet maps field names to extracted values. Values are strings or
// float64 (amounts). A present key always carries a non-empty value;
// extractors omit fields they could not fill rather than null-filling them.
type FieldSet map[string]any

// ConfidenceSet maps field names to heuristic certainty scores in [0, 1].
// Every key assigned by an extractor has a matching FieldSet entry.
type ConfidenceSet map[string]float64

// IssueList is an append-only diagnostic log of anomaly tags. Duplicates
// are permitted; it is a log, not a set.
type IssueList []string

// RawSources retains the pre-normalization page text for diagnostics.
type RawSources struct {
	Primary  string `json:"primary"`
	Fallback string `json:"fallback"`
}

// PageResult is the extraction outcome for a single page. Immutable once
// emitted by the orchestrator.
type PageResult struct {
	DocType    DocType       `json:"doc_type"`
	Fields     FieldSet      `json:"fields"`
	Confidence ConfidenceSet `json:"confidence"`
	Issues     IssueList     `json:"issues"`
	RawSources RawSources    `json:"raw_sources"`
}

// DocumentResult is the merged outcome for a whole upload. DocType follows
// the first page's classification.
type DocumentResult struct {
	DocType    DocType       `json:"doc_type"`
	Fields     FieldSet      `json:"fields"`
	Confidence ConfidenceSet `json:"confidence"`
	Issues     IssueList     `json:"issues"`
}

// FieldCheck is the per-field verdict inside a ValidationReport.
type FieldCheck struct {
	OK         bool     `json:"ok"`
	Reason     string   `json:"reason"`
	Confidence *float64 `json:"confidence"`
}

// ValidationReport is the schema validator's verdict for a DocumentResult.
// Recomputed on demand, never persisted as source of truth.
type ValidationReport struct {
	Valid        bool                  `json:"valid"`
	FieldResults map[string]FieldCheck `json:"field_results"`
	Suggestions  []string              `json:"suggestions"`
}

// Document is the persisted record of one extraction run.
type Document struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	FileID        uuid.UUID       `db:"file_id" json:"file_id"`
	DocType       DocType         `db:"doc_type" json:"doc_type"`
	PageCount     int             `db:"page_count" json:"page_count"`
	Result        json.RawMessage `db:"result" json:"result"`
	Validation    json.RawMessage `db:"validation" json:"validation"`
	ParsingStatus ParsingStatus   `db:"parsing_status" json:"parsing_status"`
	ParsingError  string          `db:"parsing_error" json:"parsing_error"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// FileMeta stores metadata about an uploaded file.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
