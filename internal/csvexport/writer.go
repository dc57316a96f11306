package csvexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"docuparse/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns defines the CSV header row.
var Columns = []string{
	"Document ID",
	"File ID",
	"Doc Type",
	"Parsing Status",
	"Pages",
	"Valid",
	"Document Number",
	"Vendor",
	"Date",
	"Amount",
	"Currency",
	"Approval Status",
	"Approver",
	"Department",
	"Issues",
	"Created At",
}

// Writer wraps csv.Writer for exporting documents as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
func (w *Writer) WriteDocuments(docs []domain.Document) error {
	for i := range docs {
		if err := w.csv.Write(DocumentToRow(&docs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// DocumentToRow converts a single document to a row. If the document did
// not parse successfully or its stored result is invalid JSON, the
// metadata columns are filled and the field columns stay empty.
func DocumentToRow(doc *domain.Document) []string {
	row := make([]string, len(Columns))

	row[0] = doc.ID.String()
	row[1] = doc.FileID.String()
	row[2] = string(doc.DocType)
	row[3] = string(doc.ParsingStatus)
	row[4] = strconv.Itoa(doc.PageCount)
	row[15] = doc.CreatedAt.Format(time.RFC3339)

	if doc.ParsingStatus != domain.ParsingStatusCompleted || len(doc.Result) == 0 {
		return row
	}

	var result domain.DocumentResult
	if err := json.Unmarshal(doc.Result, &result); err != nil {
		return row
	}

	var report domain.ValidationReport
	if err := json.Unmarshal(doc.Validation, &report); err == nil {
		row[5] = formatBool(report.Valid)
	}

	row[6] = firstString(result.Fields,
		domain.FieldDocumentID, domain.FieldPONumber, domain.FieldRequestID)
	row[7] = stringField(result.Fields, domain.FieldVendor)
	row[8] = stringField(result.Fields, domain.FieldDate)
	row[9] = amountField(result.Fields)
	row[10] = stringField(result.Fields, domain.FieldCurrency)
	row[11] = stringField(result.Fields, domain.FieldStatus)
	row[12] = stringField(result.Fields, domain.FieldApprover)
	row[13] = stringField(result.Fields, domain.FieldDepartment)
	row[14] = strings.Join(result.Issues, "; ")

	return row
}

func stringField(fields domain.FieldSet, name string) string {
	s, _ := fields[name].(string)
	return s
}

func firstString(fields domain.FieldSet, names ...string) string {
	for _, name := range names {
		if s := stringField(fields, name); s != "" {
			return s
		}
	}
	return ""
}

// amountField prefers the invoice/approval amount, falling back to the
// purchase order total.
func amountField(fields domain.FieldSet) string {
	for _, name := range []string{domain.FieldAmount, domain.FieldTotal} {
		if v, ok := fields[name].(float64); ok {
			return strconv.FormatFloat(v, 'f', 2, 64)
		}
	}
	return ""
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
