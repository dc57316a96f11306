package domain

// DocType classifies a processed document.
type DocType string

const (
	DocTypeInvoice       DocType = "invoice"
	DocTypePurchaseOrder DocType = "purchase_order"
	DocTypeApproval      DocType = "approval"
	DocTypeUnknown       DocType = "unknown"
)

// Field name vocabulary shared by extractors, schema, and validator.
const (
	FieldDocumentID   = "document_id"
	FieldVendor       = "vendor"
	FieldDate         = "date"
	FieldAmount       = "amount"
	FieldCurrency     = "currency"
	FieldPONumber     = "po_number"
	FieldDeliveryDate = "delivery_date"
	FieldTotal        = "total"
	FieldRequestID    = "request_id"
	FieldRequestedBy  = "requested_by"
	FieldDepartment   = "department"
	FieldPurpose      = "purpose"
	FieldApprover     = "approver"
	FieldStatus       = "status"
)

// ApprovalStatuses is the closed set of recognized approval statuses.
var ApprovalStatuses = map[string]bool{
	"Approved": true,
	"Pending":  true,
	"Rejected": true,
}

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// ParsingStatus represents the lifecycle of a document extraction run.
type ParsingStatus string

const (
	ParsingStatusPending   ParsingStatus = "pending"
	ParsingStatusCompleted ParsingStatus = "completed"
	ParsingStatusFailed    ParsingStatus = "failed"
)
