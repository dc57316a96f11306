package port

import "context"

// Token is one labeled token emitted by a layout-aware model pass.
type Token struct {
	Text    string `json:"token"`
	LabelID int    `json:"label_id"`
}

// TokenTextProvider yields the primary token stream for a rendered page
// image. Implementations are layout-model runners or OCR-backed defaults.
type TokenTextProvider interface {
	PageTokens(ctx context.Context, imageBytes []byte) ([]Token, error)
}

// OCRProvider yields plain recognized text for a page image. Used as the
// fallback text source when the primary pass leaves critical gaps.
type OCRProvider interface {
	Recognize(ctx context.Context, imageBytes []byte) (string, error)
}

// Rasterizer renders document pages to images suitable for OCR and owns
// the page count for the raw upload.
type Rasterizer interface {
	PageCount(ctx context.Context, fileBytes []byte) (int, error)
	RenderPage(ctx context.Context, fileBytes []byte, page int) ([]byte, error)
}
