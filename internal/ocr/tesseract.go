// Package ocr provides the Tesseract-backed fallback text provider.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"docuparse/internal/config"
	"docuparse/internal/port"
)

// TesseractProvider implements port.OCRProvider with the gosseract client.
// A fresh client is created per call; gosseract clients are not safe for
// concurrent use.
type TesseractProvider struct {
	language      string
	clientFactory func() *gosseract.Client
}

// NewTesseractProvider constructs a Tesseract-backed OCR provider.
func NewTesseractProvider(cfg *config.OCRConfig) *TesseractProvider {
	lang := cfg.Language
	if lang == "" {
		lang = "eng"
	}
	return &TesseractProvider{language: lang, clientFactory: gosseract.NewClient}
}

// Recognize runs OCR over a page image and returns plain text. The context
// is checked before the blocking call; gosseract itself does not support
// mid-recognition cancellation.
func (p *TesseractProvider) Recognize(ctx context.Context, imageBytes []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	c := p.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(imageBytes); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if err := c.SetLanguage(p.language); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

var _ port.OCRProvider = (*TesseractProvider)(nil)
