package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"docuparse/internal/config"
	"docuparse/internal/port"
)

// TokenProvider implements port.TokenTextProvider with per-word Tesseract
// bounding boxes. It stands in for a layout-aware token model when none is
// deployed; every token carries label 0 since plain OCR assigns no labels.
type TokenProvider struct {
	language      string
	clientFactory func() *gosseract.Client
}

// NewTokenProvider constructs a Tesseract-backed token provider.
func NewTokenProvider(cfg *config.OCRConfig) *TokenProvider {
	lang := cfg.Language
	if lang == "" {
		lang = "eng"
	}
	return &TokenProvider{language: lang, clientFactory: gosseract.NewClient}
}

func (p *TokenProvider) PageTokens(ctx context.Context, imageBytes []byte) ([]port.Token, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c := p.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(imageBytes); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if err := c.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("word boxes: %w", err)
	}

	tokens := make([]port.Token, 0, len(boxes))
	for _, b := range boxes {
		if b.Word == "" {
			continue
		}
		tokens = append(tokens, port.Token{Text: b.Word})
	}
	return tokens, nil
}

var _ port.TokenTextProvider = (*TokenProvider)(nil)
