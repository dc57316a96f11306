// Package rasterize implements the page rasterizer boundary for image
// uploads. JPEG and PNG uploads are already page-sized raster images, so
// rendering is a passthrough. Multi-page PDF rasterization requires an
// external renderer and is reported as unsupported here.
package rasterize

import (
	"bytes"
	"context"
	"fmt"

	"docuparse/internal/domain"
	"docuparse/internal/port"
)

var pdfMagic = []byte("%PDF-")

// ImageRasterizer implements port.Rasterizer for single-image uploads.
type ImageRasterizer struct{}

// NewImageRasterizer constructs the passthrough rasterizer.
func NewImageRasterizer() *ImageRasterizer {
	return &ImageRasterizer{}
}

func (r *ImageRasterizer) PageCount(ctx context.Context, fileBytes []byte) (int, error) {
	if bytes.HasPrefix(fileBytes, pdfMagic) {
		return 0, fmt.Errorf("pdf rasterization not available: %w", domain.ErrRasterizeFailed)
	}
	return 1, nil
}

func (r *ImageRasterizer) RenderPage(ctx context.Context, fileBytes []byte, page int) ([]byte, error) {
	if page != 0 {
		return nil, fmt.Errorf("page %d out of range: %w", page, domain.ErrRasterizeFailed)
	}
	if bytes.HasPrefix(fileBytes, pdfMagic) {
		return nil, fmt.Errorf("pdf rasterization not available: %w", domain.ErrRasterizeFailed)
	}
	return fileBytes, nil
}

var _ port.Rasterizer = (*ImageRasterizer)(nil)
