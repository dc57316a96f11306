package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"docuparse/internal/config"
	"docuparse/internal/domain"
	"docuparse/internal/pipeline"
	"docuparse/internal/port"
	"docuparse/internal/validator"
)

// DocumentService defines the document extraction contract.
type DocumentService interface {
	CreateAndParse(ctx context.Context, fileID uuid.UUID) (*domain.Document, error)
	GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	GetByFileID(ctx context.Context, fileID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, offset, limit int) ([]domain.Document, int, error)
	GetResult(ctx context.Context, docID uuid.UUID) (*domain.DocumentResult, error)
	GetValidation(ctx context.Context, docID uuid.UUID) (*domain.ValidationReport, error)
	Delete(ctx context.Context, docID uuid.UUID) error
}

type documentService struct {
	docRepo      port.DocumentRepository
	fileRepo     port.FileMetaRepository
	storage      port.ObjectStorage
	tokens       port.TokenTextProvider
	ocr          port.OCRProvider
	rasterizer   port.Rasterizer
	orchestrator *pipeline.Orchestrator
	cfg          *config.PipelineConfig
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docRepo port.DocumentRepository,
	fileRepo port.FileMetaRepository,
	storage port.ObjectStorage,
	tokens port.TokenTextProvider,
	ocrProvider port.OCRProvider,
	rasterizer port.Rasterizer,
	orchestrator *pipeline.Orchestrator,
	cfg *config.PipelineConfig,
) DocumentService {
	return &documentService{
		docRepo:      docRepo,
		fileRepo:     fileRepo,
		storage:      storage,
		tokens:       tokens,
		ocr:          ocrProvider,
		rasterizer:   rasterizer,
		orchestrator: orchestrator,
		cfg:          cfg,
	}
}

// CreateAndParse downloads the uploaded file, runs the extraction pipeline
// over every page, merges, validates, and persists the outcome. Pages run
// concurrently but results are merged in page order, since the merge
// policy is order-sensitive.
func (s *documentService) CreateAndParse(ctx context.Context, fileID uuid.UUID) (*domain.Document, error) {
	meta, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	fileBytes, err := s.storage.Download(ctx, meta.S3Bucket, meta.S3Key)
	if err != nil {
		return nil, fmt.Errorf("downloading file %s: %w", fileID, err)
	}

	pageCount, err := s.rasterizer.PageCount(ctx, fileBytes)
	if err != nil {
		return nil, fmt.Errorf("counting pages for file %s: %w", fileID, err)
	}
	if s.cfg.MaxPages > 0 && pageCount > s.cfg.MaxPages {
		pageCount = s.cfg.MaxPages
	}

	start := time.Now()
	pages := s.extractPages(ctx, fileBytes, pageCount)
	log.Printf("documentService.CreateAndParse: extracted %d pages for file %s in %s",
		pageCount, fileID, time.Since(start))

	doc := &domain.Document{
		ID:        uuid.New(),
		FileID:    fileID,
		PageCount: pageCount,
	}

	merged, err := pipeline.Merge(pages)
	if err != nil {
		doc.DocType = domain.DocTypeUnknown
		doc.ParsingStatus = domain.ParsingStatusFailed
		doc.ParsingError = err.Error()
		doc.Result = json.RawMessage("{}")
		doc.Validation = json.RawMessage("{}")
		if createErr := s.docRepo.Create(ctx, doc); createErr != nil {
			return nil, createErr
		}
		return doc, nil
	}

	report := validator.Validate(merged)

	resultJSON, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("marshaling result for file %s: %w", fileID, err)
	}
	validationJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshaling validation for file %s: %w", fileID, err)
	}

	doc.DocType = merged.DocType
	doc.Result = resultJSON
	doc.Validation = validationJSON
	doc.ParsingStatus = domain.ParsingStatusCompleted

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// extractPages runs the orchestrator over each page with bounded
// concurrency. The result slice is indexed by page so completion order
// never disturbs merge order.
func (s *documentService) extractPages(ctx context.Context, fileBytes []byte, pageCount int) []domain.PageResult {
	concurrency := s.cfg.PageConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]domain.PageResult, pageCount)
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i := 0; i < pageCount; i++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			img, renderErr := s.rasterizer.RenderPage(ctx, fileBytes, page)

			primary := func(ctx context.Context) (string, error) {
				if renderErr != nil {
					return "", renderErr
				}
				tokens, err := s.tokens.PageTokens(ctx, img)
				if err != nil {
					return "", err
				}
				return pipeline.TokensToText(tokens), nil
			}
			fallback := func(ctx context.Context) (string, error) {
				if renderErr != nil {
					return "", renderErr
				}
				return s.ocr.Recognize(ctx, img)
			}

			results[page] = s.orchestrator.ExtractPage(ctx, primary, fallback)
		}(i)
	}
	wg.Wait()

	return results
}

func (s *documentService) GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, docID)
}

func (s *documentService) GetByFileID(ctx context.Context, fileID uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByFileID(ctx, fileID)
}

func (s *documentService) List(ctx context.Context, offset, limit int) ([]domain.Document, int, error) {
	return s.docRepo.List(ctx, offset, limit)
}

func (s *documentService) GetResult(ctx context.Context, docID uuid.UUID) (*domain.DocumentResult, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	var result domain.DocumentResult
	if err := json.Unmarshal(doc.Result, &result); err != nil {
		return nil, fmt.Errorf("unmarshaling result for document %s: %w", docID, err)
	}
	return &result, nil
}

// GetValidation recomputes the report from the stored result rather than
// returning the persisted copy, so schema changes apply retroactively.
func (s *documentService) GetValidation(ctx context.Context, docID uuid.UUID) (*domain.ValidationReport, error) {
	result, err := s.GetResult(ctx, docID)
	if err != nil {
		return nil, err
	}
	report := validator.Validate(*result)
	return &report, nil
}

func (s *documentService) Delete(ctx context.Context, docID uuid.UUID) error {
	return s.docRepo.Delete(ctx, docID)
}
