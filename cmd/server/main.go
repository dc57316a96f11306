package main

import (
	"fmt"
	"log"
	"time"

	"docuparse/internal/config"
	"docuparse/internal/handler"
	"docuparse/internal/ocr"
	"docuparse/internal/pipeline"
	"docuparse/internal/rasterize"
	"docuparse/internal/repository/postgres"
	"docuparse/internal/router"
	"docuparse/internal/service"
	s3storage "docuparse/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	fileRepo := postgres.NewFileMetaRepo(db)
	docRepo := postgres.NewDocumentRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize pipeline collaborators
	rasterizer := rasterize.NewImageRasterizer()
	tokenProvider := ocr.NewTokenProvider(&cfg.OCR)
	ocrProvider := ocr.NewTesseractProvider(&cfg.OCR)
	orchestrator := pipeline.NewOrchestrator(nil,
		time.Duration(cfg.OCR.TimeoutSecs)*time.Second)

	// Initialize services
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	docSvc := service.NewDocumentService(docRepo, fileRepo, s3Client,
		tokenProvider, ocrProvider, rasterizer, orchestrator, &cfg.Pipeline)

	// Initialize handlers
	fileH := handler.NewFileHandler(fileSvc)
	docH := handler.NewDocumentHandler(docSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, fileH, docH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
