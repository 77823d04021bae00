package services

import (
	"context"

	"github.com/customeros/mailpdf/config"
	"github.com/customeros/mailpdf/interfaces"
	"github.com/customeros/mailpdf/internal/logger"
	"github.com/customeros/mailpdf/services/attachments"
	"github.com/customeros/mailpdf/services/parser"
	"github.com/customeros/mailpdf/services/pdf"
	"github.com/customeros/mailpdf/services/pipeline"
	"github.com/customeros/mailpdf/services/storage"
)

type Services struct {
	Parser    interfaces.EmailParser
	Renderer  *pdf.ChromeRenderer
	Converter interfaces.AttachmentConverter
	Merger    interfaces.Merger
	Pipeline  *pipeline.Pipeline
	Storage   interfaces.StorageService
}

// InitServices builds the conversion pipeline. Storage is only created
// when withStorage is set, the CLI convert command runs without it.
func InitServices(ctx context.Context, cfg *config.Config, log logger.Logger, withStorage bool) (*Services, error) {
	renderer := pdf.NewChromeRenderer(pdf.RendererConfig{
		ChromePath: cfg.PdfConfig.ChromePath,
		Timeout:    cfg.PdfConfig.RenderTimeout,
	}, log)

	converter := attachments.NewConverter(attachments.ConverterConfig{
		SofficePath: cfg.PdfConfig.SofficePath,
		Timeout:     cfg.PdfConfig.ConvertTimeout,
		TempDir:     cfg.PdfConfig.TempDir,
	}, renderer, log)

	emailParser := parser.NewEmailParser()
	merger := pdf.NewPdfcpuMerger(log)

	services := Services{
		Parser:    emailParser,
		Renderer:  renderer,
		Converter: converter,
		Merger:    merger,
		Pipeline: pipeline.New(pipeline.Config{
			MergeAttachments: cfg.AppConfig.MergeAttachments,
		}, emailParser, renderer, converter, merger, log),
	}

	if withStorage {
		store, err := storage.NewStorageServiceFromConfig(ctx, cfg)
		if err != nil {
			renderer.Close()
			return nil, err
		}
		services.Storage = store
	}

	return &services, nil
}

// Close releases the headless browser.
func (s *Services) Close() {
	if s.Renderer != nil {
		s.Renderer.Close()
	}
}
