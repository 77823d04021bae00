package handlers

import (
	"github.com/customeros/mailpdf/interfaces"
	"github.com/customeros/mailpdf/internal/enum"
	"github.com/customeros/mailpdf/internal/logger"
	"github.com/customeros/mailpdf/services/pipeline"
)

type APIHandlers struct {
	Convert *ConvertHandler
}

func InitHandlers(p *pipeline.Pipeline, storage interfaces.StorageService, outputMode enum.OutputMode, maxUploadSizeMB int64, log logger.Logger) *APIHandlers {
	return &APIHandlers{
		Convert: NewConvertHandler(p, storage, outputMode, maxUploadSizeMB, log),
	}
}
