package handlers

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/customeros/mailpdf/interfaces"
	"github.com/customeros/mailpdf/internal/enum"
	mperrors "github.com/customeros/mailpdf/internal/errors"
	"github.com/customeros/mailpdf/internal/logger"
	"github.com/customeros/mailpdf/internal/tracing"
	"github.com/customeros/mailpdf/services/parser"
	"github.com/customeros/mailpdf/services/pipeline"
	"github.com/customeros/mailpdf/services/storage"
)

const (
	UploadTemplate = "upload.html"
	contentTypePdf = "application/pdf"
)

type ConvertHandler struct {
	pipeline        *pipeline.Pipeline
	storage         interfaces.StorageService
	outputMode      enum.OutputMode
	maxUploadSizeMB int64
	log             logger.Logger
}

func NewConvertHandler(p *pipeline.Pipeline, storage interfaces.StorageService, outputMode enum.OutputMode, maxUploadSizeMB int64, log logger.Logger) *ConvertHandler {
	return &ConvertHandler{
		pipeline:        p,
		storage:         storage,
		outputMode:      outputMode,
		maxUploadSizeMB: maxUploadSizeMB,
		log:             log,
	}
}

// Form renders the upload page
func (h *ConvertHandler) Form() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, UploadTemplate, gin.H{
			"MaxUploadSizeMB": h.maxUploadSizeMB,
		})
	}
}

// Upload converts the posted email and either streams the PDF back or
// stores it and redirects to its download URL.
func (h *ConvertHandler) Upload() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := tracing.StartTracerSpan(c.Request.Context(), "ConvertHandler.Upload")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		fileHeader, err := c.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				tracing.TraceErr(span, err)
				c.AbortWithStatus(http.StatusRequestEntityTooLarge)
				return
			}
			c.Redirect(http.StatusFound, "/")
			return
		}
		if fileHeader.Filename == "" {
			c.Redirect(http.StatusFound, "/")
			return
		}
		if _, err := parser.FormatFromFilename(fileHeader.Filename); err != nil {
			h.log.Infof("Rejected upload %s: %v", fileHeader.Filename, err)
			c.Redirect(http.StatusFound, "/")
			return
		}
		span.SetTag(tracing.SpanTagFileName, fileHeader.Filename)

		data, err := readUpload(fileHeader)
		if err != nil {
			tracing.TraceErr(span, err)
			h.log.Errorf("Failed to read upload %s: %v", fileHeader.Filename, err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		result, err := h.pipeline.Convert(ctx, fileHeader.Filename, data)
		if err != nil {
			if errors.Is(err, mperrors.ErrEmptyUpload) {
				c.Redirect(http.StatusFound, "/")
				return
			}
			tracing.TraceErr(span, err)
			h.log.Errorf("Failed to convert %s: %v", fileHeader.Filename, err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		if h.outputMode != enum.OutputModeDownload {
			writeAttachment(c, result.Filename, result.PDF)
			return
		}

		id, key, err := storage.NewOutputKey()
		if err != nil {
			tracing.TraceErr(span, err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if err := h.storage.Upload(ctx, key, result.PDF, contentTypePdf); err != nil {
			tracing.TraceErr(span, err)
			h.log.Errorf("Failed to store output for %s: %v", fileHeader.Filename, err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		tracing.TagEntity(span, id)

		c.Redirect(http.StatusFound, "/download/"+id+"?name="+url.QueryEscape(result.Filename))
	}
}

// Download serves a stored PDF once and deletes it afterwards.
func (h *ConvertHandler) Download() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := tracing.StartTracerSpan(c.Request.Context(), "ConvertHandler.Download")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		id := c.Param("id")
		tracing.TagEntity(span, id)
		key := storage.OutputKey(id)

		data, err := h.storage.Download(ctx, key)
		if err != nil {
			if errors.Is(err, mperrors.ErrOutputNotFound) {
				c.AbortWithStatus(http.StatusNotFound)
				return
			}
			tracing.TraceErr(span, err)
			h.log.Errorf("Failed to load output %s: %v", id, err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		name := key
		if requested := c.Query("name"); requested != "" {
			name = pipeline.OutputFilename(requested)
		}
		writeAttachment(c, name, data)

		if err := h.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
			tracing.TraceErr(span, err)
			h.log.Warnf("Failed to delete served output %s: %v", id, err)
		}
	}
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func writeAttachment(c *gin.Context, filename string, pdf []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, contentTypePdf, pdf)
}
