package api

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/mailpdf/api/handlers"
	"github.com/customeros/mailpdf/api/middleware"
	"github.com/customeros/mailpdf/config"
	"github.com/customeros/mailpdf/internal/enum"
	"github.com/customeros/mailpdf/internal/logger"
	"github.com/customeros/mailpdf/internal/tracing"
	"github.com/customeros/mailpdf/services"
)

const appSource = "mailpdf"

//go:embed templates/*.html
var templatesFS embed.FS

// RegisterRoutes sets up all HTTP endpoints
func RegisterRoutes(r *gin.Engine, s *services.Services, cfg *config.Config, log logger.Logger) {
	if s == nil {
		panic("Services cannot be nil")
	}
	outputMode := enum.OutputMode(cfg.AppConfig.OutputMode)
	if outputMode == enum.OutputModeDownload && s.Storage == nil {
		panic("Storage cannot be nil in download mode")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())                                         // Gin's built-in recovery
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer())) // Our custom Jaeger recovery

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))
	r.MaxMultipartMemory = cfg.MaxUploadBytes()

	apiHandlers := handlers.InitHandlers(s.Pipeline, s.Storage, outputMode, cfg.AppConfig.MaxUploadSizeMB, log)

	// Health check (no custom context needed)
	r.GET("/health", handlers.HealthCheck)

	web := r.Group("")
	web.Use(middleware.RequestIDMiddleware())
	web.Use(middleware.CustomContextMiddleware(appSource))
	web.Use(middleware.TracingMiddleware())
	{
		web.GET("/", apiHandlers.Convert.Form())
		web.POST("/", middleware.UploadLimitMiddleware(cfg.MaxUploadBytes()), apiHandlers.Convert.Upload())

		if outputMode == enum.OutputModeDownload {
			web.GET("/download/:id", apiHandlers.Convert.Download())
		}
	}
}
