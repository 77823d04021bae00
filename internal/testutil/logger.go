package testutil

import "github.com/customeros/mailpdf/internal/logger"

// NewTestLogger returns an initialised console logger at debug level.
func NewTestLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{LogLevel: "debug", DevMode: true, Encoder: "console"})
	appLogger.InitLogger()
	return appLogger
}
