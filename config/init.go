package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	cron_config "github.com/customeros/mailpdf/internal/cron/config"
	"github.com/customeros/mailpdf/internal/enum"
	"github.com/customeros/mailpdf/internal/logger"
	"github.com/customeros/mailpdf/internal/tracing"
)

type Config struct {
	AppConfig       *AppConfig
	Logger          *logger.Config
	Tracing         *tracing.JaegerConfig
	PdfConfig       *PdfConfig
	StorageConfig   *StorageConfig
	S3StorageConfig *S3StorageConfig
	R2StorageConfig *R2StorageConfig
	CronConfig      *cron_config.Config
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:       &AppConfig{},
		Logger:          &logger.Config{},
		Tracing:         &tracing.JaegerConfig{},
		PdfConfig:       &PdfConfig{},
		StorageConfig:   &StorageConfig{},
		S3StorageConfig: &S3StorageConfig{},
		R2StorageConfig: &R2StorageConfig{},
		CronConfig:      &cron_config.Config{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		return nil, errors.Wrap(err, "error loading mailpdf config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the enumerated settings env parsing cannot verify.
func (c *Config) Validate() error {
	switch enum.OutputMode(c.AppConfig.OutputMode) {
	case enum.OutputModeStream, enum.OutputModeDownload:
	default:
		return errors.Errorf("invalid OUTPUT_MODE %q", c.AppConfig.OutputMode)
	}

	switch enum.StorageBackend(c.StorageConfig.Backend) {
	case enum.StorageLocal, enum.StorageS3, enum.StorageR2, enum.StorageRedis:
	default:
		return errors.Errorf("invalid STORAGE_BACKEND %q", c.StorageConfig.Backend)
	}

	if c.AppConfig.MaxUploadSizeMB <= 0 {
		return errors.New("MAX_UPLOAD_SIZE_MB must be positive")
	}
	return nil
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.AppConfig.MaxUploadSizeMB << 20
}
