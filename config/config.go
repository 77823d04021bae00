package config

import "time"

type AppConfig struct {
	APIPort          string `env:"PORT" envDefault:"8080"`
	OutputMode       string `env:"OUTPUT_MODE" envDefault:"stream"`
	MergeAttachments bool   `env:"MERGE_ATTACHMENTS" envDefault:"true"`
	MaxUploadSizeMB  int64  `env:"MAX_UPLOAD_SIZE_MB" envDefault:"25"`
}

type PdfConfig struct {
	ChromePath     string        `env:"CHROME_PATH"`
	RenderTimeout  time.Duration `env:"RENDER_TIMEOUT" envDefault:"2m"`
	SofficePath    string        `env:"SOFFICE_PATH"`
	ConvertTimeout time.Duration `env:"CONVERT_TIMEOUT" envDefault:"2m"`
	TempDir        string        `env:"TEMP_DIR"`
}

type StorageConfig struct {
	Backend   string        `env:"STORAGE_BACKEND" envDefault:"local"`
	OutputDir string        `env:"OUTPUT_DIR" envDefault:"outputs"`
	OutputTTL time.Duration `env:"OUTPUT_TTL" envDefault:"1h"`
	RedisURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	KeyPrefix string        `env:"STORAGE_KEY_PREFIX" envDefault:"mailpdf/"`
}

type S3StorageConfig struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"AWS_SECRET_ACCESS_KEY"`
	Bucket          string `env:"BUCKET_NAME_OUTPUT" envDefault:"mailpdf-outputs"`
}

type R2StorageConfig struct {
	AccountID       string `env:"CLOUDFLARE_R2_ACCOUNT_ID"`
	AccessKeyID     string `env:"CLOUDFLARE_R2_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"CLOUDFLARE_R2_ACCESS_KEY_SECRET"`
	Bucket          string `env:"BUCKET_NAME_OUTPUT" envDefault:"mailpdf-outputs"`
}
