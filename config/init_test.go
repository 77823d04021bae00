package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppConfig.APIPort)
	assert.Equal(t, "stream", cfg.AppConfig.OutputMode)
	assert.True(t, cfg.AppConfig.MergeAttachments)
	assert.Equal(t, int64(25<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 2*time.Minute, cfg.PdfConfig.RenderTimeout)
	assert.Equal(t, "local", cfg.StorageConfig.Backend)
	assert.Equal(t, time.Hour, cfg.StorageConfig.OutputTTL)
	assert.Equal(t, "0 */10 * * * *", cfg.CronConfig.CronScheduleSweepOutputs)
}

func TestInitConfig_FromEnvironment(t *testing.T) {
	t.Setenv("OUTPUT_MODE", "download")
	t.Setenv("MERGE_ATTACHMENTS", "false")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("RENDER_TIMEOUT", "30s")

	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "download", cfg.AppConfig.OutputMode)
	assert.False(t, cfg.AppConfig.MergeAttachments)
	assert.Equal(t, "redis", cfg.StorageConfig.Backend)
	assert.Equal(t, 30*time.Second, cfg.PdfConfig.RenderTimeout)
}

func TestInitConfig_RejectsInvalidValues(t *testing.T) {
	t.Setenv("OUTPUT_MODE", "email")
	_, err := InitConfig()
	assert.ErrorContains(t, err, "OUTPUT_MODE")

	t.Setenv("OUTPUT_MODE", "stream")
	t.Setenv("STORAGE_BACKEND", "ftp")
	_, err = InitConfig()
	assert.ErrorContains(t, err, "STORAGE_BACKEND")

	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "0")
	_, err = InitConfig()
	assert.ErrorContains(t, err, "MAX_UPLOAD_SIZE_MB")
}
