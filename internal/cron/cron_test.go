package cron

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cron_config "github.com/customeros/mailpdf/internal/cron/config"
	"github.com/customeros/mailpdf/internal/logger"
	"github.com/customeros/mailpdf/services/storage"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func TestNewCronManager(t *testing.T) {
	// Arrange
	cfg := cron_config.Config{CronScheduleSweepOutputs: "0 */10 * * * *"}
	log := getLogger()

	// Act
	cm := NewCronManager(cfg, time.Hour, log, nil)

	// Assert
	assert.NotNil(t, cm)
	assert.Equal(t, cfg, cm.cfg)
	assert.Equal(t, time.Hour, cm.outputTTL)
	assert.Equal(t, log, cm.log)
	assert.NotNil(t, cm.jobIDs)
}

func TestCronManager_StartCron(t *testing.T) {
	cfg := cron_config.Config{
		CronScheduleHeartbeat:    "0 0 * * * *",
		CronScheduleSweepOutputs: "0 */10 * * * *",
	}
	cm := NewCronManager(cfg, time.Hour, getLogger(), nil)

	err := cm.StartCron()
	require.NoError(t, err)
	defer cm.Stop()

	assert.Len(t, cm.cron.Entries(), 2)
	assert.Contains(t, cm.jobIDs, "heartbeat")
	assert.Contains(t, cm.jobIDs, "sweep_outputs")
}

func TestCronManager_StartCron_SweepDisabledWithoutTTL(t *testing.T) {
	cfg := cron_config.Config{CronScheduleSweepOutputs: "0 */10 * * * *"}
	cm := NewCronManager(cfg, 0, getLogger(), nil)

	require.NoError(t, cm.StartCron())
	defer cm.Stop()

	assert.NotContains(t, cm.jobIDs, "sweep_outputs")
	assert.Empty(t, cm.cron.Entries())
}

func TestCronManager_StartCron_InvalidSchedule(t *testing.T) {
	cfg := cron_config.Config{CronScheduleSweepOutputs: "not a schedule"}
	cm := NewCronManager(cfg, time.Hour, getLogger(), nil)

	err := cm.StartCron()
	assert.Error(t, err)
}

func TestCronManager_Stop(t *testing.T) {
	cm := NewCronManager(cron_config.Config{}, time.Hour, getLogger(), nil)
	require.NoError(t, cm.StartCron())

	cm.Stop()
	// A second stop is a no-op
	cm.Stop()

	select {
	case <-cm.stopCh:
		// Channel is closed, test passes
	default:
		t.Error("stopCh should be closed")
	}
}

func TestCronManager_SweepOutputs(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStorageService(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Upload(ctx, "old.pdf", []byte("%PDF-old"), "application/pdf"))
	require.NoError(t, store.Upload(ctx, "fresh.pdf", []byte("%PDF-fresh"), "application/pdf"))

	now := time.Now()
	stale := now.Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.pdf"), stale, stale))

	cm := NewCronManager(cron_config.Config{}, time.Hour, getLogger(), store)
	deleted := cm.SweepOutputs(ctx, now)

	assert.Equal(t, 1, deleted)
	_, err = store.Download(ctx, "old.pdf")
	assert.Error(t, err)
	data, err := store.Download(ctx, "fresh.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fresh"), data)
}
