package cron

import (
	"context"
	"sync"
	"time"

	cronv3 "github.com/robfig/cron/v3"

	"github.com/customeros/mailpdf/interfaces"
	cron_config "github.com/customeros/mailpdf/internal/cron/config"
	"github.com/customeros/mailpdf/internal/logger"
	"github.com/customeros/mailpdf/internal/tracing"
)

// CONSTANTS
const (
	// GroupOutputs is the group for jobs touching stored outputs
	GroupOutputs = "outputs"
)

// LOCK MANAGEMENT
var jobLocks = struct {
	sync.Mutex
	locks map[string]*sync.Mutex
}{
	locks: map[string]*sync.Mutex{
		GroupOutputs: new(sync.Mutex),
	},
}

type CronManager struct {
	cfg       cron_config.Config
	outputTTL time.Duration
	log       logger.Logger
	cron      *cronv3.Cron
	stopCh    chan struct{}
	stopOnce  sync.Once
	jobIDs    map[string]cronv3.EntryID
	storage   interfaces.StorageService
}

func NewCronManager(cfg cron_config.Config, outputTTL time.Duration, log logger.Logger, storage interfaces.StorageService) *CronManager {
	return &CronManager{
		cfg:       cfg,
		outputTTL: outputTTL,
		log:       log,
		stopCh:    make(chan struct{}),
		jobIDs:    make(map[string]cronv3.EntryID),
		storage:   storage,
	}
}

// Stop gracefully stops the cron manager
func (cm *CronManager) Stop() {
	cm.stopOnce.Do(func() {
		if cm.cron != nil {
			cm.log.Info("Stopping cron manager")
			ctx := cm.cron.Stop()
			// Wait for jobs to finish
			<-ctx.Done()
		}
		close(cm.stopCh)
	})
}

// registerJobs adds all cron jobs to the scheduler
func (cm *CronManager) registerJobs(c *cronv3.Cron) error {
	if cm.cfg.CronScheduleHeartbeat != "" {
		id, err := c.AddFunc(cm.cfg.CronScheduleHeartbeat, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			cm.log.Info("Cron heartbeat")
		})
		if err != nil {
			return err
		}
		cm.jobIDs["heartbeat"] = id
		cm.log.Infof("Registered heartbeat job with schedule: %s", cm.cfg.CronScheduleHeartbeat)
	}

	if cm.cfg.CronScheduleSweepOutputs != "" && cm.outputTTL > 0 {
		id, err := c.AddFunc(cm.cfg.CronScheduleSweepOutputs, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			jobLocks.locks[GroupOutputs].Lock()
			defer jobLocks.locks[GroupOutputs].Unlock()
			cm.SweepOutputs(context.Background(), time.Now())
		})
		if err != nil {
			return err
		}
		cm.jobIDs["sweep_outputs"] = id
		cm.log.Infof("Registered output sweep job with schedule: %s", cm.cfg.CronScheduleSweepOutputs)
	}
	return nil
}

// StartCron initializes and starts the cron scheduler
func (cm *CronManager) StartCron() error {
	cm.log.Info("Starting cron manager")
	// Create a new cron with seconds field enabled and panic recovery
	cronOptions := []cronv3.Option{
		cronv3.WithSeconds(),
		cronv3.WithChain(
			cronv3.SkipIfStillRunning(cronv3.DefaultLogger), // Skip if still running
			cronv3.Recover(cronv3.DefaultLogger),            // Default recovery as backup
		),
	}
	c := cronv3.New(cronOptions...)
	if err := cm.registerJobs(c); err != nil {
		return err
	}
	c.Start()
	cm.cron = c
	return nil
}

// SweepOutputs deletes stored outputs older than the output TTL that were
// never downloaded. Objects without a modification time are left alone.
func (cm *CronManager) SweepOutputs(ctx context.Context, now time.Time) int {
	span, ctx := tracing.StartTracerSpan(ctx, "CronManager.SweepOutputs")
	defer span.Finish()
	tracing.TagComponentCronJob(span)

	objects, err := cm.storage.List(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		cm.log.Errorf("Failed to list stored outputs: %v", err)
		return 0
	}

	deleted := 0
	cutoff := now.Add(-cm.outputTTL)
	for _, obj := range objects {
		if obj.ModifiedAt.IsZero() || obj.ModifiedAt.After(cutoff) {
			continue
		}
		if err := cm.storage.Delete(ctx, obj.Key); err != nil {
			tracing.TraceErr(span, err)
			cm.log.Warnf("Failed to delete stale output %s: %v", obj.Key, err)
			continue
		}
		deleted++
	}

	span.LogKV("listed", len(objects), "deleted", deleted)
	if deleted > 0 {
		cm.log.Infof("Swept %d stale outputs", deleted)
	}
	return deleted
}
