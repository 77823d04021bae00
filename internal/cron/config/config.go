package cron_config

type Config struct {
	// Heartbeat log line, every hour. Empty disables it.
	CronScheduleHeartbeat string `env:"CRON_SCHEDULE_HEARTBEAT" envDefault:"0 0 * * * *"`
	// Stale output sweep, every ten minutes
	CronScheduleSweepOutputs string `env:"CRON_SCHEDULE_SWEEP_OUTPUTS" envDefault:"0 */10 * * * *"`
}
