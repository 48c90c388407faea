package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"daily-weather-image/internal/common/database"
	"daily-weather-image/internal/common/logger"
	"daily-weather-image/internal/common/scheduler"
)

func runDaily(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(logger.OutputFile)
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := a.dailyTask(ctx)
	if err != nil {
		return err
	}

	loc, err := a.cfg.Report.Location()
	if err != nil {
		return err
	}

	ledger, closeLedger := a.fireLedger(ctx)
	defer closeLedger()

	srv := startMetricsServer(a.cfg.Metrics.Addr, a.log)
	defer stopMetricsServer(srv, a.log)

	s, err := scheduler.New(scheduler.Config{
		At:         a.cfg.Report.ScheduleTime,
		Location:   loc,
		LedgerName: a.cfg.Report.City,
	}, task.Job, scheduler.Dependencies{
		Ledger: ledger,
		Logger: a.log,
	})
	if err != nil {
		return err
	}

	a.log.Info("Daily report scheduled", map[string]interface{}{
		"city":     a.cfg.Report.City,
		"at":       a.cfg.Report.ScheduleTime,
		"timezone": loc.String(),
	})
	return s.Start(ctx)
}

// fireLedger uses Redis when REDIS_ADDR is set and reachable, otherwise a
// process-local ledger.
func (a *app) fireLedger(ctx context.Context) (scheduler.Ledger, func()) {
	noop := func() {}
	if !a.cfg.Database.Redis.Enabled() {
		return scheduler.NewMemoryLedger(), noop
	}

	rc, err := database.NewRedis(a.cfg.Database.Redis)
	if err == nil {
		err = rc.Ping(ctx)
	}
	if err != nil {
		a.log.Warn("Redis unavailable, using in-process fire ledger", map[string]interface{}{
			"address": a.cfg.Database.Redis.Address,
			"error":   err.Error(),
		})
		if rc != nil {
			_ = rc.Close()
		}
		return scheduler.NewMemoryLedger(), noop
	}

	a.log.Info("Redis fire ledger connected", map[string]interface{}{
		"address": a.cfg.Database.Redis.Address,
	})
	return scheduler.NewRedisLedger(rc, scheduler.DefaultLedgerTTL), func() { _ = rc.Close() }
}
