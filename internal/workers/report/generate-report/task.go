package generatereport

import (
	"context"
	"strings"
	"time"

	"daily-weather-image/internal/common/logger"
	"daily-weather-image/internal/common/metrics"
	"daily-weather-image/internal/models"
)

var banner = strings.Repeat("=", 50)

type TaskDependencies struct {
	Runner   Runner
	Notifier Notifier
	Logger   logger.Logger
	Now      func() time.Time
}

// DailyTask is one pipeline-and-notify cycle, the unit the scheduler fires
// and the `now` command runs.
type DailyTask struct {
	city     string
	runner   Runner
	notifier Notifier
	logger   logger.Logger
	now      func() time.Time
}

func NewDailyTask(city string, deps TaskDependencies) *DailyTask {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &DailyTask{
		city:     city,
		runner:   deps.Runner,
		notifier: deps.Notifier,
		logger:   log,
		now:      now,
	}
}

// Run produces today's outcome and mails it. It reports whether a mail was
// sent. A total failure is not mailed.
func (t *DailyTask) Run(ctx context.Context) bool {
	t.logger.Info(banner, nil)
	t.logger.Info("Daily task started", map[string]interface{}{
		"city": t.city,
		"time": t.now().Format("2006-01-02 15:04:05"),
	})
	t.logger.Info(banner, nil)

	sent := t.deliver(ctx, t.runner.Run(ctx, t.city))

	t.logger.Info(banner, nil)
	t.logger.Info("Daily task finished", map[string]interface{}{
		"city": t.city,
		"sent": sent,
	})
	t.logger.Info(banner, nil)
	return sent
}

// Job adapts Run to the scheduler's job signature.
func (t *DailyTask) Job(ctx context.Context) {
	t.Run(ctx)
}

func (t *DailyTask) deliver(ctx context.Context, outcome models.PipelineOutcome) bool {
	if outcome.IsTotalFailure() {
		metrics.Notifications.WithLabelValues(models.NotificationSkipped).Inc()
		t.logger.Warn("Report generation failed, skipping email", map[string]interface{}{
			"city": t.city,
		})
		return false
	}
	if !outcome.HasAsset() {
		t.logger.Warn("No image generated, sending text-only email", map[string]interface{}{
			"city":     t.city,
			"landmark": outcome.LandmarkName(),
		})
	}
	return t.notifier.Notify(ctx, outcome, t.city)
}
