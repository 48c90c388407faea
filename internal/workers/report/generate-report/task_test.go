package generatereport

import (
	"context"
	"testing"
	"time"

	"daily-weather-image/internal/common/logger"
	"daily-weather-image/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, city string) models.PipelineOutcome {
	return m.Called(ctx, city).Get(0).(models.PipelineOutcome)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, outcome models.PipelineOutcome, city string) bool {
	return m.Called(ctx, outcome, city).Bool(0)
}

func newTask(t *testing.T, r Runner, n Notifier) *DailyTask {
	t.Helper()
	return NewDailyTask("杭州市", TaskDependencies{
		Runner:   r,
		Notifier: n,
		Logger:   logger.NewTestLogger(t),
		Now:      func() time.Time { return fixedNow },
	})
}

func textOutcome(withAsset bool) models.PipelineOutcome {
	w := models.WeatherReport(sampleWeather)
	l := "西湖断桥"
	o := models.PipelineOutcome{Weather: &w, Landmark: &l}
	if withAsset {
		o.Asset = &models.GeneratedAsset{LocalPath: "generated_images/杭州市_20250131_0800.png"}
	}
	return o
}

func TestDailyTask_NotifiesOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		outcome models.PipelineOutcome
	}{
		{name: "with image", outcome: textOutcome(true)},
		{name: "text only", outcome: textOutcome(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := new(MockRunner)
			notifier := new(MockNotifier)
			runner.On("Run", mock.Anything, "杭州市").Return(tt.outcome).Once()
			notifier.On("Notify", mock.Anything, tt.outcome, "杭州市").Return(true).Once()

			assert.True(t, newTask(t, runner, notifier).Run(context.Background()))
			runner.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestDailyTask_SkipsTotalFailure(t *testing.T) {
	runner := new(MockRunner)
	notifier := new(MockNotifier)
	runner.On("Run", mock.Anything, "杭州市").Return(models.FailedOutcome()).Once()

	assert.False(t, newTask(t, runner, notifier).Run(context.Background()))
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestDailyTask_NotifyFailure(t *testing.T) {
	runner := new(MockRunner)
	notifier := new(MockNotifier)
	runner.On("Run", mock.Anything, "杭州市").Return(textOutcome(true))
	notifier.On("Notify", mock.Anything, mock.Anything, "杭州市").Return(false)

	task := newTask(t, runner, notifier)
	assert.False(t, task.Run(context.Background()))

	task.Job(context.Background())
	runner.AssertNumberOfCalls(t, "Run", 2)
}
