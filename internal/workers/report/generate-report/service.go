// Package generatereport runs the daily pipeline: landmark, weather, image,
// asset. Every stage failure is absorbed into the returned outcome.
package generatereport

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"daily-weather-image/internal/common/errors"
	"daily-weather-image/internal/common/genai"
	"daily-weather-image/internal/common/logger"
	"daily-weather-image/internal/common/metrics"
	"daily-weather-image/internal/common/observability"
	"daily-weather-image/internal/models"
	imagesynthesis "daily-weather-image/internal/workers/imaging/image-synthesis"
)

const reasonNoImage = "no image produced"

type Orchestrator struct {
	selector    LandmarkSelector
	weather     WeatherFetcher
	synthesizer ImageSynthesizer
	extractor   AssetExtractor
	logger      logger.Logger
	errHandler  *errors.ErrorHandler
	obs         *observability.Observability
	now         func() time.Time
}

func NewOrchestrator(deps ServiceDependencies) *Orchestrator {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		selector:    deps.Selector,
		weather:     deps.Weather,
		synthesizer: deps.Synthesizer,
		extractor:   deps.Extractor,
		logger:      log,
		errHandler:  errors.NewErrorHandler(log),
		obs:         deps.Observability,
		now:         now,
	}
}

// Run executes one pipeline run for city. It never returns an error and never
// panics: a fatal stage collapses the outcome to all-absent, and a reply
// without an image yields weather and landmark only.
func (o *Orchestrator) Run(ctx context.Context, city string) (outcome models.PipelineOutcome) {
	start := o.now()
	metrics.RunsActive.Inc()
	defer metrics.RunsActive.Dec()

	ctx, span := o.obs.StartSpan(ctx, "run", attribute.String("city", city))

	var runErr error
	defer func() {
		if r := recover(); r != nil {
			runErr = fmt.Errorf("pipeline panic: %v", r)
			o.errHandler.HandleStageError("run", runErr)
			metrics.StageFailures.WithLabelValues("run", string(errors.ErrCodeInternal)).Inc()
			outcome = models.FailedOutcome()
		}
		observability.EndSpan(span, runErr)

		status := outcome.Status()
		elapsed := o.now().Sub(start)
		metrics.ReportRuns.WithLabelValues(status).Inc()
		metrics.RunDuration.Observe(elapsed.Seconds())
		o.obs.RecordRun(ctx, status)
		o.obs.RecordRunDuration(ctx, elapsed, status)
	}()

	outcome, runErr = o.run(ctx, city, start)
	return outcome
}

func (o *Orchestrator) run(ctx context.Context, city string, start time.Time) (models.PipelineOutcome, error) {
	rc := models.NewRunContext(city, o.selector.Select(), start)
	log := o.logger.With(map[string]interface{}{
		"runId": rc.RunID.String(),
		"city":  rc.City,
	})
	log.Info("Pipeline run started", map[string]interface{}{
		"landmark": rc.Landmark,
		"date":     rc.DateLabel(),
		"time":     rc.TimeOfDay(),
	})

	weather := runStage(ctx, o, StageWeather, func(ctx context.Context) (models.WeatherReport, error) {
		return o.weather.Fetch(ctx, rc.City, rc.RunDate)
	})
	if weather.IsFatal() {
		return o.fail(StageWeather, weather.Err)
	}

	synthesis := runStage(ctx, o, StageSynthesis, func(ctx context.Context) (*genai.Response, error) {
		return o.synthesizer.Synthesize(ctx, imagesynthesis.Input{
			City:     rc.City,
			At:       rc.RunDate,
			Landmark: rc.Landmark,
			Weather:  string(weather.Value),
		})
	})
	if synthesis.IsFatal() {
		return o.fail(StageSynthesis, synthesis.Err)
	}

	asset := o.extract(ctx, synthesis.Value, rc.City)
	if asset.IsFatal() {
		return o.fail(StageAsset, asset.Err)
	}

	landmark := rc.Landmark
	report := weather.Value
	outcome := models.PipelineOutcome{Weather: &report, Landmark: &landmark}

	switch asset.Status {
	case models.StageSuccess:
		outcome.Asset = asset.Value
		log.Info("Pipeline run complete", map[string]interface{}{
			"image":   asset.Value.LocalPath,
			"elapsed": o.now().Sub(start).String(),
		})
	case models.StageRecoverable:
		log.Info("Pipeline run finished without image", map[string]interface{}{
			"reason":  asset.Reason,
			"elapsed": o.now().Sub(start).String(),
		})
	}
	return outcome, nil
}

// extract maps the extractor's (nil, nil) into a recoverable result.
func (o *Orchestrator) extract(ctx context.Context, resp *genai.Response, city string) models.StageResult[*models.GeneratedAsset] {
	res := runStage(ctx, o, StageAsset, func(ctx context.Context) (*models.GeneratedAsset, error) {
		return o.extractor.Extract(ctx, resp, city)
	})
	if res.IsSuccess() && res.Value == nil {
		return models.Recoverable[*models.GeneratedAsset](reasonNoImage)
	}
	return res
}

func (o *Orchestrator) fail(stage string, err error) (models.PipelineOutcome, error) {
	stdErr := o.errHandler.HandleStageError(stage, err)
	metrics.StageFailures.WithLabelValues(stage, string(stdErr.Code)).Inc()
	return models.FailedOutcome(), stdErr
}

func runStage[T any](ctx context.Context, o *Orchestrator, stage string, fn func(context.Context) (T, error)) models.StageResult[T] {
	ctx, span := o.obs.StartSpan(ctx, stage)
	v, err := fn(ctx)
	observability.EndSpan(span, err)
	return models.FromCall(v, err)
}
