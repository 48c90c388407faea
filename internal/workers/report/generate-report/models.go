package generatereport

import (
	"context"
	"time"

	"daily-weather-image/internal/common/genai"
	"daily-weather-image/internal/common/logger"
	"daily-weather-image/internal/common/observability"
	"daily-weather-image/internal/models"
	imagesynthesis "daily-weather-image/internal/workers/imaging/image-synthesis"
)

const (
	StageWeather   = "weather"
	StageSynthesis = "synthesis"
	StageAsset     = "asset"
)

type LandmarkSelector interface {
	Select() string
}

type WeatherFetcher interface {
	Fetch(ctx context.Context, city string, asOf time.Time) (models.WeatherReport, error)
}

type ImageSynthesizer interface {
	Synthesize(ctx context.Context, in imagesynthesis.Input) (*genai.Response, error)
}

// AssetExtractor returns a nil asset and nil error when the reply holds no image.
type AssetExtractor interface {
	Extract(ctx context.Context, resp *genai.Response, city string) (*models.GeneratedAsset, error)
}

type Notifier interface {
	Notify(ctx context.Context, outcome models.PipelineOutcome, city string) bool
}

// Runner produces one outcome per call. *Orchestrator implements it.
type Runner interface {
	Run(ctx context.Context, city string) models.PipelineOutcome
}

type ServiceDependencies struct {
	Selector      LandmarkSelector
	Weather       WeatherFetcher
	Synthesizer   ImageSynthesizer
	Extractor     AssetExtractor
	Logger        logger.Logger
	Observability *observability.Observability
	Now           func() time.Time
}
