package generatereport

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"daily-weather-image/internal/common/errors"
	"daily-weather-image/internal/common/genai"
	"daily-weather-image/internal/common/logger"
	"daily-weather-image/internal/common/observability"
	"daily-weather-image/internal/models"
	imagesynthesis "daily-weather-image/internal/workers/imaging/image-synthesis"
	landmarkselect "daily-weather-image/internal/workers/report/landmark-select"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const sampleWeather = "天气：晴\n温度：12℃\n最高/最低：15℃/8℃\n湿度：65%\n风：东北风2级"

var fixedNow = time.Date(2025, 1, 31, 8, 0, 0, 0, time.Local)

// ==========================
// Mocks
// ==========================

type fixedSelector string

func (s fixedSelector) Select() string { return string(s) }

type MockWeather struct {
	mock.Mock
}

func (m *MockWeather) Fetch(ctx context.Context, city string, asOf time.Time) (models.WeatherReport, error) {
	args := m.Called(ctx, city, asOf)
	return args.Get(0).(models.WeatherReport), args.Error(1)
}

type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, in imagesynthesis.Input) (*genai.Response, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.Response), args.Error(1)
}

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, resp *genai.Response, city string) (*models.GeneratedAsset, error) {
	args := m.Called(ctx, resp, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GeneratedAsset), args.Error(1)
}

type fixture struct {
	weather     *MockWeather
	synthesizer *MockSynthesizer
	extractor   *MockExtractor
	orch        *Orchestrator
}

func newFixture(t *testing.T, selector LandmarkSelector) *fixture {
	t.Helper()
	f := &fixture{
		weather:     new(MockWeather),
		synthesizer: new(MockSynthesizer),
		extractor:   new(MockExtractor),
	}
	f.orch = NewOrchestrator(ServiceDependencies{
		Selector:    selector,
		Weather:     f.weather,
		Synthesizer: f.synthesizer,
		Extractor:   f.extractor,
		Logger:      logger.NewTestLogger(t),
		Now:         func() time.Time { return fixedNow },
	})
	return f
}

var imageReply = &genai.Response{
	Parts:      []genai.Part{{Type: genai.PartImageURL, URL: "https://img.example/x.png"}},
	ListShaped: true,
}

// ==========================
// Run
// ==========================

func TestRun_Complete(t *testing.T) {
	f := newFixture(t, fixedSelector("西湖断桥"))
	f.weather.On("Fetch", mock.Anything, "杭州市", fixedNow).Return(models.WeatherReport(sampleWeather), nil).Once()
	f.synthesizer.On("Synthesize", mock.Anything, imagesynthesis.Input{
		City:     "杭州市",
		At:       fixedNow,
		Landmark: "西湖断桥",
		Weather:  sampleWeather,
	}).Return(imageReply, nil).Once()
	f.extractor.On("Extract", mock.Anything, imageReply, "杭州市").
		Return(&models.GeneratedAsset{LocalPath: "generated_images/杭州市_20250131_0800.png"}, nil).Once()

	outcome := f.orch.Run(context.Background(), "杭州市")

	assert.Equal(t, "complete", outcome.Status())
	assert.Equal(t, sampleWeather, outcome.WeatherText())
	assert.Equal(t, "西湖断桥", outcome.LandmarkName())
	assert.Equal(t, "generated_images/杭州市_20250131_0800.png", outcome.AssetPath())
	f.weather.AssertExpectations(t)
	f.synthesizer.AssertExpectations(t)
	f.extractor.AssertExpectations(t)
}

func TestRun_NoImageIsTextOnly(t *testing.T) {
	f := newFixture(t, fixedSelector("雷峰塔"))
	textReply := &genai.Response{Text: "抱歉，无法生成图片"}
	f.weather.On("Fetch", mock.Anything, "杭州市", fixedNow).Return(models.WeatherReport(sampleWeather), nil)
	f.synthesizer.On("Synthesize", mock.Anything, mock.Anything).Return(textReply, nil)
	f.extractor.On("Extract", mock.Anything, textReply, "杭州市").Return(nil, nil)

	outcome := f.orch.Run(context.Background(), "杭州市")

	assert.Equal(t, "text_only", outcome.Status())
	assert.False(t, outcome.HasAsset())
	assert.Nil(t, outcome.Asset)
	assert.Equal(t, sampleWeather, outcome.WeatherText())
	assert.Equal(t, "雷峰塔", outcome.LandmarkName())
}

func TestRun_FatalStagesCollapseToAllAbsent(t *testing.T) {
	boom := stderrors.New("connection reset by peer")

	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{
			name: "weather query fails",
			setup: func(f *fixture) {
				f.weather.On("Fetch", mock.Anything, mock.Anything, mock.Anything).
					Return(models.WeatherReport(""), errors.NewWeatherQueryFailedError("杭州市", boom))
			},
		},
		{
			name: "image synthesis fails",
			setup: func(f *fixture) {
				f.weather.On("Fetch", mock.Anything, mock.Anything, mock.Anything).
					Return(models.WeatherReport(sampleWeather), nil)
				f.synthesizer.On("Synthesize", mock.Anything, mock.Anything).
					Return(nil, errors.NewImageSynthesisFailedError("西湖断桥", boom))
			},
		},
		{
			name: "asset download fails",
			setup: func(f *fixture) {
				f.weather.On("Fetch", mock.Anything, mock.Anything, mock.Anything).
					Return(models.WeatherReport(sampleWeather), nil)
				f.synthesizer.On("Synthesize", mock.Anything, mock.Anything).Return(imageReply, nil)
				f.extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.NewAssetDownloadFailedError("https://img.example/x.png", boom))
			},
		},
		{
			name: "unclassified error",
			setup: func(f *fixture) {
				f.weather.On("Fetch", mock.Anything, mock.Anything, mock.Anything).
					Return(models.WeatherReport(""), boom)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, fixedSelector("西湖断桥"))
			tt.setup(f)

			var outcome models.PipelineOutcome
			require.NotPanics(t, func() {
				outcome = f.orch.Run(context.Background(), "杭州市")
			})
			assert.True(t, outcome.IsTotalFailure())
			assert.Nil(t, outcome.Weather)
			assert.Nil(t, outcome.Landmark)
			assert.Nil(t, outcome.Asset)
		})
	}
}

func TestRun_WeatherFailureSkipsLaterStages(t *testing.T) {
	f := newFixture(t, fixedSelector("西湖断桥"))
	f.weather.On("Fetch", mock.Anything, mock.Anything, mock.Anything).
		Return(models.WeatherReport(""), stderrors.New("dns lookup failed"))

	f.orch.Run(context.Background(), "杭州市")

	f.synthesizer.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything)
	f.extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_PanicIsContained(t *testing.T) {
	f := newFixture(t, fixedSelector("西湖断桥"))
	f.weather.On("Fetch", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { panic("nil map write") }).
		Return(models.WeatherReport(""), nil)

	var outcome models.PipelineOutcome
	require.NotPanics(t, func() {
		outcome = f.orch.Run(context.Background(), "杭州市")
	})
	assert.True(t, outcome.IsTotalFailure())
}

func TestRun_LandmarkAlwaysFromCatalog(t *testing.T) {
	selector := landmarkselect.NewSelector(nil, nil)
	f := newFixture(t, selector)
	f.weather.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(models.WeatherReport(sampleWeather), nil)
	f.synthesizer.On("Synthesize", mock.Anything, mock.Anything).Return(&genai.Response{Text: "ok"}, nil)
	f.extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	for i := 0; i < 50; i++ {
		outcome := f.orch.Run(context.Background(), "杭州市")
		require.NotNil(t, outcome.Landmark)
		assert.True(t, selector.Catalog().Contains(outcome.LandmarkName()))
	}
}

func TestRun_LandmarkMatchesSynthesisInput(t *testing.T) {
	f := newFixture(t, landmarkselect.NewSelector(nil, nil))
	var prompted string
	f.weather.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(models.WeatherReport(sampleWeather), nil)
	f.synthesizer.On("Synthesize", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { prompted = args.Get(1).(imagesynthesis.Input).Landmark }).
		Return(&genai.Response{Text: "ok"}, nil)
	f.extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	outcome := f.orch.Run(context.Background(), "杭州市")
	assert.Equal(t, prompted, outcome.LandmarkName())
}

func TestRun_RecordsStageSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs := observability.New("generate-report-test", observability.Options{
		Registerer:     prometheus.NewRegistry(),
		SpanProcessors: []sdktrace.SpanProcessor{recorder},
	})
	t.Cleanup(obs.Shutdown)

	weather := new(MockWeather)
	weather.On("Fetch", mock.Anything, mock.Anything, mock.Anything).
		Return(models.WeatherReport(""), stderrors.New("timeout"))

	orch := NewOrchestrator(ServiceDependencies{
		Selector:      fixedSelector("西湖断桥"),
		Weather:       weather,
		Logger:        logger.NewTestLogger(t),
		Observability: obs,
	})
	orch.Run(context.Background(), "杭州市")

	var names []string
	for _, s := range recorder.Ended() {
		names = append(names, s.Name())
	}
	assert.ElementsMatch(t, []string{"report.weather", "report.run"}, names)
}
