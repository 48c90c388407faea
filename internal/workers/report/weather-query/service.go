package weatherquery

import (
	"context"
	"strings"
	"time"

	"daily-weather-image/internal/common/errors"
	"daily-weather-image/internal/common/genai"
	"daily-weather-image/internal/common/logger"
	"daily-weather-image/internal/models"
)

type ServiceDependencies struct {
	Client genai.Client
	Logger logger.Logger
}

type Service struct {
	client  genai.Client
	logger  logger.Logger
	sources []Source
}

func NewService(deps ServiceDependencies) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		client:  deps.Client,
		logger:  log,
		sources: DefaultSources,
	}
}

// Fetch sends one weather request for city. The reply is returned verbatim;
// any transport or service error is fatal for the run.
func (s *Service) Fetch(ctx context.Context, city string, asOf time.Time) (models.WeatherReport, error) {
	s.logger.Info("Querying weather", map[string]interface{}{
		"city": city,
		"date": asOf.Format("2006.01.02"),
	})

	resp, err := s.client.Generate(ctx, genai.Request{
		Prompt:         BuildPrompt(city, asOf.Format("2006.01.02"), s.sources),
		RefreshSession: true,
	})
	if err != nil {
		return "", errors.NewWeatherQueryFailedError(city, err)
	}

	report := models.WeatherReport(resp.Text)
	s.logger.Info("Weather query result", map[string]interface{}{
		"city":    city,
		"weather": strings.TrimSpace(string(report)),
	})
	return report, nil
}
