package imagesynthesis

import (
	"context"

	"daily-weather-image/internal/common/errors"
	"daily-weather-image/internal/common/genai"
	"daily-weather-image/internal/common/logger"
)

type ServiceDependencies struct {
	Client genai.Client
	Logger logger.Logger
}

type Service struct {
	client genai.Client
	logger logger.Logger
}

func NewService(deps ServiceDependencies) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		client: deps.Client,
		logger: log,
	}
}

// Synthesize sends exactly one image request and returns the raw reply.
func (s *Service) Synthesize(ctx context.Context, in Input) (*genai.Response, error) {
	s.logger.Info("Generating weather image", map[string]interface{}{
		"city":     in.City,
		"landmark": in.Landmark,
		"ambience": BandFor(in.At).Name,
	})

	resp, err := s.client.Generate(ctx, genai.Request{
		Prompt:         BuildPrompt(in),
		RefreshSession: true,
	})
	if err != nil {
		return nil, errors.NewImageSynthesisFailedError(in.Landmark, err)
	}
	return resp, nil
}
