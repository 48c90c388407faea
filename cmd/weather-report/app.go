package main

import (
	"context"
	"fmt"

	"daily-weather-image/internal/common/config"
	"daily-weather-image/internal/common/genai"
	httpclient "daily-weather-image/internal/common/http"
	"daily-weather-image/internal/common/logger"
	"daily-weather-image/internal/common/observability"
	emailsend "daily-weather-image/internal/workers/communication/email-send"
	assetextract "daily-weather-image/internal/workers/imaging/asset-extract"
	imagesynthesis "daily-weather-image/internal/workers/imaging/image-synthesis"
	generatereport "daily-weather-image/internal/workers/report/generate-report"
	landmarkselect "daily-weather-image/internal/workers/report/landmark-select"
	weatherquery "daily-weather-image/internal/workers/report/weather-query"
)

const serviceName = "weather-report"

// app holds what every command needs: configuration, the reporter and the
// notifier. The generation client is only built by commands that run the
// pipeline.
type app struct {
	cfg      *config.Config
	log      *logger.Reporter
	obs      *observability.Observability
	notifier *emailsend.Service
	client   genai.Client
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// resolveOutput picks the reporting strategy: flag, then LOG_OUTPUT, then the
// command's default.
func resolveOutput(cfg *config.Config, fallback logger.Output) (logger.Output, error) {
	out := cfg.Logging.Output
	if logOutput != "" {
		out = logOutput
	}
	switch logger.Output(out) {
	case "":
		return fallback, nil
	case logger.OutputConsole, logger.OutputFile:
		return logger.Output(out), nil
	}
	return "", fmt.Errorf("--log-output must be console or file, got %q", out)
}

func newApp(defaultOutput logger.Output) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	output, err := resolveOutput(cfg, defaultOutput)
	if err != nil {
		return nil, err
	}
	log, err := logger.NewReporter(logger.ReporterOptions{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: output,
		Dir:    cfg.Logging.Dir,
	})
	if err != nil {
		return nil, err
	}

	obs := observability.New(serviceName, observability.Options{})
	notifier := emailsend.NewService(emailsend.ServiceDependencies{
		Logger:        log,
		Observability: obs,
	}, emailsend.FromMailConfig(cfg.Mail))

	return &app{cfg: cfg, log: log, obs: obs, notifier: notifier}, nil
}

// dailyTask wires the pipeline stages to the configured generation service.
func (a *app) dailyTask(ctx context.Context) (*generatereport.DailyTask, error) {
	hc := httpclient.NewClient(config.GetDuration(a.cfg.GenAI.Timeout))
	client, err := genai.NewClient(ctx, a.cfg.GenAI, hc)
	if err != nil {
		return nil, fmt.Errorf("generation client: %w", err)
	}
	a.client = client

	a.log.Info("Generation service configured", map[string]interface{}{
		"provider": a.cfg.GenAI.Provider,
		"model":    a.cfg.GenAI.Model,
	})

	orchestrator := generatereport.NewOrchestrator(generatereport.ServiceDependencies{
		Selector: landmarkselect.NewSelector(landmarkselect.DefaultCatalog(), nil),
		Weather: weatherquery.NewService(weatherquery.ServiceDependencies{
			Client: client,
			Logger: a.log,
		}),
		Synthesizer: imagesynthesis.NewService(imagesynthesis.ServiceDependencies{
			Client: client,
			Logger: a.log,
		}),
		Extractor: assetextract.NewService(assetextract.ServiceDependencies{
			HTTPClient: hc,
			Logger:     a.log,
		}, &assetextract.Config{OutputDir: a.cfg.Report.OutputDir}),
		Logger:        a.log,
		Observability: a.obs,
	})

	return generatereport.NewDailyTask(a.cfg.Report.City, generatereport.TaskDependencies{
		Runner:   orchestrator,
		Notifier: a.notifier,
		Logger:   a.log,
	}), nil
}

func (a *app) Close() {
	if a.client != nil {
		_ = a.client.Close()
	}
	a.obs.Shutdown()
	_ = a.log.Close()
}
