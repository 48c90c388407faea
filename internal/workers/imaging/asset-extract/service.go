package assetextract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"daily-weather-image/internal/common/errors"
	"daily-weather-image/internal/common/genai"
	httpclient "daily-weather-image/internal/common/http"
	"daily-weather-image/internal/common/logger"
	"daily-weather-image/internal/models"
)

const (
	DefaultOutputDir = "generated_images"
	fileTimeLayout   = "20060102_1504"
)

type Config struct {
	OutputDir string
}

type ServiceDependencies struct {
	HTTPClient *httpclient.Client
	Logger     logger.Logger
	Now        func() time.Time
}

type Service struct {
	config *Config
	http   *httpclient.Client
	logger logger.Logger
	now    func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if config == nil {
		config = &Config{}
	}
	if config.OutputDir == "" {
		config.OutputDir = DefaultOutputDir
	}
	hc := deps.HTTPClient
	if hc == nil {
		hc = httpclient.NewClient(0)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		config: config,
		http:   hc,
		logger: log,
		now:    now,
	}
}

// FileName is the per-city, minute-stamped name an image is saved under.
func FileName(city string, at time.Time) string {
	return fmt.Sprintf("%s_%s.png", city, at.Format(fileTimeLayout))
}

// Extract persists the first image in resp and returns its path. It returns
// (nil, nil) when the reply carries no image. Download and write failures are
// returned as errors and never leave a file at the returned path.
func (s *Service) Extract(ctx context.Context, resp *genai.Response, city string) (*models.GeneratedAsset, error) {
	switch r := Parse(resp).(type) {
	case WithImage:
		s.logger.Info("Image reference found", map[string]interface{}{
			"reference": r.Ref.String(),
		})
		return s.save(ctx, r.Ref, city)
	case TextOnly:
		s.logger.Warn("No image in synthesis reply", map[string]interface{}{
			"content": r.Text,
		})
	}
	return nil, nil
}

func (s *Service) save(ctx context.Context, ref ImageRef, city string) (*models.GeneratedAsset, error) {
	data, err := s.fetch(ctx, ref)
	if err != nil {
		return nil, errors.NewAssetDownloadFailedError(ref.String(), err)
	}

	if err := os.MkdirAll(s.config.OutputDir, 0o755); err != nil {
		return nil, errors.NewAssetDownloadFailedError(ref.String(), fmt.Errorf("create output dir: %w", err))
	}

	path := filepath.Join(s.config.OutputDir, FileName(city, s.now()))
	if err := writeFileAtomic(path, data); err != nil {
		return nil, errors.NewAssetDownloadFailedError(ref.String(), err)
	}

	s.logger.Info("Image saved", map[string]interface{}{
		"path":  path,
		"bytes": len(data),
	})
	return &models.GeneratedAsset{LocalPath: path}, nil
}

func (s *Service) fetch(ctx context.Context, ref ImageRef) ([]byte, error) {
	switch {
	case len(ref.Data) > 0:
		return ref.Data, nil
	case isDataURL(ref.URL):
		data, _, err := decodeDataURL(ref.URL)
		return data, err
	case ref.URL != "":
		return s.http.Get(ctx, ref.URL)
	default:
		return nil, fmt.Errorf("empty image reference")
	}
}

// writeFileAtomic writes to a temporary file in the target directory and
// renames it into place, so path either holds the complete data or nothing new.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.part")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
