// internal/models/report.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// RunContext is fixed at the start of a pipeline run and never mutated.
type RunContext struct {
	RunID    uuid.UUID `json:"runId"`
	City     string    `json:"city"`
	RunDate  time.Time `json:"runDate"`
	Landmark string    `json:"landmark"`
}

// NewRunContext stamps a run with a fresh ID and the given wall clock.
func NewRunContext(city, landmark string, now time.Time) RunContext {
	return RunContext{
		RunID:    uuid.New(),
		City:     city,
		RunDate:  now,
		Landmark: landmark,
	}
}

// DateLabel is the run date as written into prompts, e.g. 2025.01.31.
func (r RunContext) DateLabel() string {
	return r.RunDate.Format("2006.01.02")
}

// TimeOfDay is the clock time as HH:MM.
func (r RunContext) TimeOfDay() string {
	return r.RunDate.Format("15:04")
}

// WeatherReport is the free-text five-line summary returned by the weather
// query. It is passed along verbatim and never parsed.
type WeatherReport string

// GeneratedAsset is an image fully written to local disk.
type GeneratedAsset struct {
	LocalPath string `json:"localPath"`
}

// PipelineOutcome is what a run hands to the notifier. Nil fields are absent.
type PipelineOutcome struct {
	Asset    *GeneratedAsset `json:"asset,omitempty"`
	Weather  *WeatherReport  `json:"weather,omitempty"`
	Landmark *string         `json:"landmark,omitempty"`
}

// FailedOutcome is the all-absent outcome of a run that hit a fatal stage error.
func FailedOutcome() PipelineOutcome {
	return PipelineOutcome{}
}

// HasWeather reports whether the weather text is present.
func (o PipelineOutcome) HasWeather() bool {
	return o.Weather != nil
}

// HasAsset reports whether an image path is present.
func (o PipelineOutcome) HasAsset() bool {
	return o.Asset != nil && o.Asset.LocalPath != ""
}

// IsTotalFailure is true when every field is absent.
func (o PipelineOutcome) IsTotalFailure() bool {
	return o.Asset == nil && o.Weather == nil && o.Landmark == nil
}

// WeatherText returns the weather text or "" when absent.
func (o PipelineOutcome) WeatherText() string {
	if o.Weather == nil {
		return ""
	}
	return string(*o.Weather)
}

// LandmarkName returns the landmark or "" when absent.
func (o PipelineOutcome) LandmarkName() string {
	if o.Landmark == nil {
		return ""
	}
	return *o.Landmark
}

// AssetPath returns the image path or "" when absent.
func (o PipelineOutcome) AssetPath() string {
	if o.Asset == nil {
		return ""
	}
	return o.Asset.LocalPath
}

// Status classifies the outcome for logging and metrics.
func (o PipelineOutcome) Status() string {
	switch {
	case o.IsTotalFailure():
		return "failed"
	case o.HasAsset():
		return "complete"
	default:
		return "text_only"
	}
}
