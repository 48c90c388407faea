package emailsend

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"daily-weather-image/internal/common/errors"
	"daily-weather-image/internal/common/logger"
	"daily-weather-image/internal/common/metrics"
	"daily-weather-image/internal/common/observability"
	"daily-weather-image/internal/models"
)

type Service struct {
	config    *Config
	logger    logger.Logger
	transport Transport
	obs       *observability.Observability
	now       func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		config:    config,
		logger:    log,
		transport: deps.Transport,
		obs:       deps.Observability,
		now:       now,
	}
}

// Notify emails the outcome. It never returns an error: incomplete settings,
// message build failures and transport failures are logged and reported as
// false. Each call is an independent send.
func (s *Service) Notify(ctx context.Context, outcome models.PipelineOutcome, city string) bool {
	ctx, span := s.obs.StartSpan(ctx, "notify")

	n, err := s.notify(ctx, outcome, city)
	observability.EndSpan(span, err)
	metrics.Notifications.WithLabelValues(n.Status).Inc()

	fields := map[string]interface{}{
		"channel":    n.Channel,
		"status":     n.Status,
		"recipients": n.Recipients,
		"subject":    n.Subject,
		"hasImage":   n.HasImage,
	}
	if err != nil {
		stdErr := errors.Normalize(err)
		fields["errorCode"] = string(stdErr.Code)
		fields["errorCategory"] = errors.GetErrorCategory(stdErr.Code)
		fields["reason"] = n.Reason
		s.logger.Error("Email not sent", fields)
		return false
	}
	s.logger.Info("Email sent successfully", fields)
	return true
}

func (s *Service) notify(ctx context.Context, outcome models.PipelineOutcome, city string) (models.Notification, error) {
	n := models.Notification{
		Channel:    s.config.channel(),
		Status:     models.NotificationFailed,
		From:       s.config.Sender(),
		Recipients: s.config.Recipients(),
	}

	if missing := s.config.Missing(); len(missing) > 0 {
		err := errors.NewNotificationConfigIncompleteError(missing)
		n.Reason = err.Details
		return n, err
	}

	msg, err := s.Compose(outcome, city)
	if err != nil {
		n.Reason = err.Error()
		return n, errors.NewMailTransportFailedError(n.Channel, err)
	}
	n.Subject = msg.Subject
	n.HasImage = msg.HasImage

	transport, err := s.resolveTransport(ctx)
	if err != nil {
		n.Reason = err.Error()
		return n, errors.NewMailTransportFailedError(n.Channel, err)
	}

	s.logger.Info("Sending email", map[string]interface{}{
		"to":       s.config.EmailTo,
		"hasImage": msg.HasImage,
	})
	if err := transport.Send(ctx, msg.From, msg.Recipients, msg.Raw); err != nil {
		n.Reason = err.Error()
		return n, errors.NewMailTransportFailedError(n.Channel, err)
	}

	n.Status = models.NotificationSent
	n.SentAt = s.now()
	return n, nil
}

// Compose renders the subject and HTML body and builds the MIME message. The
// image is embedded only when the asset path is set and the file exists.
func (s *Service) Compose(outcome models.PipelineOutcome, city string) (*Message, error) {
	now := s.now()

	var img *InlineImage
	if path := outcome.AssetPath(); path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read image %s: %w", path, err)
			}
			img = &InlineImage{
				Filename:    filepath.Base(path),
				ContentType: http.DetectContentType(data),
				Data:        data,
			}
		} else {
			s.logger.Warn("Image file missing, sending without image", map[string]interface{}{
				"path": path,
			})
		}
	}

	report := Report{
		City:        city,
		Landmark:    outcome.LandmarkName(),
		Weather:     outcome.WeatherText(),
		HasImage:    img != nil,
		GeneratedAt: now,
	}
	html, err := RenderHTML(report)
	if err != nil {
		return nil, err
	}

	subject := Subject(report)
	from := s.config.Sender()
	to := s.config.Recipients()
	raw, err := BuildMessage(from, to, subject, html, img, now)
	if err != nil {
		return nil, err
	}

	return &Message{
		From:       from,
		Recipients: to,
		Subject:    subject,
		HTML:       html,
		HasImage:   img != nil,
		Raw:        raw,
	}, nil
}

func (s *Service) resolveTransport(ctx context.Context) (Transport, error) {
	if s.transport != nil {
		return s.transport, nil
	}
	if s.config.channel() == TransportSES {
		t, err := NewSESTransport(ctx, s.config.AWSRegion, s.logger)
		if err != nil {
			return nil, err
		}
		s.transport = t
		return t, nil
	}
	s.transport = NewSMTPTransport(s.config, s.logger)
	return s.transport, nil
}
