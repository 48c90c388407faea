package emailsend

import (
	"time"

	"daily-weather-image/internal/common/logger"
	"daily-weather-image/internal/common/observability"
)

// ContentID binds the inline image part to its <img> reference.
const ContentID = "weather_image"

// Report is the data rendered into the HTML body.
type Report struct {
	City        string
	Landmark    string
	Weather     string
	HasImage    bool
	GeneratedAt time.Time
}

// InlineImage is an image embedded in the message body.
type InlineImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a fully built MIME message ready for a transport.
type Message struct {
	From       string
	Recipients []string
	Subject    string
	HTML       string
	HasImage   bool
	Raw        []byte
}

type ServiceDependencies struct {
	Logger logger.Logger
	// Transport overrides the one built from Config. Optional.
	Transport     Transport
	Observability *observability.Observability
	Now           func() time.Time
}
