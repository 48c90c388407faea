package emailsend

import (
	"strings"

	"daily-weather-image/internal/common/config"
)

const (
	TransportSMTP = "smtp"
	TransportSES  = "ses"
)

type Config struct {
	Transport    string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailTo      string // comma-separated
	AWSRegion    string
}

// FromMailConfig copies the loaded mail settings.
func FromMailConfig(m config.MailConfig) *Config {
	return &Config{
		Transport:    m.Transport,
		SMTPHost:     m.Host,
		SMTPPort:     m.Port,
		SMTPUser:     m.User,
		SMTPPassword: m.Password,
		EmailTo:      m.To,
		AWSRegion:    m.AWSRegion,
	}
}

// Sender is the From address. SMTP_USER doubles as the sender for both
// transports.
func (c *Config) Sender() string {
	return strings.TrimSpace(c.SMTPUser)
}

// Recipients splits EmailTo on commas.
func (c *Config) Recipients() []string {
	var out []string
	for _, addr := range strings.Split(c.EmailTo, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Missing lists the settings the selected transport needs but does not have.
func (c *Config) Missing() []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	if c.Transport == TransportSES {
		check("SMTP_USER", c.SMTPUser)
		check("AWS_REGION", c.AWSRegion)
	} else {
		check("SMTP_HOST", c.SMTPHost)
		check("SMTP_USER", c.SMTPUser)
		check("SMTP_PASSWORD", c.SMTPPassword)
	}
	if len(c.Recipients()) == 0 {
		missing = append(missing, "EMAIL_TO")
	}
	return missing
}

func (c *Config) channel() string {
	if c.Transport == TransportSES {
		return TransportSES
	}
	return TransportSMTP
}
