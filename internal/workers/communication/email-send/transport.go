package emailsend

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"daily-weather-image/internal/common/aws"
	"daily-weather-image/internal/common/logger"
)

// Transport delivers a prebuilt MIME message.
type Transport interface {
	Send(ctx context.Context, from string, to []string, msg []byte) error
}

// DialFunc opens the connection to the mail host.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// SMTPTransport sends over implicit TLS (SMTPS) with PLAIN auth.
type SMTPTransport struct {
	Host     string
	Port     int
	Username string
	Password string
	Dial     DialFunc
	Logger   logger.Logger
}

func NewSMTPTransport(cfg *Config, log logger.Logger) *SMTPTransport {
	return &SMTPTransport{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		Logger:   log,
	}
}

func (t *SMTPTransport) dial(ctx context.Context, addr string) (net.Conn, error) {
	if t.Dial != nil {
		return t.Dial(ctx, "tcp", addr)
	}
	d := &tls.Dialer{Config: &tls.Config{ServerName: t.Host}}
	return d.DialContext(ctx, "tcp", addr)
}

func (t *SMTPTransport) Send(ctx context.Context, from string, to []string, msg []byte) error {
	addr := net.JoinHostPort(t.Host, strconv.Itoa(t.Port))

	conn, err := t.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, t.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start SMTP session: %w", err)
	}
	defer client.Close()

	if t.Username != "" {
		if err = client.Auth(smtp.PlainAuth("", t.Username, t.Password, t.Host)); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	// The message is accepted once DATA is closed; a failed QUIT is ignored.
	if err := client.Quit(); err != nil && t.Logger != nil {
		t.Logger.Debug("Ignoring SMTP quit error", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return nil
}

// SESTransport sends the same raw message through Amazon SES.
type SESTransport struct {
	client *aws.SESClient
	logger logger.Logger
}

func NewSESTransport(ctx context.Context, region string, log logger.Logger) (*SESTransport, error) {
	c, err := aws.NewSESClient(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("create SES client: %w", err)
	}
	return &SESTransport{client: c, logger: log}, nil
}

func NewSESTransportWith(c *aws.SESClient, log logger.Logger) *SESTransport {
	return &SESTransport{client: c, logger: log}
}

func (t *SESTransport) Send(ctx context.Context, from string, to []string, msg []byte) error {
	id, err := t.client.SendRaw(ctx, from, to, msg)
	if err != nil {
		return fmt.Errorf("SES SendRawEmail failed: %w", err)
	}
	if t.logger != nil {
		t.logger.Debug("SES accepted message", map[string]interface{}{
			"messageId": id,
		})
	}
	return nil
}
