// internal/models/notification.go
package models

import "time"

// Notification records one delivery attempt of a daily report.
type Notification struct {
	Channel    string    `json:"channel"` // "smtp" or "ses"
	Status     string    `json:"status"`  // "sent", "failed", "skipped"
	From       string    `json:"from"`
	Recipients []string  `json:"recipients"`
	Subject    string    `json:"subject"`
	HasImage   bool      `json:"hasImage"`
	Reason     string    `json:"reason,omitempty"`
	SentAt     time.Time `json:"sentAt,omitempty"`
}

const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationSkipped = "skipped"
)
