package domain

import "context"

// Mailer sends a single email. Implementations may use SES, SMTP, or a no-op.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// ApprovalEmailData carries the fields for an approval-decision notification.
type ApprovalEmailData struct {
	Email       string
	Name        string
	AccountKind string // "account" or "company"
	Approved    bool
}

// EmailService defines the notification emails the application sends.
type EmailService interface {
	SendApprovalDecision(ctx context.Context, data *ApprovalEmailData) error
}
