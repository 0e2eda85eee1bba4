package services

import (
	"context"
	"fmt"

	"eventcompanion/internal/domain"
)

type emailService struct {
	mailer domain.Mailer
}

// NewEmailService returns an EmailService that uses the given Mailer.
func NewEmailService(mailer domain.Mailer) domain.EmailService {
	return &emailService{mailer: mailer}
}

// SendApprovalDecision notifies an account or company owner of the
// administrator's review decision.
func (s *emailService) SendApprovalDecision(ctx context.Context, data *domain.ApprovalEmailData) error {
	if data == nil {
		return fmt.Errorf("approval email data is nil")
	}
	decision := "approved"
	if !data.Approved {
		decision = "rejected"
	}
	subject := fmt.Sprintf("Your %s has been %s", data.AccountKind, decision)
	text := fmt.Sprintf("Hello %s,\n\nYour %s registration was reviewed and %s.\n", data.Name, data.AccountKind, decision)
	html := fmt.Sprintf("<p>Hello %s,</p><p>Your %s registration was reviewed and <strong>%s</strong>.</p>", data.Name, data.AccountKind, decision)
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("failed to send approval email: %w", err)
	}
	return nil
}
