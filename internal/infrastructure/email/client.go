// Package email provides the email client for outgoing notifications.
package email

import (
	"fmt"

	"github.com/resendlabs/resend-go"

	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/email/templates"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
)

// Service defines the interface for sending notification emails, allowing for
// mock implementations in tests.
type Service interface {
	SendMessageNotification(msg content.ContactMessage) error
}

// ResendClient is the concrete implementation of the email Service using the
// Resend API.
type ResendClient struct {
	client    *resend.Client
	fromEmail string
	fromName  string
	notifyTo  string
	logger    *logging.ChanneledLogger
}

// NewService creates a new email service client. When no API key or notify
// address is configured it returns a disabled client that drops sends, so the
// server runs without email in development.
func NewService(apiKey, fromEmail, fromName, notifyTo string, logger *logging.ChanneledLogger) Service {
	if apiKey == "" || notifyTo == "" {
		logger.Email().Info("Email notifications disabled", "reason", "missing API key or recipient")
		return &disabledService{logger: logger}
	}

	if fromEmail == "" {
		fromEmail = "noreply@localhost"
	}
	if fromName == "" {
		fromName = "Portfolio"
	}

	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		notifyTo:  notifyTo,
		logger:    logger,
	}
}

// SendMessageNotification emails the operator about a newly received contact
// message.
func (c *ResendClient) SendMessageNotification(msg content.ContactMessage) error {
	subject := fmt.Sprintf("New portfolio message: %s", msg.Subject)
	if msg.Subject == "" {
		subject = fmt.Sprintf("New portfolio message from %s", msg.Name)
	}

	htmlContent := templates.GetMessageNotification(templates.MessageNotificationProps{
		SenderName:  msg.Name,
		SenderEmail: msg.Email,
		Subject:     msg.Subject,
		Message:     msg.Message,
		ReceivedAt:  msg.CreatedAt.Format("Jan 2, 2006 15:04 MST"),
	})

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{c.notifyTo},
		Subject: subject,
		Html:    htmlContent,
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send message notification via Resend: %w", err)
	}

	c.logger.Email().Info("Message notification sent", "to", c.notifyTo)
	return nil
}

// disabledService satisfies Service when email is not configured.
type disabledService struct {
	logger *logging.ChanneledLogger
}

func (s *disabledService) SendMessageNotification(msg content.ContactMessage) error {
	s.logger.Email().Debug("Skipping message notification, email disabled", "from", msg.Email)
	return nil
}
