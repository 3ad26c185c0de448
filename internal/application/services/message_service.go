package services

import (
	"fmt"
	"strings"

	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/domain/repositories"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/email"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
)

// MessageService handles visitor-submitted contact messages and the operator
// inbox.
type MessageService struct {
	repo   repositories.MessageRepository
	email  email.Service
	logger *logging.ChanneledLogger
}

// NewMessageService creates a message service.
func NewMessageService(repo repositories.MessageRepository, emailSvc email.Service, logger *logging.ChanneledLogger) *MessageService {
	return &MessageService{repo: repo, email: emailSvc, logger: logger}
}

// Submit validates and stores a visitor message, then notifies the operator
// by email. The notification is best effort; a send failure never fails the
// submission.
func (s *MessageService) Submit(m content.ContactMessage) (content.ContactMessage, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)

	if m.Name == "" || m.Email == "" || m.Message == "" {
		return content.ContactMessage{}, fmt.Errorf("name, email and message are required")
	}
	if !strings.Contains(m.Email, "@") {
		return content.ContactMessage{}, fmt.Errorf("invalid email address")
	}

	stored, err := s.repo.Store(m)
	if err != nil {
		return content.ContactMessage{}, err
	}

	if err := s.email.SendMessageNotification(stored); err != nil {
		s.logger.Email().Warn("Message notification failed", "error", err)
	}
	return stored, nil
}

// Inbox returns every stored message, newest first.
func (s *MessageService) Inbox() ([]content.ContactMessage, error) {
	return s.repo.FindAll()
}

// MarkRead flags a message as read.
func (s *MessageService) MarkRead(id int64) (content.ContactMessage, error) {
	return s.repo.MarkRead(id)
}

// Delete removes a message.
func (s *MessageService) Delete(id int64) error {
	return s.repo.Delete(id)
}
