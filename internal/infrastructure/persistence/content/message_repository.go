package content

import (
	"fmt"
	"time"

	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/domain/repositories"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/persistence/database"
)

// MessageRepository persists visitor-submitted contact messages. Messages are
// admin-only and short-lived, so they skip the content cache.
type MessageRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewMessageRepository creates a message repository.
func NewMessageRepository(db *database.DB, logger *logging.ChanneledLogger) *MessageRepository {
	return &MessageRepository{db: db, logger: logger}
}

var _ repositories.MessageRepository = (*MessageRepository)(nil)

// FindAll returns every message, newest first.
func (r *MessageRepository) FindAll() ([]content.ContactMessage, error) {
	rows, err := r.db.Query(`SELECT id, name, email, subject, message, is_read,
		created_at, updated_at
		FROM contact_messages
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := []content.ContactMessage{}
	for rows.Next() {
		var m content.ContactMessage
		var id int64
		if err := rows.Scan(&id, &m.Name, &m.Email, &m.Subject, &m.Message,
			&m.IsRead, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.ID = &id
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return messages, nil
}

// Store inserts a new unread message and returns it with its assigned id.
func (r *MessageRepository) Store(m content.ContactMessage) (content.ContactMessage, error) {
	now := time.Now().UTC()
	result, err := r.db.Exec(`INSERT INTO contact_messages (name, email, subject, message, is_read, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)`,
		m.Name, m.Email, m.Subject, m.Message, now, now)
	if err != nil {
		return content.ContactMessage{}, fmt.Errorf("failed to insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return content.ContactMessage{}, fmt.Errorf("failed to read message id: %w", err)
	}

	m.ID = &id
	m.IsRead = false
	m.CreatedAt = now
	m.UpdatedAt = now

	r.logger.Content().Info("Contact message stored", "id", id, "from", m.Email)
	return m, nil
}

// MarkRead flags the message and returns the updated record.
func (r *MessageRepository) MarkRead(id int64) (content.ContactMessage, error) {
	now := time.Now().UTC()
	result, err := r.db.Exec(`UPDATE contact_messages SET is_read = 1, updated_at = ? WHERE id = ?`, now, id)
	if err != nil {
		return content.ContactMessage{}, fmt.Errorf("failed to mark message %d read: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return content.ContactMessage{}, fmt.Errorf("failed to check message update: %w", err)
	}
	if affected == 0 {
		return content.ContactMessage{}, repositories.ErrNotFound
	}

	row := r.db.QueryRow(`SELECT id, name, email, subject, message, is_read, created_at, updated_at
		FROM contact_messages WHERE id = ?`, id)

	var m content.ContactMessage
	var readID int64
	if err := row.Scan(&readID, &m.Name, &m.Email, &m.Subject, &m.Message,
		&m.IsRead, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return content.ContactMessage{}, fmt.Errorf("failed to reload message %d: %w", id, err)
	}
	m.ID = &readID
	return m, nil
}

// Delete removes the message with the given id.
func (r *MessageRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check message delete: %w", err)
	}
	if affected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Content().Info("Contact message deleted", "id", id)
	return nil
}
