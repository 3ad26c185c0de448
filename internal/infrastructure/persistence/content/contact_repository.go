package content

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/domain/repositories"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/caching"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/persistence/database"
)

// ContactRepository persists the singleton contact record.
type ContactRepository struct {
	db     *database.DB
	cache  *caching.ContentCache
	logger *logging.ChanneledLogger
}

// NewContactRepository creates a contact repository.
func NewContactRepository(db *database.DB, cache *caching.ContentCache, logger *logging.ChanneledLogger) *ContactRepository {
	return &ContactRepository{db: db, cache: cache, logger: logger}
}

var _ repositories.ContactRepository = (*ContactRepository)(nil)

// Get returns the singleton contact record.
func (r *ContactRepository) Get() (content.ContactInfo, error) {
	if cached, ok := r.cache.GetContact(); ok {
		return cached, nil
	}

	row := r.db.QueryRow(`SELECT id, email, location, github, linkedin, instagram,
		twitter, website, updated_at FROM contact_info ORDER BY id LIMIT 1`)

	var info content.ContactInfo
	var id int64
	err := row.Scan(&id, &info.Email, &info.Location, &info.Github, &info.Linkedin,
		&info.Instagram, &info.Twitter, &info.Website, &info.UpdatedAt)
	if err == sql.ErrNoRows {
		return content.ContactInfo{}, repositories.ErrNotFound
	}
	if err != nil {
		return content.ContactInfo{}, fmt.Errorf("failed to query contact info: %w", err)
	}

	info.ID = &id
	r.cache.SetContact(info)
	return info, nil
}

// Update writes the singleton contact record. The row is seeded at schema
// creation, so a zero-row update means the database was tampered with.
func (r *ContactRepository) Update(info content.ContactInfo) (content.ContactInfo, error) {
	now := time.Now().UTC()
	id, hasID := content.IDValue(info.ID)
	if !hasID {
		id = 1
	}

	result, err := r.db.Exec(`UPDATE contact_info SET
		email = ?, location = ?, github = ?, linkedin = ?, instagram = ?,
		twitter = ?, website = ?, updated_at = ?
		WHERE id = ?`,
		info.Email, info.Location, info.Github, info.Linkedin, info.Instagram,
		info.Twitter, info.Website, now, id)
	if err != nil {
		return content.ContactInfo{}, fmt.Errorf("failed to update contact info: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return content.ContactInfo{}, fmt.Errorf("failed to check contact update: %w", err)
	}
	if affected == 0 {
		return content.ContactInfo{}, repositories.ErrNotFound
	}

	saved := info.Clone()
	saved.ID = &id
	saved.UpdatedAt = now
	r.cache.SetContact(saved)

	r.logger.Content().Info("Contact info saved", "id", id)
	return saved, nil
}
