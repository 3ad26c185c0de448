// Package content implements the content repository interfaces over SQLite
// with a cache-through read path.
package content

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/domain/repositories"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/caching"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/persistence/database"
)

// AboutRepository persists the singleton about/profile record.
type AboutRepository struct {
	db     *database.DB
	cache  *caching.ContentCache
	logger *logging.ChanneledLogger
}

// NewAboutRepository creates an about repository.
func NewAboutRepository(db *database.DB, cache *caching.ContentCache, logger *logging.ChanneledLogger) *AboutRepository {
	return &AboutRepository{db: db, cache: cache, logger: logger}
}

var _ repositories.AboutRepository = (*AboutRepository)(nil)

const aboutColumns = `id, profile_image, name, title, subtitle, location, certification,
	availability, summary1, summary2, summary3, strengths, stats, updated_at`

// Get returns the singleton record. The canonical row has id 1; if that row
// is missing it falls back to whichever row exists, so imported databases
// with a different id keep working.
func (r *AboutRepository) Get() (content.AboutInfo, error) {
	if cached, ok := r.cache.GetAbout(); ok {
		return cached, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM about_info WHERE id = 1`, aboutColumns)
	info, err := r.scanAbout(r.db.QueryRow(query))
	if err == sql.ErrNoRows {
		query = fmt.Sprintf(`SELECT %s FROM about_info ORDER BY id LIMIT 1`, aboutColumns)
		info, err = r.scanAbout(r.db.QueryRow(query))
	}
	if err == sql.ErrNoRows {
		return content.AboutInfo{}, repositories.ErrNotFound
	}
	if err != nil {
		return content.AboutInfo{}, fmt.Errorf("failed to query about info: %w", err)
	}

	r.cache.SetAbout(info)
	return info, nil
}

// Upsert writes the singleton record in place, creating it when the table is
// empty. The returned value carries the persisted id and timestamp.
func (r *AboutRepository) Upsert(info content.AboutInfo) (content.AboutInfo, error) {
	strengths, err := json.Marshal(emptySlice(info.Strengths))
	if err != nil {
		return content.AboutInfo{}, fmt.Errorf("failed to encode strengths: %w", err)
	}
	stats, err := json.Marshal(emptySlice(info.Stats))
	if err != nil {
		return content.AboutInfo{}, fmt.Errorf("failed to encode stats: %w", err)
	}

	now := time.Now().UTC()
	id, hasID := content.IDValue(info.ID)
	if !hasID {
		id = 1
	}

	result, err := r.db.Exec(`UPDATE about_info SET
		profile_image = ?, name = ?, title = ?, subtitle = ?, location = ?,
		certification = ?, availability = ?, summary1 = ?, summary2 = ?, summary3 = ?,
		strengths = ?, stats = ?, updated_at = ?
		WHERE id = ?`,
		info.ProfileImage, info.Name, info.Title, info.Subtitle, info.Location,
		info.Certification, info.Availability, info.Summary1, info.Summary2, info.Summary3,
		string(strengths), string(stats), now, id)
	if err != nil {
		return content.AboutInfo{}, fmt.Errorf("failed to update about info: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return content.AboutInfo{}, fmt.Errorf("failed to check about update: %w", err)
	}
	if affected == 0 {
		if _, err := r.db.Exec(`INSERT INTO about_info (
			id, profile_image, name, title, subtitle, location, certification,
			availability, summary1, summary2, summary3, strengths, stats, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, info.ProfileImage, info.Name, info.Title, info.Subtitle, info.Location,
			info.Certification, info.Availability, info.Summary1, info.Summary2, info.Summary3,
			string(strengths), string(stats), now); err != nil {
			return content.AboutInfo{}, fmt.Errorf("failed to insert about info: %w", err)
		}
	}

	saved := info.Clone()
	saved.ID = &id
	saved.UpdatedAt = now
	r.cache.SetAbout(saved)

	r.logger.Content().Info("About info saved", "id", id)
	return saved, nil
}

func (r *AboutRepository) scanAbout(row *sql.Row) (content.AboutInfo, error) {
	var info content.AboutInfo
	var id int64
	var strengthsJSON, statsJSON string

	err := row.Scan(&id, &info.ProfileImage, &info.Name, &info.Title, &info.Subtitle,
		&info.Location, &info.Certification, &info.Availability,
		&info.Summary1, &info.Summary2, &info.Summary3,
		&strengthsJSON, &statsJSON, &info.UpdatedAt)
	if err != nil {
		return content.AboutInfo{}, err
	}

	info.ID = &id
	if err := json.Unmarshal([]byte(strengthsJSON), &info.Strengths); err != nil {
		r.logger.Content().Warn("Malformed strengths column, resetting", "id", id, "error", err)
		info.Strengths = []content.Strength{}
	}
	if err := json.Unmarshal([]byte(statsJSON), &info.Stats); err != nil {
		r.logger.Content().Warn("Malformed stats column, resetting", "id", id, "error", err)
		info.Stats = []content.Stat{}
	}
	return info, nil
}

// emptySlice keeps JSON columns as "[]" instead of "null" for nil slices.
func emptySlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
