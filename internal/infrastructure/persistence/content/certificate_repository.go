package content

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/domain/repositories"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/caching"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/persistence/database"
)

// CertificateRepository persists certification entries.
type CertificateRepository struct {
	db     *database.DB
	cache  *caching.ContentCache
	logger *logging.ChanneledLogger
}

// NewCertificateRepository creates a certificate repository.
func NewCertificateRepository(db *database.DB, cache *caching.ContentCache, logger *logging.ChanneledLogger) *CertificateRepository {
	return &CertificateRepository{db: db, cache: cache, logger: logger}
}

var _ repositories.CertificateRepository = (*CertificateRepository)(nil)

// FindAll returns every certificate, newest first by its human-entered date
// string. Entries whose date cannot be parsed sort last.
func (r *CertificateRepository) FindAll() ([]content.Certificate, error) {
	if cached, ok := r.cache.GetCertificates(); ok {
		return cached, nil
	}

	rows, err := r.db.Query(`SELECT id, title, issuer, date, description, image,
		verification_url, skills, display_order, created_at
		FROM certificates`)
	if err != nil {
		return nil, fmt.Errorf("failed to query certificates: %w", err)
	}
	defer rows.Close()

	certs := []content.Certificate{}
	for rows.Next() {
		var c content.Certificate
		var id int64
		var skillsJSON string
		if err := rows.Scan(&id, &c.Title, &c.Issuer, &c.Date, &c.Description, &c.Image,
			&c.VerificationURL, &skillsJSON, &c.DisplayOrder, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan certificate: %w", err)
		}
		c.ID = &id
		if err := json.Unmarshal([]byte(skillsJSON), &c.Skills); err != nil {
			r.logger.Content().Warn("Malformed skills column, resetting", "id", id, "error", err)
			c.Skills = []string{}
		}
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate certificates: %w", err)
	}

	sortCertificates(certs)
	r.cache.SetCertificates(certs)
	return certs, nil
}

// Create inserts a new certificate and returns it with its assigned id.
func (r *CertificateRepository) Create(c content.Certificate) (content.Certificate, error) {
	skillsJSON, err := json.Marshal(emptySlice(c.Skills))
	if err != nil {
		return content.Certificate{}, fmt.Errorf("failed to encode skills: %w", err)
	}

	now := time.Now().UTC()
	result, err := r.db.Exec(`INSERT INTO certificates (
		title, issuer, date, description, image, verification_url, skills,
		display_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Title, c.Issuer, c.Date, c.Description, c.Image, c.VerificationURL,
		string(skillsJSON), c.DisplayOrder, now)
	if err != nil {
		return content.Certificate{}, fmt.Errorf("failed to insert certificate: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return content.Certificate{}, fmt.Errorf("failed to read certificate id: %w", err)
	}

	saved := c.Clone()
	saved.ID = &id
	saved.CreatedAt = now
	r.cache.InvalidateCertificates()

	r.logger.Content().Info("Certificate created", "id", id, "title", c.Title)
	return saved, nil
}

// Update overwrites the certificate with the given id.
func (r *CertificateRepository) Update(id int64, c content.Certificate) (content.Certificate, error) {
	skillsJSON, err := json.Marshal(emptySlice(c.Skills))
	if err != nil {
		return content.Certificate{}, fmt.Errorf("failed to encode skills: %w", err)
	}

	result, err := r.db.Exec(`UPDATE certificates SET
		title = ?, issuer = ?, date = ?, description = ?, image = ?,
		verification_url = ?, skills = ?, display_order = ?
		WHERE id = ?`,
		c.Title, c.Issuer, c.Date, c.Description, c.Image, c.VerificationURL,
		string(skillsJSON), c.DisplayOrder, id)
	if err != nil {
		return content.Certificate{}, fmt.Errorf("failed to update certificate %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return content.Certificate{}, fmt.Errorf("failed to check certificate update: %w", err)
	}
	if affected == 0 {
		return content.Certificate{}, repositories.ErrNotFound
	}

	saved := c.Clone()
	saved.ID = &id
	r.cache.InvalidateCertificates()

	r.logger.Content().Info("Certificate updated", "id", id)
	return saved, nil
}

// Delete removes the certificate with the given id.
func (r *CertificateRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM certificates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete certificate %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check certificate delete: %w", err)
	}
	if affected == 0 {
		return repositories.ErrNotFound
	}

	r.cache.InvalidateCertificates()
	r.logger.Content().Info("Certificate deleted", "id", id)
	return nil
}

// sortCertificates orders newest first by parsed date. Ties fall back to
// display order, then id, to keep the order stable.
func sortCertificates(certs []content.Certificate) {
	sort.SliceStable(certs, func(i, j int) bool {
		ti, oki := parseCertDate(certs[i].Date)
		tj, okj := parseCertDate(certs[j].Date)
		if oki != okj {
			return oki
		}
		if oki && !ti.Equal(tj) {
			return ti.After(tj)
		}
		if certs[i].DisplayOrder != certs[j].DisplayOrder {
			return certs[i].DisplayOrder < certs[j].DisplayOrder
		}
		return false
	})
}

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// parseCertDate accepts the date formats operators actually type: "Jan 2024",
// "January 2024", "2024-01", "2024-01-15" and a bare "2024". Ranges such as
// "Jan 2023 - Mar 2024" are parsed from their first token pair.
func parseCertDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// Take the start of a range.
	if idx := strings.IndexAny(s, "-–"); idx > 4 {
		s = strings.TrimSpace(s[:idx])
	}

	for _, layout := range []string{"2006-01-02", "2006-01", "01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	fields := strings.Fields(strings.ToLower(strings.ReplaceAll(s, ",", " ")))
	switch len(fields) {
	case 1:
		if year, err := strconv.Atoi(fields[0]); err == nil && year >= 1900 && year <= 2200 {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
		}
	case 2:
		month, ok := monthNames[fields[0]]
		if !ok {
			return time.Time{}, false
		}
		if year, err := strconv.Atoi(fields[1]); err == nil && year >= 1900 && year <= 2200 {
			return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
		}
	case 3:
		// "Jan 15 2024" or "15 Jan 2024".
		month, ok := monthNames[fields[0]]
		dayField, yearField := fields[1], fields[2]
		if !ok {
			month, ok = monthNames[fields[1]]
			dayField = fields[0]
		}
		if !ok {
			return time.Time{}, false
		}
		day, err := strconv.Atoi(dayField)
		if err != nil || day < 1 || day > 31 {
			return time.Time{}, false
		}
		if year, err := strconv.Atoi(yearField); err == nil && year >= 1900 && year <= 2200 {
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
