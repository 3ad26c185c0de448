package content

import (
	"fmt"
	"time"

	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/domain/repositories"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/caching"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/persistence/database"
)

// TechStackRepository persists tech stack entries.
type TechStackRepository struct {
	db     *database.DB
	cache  *caching.ContentCache
	logger *logging.ChanneledLogger
}

// NewTechStackRepository creates a tech stack repository.
func NewTechStackRepository(db *database.DB, cache *caching.ContentCache, logger *logging.ChanneledLogger) *TechStackRepository {
	return &TechStackRepository{db: db, cache: cache, logger: logger}
}

var _ repositories.TechStackRepository = (*TechStackRepository)(nil)

// FindAll returns every tech stack entry grouped by category, then by
// display order.
func (r *TechStackRepository) FindAll() ([]content.TechStackItem, error) {
	if cached, ok := r.cache.GetTechStack(); ok {
		return cached, nil
	}

	rows, err := r.db.Query(`SELECT id, name, category, icon, color, display_order, created_at
		FROM tech_stack
		ORDER BY category ASC, display_order ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tech stack: %w", err)
	}
	defer rows.Close()

	items := []content.TechStackItem{}
	for rows.Next() {
		var t content.TechStackItem
		var id int64
		if err := rows.Scan(&id, &t.Name, &t.Category, &t.Icon, &t.Color,
			&t.DisplayOrder, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tech stack item: %w", err)
		}
		t.ID = &id
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tech stack: %w", err)
	}

	r.cache.SetTechStack(items)
	return items, nil
}

// Create inserts a new tech stack entry and returns it with its assigned id.
func (r *TechStackRepository) Create(t content.TechStackItem) (content.TechStackItem, error) {
	now := time.Now().UTC()
	result, err := r.db.Exec(`INSERT INTO tech_stack (name, category, icon, color, display_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.Name, t.Category, t.Icon, t.Color, t.DisplayOrder, now)
	if err != nil {
		return content.TechStackItem{}, fmt.Errorf("failed to insert tech stack item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return content.TechStackItem{}, fmt.Errorf("failed to read tech stack id: %w", err)
	}

	saved := t.Clone()
	saved.ID = &id
	saved.CreatedAt = now
	r.cache.InvalidateTechStack()

	r.logger.Content().Info("Tech stack item created", "id", id, "name", t.Name)
	return saved, nil
}

// Update overwrites the tech stack entry with the given id.
func (r *TechStackRepository) Update(id int64, t content.TechStackItem) (content.TechStackItem, error) {
	result, err := r.db.Exec(`UPDATE tech_stack SET
		name = ?, category = ?, icon = ?, color = ?, display_order = ?
		WHERE id = ?`,
		t.Name, t.Category, t.Icon, t.Color, t.DisplayOrder, id)
	if err != nil {
		return content.TechStackItem{}, fmt.Errorf("failed to update tech stack item %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return content.TechStackItem{}, fmt.Errorf("failed to check tech stack update: %w", err)
	}
	if affected == 0 {
		return content.TechStackItem{}, repositories.ErrNotFound
	}

	saved := t.Clone()
	saved.ID = &id
	r.cache.InvalidateTechStack()

	r.logger.Content().Info("Tech stack item updated", "id", id)
	return saved, nil
}

// Delete removes the tech stack entry with the given id.
func (r *TechStackRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM tech_stack WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tech stack item %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check tech stack delete: %w", err)
	}
	if affected == 0 {
		return repositories.ErrNotFound
	}

	r.cache.InvalidateTechStack()
	r.logger.Content().Info("Tech stack item deleted", "id", id)
	return nil
}
