package content

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/domain/repositories"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/caching"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/persistence/database"
)

// ProjectRepository persists portfolio project entries.
type ProjectRepository struct {
	db     *database.DB
	cache  *caching.ContentCache
	logger *logging.ChanneledLogger
}

// NewProjectRepository creates a project repository.
func NewProjectRepository(db *database.DB, cache *caching.ContentCache, logger *logging.ChanneledLogger) *ProjectRepository {
	return &ProjectRepository{db: db, cache: cache, logger: logger}
}

var _ repositories.ProjectRepository = (*ProjectRepository)(nil)

// FindAll returns every project, featured first, then by display order.
func (r *ProjectRepository) FindAll() ([]content.Project, error) {
	if cached, ok := r.cache.GetProjects(); ok {
		return cached, nil
	}

	rows, err := r.db.Query(`SELECT id, title, description, category, image,
		technologies, github_url, live_url, featured, display_order, created_at
		FROM projects
		ORDER BY featured DESC, display_order ASC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []content.Project{}
	for rows.Next() {
		var p content.Project
		var id int64
		var techJSON string
		if err := rows.Scan(&id, &p.Title, &p.Description, &p.Category, &p.Image,
			&techJSON, &p.GithubURL, &p.LiveURL, &p.Featured, &p.DisplayOrder, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.ID = &id
		if err := json.Unmarshal([]byte(techJSON), &p.Technologies); err != nil {
			r.logger.Content().Warn("Malformed technologies column, resetting", "id", id, "error", err)
			p.Technologies = []string{}
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	r.cache.SetProjects(projects)
	return projects, nil
}

// Create inserts a new project and returns it with its assigned id.
func (r *ProjectRepository) Create(p content.Project) (content.Project, error) {
	techJSON, err := json.Marshal(emptySlice(p.Technologies))
	if err != nil {
		return content.Project{}, fmt.Errorf("failed to encode technologies: %w", err)
	}

	now := time.Now().UTC()
	result, err := r.db.Exec(`INSERT INTO projects (
		title, description, category, image, technologies, github_url, live_url,
		featured, display_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Category, p.Image, string(techJSON),
		p.GithubURL, p.LiveURL, p.Featured, p.DisplayOrder, now)
	if err != nil {
		return content.Project{}, fmt.Errorf("failed to insert project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return content.Project{}, fmt.Errorf("failed to read project id: %w", err)
	}

	saved := p.Clone()
	saved.ID = &id
	saved.CreatedAt = now
	r.cache.InvalidateProjects()

	r.logger.Content().Info("Project created", "id", id, "title", p.Title)
	return saved, nil
}

// Update overwrites the project with the given id.
func (r *ProjectRepository) Update(id int64, p content.Project) (content.Project, error) {
	techJSON, err := json.Marshal(emptySlice(p.Technologies))
	if err != nil {
		return content.Project{}, fmt.Errorf("failed to encode technologies: %w", err)
	}

	result, err := r.db.Exec(`UPDATE projects SET
		title = ?, description = ?, category = ?, image = ?, technologies = ?,
		github_url = ?, live_url = ?, featured = ?, display_order = ?
		WHERE id = ?`,
		p.Title, p.Description, p.Category, p.Image, string(techJSON),
		p.GithubURL, p.LiveURL, p.Featured, p.DisplayOrder, id)
	if err != nil {
		return content.Project{}, fmt.Errorf("failed to update project %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return content.Project{}, fmt.Errorf("failed to check project update: %w", err)
	}
	if affected == 0 {
		return content.Project{}, repositories.ErrNotFound
	}

	saved := p.Clone()
	saved.ID = &id
	r.cache.InvalidateProjects()

	r.logger.Content().Info("Project updated", "id", id)
	return saved, nil
}

// Delete removes the project with the given id.
func (r *ProjectRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check project delete: %w", err)
	}
	if affected == 0 {
		return repositories.ErrNotFound
	}

	r.cache.InvalidateProjects()
	r.logger.Content().Info("Project deleted", "id", id)
	return nil
}
