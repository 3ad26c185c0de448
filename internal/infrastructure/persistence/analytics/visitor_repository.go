// Package analytics persists anonymous visitor tracking data.
package analytics

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dzakyfr/portfolio-go/internal/domain/repositories"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/persistence/database"
)

// adminVisitorID marks the operator's own browser. Admin traffic is tracked
// under this id but excluded from every aggregate.
const adminVisitorID = "admin_session"

// VisitorRepository records visits and page views and answers the admin
// dashboard aggregates.
type VisitorRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewVisitorRepository creates a visitor analytics repository.
func NewVisitorRepository(db *database.DB, logger *logging.ChanneledLogger) *VisitorRepository {
	return &VisitorRepository{db: db, logger: logger}
}

var _ repositories.VisitorRepository = (*VisitorRepository)(nil)

// Track upserts the visitor row, bumping the visit counter on revisit.
func (r *VisitorRepository) Track(visitorID, userAgent string) error {
	if visitorID == "" {
		return fmt.Errorf("visitor id is required")
	}

	now := time.Now().UTC()
	_, err := r.db.Exec(`INSERT INTO visitor_analytics (visitor_id, first_visit, last_visit, visit_count, user_agent)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT (visitor_id) DO UPDATE SET
			last_visit = excluded.last_visit,
			visit_count = visit_count + 1,
			user_agent = excluded.user_agent`,
		visitorID, now, now, userAgent)
	if err != nil {
		return fmt.Errorf("failed to track visitor: %w", err)
	}
	return nil
}

// TrackPageView appends one page view row.
func (r *VisitorRepository) TrackPageView(visitorID, pageName, sessionID, referrer, userAgent string) error {
	if visitorID == "" || pageName == "" {
		return fmt.Errorf("visitor id and page name are required")
	}

	_, err := r.db.Exec(`INSERT INTO page_views (page_name, visitor_id, viewed_at, session_id, referrer, user_agent)
		VALUES (?, ?, ?, ?, ?, ?)`,
		pageName, visitorID, time.Now().UTC(), sessionID, referrer, userAgent)
	if err != nil {
		return fmt.Errorf("failed to track page view: %w", err)
	}
	return nil
}

// Stats aggregates visitor and page view totals, excluding admin traffic.
func (r *VisitorRepository) Stats() (repositories.VisitorStats, error) {
	var stats repositories.VisitorStats
	today := time.Now().UTC().Truncate(24 * time.Hour)

	row := r.db.QueryRow(`SELECT COUNT(*) FROM visitor_analytics WHERE visitor_id != ?`, adminVisitorID)
	if err := row.Scan(&stats.TotalVisitors); err != nil {
		return stats, fmt.Errorf("failed to count visitors: %w", err)
	}

	row = r.db.QueryRow(`SELECT COUNT(*) FROM page_views WHERE visitor_id != ?`, adminVisitorID)
	if err := row.Scan(&stats.TotalPageViews); err != nil {
		return stats, fmt.Errorf("failed to count page views: %w", err)
	}

	row = r.db.QueryRow(`SELECT COUNT(*) FROM visitor_analytics
		WHERE visitor_id != ? AND last_visit >= ?`, adminVisitorID, today)
	if err := row.Scan(&stats.TodayVisitors); err != nil {
		return stats, fmt.Errorf("failed to count today's visitors: %w", err)
	}

	row = r.db.QueryRow(`SELECT COUNT(*) FROM page_views
		WHERE visitor_id != ? AND viewed_at >= ?`, adminVisitorID, today)
	if err := row.Scan(&stats.TodayPageViews); err != nil {
		return stats, fmt.Errorf("failed to count today's page views: %w", err)
	}

	return stats, nil
}

// Activities returns per-visitor browsing summaries, most recent first.
func (r *VisitorRepository) Activities(limit int) ([]repositories.VisitorActivity, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(`SELECT
			v.visitor_id, v.first_visit, v.last_visit, v.visit_count, v.user_agent,
			COUNT(p.id),
			COALESCE(json_group_array(DISTINCT p.page_name), '[]')
		FROM visitor_analytics v
		LEFT JOIN page_views p ON p.visitor_id = v.visitor_id
		WHERE v.visitor_id != ?
		GROUP BY v.visitor_id
		ORDER BY v.last_visit DESC
		LIMIT ?`, adminVisitorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query visitor activities: %w", err)
	}
	defer rows.Close()

	activities := []repositories.VisitorActivity{}
	for rows.Next() {
		var a repositories.VisitorActivity
		var firstVisit, lastVisit time.Time
		var userAgent, pagesJSON string
		if err := rows.Scan(&a.VisitorID, &firstVisit, &lastVisit, &a.VisitCount,
			&userAgent, &a.TotalPageViews, &pagesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan visitor activity: %w", err)
		}

		a.FirstVisit = firstVisit.Format(time.RFC3339)
		a.LastVisit = lastVisit.Format(time.RFC3339)
		a.Device, a.Browser, a.OS = parseUserAgent(userAgent)
		if err := json.Unmarshal([]byte(pagesJSON), &a.PagesVisited); err != nil {
			a.PagesVisited = []string{}
		}
		// json_group_array over an empty join yields [null].
		a.PagesVisited = dropEmpty(a.PagesVisited)

		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate visitor activities: %w", err)
	}
	return activities, nil
}

func dropEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseUserAgent extracts a coarse device class, browser and OS from a raw
// user agent string. Order matters: Edge and Opera embed "Chrome", Chrome
// embeds "Safari".
func parseUserAgent(ua string) (device, browser, os string) {
	device, browser, os = "Desktop", "Unknown", "Unknown"
	if ua == "" {
		return "Unknown", browser, os
	}
	lower := strings.ToLower(ua)

	switch {
	case strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet"):
		device = "Tablet"
	case strings.Contains(lower, "mobile") || strings.Contains(lower, "iphone") ||
		strings.Contains(lower, "android"):
		device = "Mobile"
	}

	switch {
	case strings.Contains(lower, "edg/") || strings.Contains(lower, "edge"):
		browser = "Edge"
	case strings.Contains(lower, "opr/") || strings.Contains(lower, "opera"):
		browser = "Opera"
	case strings.Contains(lower, "firefox"):
		browser = "Firefox"
	case strings.Contains(lower, "chrome"):
		browser = "Chrome"
	case strings.Contains(lower, "safari"):
		browser = "Safari"
	}

	switch {
	case strings.Contains(lower, "windows"):
		os = "Windows"
	case strings.Contains(lower, "android"):
		os = "Android"
	case strings.Contains(lower, "iphone") || strings.Contains(lower, "ipad") ||
		strings.Contains(lower, "ios"):
		os = "iOS"
	case strings.Contains(lower, "mac os") || strings.Contains(lower, "macintosh"):
		os = "macOS"
	case strings.Contains(lower, "linux"):
		os = "Linux"
	}

	return device, browser, os
}
