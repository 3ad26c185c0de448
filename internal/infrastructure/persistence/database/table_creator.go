package database

import (
	"fmt"

	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
)

var tableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS about_info (
		id INTEGER PRIMARY KEY,
		profile_image TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		subtitle TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		certification TEXT NOT NULL DEFAULT '',
		availability TEXT NOT NULL DEFAULT '',
		summary1 TEXT NOT NULL DEFAULT '',
		summary2 TEXT NOT NULL DEFAULT '',
		summary3 TEXT NOT NULL DEFAULT '',
		strengths TEXT NOT NULL DEFAULT '[]',
		stats TEXT NOT NULL DEFAULT '[]',
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS contact_info (
		id INTEGER PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		github TEXT NOT NULL DEFAULT '',
		linkedin TEXT NOT NULL DEFAULT '',
		instagram TEXT NOT NULL DEFAULT '',
		twitter TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		technologies TEXT NOT NULL DEFAULT '[]',
		github_url TEXT NOT NULL DEFAULT '',
		live_url TEXT NOT NULL DEFAULT '',
		featured INTEGER NOT NULL DEFAULT 0,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS certificates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		issuer TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		verification_url TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT '[]',
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS tech_stack (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		icon TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL,
		is_read INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS visitor_analytics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		visitor_id TEXT NOT NULL UNIQUE,
		first_visit TIMESTAMP NOT NULL,
		last_visit TIMESTAMP NOT NULL,
		visit_count INTEGER NOT NULL DEFAULT 1,
		user_agent TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS page_views (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		page_name TEXT NOT NULL,
		visitor_id TEXT NOT NULL,
		viewed_at TIMESTAMP NOT NULL,
		session_id TEXT NOT NULL DEFAULT '',
		referrer TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT ''
	)`,
}

var seedStatements = []string{
	`INSERT INTO about_info (id) SELECT 1 WHERE NOT EXISTS (SELECT 1 FROM about_info)`,
	`INSERT INTO contact_info (id) SELECT 1 WHERE NOT EXISTS (SELECT 1 FROM contact_info)`,
}

// CreateTables creates the portfolio schema if it does not exist and seeds
// the singleton rows.
func CreateTables(db *DB, logger *logging.ChanneledLogger) error {
	for _, stmt := range tableDefinitions {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, stmt := range seedStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to seed singleton row: %w", err)
		}
	}

	logger.Database().Info("Schema verified", "tables", len(tableDefinitions))
	return nil
}
