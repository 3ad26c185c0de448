// Package repositories defines the persistence gateway interfaces consumed by
// the application layer. Implementations live under
// internal/infrastructure/persistence.
package repositories

import (
	"errors"

	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// AboutRepository manages the singleton about/profile record.
type AboutRepository interface {
	Get() (content.AboutInfo, error)
	Upsert(info content.AboutInfo) (content.AboutInfo, error)
}

// ContactRepository manages the singleton contact record.
type ContactRepository interface {
	Get() (content.ContactInfo, error)
	Update(info content.ContactInfo) (content.ContactInfo, error)
}

// ProjectRepository manages portfolio project entries.
type ProjectRepository interface {
	FindAll() ([]content.Project, error)
	Create(p content.Project) (content.Project, error)
	Update(id int64, p content.Project) (content.Project, error)
	Delete(id int64) error
}

// CertificateRepository manages certification entries.
type CertificateRepository interface {
	FindAll() ([]content.Certificate, error)
	Create(c content.Certificate) (content.Certificate, error)
	Update(id int64, c content.Certificate) (content.Certificate, error)
	Delete(id int64) error
}

// TechStackRepository manages tech stack entries.
type TechStackRepository interface {
	FindAll() ([]content.TechStackItem, error)
	Create(t content.TechStackItem) (content.TechStackItem, error)
	Update(id int64, t content.TechStackItem) (content.TechStackItem, error)
	Delete(id int64) error
}

// MessageRepository manages visitor-submitted contact messages.
type MessageRepository interface {
	FindAll() ([]content.ContactMessage, error)
	Store(m content.ContactMessage) (content.ContactMessage, error)
	MarkRead(id int64) (content.ContactMessage, error)
	Delete(id int64) error
}

// VisitorStats aggregates visitor analytics counters.
type VisitorStats struct {
	TotalVisitors  int `json:"totalVisitors"`
	TotalPageViews int `json:"totalPageViews"`
	TodayVisitors  int `json:"todayVisitors"`
	TodayPageViews int `json:"todayPageViews"`
}

// VisitorActivity is one visitor's aggregated browsing record.
type VisitorActivity struct {
	VisitorID      string   `json:"visitorId"`
	Device         string   `json:"device"`
	Browser        string   `json:"browser"`
	OS             string   `json:"os"`
	FirstVisit     string   `json:"firstVisit"`
	LastVisit      string   `json:"lastVisit"`
	VisitCount     int      `json:"visitCount"`
	PagesVisited   []string `json:"pagesVisited"`
	TotalPageViews int      `json:"totalPageViews"`
}

// VisitorRepository records anonymous visitor analytics.
type VisitorRepository interface {
	Track(visitorID, userAgent string) error
	TrackPageView(visitorID, pageName, sessionID, referrer, userAgent string) error
	Stats() (VisitorStats, error)
	Activities(limit int) ([]VisitorActivity, error)
}
