package services

import (
	"github.com/dzakyfr/portfolio-go/internal/domain/repositories"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
)

// AnalyticsService records anonymous visitor activity and serves the admin
// dashboard aggregates. Tracking is fire-and-forget from the caller's point
// of view; failures are logged, never surfaced to visitors.
type AnalyticsService struct {
	repo   repositories.VisitorRepository
	logger *logging.ChanneledLogger
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(repo repositories.VisitorRepository, logger *logging.ChanneledLogger) *AnalyticsService {
	return &AnalyticsService{repo: repo, logger: logger}
}

// TrackVisit records a visit for the given visitor id.
func (s *AnalyticsService) TrackVisit(visitorID, userAgent string) {
	if err := s.repo.Track(visitorID, userAgent); err != nil {
		s.logger.Analytics().Warn("Visit tracking failed", "error", err)
	}
}

// TrackPageView records one page view.
func (s *AnalyticsService) TrackPageView(visitorID, pageName, sessionID, referrer, userAgent string) {
	if err := s.repo.TrackPageView(visitorID, pageName, sessionID, referrer, userAgent); err != nil {
		s.logger.Analytics().Warn("Page view tracking failed", "error", err)
	}
}

// Stats returns the aggregate visitor counters.
func (s *AnalyticsService) Stats() (repositories.VisitorStats, error) {
	return s.repo.Stats()
}

// Activities returns recent per-visitor browsing summaries.
func (s *AnalyticsService) Activities(limit int) ([]repositories.VisitorActivity, error) {
	return s.repo.Activities(limit)
}
