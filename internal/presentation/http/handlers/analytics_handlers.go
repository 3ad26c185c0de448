package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dzakyfr/portfolio-go/internal/application/services"
)

// AnalyticsHandlers records visitor activity and serves the admin dashboard
// aggregates.
type AnalyticsHandlers struct {
	analytics *services.AnalyticsService
}

// NewAnalyticsHandlers creates analytics handlers.
func NewAnalyticsHandlers(analytics *services.AnalyticsService) *AnalyticsHandlers {
	return &AnalyticsHandlers{analytics: analytics}
}

// PostVisit handles POST /api/v1/analytics/visit.
func (h *AnalyticsHandlers) PostVisit(c *gin.Context) {
	var req struct {
		VisitorID string `json:"visitorId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	h.analytics.TrackVisit(req.VisitorID, c.Request.UserAgent())
	c.JSON(http.StatusAccepted, gin.H{"status": "tracked"})
}

// PostPageView handles POST /api/v1/analytics/pageview.
func (h *AnalyticsHandlers) PostPageView(c *gin.Context) {
	var req struct {
		VisitorID string `json:"visitorId" binding:"required"`
		PageName  string `json:"pageName" binding:"required"`
		SessionID string `json:"sessionId"`
		Referrer  string `json:"referrer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	h.analytics.TrackPageView(req.VisitorID, req.PageName, req.SessionID, req.Referrer, c.Request.UserAgent())
	c.JSON(http.StatusAccepted, gin.H{"status": "tracked"})
}

// GetStats handles GET /api/v1/admin/analytics/stats.
func (h *AnalyticsHandlers) GetStats(c *gin.Context) {
	stats, err := h.analytics.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetActivities handles GET /api/v1/admin/analytics/activities.
func (h *AnalyticsHandlers) GetActivities(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	activities, err := h.analytics.Activities(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activities"})
		return
	}
	c.JSON(http.StatusOK, activities)
}
