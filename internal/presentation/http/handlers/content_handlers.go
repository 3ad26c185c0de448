package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dzakyfr/portfolio-go/internal/application/container"
	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/media"
)

// ContentHandlers serves the public content reads. Everything renders from
// the mounted section controllers, so the public site and the editor always
// agree on what is current.
type ContentHandlers struct {
	container *container.Container
}

// NewContentHandlers creates content handlers.
func NewContentHandlers(c *container.Container) *ContentHandlers {
	return &ContentHandlers{container: c}
}

// GetAbout handles GET /api/v1/content/about.
func (h *ContentHandlers) GetAbout(c *gin.Context) {
	info := h.container.AboutSection.Data()
	info.ProfileImage = media.ResolveImageURL(info.ProfileImage)
	c.JSON(http.StatusOK, info)
}

// GetContact handles GET /api/v1/content/contact.
func (h *ContentHandlers) GetContact(c *gin.Context) {
	c.JSON(http.StatusOK, h.container.ContactSection.Data())
}

// GetProjects handles GET /api/v1/content/projects.
func (h *ContentHandlers) GetProjects(c *gin.Context) {
	projects := h.container.ProjectsSection.Items()
	for i := range projects {
		projects[i].Image = media.ResolveImageURL(projects[i].Image)
	}
	c.JSON(http.StatusOK, projects)
}

// GetCertificates handles GET /api/v1/content/certificates.
func (h *ContentHandlers) GetCertificates(c *gin.Context) {
	certs := h.container.CertsSection.Items()
	for i := range certs {
		certs[i].Image = media.ResolveImageURL(certs[i].Image)
	}
	c.JSON(http.StatusOK, certs)
}

// GetTechStack handles GET /api/v1/content/techstack.
func (h *ContentHandlers) GetTechStack(c *gin.Context) {
	c.JSON(http.StatusOK, h.container.TechSection.Items())
}

// PostMessage handles POST /api/v1/messages - visitor contact form.
func (h *ContentHandlers) PostMessage(c *gin.Context) {
	var msg content.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	stored, err := h.container.MessageService.Submit(msg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, stored)
}
