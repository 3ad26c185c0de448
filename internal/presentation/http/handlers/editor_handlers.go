package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/dzakyfr/portfolio-go/internal/application/container"
	"github.com/dzakyfr/portfolio-go/internal/application/editor"
	"github.com/dzakyfr/portfolio-go/internal/application/services"
	"github.com/dzakyfr/portfolio-go/internal/domain/entities/content"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/media"
)

var streamUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens in middleware before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EditorHandlers exposes the edit-mode subsystem: the coordinator state, the
// global toggle and save/cancel actions, per-section drafts, and the
// WebSocket mirror of the broadcast bus.
type EditorHandlers struct {
	container *container.Container
}

// NewEditorHandlers creates editor handlers.
func NewEditorHandlers(c *container.Container) *EditorHandlers {
	return &EditorHandlers{container: c}
}

// GetState handles GET /api/v1/editor/state.
func (h *EditorHandlers) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.container.Coordinator.State())
}

// PostMode handles POST /api/v1/editor/mode - the global edit toggle.
func (h *EditorHandlers) PostMode(c *gin.Context) {
	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	if err := h.container.Coordinator.SetEditMode(*req.Enabled); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.container.Coordinator.State())
}

// PostSave handles POST /api/v1/editor/save - the single global save action.
func (h *EditorHandlers) PostSave(c *gin.Context) {
	if err := h.container.Coordinator.SaveAll(); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.container.Coordinator.State())
}

// PostCancel handles POST /api/v1/editor/cancel.
func (h *EditorHandlers) PostCancel(c *gin.Context) {
	h.container.Coordinator.CancelAll()
	c.JSON(http.StatusOK, h.container.Coordinator.State())
}

// PostConfirm handles POST /api/v1/editor/confirm - resolves the pending
// confirmation prompt.
func (h *EditorHandlers) PostConfirm(c *gin.Context) {
	var req struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	var resolved bool
	if *req.Accept {
		resolved = h.container.ConfirmService.Confirm()
	} else {
		resolved = h.container.ConfirmService.Decline()
	}
	if !resolved {
		c.JSON(http.StatusConflict, gin.H{"error": "no pending confirmation"})
		return
	}
	c.JSON(http.StatusOK, h.container.Coordinator.State())
}

// PutAboutDraft handles PUT /api/v1/editor/sections/about.
func (h *EditorHandlers) PutAboutDraft(c *gin.Context) {
	var draft content.AboutInfo
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	err := h.container.AboutSection.Mutate(func(d *content.AboutInfo) { *d = draft.Clone() })
	h.respondDraft(c, err, h.container.AboutSection.State())
}

// PutContactDraft handles PUT /api/v1/editor/sections/contact.
func (h *EditorHandlers) PutContactDraft(c *gin.Context) {
	var draft content.ContactInfo
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	err := h.container.ContactSection.Mutate(func(d *content.ContactInfo) { *d = draft.Clone() })
	h.respondDraft(c, err, h.container.ContactSection.State())
}

// PostSectionBlur handles POST /api/v1/editor/sections/:section/blur. Only
// sections using the blur-save strategy persist here; for the others blur is
// a no-op and the current state comes back unchanged.
func (h *EditorHandlers) PostSectionBlur(c *gin.Context) {
	switch c.Param("section") {
	case "about":
		if err := h.container.AboutSection.BlurField(); err != nil {
			h.respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusOK, h.container.AboutSection.State())
	case "contact":
		if err := h.container.ContactSection.BlurField(); err != nil {
			h.respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusOK, h.container.ContactSection.State())
	case "projects":
		c.JSON(http.StatusOK, h.container.ProjectsSection.State())
	case "certificates":
		c.JSON(http.StatusOK, h.container.CertsSection.State())
	case "techstack":
		c.JSON(http.StatusOK, h.container.TechSection.State())
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
	}
}

// PutProjectsDraft handles PUT /api/v1/editor/sections/projects.
func (h *EditorHandlers) PutProjectsDraft(c *gin.Context) {
	var draft []content.Project
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	err := h.container.ProjectsSection.ReplaceDraft(draft)
	h.respondDraft(c, err, h.container.ProjectsSection.State())
}

// PutCertificatesDraft handles PUT /api/v1/editor/sections/certificates.
func (h *EditorHandlers) PutCertificatesDraft(c *gin.Context) {
	var draft []content.Certificate
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	err := h.container.CertsSection.ReplaceDraft(draft)
	h.respondDraft(c, err, h.container.CertsSection.State())
}

// PutTechStackDraft handles PUT /api/v1/editor/sections/techstack.
func (h *EditorHandlers) PutTechStackDraft(c *gin.Context) {
	var draft []content.TechStackItem
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	err := h.container.TechSection.ReplaceDraft(draft)
	h.respondDraft(c, err, h.container.TechSection.State())
}

// PostSectionSave handles POST /api/v1/editor/sections/:section/save.
func (h *EditorHandlers) PostSectionSave(c *gin.Context) {
	var err error
	var state editor.SectionState

	switch c.Param("section") {
	case "about":
		err = h.container.AboutSection.Save()
		state = h.container.AboutSection.State()
	case "contact":
		err = h.container.ContactSection.Save()
		state = h.container.ContactSection.State()
	case "projects":
		err = h.container.ProjectsSection.Save()
		state = h.container.ProjectsSection.State()
	case "certificates":
		err = h.container.CertsSection.Save()
		state = h.container.CertsSection.State()
	case "techstack":
		err = h.container.TechSection.Save()
		state = h.container.TechSection.State()
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
		return
	}

	if err != nil {
		h.respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// DeleteListItem handles DELETE /api/v1/editor/sections/:section/items/:index.
func (h *EditorHandlers) DeleteListItem(c *gin.Context) {
	index, err2 := strconv.Atoi(c.Param("index"))
	if err2 != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}

	var err error
	switch c.Param("section") {
	case "projects":
		err = h.container.ProjectsSection.RemoveDraftItem(index)
	case "certificates":
		err = h.container.CertsSection.RemoveDraftItem(index)
	case "techstack":
		err = h.container.TechSection.RemoveDraftItem(index)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
		return
	}

	if err != nil {
		status := http.StatusConflict
		if errors.Is(err, editor.ErrIndexOutOfRange) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.container.Coordinator.State())
}

// PostSectionImage handles POST /api/v1/editor/sections/:section/image.
// The payload carries the original filename and a base64 data URI; storage
// failures fall back to embedding the data URI in the draft.
func (h *EditorHandlers) PostSectionImage(c *gin.Context) {
	var req struct {
		Filename string `json:"filename" binding:"required"`
		DataURI  string `json:"dataUri" binding:"required"`
		Index    int    `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	var err error
	switch c.Param("section") {
	case "about":
		err = h.container.AboutSection.AttachImage(req.Filename, req.DataURI,
			func(d *content.AboutInfo, url string) { d.ProfileImage = url })
	case "projects":
		err = h.container.ProjectsSection.AttachItemImage(req.Index, req.Filename, req.DataURI,
			func(p *content.Project, url string) { p.Image = url })
	case "certificates":
		err = h.container.CertsSection.AttachItemImage(req.Index, req.Filename, req.DataURI,
			func(cert *content.Certificate, url string) { cert.Image = url })
	case "techstack":
		err = h.container.TechSection.AttachItemImage(req.Index, req.Filename, req.DataURI,
			func(t *content.TechStackItem, url string) { t.Icon = url })
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
		return
	}

	if err != nil {
		status := http.StatusConflict
		if errors.Is(err, editor.ErrIndexOutOfRange) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.container.Coordinator.State())
}

// PostMedia handles POST /api/v1/editor/media - uploads a standalone asset
// outside any section draft. Storage failures degrade to echoing the data
// URI back so the client can embed it.
func (h *EditorHandlers) PostMedia(c *gin.Context) {
	var req struct {
		Filename string `json:"filename" binding:"required"`
		DataURI  string `json:"dataUri" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	url, err := h.container.Uploader.Upload(req.Filename, req.DataURI)
	if err != nil {
		if errors.Is(err, media.ErrStorageUnavailable) {
			c.JSON(http.StatusOK, gin.H{"url": req.DataURI, "embedded": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "embedded": false})
}

// GetStream handles GET /api/v1/editor/stream - upgrades to WebSocket and
// mirrors bus broadcasts to the client until it disconnects.
func (h *EditorHandlers) GetStream(c *gin.Context) {
	conn, err := streamUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	id := h.container.StreamHub.Attach(conn)
	defer h.container.StreamHub.Detach(id)

	// Drain the read side so close frames are processed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *EditorHandlers) respondDraft(c *gin.Context, err error, state editor.SectionState) {
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *EditorHandlers) respondSaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
	case errors.Is(err, editor.ErrSaveInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "save already in progress"})
	case errors.Is(err, editor.ErrNotEditing):
		c.JSON(http.StatusConflict, gin.H{"error": "section is not in edit mode"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
