package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dzakyfr/portfolio-go/internal/application/services"
	"github.com/dzakyfr/portfolio-go/internal/domain/repositories"
)

// MessageHandlers serves the admin message inbox.
type MessageHandlers struct {
	messages *services.MessageService
}

// NewMessageHandlers creates message handlers.
func NewMessageHandlers(messages *services.MessageService) *MessageHandlers {
	return &MessageHandlers{messages: messages}
}

// GetMessages handles GET /api/v1/admin/messages.
func (h *MessageHandlers) GetMessages(c *gin.Context) {
	inbox, err := h.messages.Inbox()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, inbox)
}

// PutMessageRead handles PUT /api/v1/admin/messages/:id/read.
func (h *MessageHandlers) PutMessageRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	msg, err := h.messages.MarkRead(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update message"})
		return
	}
	c.JSON(http.StatusOK, msg)
}

// DeleteMessage handles DELETE /api/v1/admin/messages/:id.
func (h *MessageHandlers) DeleteMessage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if err := h.messages.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
