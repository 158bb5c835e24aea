package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webwebweb5/societify/internal/core/ports"
)

type NotificationHandler struct {
	notifications ports.NotificationService
}

func NewNotificationHandler(notifications ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.DELETE("", h.clear)
}

func (h *NotificationHandler) list(c *gin.Context) {
	items, err := h.notifications.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapNotifications(items))
}

func (h *NotificationHandler) clear(c *gin.Context) {
	if err := h.notifications.Clear(c.Request.Context(), currentUserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notifications deleted successfully"})
}
