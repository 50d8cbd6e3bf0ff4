package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planboard/internal/notify"
	"planboard/internal/workspace"
)

type NotificationHandler struct {
	app *workspace.App
}

func NewNotificationHandler(app *workspace.App) *NotificationHandler {
	return &NotificationHandler{app: app}
}

// GetAll возвращает уведомления, которые еще не истекли
func (h *NotificationHandler) GetAll(c *gin.Context) {
	items := h.app.Notifications()
	if items == nil {
		items = []notify.Notification{}
	}
	c.JSON(http.StatusOK, items)
}

// Dismiss скрывает уведомление
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	if !h.app.DismissNotification(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
