package v1

import (
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/service"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	claims := currentClaims(c)
	limit := parseQueryInt(c, "limit", 20)
	unreadOnly := parseQueryBool(c, "unreadOnly")

	page, err := h.svc.ListNotifications(c.Request.Context(), claims.UserID, unreadOnly, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": page.Notifications,
		"unreadCount":   page.UnreadCount,
	})
}

// MarkAllRead is registered before the /:id/read route so "mark-all-read"
// never parses as an id.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	claims := currentClaims(c)

	if err := h.svc.MarkAllRead(c.Request.Context(), claims.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "All notifications marked as read")
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	claims := currentClaims(c)
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	n, err := h.svc.MarkRead(c.Request.Context(), id, claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondEntity(c, http.StatusOK, "Notification marked as read", "notification", n)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	claims := currentClaims(c)
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteNotification(c.Request.Context(), id, claims.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Notification deleted successfully")
}

func (h *NotificationHandler) GenerateSample(c *gin.Context) {
	claims := currentClaims(c)

	samples, err := h.svc.GenerateSample(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondEntity(c, http.StatusCreated, "Sample notifications generated", "notifications", samples)
}

func (h *NotificationHandler) GenerateFromActivities(c *gin.Context) {
	claims := currentClaims(c)

	count, err := h.svc.GenerateFromActivities(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Notifications generated from recent activities",
		"count":   count,
	})
}
