package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"oishii/backend/internal/hub"
	"oishii/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// NotificationResponse describes one notification for the badge dropdown.
type NotificationResponse struct {
	ID             uint                    `json:"id"`
	Type           models.NotificationType `json:"type"`
	IsRead         bool                    `json:"is_read"`
	CreatedAt      time.Time               `json:"created_at"`
	Actor          *ReviewAuthor           `json:"actor,omitempty"`
	ActivityID     uint                    `json:"activity_id"`
	CommentID      *uint                   `json:"comment_id,omitempty"`
	RestaurantName string                  `json:"restaurant_name,omitempty"`
}

// endregion

// GetNotifications godoc
// @Summary      Get notifications
// @Description  Returns the current user's latest notifications, newest first.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max items" default(50)
// @Success      200 {array} NotificationResponse
// @Router       /notifications [get]
func GetNotifications(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}

	recent, err := notifier.Recent(currentUserID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	responses := make([]NotificationResponse, 0, len(recent))
	for _, n := range recent {
		resp := NotificationResponse{
			ID:         n.ID,
			Type:       n.Type,
			IsRead:     n.IsRead,
			CreatedAt:  n.CreatedAt,
			ActivityID: n.ActivityID,
			CommentID:  n.CommentID,
		}
		if n.Actor.ID != 0 {
			resp.Actor = newReviewAuthor(n.Actor)
		}
		if n.Activity.Restaurant.ID != 0 {
			resp.RestaurantName = n.Activity.Restaurant.Name
		}
		responses = append(responses, resp)
	}
	c.JSON(http.StatusOK, responses)
}

// GetNotificationCount godoc
// @Summary      Get the unread notification count
// @Description  Returns how many unread notifications the current user has.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]int64 "{"unread_count": 3}"
// @Router       /notifications/count [get]
func GetNotificationCount(c *gin.Context) {
	count, err := notifier.UnreadCount(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkNotificationRead godoc
// @Summary      Mark a notification as read
// @Description  Flips the read flag on one of the current user's notifications.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Notification ID"
// @Success      200 {object} map[string]string "{"message": "Notification read"}"
// @Failure      404 {object} ErrorResponse "Notification not found"
// @Router       /notifications/{id}/read [post]
func MarkNotificationRead(c *gin.Context) {
	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	if err := notifier.MarkRead(currentUserID(c), uint(notificationID)); err != nil {
		fail(c, err, "Failed to mark notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification read"})
}

// StreamEvents godoc
// @Summary      Stream live events
// @Description  Opens a server-sent events stream carrying unread-count updates for the current user.
// @Tags         notifications
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200 {string} string "event stream"
// @Router       /events [get]
func StreamEvents(c *gin.Context) {
	userID := currentUserID(c)

	client := make(hub.Client, 8)
	events.Subscribe(userID, client)
	defer events.Unsubscribe(userID, client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(message))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
