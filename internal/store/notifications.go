package store

import (
	"oishii/backend/internal/models"

	"gorm.io/gorm"
)

// UnreadPublisher receives the new unread count whenever a notification is
// created, so connected clients can update their badge. The hub satisfies
// this; a nil publisher is fine.
type UnreadPublisher interface {
	PublishUnread(userID uint, unread int64)
}

// Notifier is the notification dispatcher. It reacts to likes and comments;
// no notification is ever created by direct user action, and none is created
// for self-interaction — that guard lives here, not in the schema.
type Notifier struct {
	db      *gorm.DB
	publish UnreadPublisher
}

func NewNotifier(db *gorm.DB, publish UnreadPublisher) *Notifier {
	return &Notifier{db: db, publish: publish}
}

// LikeCreated notifies the activity's owner that their review was liked,
// unless they liked it themselves. tx is the transaction the like was
// created in, so the notification commits or rolls back with it.
func (n *Notifier) LikeCreated(tx *gorm.DB, like *models.Like, activity *models.Activity) error {
	if like.UserID == activity.UserID {
		return nil
	}
	return n.create(tx, models.Notification{
		UserID:     activity.UserID,
		Type:       models.NotificationReviewLike,
		ActorID:    like.UserID,
		ActivityID: activity.ID,
	})
}

// CommentLikeCreated notifies the comment's author that their comment was
// liked, unless they liked it themselves.
func (n *Notifier) CommentLikeCreated(tx *gorm.DB, like *models.CommentLike, comment *models.Comment) error {
	if like.UserID == comment.UserID {
		return nil
	}
	return n.create(tx, models.Notification{
		UserID:     comment.UserID,
		Type:       models.NotificationCommentLike,
		ActorID:    like.UserID,
		ActivityID: comment.ActivityID,
		CommentID:  &comment.ID,
	})
}

// CommentCreated notifies the activity's owner about a new comment, unless
// they wrote it themselves.
func (n *Notifier) CommentCreated(tx *gorm.DB, comment *models.Comment, activity *models.Activity) error {
	if comment.UserID == activity.UserID {
		return nil
	}
	return n.create(tx, models.Notification{
		UserID:     activity.UserID,
		Type:       models.NotificationComment,
		ActorID:    comment.UserID,
		ActivityID: activity.ID,
		CommentID:  &comment.ID,
	})
}

func (n *Notifier) create(tx *gorm.DB, notification models.Notification) error {
	if err := tx.Create(&notification).Error; err != nil {
		return err
	}
	if n.publish != nil {
		if unread, err := n.unreadCount(tx, notification.UserID); err == nil {
			n.publish.PublishUnread(notification.UserID, unread)
		}
	}
	return nil
}

// Recent returns the user's latest notifications with the actor preloaded.
func (n *Notifier) Recent(userID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := n.db.Preload("Actor").Preload("Actor.Profile").
		Preload("Activity").Preload("Activity.Restaurant").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flips the read flag on one of the user's notifications. Someone
// else's notification is a not-found, never a permission hint.
func (n *Notifier) MarkRead(userID, notificationID uint) error {
	res := n.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UnreadCount returns how many unread notifications the user has.
func (n *Notifier) UnreadCount(userID uint) (int64, error) {
	return n.unreadCount(n.db, userID)
}

func (n *Notifier) unreadCount(db *gorm.DB, userID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
