package models

import "time"

// NotificationType enumerates what a notification is about.
type NotificationType string

const (
	NotificationComment     NotificationType = "comment"
	NotificationReviewLike  NotificationType = "review_like"
	NotificationCommentLike NotificationType = "comment_like"
)

// Notification is a derived record created only by the dispatcher, never by
// direct user action. Users may flip IsRead on their own notifications and
// nothing else. Self-interactions never produce one; that rule lives in the
// dispatcher.
type Notification struct {
	ID     uint             `gorm:"primaryKey"`
	UserID uint             `gorm:"not null;index"` // recipient
	Type   NotificationType `gorm:"type:varchar(20);not null"`

	// Who triggered it and where.
	ActorID    uint  `gorm:"not null"`
	ActivityID uint  `gorm:"not null;index"`
	CommentID  *uint `gorm:"index"`

	IsRead    bool `gorm:"not null;default:false;index"`
	CreatedAt time.Time

	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Actor    User     `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE;"`
	Activity Activity `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE;"`
	Comment  *Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
}
