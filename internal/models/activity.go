package models

import "time"

// ActivityReview is the only activity type generated today. Pins and list
// creations may join the feed later.
const ActivityReview = "review"

// Activity is one feed-visible event. Review activities are upserted on the
// (type, user, restaurant) key so editing a review refreshes the feed entry
// instead of duplicating it.
type Activity struct {
	ID           uint   `gorm:"primaryKey"`
	Type         string `gorm:"size:20;not null;uniqueIndex:idx_activities_key"`
	UserID       uint   `gorm:"not null;index;uniqueIndex:idx_activities_key"`
	RestaurantID uint   `gorm:"not null;index;uniqueIndex:idx_activities_key"`
	ReviewID     *uint  `gorm:"index"`

	CreatedAt time.Time

	User       User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Restaurant Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE;"`
	Review     *Review    `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
	Comments   []Comment  `gorm:"foreignKey:ActivityID"`
	Likes      []Like     `gorm:"foreignKey:ActivityID"`
}

// Like marks that a user liked an activity. Toggled by repeated calls.
type Like struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;index;uniqueIndex:idx_likes_pair"`
	ActivityID uint `gorm:"not null;index;uniqueIndex:idx_likes_pair"`
	CreatedAt  time.Time

	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Activity Activity `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE;"`
}

// Comment is an append-only remark on an activity.
type Comment struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index"`
	ActivityID uint   `gorm:"not null;index"`
	Text       string `gorm:"not null"`
	CreatedAt  time.Time

	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Activity Activity `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE;"`
}

// CommentLike marks that a user liked a comment. Toggled by repeated calls.
type CommentLike struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;index;uniqueIndex:idx_comment_likes_pair"`
	CommentID uint `gorm:"not null;index;uniqueIndex:idx_comment_likes_pair"`
	CreatedAt time.Time

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Comment Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
}
