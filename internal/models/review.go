package models

import "time"

// Review is one rating+text record per (user, restaurant). Saving a review
// triggers the visited-list and feed side effects in the review store.
type Review struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"not null;index;uniqueIndex:idx_reviews_user_restaurant"`
	RestaurantID uint `gorm:"not null;index;uniqueIndex:idx_reviews_user_restaurant"`

	OverallRating int `gorm:"not null;check:overall_rating >= 1 AND overall_rating <= 5"`

	// Optional sub-ratings, 1-5 when present.
	Food       *int
	Service    *int
	Value      *int
	Atmosphere *int

	Text         string
	WouldGoAgain *bool

	CreatedAt time.Time
	UpdatedAt time.Time

	User       User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Restaurant Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE;"`
	Photos     []Photo    `gorm:"foreignKey:ReviewID"`
}

// Photo is an uploaded image attached to a review.
type Photo struct {
	ID       uint `gorm:"primaryKey"`
	ReviewID uint `gorm:"not null;index"`

	// ObjectKey locates the stored file in the media backend.
	ObjectKey string `gorm:"size:512;not null"`
	URL       string `gorm:"size:1024;not null"`

	CreatedAt time.Time

	Review Review `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}
