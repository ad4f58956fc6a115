package models

import "gorm.io/gorm"

// MaxFavoriteSpots caps how many restaurants a profile may mark as favorites.
const MaxFavoriteSpots = 3

// Profile holds the public-facing details of a user. Exactly one is created
// per user at registration time.
type Profile struct {
	gorm.Model
	UserID      uint   `gorm:"uniqueIndex;not null"`
	DisplayName string `gorm:"size:120"`
	Bio         string
	Location    string `gorm:"size:120"`
	Website     string `gorm:"size:512"`
	AvatarURL   string `gorm:"size:512"`

	// Comma-separated cuisine slugs, e.g. "italian,japanese".
	FavoriteCuisines string `gorm:"size:512"`

	FavoriteSpots []*Restaurant `gorm:"many2many:profile_favorite_spots;"`
}
