package models

import "time"

// Pin is a saved association between a user, a restaurant and optionally one
// of the user's lists. A restaurant may be pinned into several lists; within a
// single list the pair is unique. NULLs are distinct in the composite index,
// so the listless default pin gets its own partial unique index. Pins are
// hard-deleted so that toggling works.
type Pin struct {
	ID           uint  `gorm:"primaryKey"`
	UserID       uint  `gorm:"not null;index;uniqueIndex:idx_pins_user_restaurant_list;index:idx_pins_user_restaurant_default,unique,where:list_id IS NULL"`
	RestaurantID uint  `gorm:"not null;index;uniqueIndex:idx_pins_user_restaurant_list;index:idx_pins_user_restaurant_default,unique,where:list_id IS NULL"`
	ListID       *uint `gorm:"uniqueIndex:idx_pins_user_restaurant_list"`

	Note      string
	Rating    *int `gorm:"check:rating IS NULL OR (rating >= 1 AND rating <= 5)"`
	CreatedAt time.Time

	User       User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Restaurant Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE;"`
	List       *List      `gorm:"foreignKey:ListID;constraint:OnDelete:SET NULL;"`
}
