package models

import "gorm.io/gorm"

// Restaurant categories.
const (
	CategoryCafe       = "cafe"
	CategoryRestaurant = "restaurant"
	CategoryBar        = "bar"
	CategoryBakery     = "bakery"
	CategoryStreetFood = "street_food"
	CategoryOther      = "other"
)

// Price tiers, budget to luxury.
const (
	PriceBudget   = "$"
	PriceMidRange = "$$"
	PriceUpscale  = "$$$"
	PriceLuxury   = "$$$$"
)

// Restaurant represents a venue in the catalog.
type Restaurant struct {
	gorm.Model
	Name    string `gorm:"size:200;not null"`
	Address string `gorm:"size:300"`
	City    string `gorm:"size:100"`
	Country string `gorm:"size:100"`

	Cuisine  string `gorm:"size:120"` // e.g. Italian, Japanese
	Category string `gorm:"size:50;not null;default:'restaurant'"`
	Price    string `gorm:"size:5"`

	// Free-text opening hours, e.g. "Mon-Fri 8am-6pm; Sat 9-2".
	OpeningHours string
	Website      string `gorm:"size:512"`

	Lat *float64
	Lng *float64

	// External place identifier, e.g. a Google Place ID.
	ExternalID string `gorm:"size:120;index"`
}
