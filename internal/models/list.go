package models

import (
	"strings"
	"time"
)

// Default list titles seeded at registration.
const (
	ListTitleVisited = "Visited"
	ListTitleSaved   = "Saved"
)

// reservedListTitles are default lists that users may not delete. "Want to go"
// is an older name for the saved list that still exists in old accounts.
var reservedListTitles = map[string]bool{
	"visited":    true,
	"saved":      true,
	"want to go": true,
}

// IsReservedListTitle reports whether title names a protected default list.
// The match is case-insensitive.
func IsReservedListTitle(title string) bool {
	return reservedListTitles[strings.ToLower(strings.TrimSpace(title))]
}

// List is a user-owned named collection of saved restaurants. Lists are
// hard-deleted so a deleted title can be reused under the (owner, title)
// unique constraint.
type List struct {
	ID        uint   `gorm:"primaryKey"`
	OwnerID   uint   `gorm:"not null;uniqueIndex:idx_lists_owner_title"`
	Title     string `gorm:"size:120;not null;uniqueIndex:idx_lists_owner_title"`
	IsPublic  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner User  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
	Pins  []Pin `gorm:"foreignKey:ListID"`
}
