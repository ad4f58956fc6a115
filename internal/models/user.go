package models

import "gorm.io/gorm"

// User represents an account in the system.
type User struct {
	gorm.Model
	Username     string `gorm:"size:150;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`
	FirstName    string `gorm:"size:150"`
	LastName     string `gorm:"size:150"`

	Profile *Profile `gorm:"foreignKey:UserID"`
}
