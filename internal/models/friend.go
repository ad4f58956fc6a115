package models

import "time"

// FriendStatus defines the state of a friend request between two users.
type FriendStatus string

const (
	// FriendPending means a request has been sent but not yet answered.
	FriendPending FriendStatus = "pending"

	// FriendAccepted means the request was accepted; the users are friends.
	FriendAccepted FriendStatus = "accepted"

	// FriendRejected means the target turned the request down. The record is
	// kept so the requester cannot immediately re-send.
	FriendRejected FriendStatus = "rejected"
)

// Friend is a directed friend-request record with mutable status. Friendship
// itself is bidirectional: two users are friends when an accepted record
// exists between them in either direction.
type Friend struct {
	ID               uint         `gorm:"primaryKey"`
	RequestingUserID uint         `gorm:"not null;index;uniqueIndex:idx_friends_pair"`
	TargetUserID     uint         `gorm:"not null;index;uniqueIndex:idx_friends_pair"`
	Status           FriendStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	RequestingUser User `gorm:"foreignKey:RequestingUserID;constraint:OnDelete:CASCADE;"`
	TargetUser     User `gorm:"foreignKey:TargetUserID;constraint:OnDelete:CASCADE;"`
}
