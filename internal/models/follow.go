package models

import "time"

// Follow is a one-directional social subscription. The pair is unique; the
// no-self-follow rule is enforced in the social store, not here.
type Follow struct {
	ID         uint `gorm:"primaryKey"`
	FollowerID uint `gorm:"not null;index;uniqueIndex:idx_follows_pair"`
	FolloweeID uint `gorm:"not null;index;uniqueIndex:idx_follows_pair"`
	CreatedAt  time.Time

	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE;"`
	Followee User `gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE;"`
}
