package store

import (
	"errors"

	"oishii/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SocialStore owns the follow edges and the friend-request state machine.
type SocialStore struct {
	db *gorm.DB
}

func NewSocialStore(db *gorm.DB) *SocialStore {
	return &SocialStore{db: db}
}

// ToggleFollow follows or unfollows a user and reports the resulting state.
// Self-follows are rejected here; the follows table itself does not forbid
// them.
func (s *SocialStore) ToggleFollow(followerID, followeeID uint) (following bool, err error) {
	if followerID == followeeID {
		return false, ErrSelfAction
	}
	if err := s.userExists(followeeID); err != nil {
		return false, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			following = false
			return nil
		}
		following = true
		follow := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
	})
	return following, err
}

// IsFollowing reports whether follower follows followee.
func (s *SocialStore) IsFollowing(followerID, followeeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

// FolloweeIDs returns the IDs of everyone the user follows.
func (s *SocialStore) FolloweeIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &ids).Error
	return ids, err
}

// FollowCounts returns how many users the user follows and is followed by.
func (s *SocialStore) FollowCounts(userID uint) (following, followers int64, err error) {
	if err = s.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&following).Error; err != nil {
		return 0, 0, err
	}
	err = s.db.Model(&models.Follow{}).Where("followee_id = ?", userID).Count(&followers).Error
	return following, followers, err
}

// SendFriendRequest creates a pending request from requester to target. A
// request is only created when no record exists between the two users in
// either direction.
func (s *SocialStore) SendFriendRequest(requesterID, targetID uint) (*models.Friend, error) {
	if requesterID == targetID {
		return nil, ErrSelfAction
	}
	if err := s.userExists(targetID); err != nil {
		return nil, err
	}

	var existing models.Friend
	err := s.db.Where(
		"(requesting_user_id = ? AND target_user_id = ?) OR (requesting_user_id = ? AND target_user_id = ?)",
		requesterID, targetID, targetID, requesterID,
	).First(&existing).Error
	if err == nil {
		return nil, ErrRelationExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	friend := models.Friend{
		RequestingUserID: requesterID,
		TargetUserID:     targetID,
		Status:           models.FriendPending,
	}
	if err := s.db.Create(&friend).Error; err != nil {
		return nil, err
	}
	return &friend, nil
}

// AcceptFriendRequest moves a pending request addressed to userID into the
// accepted state. Only the request's target may accept.
func (s *SocialStore) AcceptFriendRequest(userID, requesterID uint) error {
	return s.answerRequest(userID, requesterID, models.FriendAccepted)
}

// RejectFriendRequest moves a pending request addressed to userID into the
// rejected state. The record is kept.
func (s *SocialStore) RejectFriendRequest(userID, requesterID uint) error {
	return s.answerRequest(userID, requesterID, models.FriendRejected)
}

func (s *SocialStore) answerRequest(userID, requesterID uint, status models.FriendStatus) error {
	if userID == requesterID {
		return ErrSelfAction
	}
	res := s.db.Model(&models.Friend{}).
		Where("requesting_user_id = ? AND target_user_id = ? AND status = ?",
			requesterID, userID, models.FriendPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelFriendRequest deletes a pending request the user sent.
func (s *SocialStore) CancelFriendRequest(userID, targetID uint) error {
	if userID == targetID {
		return ErrSelfAction
	}
	res := s.db.Where("requesting_user_id = ? AND target_user_id = ? AND status = ?",
		userID, targetID, models.FriendPending).
		Delete(&models.Friend{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFriend removes an accepted friendship; either party may do so.
func (s *SocialStore) DeleteFriend(userID, otherID uint) error {
	if userID == otherID {
		return ErrSelfAction
	}
	res := s.db.Where(
		"((requesting_user_id = ? AND target_user_id = ?) OR (requesting_user_id = ? AND target_user_id = ?)) AND status = ?",
		userID, otherID, otherID, userID, models.FriendAccepted,
	).Delete(&models.Friend{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AreFriends reports whether an accepted record exists between the two users
// in either direction.
func (s *SocialStore) AreFriends(a, b uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Friend{}).
		Where(
			"((requesting_user_id = ? AND target_user_id = ?) OR (requesting_user_id = ? AND target_user_id = ?)) AND status = ?",
			a, b, b, a, models.FriendAccepted,
		).Count(&count).Error
	return count > 0, err
}

// Relationship describes where a counterpart stands relative to the viewer,
// for annotating people-search results.
type Relationship struct {
	Status      models.FriendStatus `json:"status"`
	IsRequester bool                `json:"is_requester"` // true when the viewer sent the request
}

// Relationships returns the viewer's friend relation, if any, for each of the
// given users.
func (s *SocialStore) Relationships(viewerID uint, userIDs []uint) (map[uint]Relationship, error) {
	out := make(map[uint]Relationship)
	if len(userIDs) == 0 {
		return out, nil
	}

	var friends []models.Friend
	err := s.db.Where(
		"(requesting_user_id = ? AND target_user_id IN ?) OR (requesting_user_id IN ? AND target_user_id = ?)",
		viewerID, userIDs, userIDs, viewerID,
	).Find(&friends).Error
	if err != nil {
		return nil, err
	}

	for _, f := range friends {
		if f.RequestingUserID == viewerID {
			out[f.TargetUserID] = Relationship{Status: f.Status, IsRequester: true}
		} else {
			out[f.RequestingUserID] = Relationship{Status: f.Status, IsRequester: false}
		}
	}
	return out, nil
}

// FriendsOverview bundles what the friends page shows: accepted friends in
// both directions plus the pending queues.
type FriendsOverview struct {
	Friends  []models.Friend
	Outgoing []models.Friend
	Incoming []models.Friend
}

// Overview loads the user's friendships and pending requests.
func (s *SocialStore) Overview(userID uint) (*FriendsOverview, error) {
	var out FriendsOverview

	err := s.db.Preload("RequestingUser").Preload("RequestingUser.Profile").
		Preload("TargetUser").Preload("TargetUser.Profile").
		Where("(requesting_user_id = ? OR target_user_id = ?) AND status = ?",
			userID, userID, models.FriendAccepted).
		Order("updated_at DESC").
		Find(&out.Friends).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Preload("TargetUser").Preload("TargetUser.Profile").
		Where("requesting_user_id = ? AND status = ?", userID, models.FriendPending).
		Order("updated_at DESC").
		Find(&out.Outgoing).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Preload("RequestingUser").Preload("RequestingUser.Profile").
		Where("target_user_id = ? AND status = ?", userID, models.FriendPending).
		Order("updated_at DESC").
		Find(&out.Incoming).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SocialStore) userExists(userID uint) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
