package store

import (
	"testing"

	"oishii/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollow(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	following, err := social.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	is, err := social.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, is)

	// Following is one-directional.
	is, err = social.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, is)

	following, err = social.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	_, err = social.ToggleFollow(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfAction)

	_, err = social.ToggleFollow(alice.ID, bob.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowCounts(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	_, err := social.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = social.ToggleFollow(carol.ID, bob.ID)
	require.NoError(t, err)

	following, followers, err := social.FollowCounts(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, following)
	assert.EqualValues(t, 2, followers)
}

func TestFriendRequestMachine(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := social.SendFriendRequest(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfAction)

	friend, err := social.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendPending, friend.Status)

	// No duplicate request in either direction while one is open.
	_, err = social.SendFriendRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrRelationExists)
	_, err = social.SendFriendRequest(bob.ID, alice.ID)
	assert.ErrorIs(t, err, ErrRelationExists)

	// The requester cannot accept their own request.
	err = social.AcceptFriendRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, social.AcceptFriendRequest(bob.ID, alice.ID))

	friends, err := social.AreFriends(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, friends)
	friends, err = social.AreFriends(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, friends)

	// Accepting twice fails: the record is no longer pending.
	err = social.AcceptFriendRequest(bob.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRejectedRequestBlocksResend(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := social.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, social.RejectFriendRequest(bob.ID, alice.ID))

	friends, err := social.AreFriends(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, friends)

	// The rejected record stays and blocks another request.
	_, err = social.SendFriendRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrRelationExists)
}

func TestCancelFriendRequest(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := social.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	// Only the requester can cancel.
	err = social.CancelFriendRequest(bob.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, social.CancelFriendRequest(alice.ID, bob.ID))

	// After a cancel a new request may be sent.
	_, err = social.SendFriendRequest(bob.ID, alice.ID)
	assert.NoError(t, err)
}

func TestDeleteFriend(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := social.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	// Only accepted friendships can be removed.
	err = social.DeleteFriend(alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, social.AcceptFriendRequest(bob.ID, alice.ID))

	// Either party may remove the friendship.
	require.NoError(t, social.DeleteFriend(bob.ID, alice.ID))
	friends, err := social.AreFriends(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, friends)
}

func TestRelationshipsAnnotation(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	dave := createUser(t, db, "dave")

	_, err := social.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = social.SendFriendRequest(carol.ID, alice.ID)
	require.NoError(t, err)

	rels, err := social.Relationships(alice.ID, []uint{bob.ID, carol.ID, dave.ID})
	require.NoError(t, err)
	require.Len(t, rels, 2)

	assert.Equal(t, models.FriendPending, rels[bob.ID].Status)
	assert.True(t, rels[bob.ID].IsRequester)

	assert.Equal(t, models.FriendPending, rels[carol.ID].Status)
	assert.False(t, rels[carol.ID].IsRequester)

	_, ok := rels[dave.ID]
	assert.False(t, ok)
}

func TestFriendsOverview(t *testing.T) {
	db := newTestDB(t)
	social := NewSocialStore(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	dave := createUser(t, db, "dave")

	_, err := social.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, social.AcceptFriendRequest(bob.ID, alice.ID))

	_, err = social.SendFriendRequest(alice.ID, carol.ID)
	require.NoError(t, err)
	_, err = social.SendFriendRequest(dave.ID, alice.ID)
	require.NoError(t, err)

	overview, err := social.Overview(alice.ID)
	require.NoError(t, err)
	require.Len(t, overview.Friends, 1)
	assert.Equal(t, bob.ID, overview.Friends[0].TargetUserID)
	require.Len(t, overview.Outgoing, 1)
	assert.Equal(t, carol.ID, overview.Outgoing[0].TargetUserID)
	require.Len(t, overview.Incoming, 1)
	assert.Equal(t, dave.ID, overview.Incoming[0].RequestingUserID)
}
