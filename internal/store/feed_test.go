package store

import (
	"testing"
	"time"

	"oishii/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedReviewActivity(t *testing.T, db *gorm.DB, userID, restaurantID uint, in ReviewInput) models.Activity {
	t.Helper()
	reviews := newReviewStore(t, db)
	_, err := reviews.UpsertReview(userID, restaurantID, in)
	require.NoError(t, err)

	var activity models.Activity
	require.NoError(t, db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).First(&activity).Error)
	return activity
}

func TestFeedEmptyForNewUser(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedStore(db, NewNotifier(db, nil))
	alice := createUser(t, db, "alice")

	items, err := feed.Feed(alice.ID, 50)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFeedShowsFolloweeActivity(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedStore(db, NewNotifier(db, nil))
	social := NewSocialStore(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	taberna := createRestaurant(t, db, "Taberna")
	ramen := createRestaurant(t, db, "Ramen Ya")

	_, err := social.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)

	seedReviewActivity(t, db, bob.ID, taberna.ID, ReviewInput{OverallRating: 5, Text: "superb"})
	seedReviewActivity(t, db, carol.ID, ramen.ID, ReviewInput{OverallRating: 3})

	items, err := feed.Feed(alice.ID, 50)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, bob.ID, item.Activity.UserID)
	assert.Equal(t, taberna.ID, item.Activity.Restaurant.ID)
	require.NotNil(t, item.Activity.Review)
	assert.Equal(t, "superb", item.Activity.Review.Text)
	assert.Zero(t, item.CommentCount)
	assert.Zero(t, item.LikeCount)
	assert.False(t, item.LikedByMe)

	// The author sees their own activity too.
	items, err = feed.Feed(bob.ID, 50)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestToggleLikeAnnotatesFeed(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedStore(db, NewNotifier(db, nil))
	social := NewSocialStore(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	taberna := createRestaurant(t, db, "Taberna")

	_, err := social.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	activity := seedReviewActivity(t, db, bob.ID, taberna.ID, ReviewInput{OverallRating: 5})

	liked, err := feed.ToggleLike(alice.ID, activity.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	items, err := feed.Feed(alice.ID, 50)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].LikedByMe)
	assert.EqualValues(t, 1, items[0].LikeCount)

	liked, err = feed.ToggleLike(alice.ID, activity.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	items, err = feed.Feed(alice.ID, 50)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].LikedByMe)
	assert.Zero(t, items[0].LikeCount)

	_, err = feed.ToggleLike(alice.ID, activity.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentsOnFeed(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedStore(db, NewNotifier(db, nil))

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	taberna := createRestaurant(t, db, "Taberna")
	activity := seedReviewActivity(t, db, bob.ID, taberna.ID, ReviewInput{OverallRating: 5})

	_, err := feed.AddComment(alice.ID, activity.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	comment, err := feed.AddComment(alice.ID, activity.ID, "  looks great  ")
	require.NoError(t, err)
	assert.Equal(t, "looks great", comment.Text)

	liked, err := feed.ToggleCommentLike(bob.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	items, err := feed.Feed(bob.ID, 50)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Len(t, items[0].Comments, 1)
	assert.EqualValues(t, 1, items[0].CommentCount)
	assert.Equal(t, "looks great", items[0].Comments[0].Comment.Text)
	assert.EqualValues(t, 1, items[0].Comments[0].LikeCount)
	assert.True(t, items[0].Comments[0].LikedByMe)
}

func TestUserFeedFilters(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedStore(db, NewNotifier(db, nil))

	alice := createUser(t, db, "alice")
	taberna := createRestaurant(t, db, "Taberna")
	ramen := &models.Restaurant{Name: "Ramen Ya", City: "Tokyo"}
	require.NoError(t, db.Create(ramen).Error)

	seedReviewActivity(t, db, alice.ID, taberna.ID, ReviewInput{OverallRating: 5, WouldGoAgain: boolp(true)})
	seedReviewActivity(t, db, alice.ID, ramen.ID, ReviewInput{OverallRating: 2, WouldGoAgain: boolp(false)})

	all, err := feed.UserFeed(alice.ID, alice.ID, UserFeedFilters{}, 50)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	again, err := feed.UserFeed(alice.ID, alice.ID, UserFeedFilters{WouldGoAgain: boolp(true)}, 50)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, taberna.ID, again[0].Activity.RestaurantID)

	tokyo, err := feed.UserFeed(alice.ID, alice.ID, UserFeedFilters{City: "toky"}, 50)
	require.NoError(t, err)
	require.Len(t, tokyo, 1)
	assert.Equal(t, ramen.ID, tokyo[0].Activity.RestaurantID)

	future := time.Now().Add(time.Hour)
	none, err := feed.UserFeed(alice.ID, alice.ID, UserFeedFilters{Since: &future}, 50)
	require.NoError(t, err)
	assert.Empty(t, none)
}
