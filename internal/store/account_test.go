package store

import (
	"testing"

	"oishii/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegisterSeedsProfileAndDefaultLists(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountStore(db)

	user, err := accounts.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	var profiles int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&profiles).Error)
	assert.EqualValues(t, 1, profiles)

	var lists []models.List
	require.NoError(t, db.Where("owner_id = ?", user.ID).Order("title").Find(&lists).Error)
	require.Len(t, lists, 2)
	assert.Equal(t, models.ListTitleSaved, lists[0].Title)
	assert.Equal(t, models.ListTitleVisited, lists[1].Title)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountStore(db)

	_, err := accounts.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = accounts.Register("alice", "other@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = accounts.Register("alice2", "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterMapsConcurrentDuplicate(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountStore(db)

	// Slip a conflicting row in after the uniqueness lookup but before the
	// insert, the way a concurrent registration would.
	var raced bool
	err := db.Callback().Create().Before("gorm:create").Register("test:duplicate_writer", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "users" {
			return
		}
		raced = true
		seed := tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)",
			"alice", "alice@example.com", "hash",
		)
		require.NoError(t, seed.Error)
	})
	require.NoError(t, err)

	_, err = accounts.Register("alice", "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountStore(db)

	user, err := accounts.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	byUsername, err := accounts.Authenticate("alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	byEmail, err := accounts.Authenticate("alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = accounts.Authenticate("alice", "wrong-password")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = accounts.Authenticate("nobody", "password123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountStore(db)
	user := createUser(t, db, "alice")

	spot := createRestaurant(t, db, "Taberna")

	updated, err := accounts.UpdateProfile(user.ID, ProfileUpdate{
		FirstName:        "Alice",
		DisplayName:      "alice in town",
		Bio:              "eats out a lot",
		FavoriteCuisines: []string{"japanese", "portuguese"},
		FavoriteSpotIDs:  []uint{spot.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.FirstName)
	require.NotNil(t, updated.Profile)
	assert.Equal(t, "alice in town", updated.Profile.DisplayName)
	assert.Equal(t, "japanese,portuguese", updated.Profile.FavoriteCuisines)
	require.Len(t, updated.Profile.FavoriteSpots, 1)
	assert.Equal(t, spot.ID, updated.Profile.FavoriteSpots[0].ID)
}

func TestUpdateProfileCapsFavoriteSpots(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountStore(db)
	user := createUser(t, db, "alice")

	ids := make([]uint, 0, models.MaxFavoriteSpots+1)
	for i := 0; i <= models.MaxFavoriteSpots; i++ {
		ids = append(ids, createRestaurant(t, db, "Spot").ID)
	}

	_, err := accounts.UpdateProfile(user.ID, ProfileUpdate{FavoriteSpotIDs: ids})
	assert.ErrorIs(t, err, ErrTooManySpots)
}
