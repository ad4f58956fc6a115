package store

import (
	"testing"

	"oishii/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateListValidation(t *testing.T) {
	db := newTestDB(t)
	lists := NewListStore(db)
	user := createUser(t, db, "alice")

	list, err := lists.CreateList(user.ID, "Date night", false)
	require.NoError(t, err)
	assert.Equal(t, "Date night", list.Title)

	_, err = lists.CreateList(user.ID, "Date night", true)
	assert.ErrorIs(t, err, ErrDuplicateTitle)

	_, err = lists.CreateList(user.ID, "", false)
	assert.ErrorIs(t, err, ErrEmptyTitle)

	// Another user may reuse the title.
	bob := createUser(t, db, "bob")
	_, err = lists.CreateList(bob.ID, "Date night", false)
	assert.NoError(t, err)
}

func TestUpdateList(t *testing.T) {
	db := newTestDB(t)
	lists := NewListStore(db)
	user := createUser(t, db, "alice")

	list, err := lists.CreateList(user.ID, "Brunch", false)
	require.NoError(t, err)
	other, err := lists.CreateList(user.ID, "Dinner", false)
	require.NoError(t, err)

	// Keeping the current title is fine.
	updated, err := lists.UpdateList(user.ID, list.ID, "Brunch", true)
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)

	_, err = lists.UpdateList(user.ID, list.ID, other.Title, false)
	assert.ErrorIs(t, err, ErrDuplicateTitle)

	bob := createUser(t, db, "bob")
	_, err = lists.UpdateList(bob.ID, list.ID, "Stolen", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteListProtectsDefaults(t *testing.T) {
	db := newTestDB(t)
	lists := NewListStore(db)
	user := createUser(t, db, "alice")

	var visited models.List
	require.NoError(t, db.Where("owner_id = ? AND title = ?", user.ID, models.ListTitleVisited).First(&visited).Error)

	err := lists.DeleteList(user.ID, visited.ID)
	assert.ErrorIs(t, err, ErrProtectedList)

	custom, err := lists.CreateList(user.ID, "Road trip", false)
	require.NoError(t, err)
	require.NoError(t, lists.DeleteList(user.ID, custom.ID))

	// The title is free again after a delete.
	_, err = lists.CreateList(user.ID, "Road trip", false)
	assert.NoError(t, err)
}

func TestTogglePinRoundTrip(t *testing.T) {
	db := newTestDB(t)
	lists := NewListStore(db)
	user := createUser(t, db, "alice")
	restaurant := createRestaurant(t, db, "Taberna")

	pinned, err := lists.TogglePin(user.ID, restaurant.ID)
	require.NoError(t, err)
	assert.True(t, pinned)

	pinned, err = lists.TogglePin(user.ID, restaurant.ID)
	require.NoError(t, err)
	assert.False(t, pinned)

	var count int64
	require.NoError(t, db.Model(&models.Pin{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDefaultPinUniquePerRestaurant(t *testing.T) {
	db := newTestDB(t)
	lists := NewListStore(db)
	user := createUser(t, db, "alice")
	restaurant := createRestaurant(t, db, "Taberna")

	// NULLs are distinct in the composite index, so the listless pin relies
	// on its own partial index.
	require.NoError(t, db.Create(&models.Pin{UserID: user.ID, RestaurantID: restaurant.ID}).Error)
	err := db.Create(&models.Pin{UserID: user.ID, RestaurantID: restaurant.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, db.Model(&models.Pin{}).
		Where("user_id = ? AND restaurant_id = ? AND list_id IS NULL", user.ID, restaurant.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Toggling still round-trips over the constrained row.
	pinned, err := lists.TogglePin(user.ID, restaurant.ID)
	require.NoError(t, err)
	assert.False(t, pinned)
}

func TestToggleInList(t *testing.T) {
	db := newTestDB(t)
	lists := NewListStore(db)
	user := createUser(t, db, "alice")
	restaurant := createRestaurant(t, db, "Taberna")

	list, err := lists.CreateList(user.ID, "Brunch", false)
	require.NoError(t, err)

	present, err := lists.ToggleInList(user.ID, list.ID, restaurant.ID)
	require.NoError(t, err)
	assert.True(t, present)

	present, err = lists.ToggleInList(user.ID, list.ID, restaurant.ID)
	require.NoError(t, err)
	assert.False(t, present)

	// Someone else's list reads as not-found.
	bob := createUser(t, db, "bob")
	_, err = lists.ToggleInList(bob.ID, list.ID, restaurant.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMultiListPins(t *testing.T) {
	db := newTestDB(t)
	lists := NewListStore(db)
	user := createUser(t, db, "alice")
	restaurant := createRestaurant(t, db, "Taberna")

	brunch, err := lists.CreateList(user.ID, "Brunch", false)
	require.NoError(t, err)
	dinner, err := lists.CreateList(user.ID, "Dinner", false)
	require.NoError(t, err)

	_, err = lists.ToggleInList(user.ID, brunch.ID, restaurant.ID)
	require.NoError(t, err)
	_, err = lists.ToggleInList(user.ID, dinner.ID, restaurant.ID)
	require.NoError(t, err)

	myLists, present, err := lists.ListsContaining(user.ID, restaurant.ID)
	require.NoError(t, err)
	assert.Len(t, myLists, 4) // two defaults plus the two created here
	assert.True(t, present[brunch.ID])
	assert.True(t, present[dinner.ID])

	pinnedAnywhere, err := lists.PinnedRestaurantIDs(user.ID, []uint{restaurant.ID})
	require.NoError(t, err)
	assert.True(t, pinnedAnywhere[restaurant.ID])
}

func TestDeletePin(t *testing.T) {
	db := newTestDB(t)
	lists := NewListStore(db)
	user := createUser(t, db, "alice")
	restaurant := createRestaurant(t, db, "Taberna")

	list, err := lists.CreateList(user.ID, "Brunch", false)
	require.NoError(t, err)
	_, err = lists.ToggleInList(user.ID, list.ID, restaurant.ID)
	require.NoError(t, err)

	pins, err := lists.ListPins(user.ID, list.ID)
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, restaurant.ID, pins[0].Restaurant.ID)

	require.NoError(t, lists.DeletePin(user.ID, list.ID, pins[0].ID))
	err = lists.DeletePin(user.ID, list.ID, pins[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
