package store

import (
	"errors"

	"oishii/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListStore owns lists and pins.
type ListStore struct {
	db *gorm.DB
}

func NewListStore(db *gorm.DB) *ListStore {
	return &ListStore{db: db}
}

// CreateList creates a named list for owner. Empty and duplicate titles are
// validation errors, matching the (owner, title) unique constraint.
func (s *ListStore) CreateList(ownerID uint, title string, isPublic bool) (*models.List, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	var count int64
	if err := s.db.Model(&models.List{}).Where("owner_id = ? AND title = ?", ownerID, title).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateTitle
	}

	list := models.List{OwnerID: ownerID, Title: title, IsPublic: isPublic}
	if err := s.db.Create(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateList renames a list or changes its visibility, owner-scoped. Keeping
// the current title is allowed; colliding with another list of the same owner
// is not.
func (s *ListStore) UpdateList(ownerID, listID uint, title string, isPublic bool) (*models.List, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	list, err := s.GetList(ownerID, listID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.List{}).
		Where("owner_id = ? AND title = ? AND id <> ?", ownerID, title, listID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateTitle
	}

	list.Title = title
	list.IsPublic = isPublic
	if err := s.db.Save(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteList removes a custom list. The default lists are protected by a
// case-insensitive title check.
func (s *ListStore) DeleteList(ownerID, listID uint) error {
	list, err := s.GetList(ownerID, listID)
	if err != nil {
		return err
	}
	if models.IsReservedListTitle(list.Title) {
		return ErrProtectedList
	}
	return s.db.Delete(list).Error
}

// GetList fetches a list scoped to its owner. Someone else's list comes back
// as not-found.
func (s *ListStore) GetList(ownerID, listID uint) (*models.List, error) {
	var list models.List
	err := s.db.Where("id = ? AND owner_id = ?", listID, ownerID).First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// ListsForOwner returns all of a user's lists ordered by title.
func (s *ListStore) ListsForOwner(ownerID uint) ([]models.List, error) {
	var lists []models.List
	err := s.db.Where("owner_id = ?", ownerID).Order("title").Find(&lists).Error
	return lists, err
}

// PublicListsForOwner returns a user's lists as seen by someone else:
// everything when the viewer follows the owner, public lists only otherwise.
func (s *ListStore) PublicListsForOwner(ownerID uint, viewerFollows bool) ([]models.List, error) {
	q := s.db.Where("owner_id = ?", ownerID)
	if !viewerFollows {
		q = q.Where("is_public = ?", true)
	}
	var lists []models.List
	err := q.Order("title").Find(&lists).Error
	return lists, err
}

// ListPins returns the pins of a list with restaurants, newest first.
func (s *ListStore) ListPins(ownerID, listID uint) ([]models.Pin, error) {
	if _, err := s.GetList(ownerID, listID); err != nil {
		return nil, err
	}
	var pins []models.Pin
	err := s.db.Preload("Restaurant").
		Where("list_id = ?", listID).
		Order("created_at DESC").
		Find(&pins).Error
	return pins, err
}

// TogglePin creates or deletes the user's default (listless) pin for a
// restaurant and reports the resulting state.
func (s *ListStore) TogglePin(userID, restaurantID uint) (pinned bool, err error) {
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND restaurant_id = ? AND list_id IS NULL", userID, restaurantID).
			Delete(&models.Pin{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			pinned = false
			return nil
		}
		pinned = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Pin{UserID: userID, RestaurantID: restaurantID}).Error
	})
	return pinned, err
}

// ToggleInList adds or removes a restaurant from one of the user's lists and
// reports whether it is present afterwards. The list must belong to the user.
func (s *ListStore) ToggleInList(userID, listID, restaurantID uint) (present bool, err error) {
	if _, err := s.GetList(userID, listID); err != nil {
		return false, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND restaurant_id = ? AND list_id = ?", userID, restaurantID, listID).
			Delete(&models.Pin{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			present = false
			return nil
		}
		present = true
		pin := models.Pin{UserID: userID, RestaurantID: restaurantID, ListID: &listID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&pin).Error
	})
	return present, err
}

// DeletePin removes a single pin from a list, owner-scoped on both.
func (s *ListStore) DeletePin(ownerID, listID, pinID uint) error {
	if _, err := s.GetList(ownerID, listID); err != nil {
		return err
	}
	res := s.db.Where("id = ? AND list_id = ?", pinID, listID).Delete(&models.Pin{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListsContaining reports which of the user's lists hold the restaurant,
// for the list-picker UI.
func (s *ListStore) ListsContaining(userID, restaurantID uint) (lists []models.List, present map[uint]bool, err error) {
	lists, err = s.ListsForOwner(userID)
	if err != nil {
		return nil, nil, err
	}
	var pins []models.Pin
	err = s.db.Where("user_id = ? AND restaurant_id = ? AND list_id IS NOT NULL", userID, restaurantID).
		Find(&pins).Error
	if err != nil {
		return nil, nil, err
	}
	present = make(map[uint]bool, len(pins))
	for _, p := range pins {
		present[*p.ListID] = true
	}
	return lists, present, nil
}

// PinnedRestaurantIDs reports which of the given restaurants the user has
// pinned anywhere, for annotating catalog pages.
func (s *ListStore) PinnedRestaurantIDs(userID uint, restaurantIDs []uint) (map[uint]bool, error) {
	pinned := make(map[uint]bool)
	if len(restaurantIDs) == 0 {
		return pinned, nil
	}
	var pins []models.Pin
	err := s.db.Where("user_id = ? AND restaurant_id IN ?", userID, restaurantIDs).Find(&pins).Error
	if err != nil {
		return nil, err
	}
	for _, p := range pins {
		pinned[p.RestaurantID] = true
	}
	return pinned, nil
}

// EnsureVisitedPin runs inside the review save transaction. It get-or-creates
// the user's Visited list and makes sure the restaurant is pinned into it.
// Pins the user already holds in other lists are left untouched; the unique
// (user, restaurant, list) index makes the create side race-safe.
func (s *ListStore) EnsureVisitedPin(tx *gorm.DB, userID, restaurantID uint) error {
	visited := models.List{OwnerID: userID, Title: models.ListTitleVisited, IsPublic: false}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&visited).Error; err != nil {
		return err
	}
	if visited.ID == 0 {
		if err := tx.Where("owner_id = ? AND title = ?", userID, models.ListTitleVisited).
			First(&visited).Error; err != nil {
			return err
		}
	}

	pin := models.Pin{UserID: userID, RestaurantID: restaurantID, ListID: &visited.ID}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&pin).Error
}
