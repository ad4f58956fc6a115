package store

import (
	"errors"
	"strings"

	"oishii/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountStore handles registration, login and profile updates. Registration
// seeds the per-user records the rest of the app relies on: one profile and
// the two default lists.
type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// Register creates a user together with their profile and default lists in a
// single transaction.
func (s *AccountStore) Register(username, email, password string) (*models.User, error) {
	var existing models.User
	err := s.db.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Profile{UserID: user.ID}).Error; err != nil {
			return err
		}
		for _, title := range []string{models.ListTitleVisited, models.ListTitleSaved} {
			list := models.List{OwnerID: user.ID, Title: title, IsPublic: false}
			if err := tx.Create(&list).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// A concurrent registration can slip between the lookup above and
		// the insert; the unique constraint catches it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate looks a user up by username or email and checks the password.
func (s *AccountStore) Authenticate(login, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ? OR email = ?", login, login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrNotFound
	}
	return &user, nil
}

// GetUser fetches a user with their profile preloaded.
func (s *AccountStore) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Profile").Preload("Profile.FavoriteSpots").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FirstName        string
	LastName         string
	Email            string
	DisplayName      string
	Bio              string
	Location         string
	Website          string
	FavoriteCuisines []string
	FavoriteSpotIDs  []uint
}

// UpdateProfile edits the user row and the profile row together. Favorite
// spots are capped at models.MaxFavoriteSpots.
func (s *AccountStore) UpdateProfile(userID uint, in ProfileUpdate) (*models.User, error) {
	if len(in.FavoriteSpotIDs) > models.MaxFavoriteSpots {
		return nil, ErrTooManySpots
	}

	var user models.User
	if err := s.db.Preload("Profile").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		user.FirstName = in.FirstName
		user.LastName = in.LastName
		if in.Email != "" {
			user.Email = in.Email
		}
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		profile := user.Profile
		if profile == nil {
			profile = &models.Profile{UserID: user.ID}
		}
		profile.DisplayName = in.DisplayName
		profile.Bio = in.Bio
		profile.Location = in.Location
		profile.Website = in.Website
		profile.FavoriteCuisines = strings.Join(in.FavoriteCuisines, ",")
		if err := tx.Save(profile).Error; err != nil {
			return err
		}

		var spots []*models.Restaurant
		if len(in.FavoriteSpotIDs) > 0 {
			if err := tx.Find(&spots, in.FavoriteSpotIDs).Error; err != nil {
				return err
			}
		}
		return tx.Model(profile).Association("FavoriteSpots").Replace(spots)
	})
	if err != nil {
		return nil, err
	}
	return s.GetUser(userID)
}
