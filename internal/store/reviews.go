package store

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"

	"oishii/backend/internal/models"
	"oishii/backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewStore owns reviews and their photos. It is constructed with the list
// store and the feed store it must update: every successful save runs the
// visited-list and activity side effects synchronously, inside the same
// transaction as the review write.
type ReviewStore struct {
	db         *gorm.DB
	lists      *ListStore
	activities *FeedStore
	media      storage.Storage
}

func NewReviewStore(db *gorm.DB, lists *ListStore, activities *FeedStore, media storage.Storage) *ReviewStore {
	return &ReviewStore{db: db, lists: lists, activities: activities, media: media}
}

// ReviewInput carries the ratings and text of a review submission.
type ReviewInput struct {
	OverallRating int
	Food          *int
	Service       *int
	Value         *int
	Atmosphere    *int
	Text          string
	WouldGoAgain  *bool
}

func validRating(r int) bool { return r >= 1 && r <= 5 }

func (in ReviewInput) validate() error {
	if !validRating(in.OverallRating) {
		return ErrInvalidRating
	}
	for _, sub := range []*int{in.Food, in.Service, in.Value, in.Atmosphere} {
		if sub != nil && !validRating(*sub) {
			return ErrInvalidRating
		}
	}
	return nil
}

// UpsertReview saves one review per (user, restaurant): the first submission
// creates, later ones update in place. The unique index backs this up against
// concurrent submissions. After the save the visited pin and the feed
// activity are brought up to date.
func (s *ReviewStore) UpsertReview(userID, restaurantID uint, in ReviewInput) (*models.Review, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).First(&review).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			review = models.Review{UserID: userID, RestaurantID: restaurantID}
			applyReview(&review, in)
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&review).Error; err != nil {
				return err
			}
			if review.ID == 0 {
				// Lost a race with a concurrent first submission; fall back
				// to updating the row that won.
				if err := tx.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
					First(&review).Error; err != nil {
					return err
				}
				applyReview(&review, in)
				if err := tx.Save(&review).Error; err != nil {
					return err
				}
			}
		case err != nil:
			return err
		default:
			applyReview(&review, in)
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
		}

		if err := s.lists.EnsureVisitedPin(tx, userID, restaurantID); err != nil {
			return err
		}
		return s.activities.UpsertReviewActivity(tx, userID, restaurantID, review.ID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func applyReview(r *models.Review, in ReviewInput) {
	r.OverallRating = in.OverallRating
	r.Food = in.Food
	r.Service = in.Service
	r.Value = in.Value
	r.Atmosphere = in.Atmosphere
	r.Text = in.Text
	r.WouldGoAgain = in.WouldGoAgain
}

// GetReview fetches the user's review of a restaurant, if any.
func (s *ReviewStore) GetReview(userID, restaurantID uint) (*models.Review, error) {
	var review models.Review
	err := s.db.Preload("Photos").
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// MyReviews returns the user's most recent reviews.
func (s *ReviewStore) MyReviews(userID uint, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Preload("Restaurant").Preload("Photos").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

// RestaurantReviews returns reviews of a restaurant written by the viewer and
// the people they follow, newest first.
func (s *ReviewStore) RestaurantReviews(viewerID, restaurantID uint) ([]models.Review, error) {
	var followeeIDs []uint
	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ?", viewerID).
		Pluck("followee_id", &followeeIDs).Error
	if err != nil {
		return nil, err
	}
	audience := append(followeeIDs, viewerID)

	var reviews []models.Review
	err = s.db.Preload("User").Preload("User.Profile").Preload("Photos").
		Where("restaurant_id = ? AND user_id IN ?", restaurantID, audience).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// SavePhoto stores an uploaded image and attaches it to the user's review.
func (s *ReviewStore) SavePhoto(ctx context.Context, userID, reviewID uint, filename string, r io.Reader, size int64, contentType string) (*models.Photo, error) {
	var review models.Review
	err := s.db.Where("id = ? AND user_id = ?", reviewID, userID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	objectKey := uuid.New().String() + filepath.Ext(filename)
	url, err := s.media.Save(ctx, objectKey, r, size, contentType)
	if err != nil {
		return nil, err
	}

	photo := models.Photo{ReviewID: review.ID, ObjectKey: objectKey, URL: url}
	if err := s.db.Create(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// DeletePhoto removes a photo; only the review's owner may do so.
func (s *ReviewStore) DeletePhoto(ctx context.Context, userID, photoID uint) error {
	var photo models.Photo
	err := s.db.Joins("JOIN reviews ON reviews.id = photos.review_id").
		Where("photos.id = ? AND reviews.user_id = ?", photoID, userID).
		First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.db.Delete(&photo).Error; err != nil {
		return err
	}
	if err := s.media.Delete(ctx, photo.ObjectKey); err != nil {
		// The DB row is gone; an orphaned file is not worth failing the
		// request over.
		log.Printf("delete media object %s: %v", photo.ObjectKey, err)
	}
	return nil
}
