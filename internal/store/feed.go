package store

import (
	"errors"
	"strings"
	"time"

	"oishii/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FeedStore derives the chronological activity feed and owns the engagement
// writes (likes, comments, comment likes). Engagement writes hand the new
// record to the notification dispatcher.
type FeedStore struct {
	db     *gorm.DB
	notify *Notifier
}

func NewFeedStore(db *gorm.DB, notify *Notifier) *FeedStore {
	return &FeedStore{db: db, notify: notify}
}

// UpsertReviewActivity runs inside the review save transaction. The activity
// is keyed on (type, user, restaurant); editing a review repoints the
// existing entry at the review instead of duplicating it, and keeps its
// original feed position.
func (s *FeedStore) UpsertReviewActivity(tx *gorm.DB, userID, restaurantID, reviewID uint) error {
	activity := models.Activity{
		Type:         models.ActivityReview,
		UserID:       userID,
		RestaurantID: restaurantID,
		ReviewID:     &reviewID,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}, {Name: "user_id"}, {Name: "restaurant_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"review_id": reviewID}),
	}).Create(&activity).Error
}

// CommentItem is a comment annotated for the requesting user.
type CommentItem struct {
	Comment   models.Comment
	LikeCount int64
	LikedByMe bool
}

// FeedItem is an activity annotated for the requesting user.
type FeedItem struct {
	Activity     models.Activity
	CommentCount int64
	LikeCount    int64
	LikedByMe    bool
	Comments     []CommentItem
}

// Feed returns review activities from the user and everyone they follow,
// newest first. A user who follows nobody and has no activity gets an empty
// slice.
func (s *FeedStore) Feed(userID uint, limit int) ([]FeedItem, error) {
	var followeeIDs []uint
	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &followeeIDs).Error
	if err != nil {
		return nil, err
	}
	audience := append(followeeIDs, userID)

	q := s.db.Where("user_id IN ? AND type = ?", audience, models.ActivityReview)
	return s.loadFeed(q, userID, limit)
}

// UserFeedFilters narrow a profile's activity tab.
type UserFeedFilters struct {
	WouldGoAgain *bool
	Since        *time.Time
	City         string
}

// UserFeed returns one user's review activities, filtered, annotated for the
// viewer.
func (s *FeedStore) UserFeed(viewerID, userID uint, f UserFeedFilters, limit int) ([]FeedItem, error) {
	q := s.db.Where("activities.user_id = ? AND activities.type = ?", userID, models.ActivityReview)
	if f.WouldGoAgain != nil {
		q = q.Joins("JOIN reviews ON reviews.id = activities.review_id").
			Where("reviews.would_go_again = ?", *f.WouldGoAgain)
	}
	if f.Since != nil {
		q = q.Where("activities.created_at >= ?", *f.Since)
	}
	if f.City != "" {
		q = q.Joins("JOIN restaurants ON restaurants.id = activities.restaurant_id").
			Where("LOWER(restaurants.city) LIKE ?", "%"+strings.ToLower(f.City)+"%")
	}
	return s.loadFeed(q, viewerID, limit)
}

func (s *FeedStore) loadFeed(q *gorm.DB, viewerID uint, limit int) ([]FeedItem, error) {
	var activities []models.Activity
	err := q.
		Preload("User").Preload("User.Profile").
		Preload("Restaurant").
		Preload("Review").Preload("Review.Photos").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comments.User").Preload("Comments.User.Profile").
		Order("activities.created_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return []FeedItem{}, nil
	}

	activityIDs := make([]uint, 0, len(activities))
	var commentIDs []uint
	for _, a := range activities {
		activityIDs = append(activityIDs, a.ID)
		for _, c := range a.Comments {
			commentIDs = append(commentIDs, c.ID)
		}
	}

	likedByMe, likeCounts, err := s.likeStats(activityIDs, viewerID)
	if err != nil {
		return nil, err
	}
	commentLikedByMe, commentLikeCounts, err := s.commentLikeStats(commentIDs, viewerID)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(activities))
	for _, a := range activities {
		item := FeedItem{
			Activity:     a,
			CommentCount: int64(len(a.Comments)),
			LikeCount:    likeCounts[a.ID],
			LikedByMe:    likedByMe[a.ID],
		}
		for _, c := range a.Comments {
			item.Comments = append(item.Comments, CommentItem{
				Comment:   c,
				LikeCount: commentLikeCounts[c.ID],
				LikedByMe: commentLikedByMe[c.ID],
			})
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *FeedStore) likeStats(activityIDs []uint, viewerID uint) (likedByMe map[uint]bool, counts map[uint]int64, err error) {
	likedByMe = make(map[uint]bool)
	counts = make(map[uint]int64)

	var mine []models.Like
	if err := s.db.Where("user_id = ? AND activity_id IN ?", viewerID, activityIDs).Find(&mine).Error; err != nil {
		return nil, nil, err
	}
	for _, l := range mine {
		likedByMe[l.ActivityID] = true
	}

	type likeCount struct {
		ActivityID uint
		N          int64
	}
	var rows []likeCount
	err = s.db.Model(&models.Like{}).
		Select("activity_id, COUNT(*) AS n").
		Where("activity_id IN ?", activityIDs).
		Group("activity_id").
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		counts[r.ActivityID] = r.N
	}
	return likedByMe, counts, nil
}

func (s *FeedStore) commentLikeStats(commentIDs []uint, viewerID uint) (likedByMe map[uint]bool, counts map[uint]int64, err error) {
	likedByMe = make(map[uint]bool)
	counts = make(map[uint]int64)
	if len(commentIDs) == 0 {
		return likedByMe, counts, nil
	}

	var mine []models.CommentLike
	if err := s.db.Where("user_id = ? AND comment_id IN ?", viewerID, commentIDs).Find(&mine).Error; err != nil {
		return nil, nil, err
	}
	for _, l := range mine {
		likedByMe[l.CommentID] = true
	}

	type likeCount struct {
		CommentID uint
		N         int64
	}
	var rows []likeCount
	err = s.db.Model(&models.CommentLike{}).
		Select("comment_id, COUNT(*) AS n").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		counts[r.CommentID] = r.N
	}
	return likedByMe, counts, nil
}

// ToggleLike likes or unlikes an activity. A fresh like is handed to the
// notification dispatcher.
func (s *FeedStore) ToggleLike(userID, activityID uint) (liked bool, err error) {
	var activity models.Activity
	if err := s.db.First(&activity, activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	var like models.Like
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND activity_id = ?", userID, activityID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		liked = true
		like = models.Like{UserID: userID, ActivityID: activityID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
			return err
		}
		if like.ID == 0 {
			return nil
		}
		return s.notify.LikeCreated(tx, &like, &activity)
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// ToggleCommentLike likes or unlikes a comment. A fresh like is handed to the
// notification dispatcher.
func (s *FeedStore) ToggleCommentLike(userID, commentID uint) (liked bool, err error) {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	var like models.CommentLike
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&models.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		liked = true
		like = models.CommentLike{UserID: userID, CommentID: commentID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
			return err
		}
		if like.ID == 0 {
			return nil
		}
		return s.notify.CommentLikeCreated(tx, &like, &comment)
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// AddComment appends a comment to an activity and notifies the activity's
// owner.
func (s *FeedStore) AddComment(userID, activityID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	var activity models.Activity
	if err := s.db.First(&activity, activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := models.Comment{UserID: userID, ActivityID: activityID, Text: text}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return s.notify.CommentCreated(tx, &comment, &activity)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
