package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"oishii/backend/internal/store"

	"github.com/gin-gonic/gin"
)

const defaultFeedLimit = 50

// region --- DTOs ---

// CommentInput defines the body of a new comment.
type CommentInput struct {
	Text string `json:"text" binding:"required" example:"Looks amazing!"`
}

// CommentResponse describes a comment annotated for the viewer.
type CommentResponse struct {
	ID        uint          `json:"id"`
	Text      string        `json:"text"`
	CreatedAt time.Time     `json:"created_at"`
	Author    *ReviewAuthor `json:"author,omitempty"`
	LikeCount int64         `json:"like_count"`
	LikedByMe bool          `json:"liked_by_me"`
}

// FeedItemResponse describes one activity annotated for the viewer.
type FeedItemResponse struct {
	ID           uint               `json:"id"`
	Type         string             `json:"type"`
	CreatedAt    time.Time          `json:"created_at"`
	Author       *ReviewAuthor      `json:"author,omitempty"`
	Restaurant   RestaurantResponse `json:"restaurant"`
	Review       *ReviewResponse    `json:"review,omitempty"`
	LikeCount    int64              `json:"like_count"`
	LikedByMe    bool               `json:"liked_by_me"`
	CommentCount int64              `json:"comment_count"`
	Comments     []CommentResponse  `json:"comments"`
}

func newFeedItemResponse(item store.FeedItem) FeedItemResponse {
	a := item.Activity
	resp := FeedItemResponse{
		ID:           a.ID,
		Type:         a.Type,
		CreatedAt:    a.CreatedAt,
		Restaurant:   newRestaurantResponse(a.Restaurant, false),
		LikeCount:    item.LikeCount,
		LikedByMe:    item.LikedByMe,
		CommentCount: item.CommentCount,
		Comments:     []CommentResponse{},
	}
	if a.User.ID != 0 {
		resp.Author = newReviewAuthor(a.User)
	}
	if a.Review != nil {
		review := newReviewResponse(*a.Review)
		resp.Review = &review
	}
	for _, c := range item.Comments {
		comment := CommentResponse{
			ID:        c.Comment.ID,
			Text:      c.Comment.Text,
			CreatedAt: c.Comment.CreatedAt,
			LikeCount: c.LikeCount,
			LikedByMe: c.LikedByMe,
		}
		if c.Comment.User.ID != 0 {
			comment.Author = newReviewAuthor(c.Comment.User)
		}
		resp.Comments = append(resp.Comments, comment)
	}
	return resp
}

// endregion

func feedLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultFeedLimit)))
	if err != nil || limit < 1 || limit > 200 {
		return defaultFeedLimit
	}
	return limit
}

// region --- Feed Handlers ---

// GetFeed godoc
// @Summary      Get the activity feed
// @Description  Returns recent review activities from the current user and everyone they follow, newest first.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max items" default(50)
// @Success      200 {array} FeedItemResponse
// @Router       /feed [get]
func GetFeed(c *gin.Context) {
	items, err := feed.Feed(currentUserID(c), feedLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}

	responses := make([]FeedItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, newFeedItemResponse(item))
	}
	c.JSON(http.StatusOK, responses)
}

// GetUserActivities godoc
// @Summary      Get a user's activities
// @Description  Returns one user's review activities, optionally filtered by would-go-again, a date window (week, month or year) and a city substring.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        id             path  int    true  "User ID"
// @Param        would_go_again query string false "yes or no"
// @Param        date           query string false "week, month or year"
// @Param        city           query string false "City substring"
// @Param        limit          query int    false "Max items" default(50)
// @Success      200 {array} FeedItemResponse
// @Failure      400 {object} ErrorResponse "Invalid filter"
// @Router       /users/{id}/activities [get]
func GetUserActivities(c *gin.Context) {
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var filters store.UserFeedFilters
	switch c.Query("would_go_again") {
	case "":
	case "yes":
		yes := true
		filters.WouldGoAgain = &yes
	case "no":
		no := false
		filters.WouldGoAgain = &no
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "would_go_again must be yes or no"})
		return
	}

	switch c.Query("date") {
	case "":
	case "week":
		since := time.Now().AddDate(0, 0, -7)
		filters.Since = &since
	case "month":
		since := time.Now().AddDate(0, -1, 0)
		filters.Since = &since
	case "year":
		since := time.Now().AddDate(-1, 0, 0)
		filters.Since = &since
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be week, month or year"})
		return
	}

	filters.City = strings.TrimSpace(c.Query("city"))

	items, err := feed.UserFeed(currentUserID(c), uint(targetUserID), filters, feedLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activities"})
		return
	}

	responses := make([]FeedItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, newFeedItemResponse(item))
	}
	c.JSON(http.StatusOK, responses)
}

// ToggleLike godoc
// @Summary      Like or unlike an activity
// @Description  Toggles the current user's like on a feed activity.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Activity ID"
// @Success      200 {object} map[string]bool "{"liked": true}"
// @Failure      404 {object} ErrorResponse "Activity not found"
// @Router       /activities/{id}/like [post]
func ToggleLike(c *gin.Context) {
	activityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity ID"})
		return
	}

	liked, err := feed.ToggleLike(currentUserID(c), uint(activityID))
	if err != nil {
		fail(c, err, "Failed to toggle like")
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// AddComment godoc
// @Summary      Comment on an activity
// @Description  Adds a comment to a feed activity.
// @Tags         feed
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int          true "Activity ID"
// @Param        input body CommentInput true "Comment"
// @Success      201 {object} CommentResponse
// @Failure      400 {object} ErrorResponse "Empty comment"
// @Failure      404 {object} ErrorResponse "Activity not found"
// @Router       /activities/{id}/comments [post]
func AddComment(c *gin.Context) {
	activityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity ID"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := feed.AddComment(currentUserID(c), uint(activityID), input.Text)
	if err != nil {
		fail(c, err, "Failed to add comment")
		return
	}
	c.JSON(http.StatusCreated, CommentResponse{
		ID:        comment.ID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	})
}

// ToggleCommentLike godoc
// @Summary      Like or unlike a comment
// @Description  Toggles the current user's like on a comment.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Success      200 {object} map[string]bool "{"liked": true}"
// @Failure      404 {object} ErrorResponse "Comment not found"
// @Router       /comments/{id}/like [post]
func ToggleCommentLike(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	liked, err := feed.ToggleCommentLike(currentUserID(c), uint(commentID))
	if err != nil {
		fail(c, err, "Failed to toggle like")
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// endregion
