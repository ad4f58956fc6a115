package handler

import (
	"net/http"
	"strconv"
	"time"

	"oishii/backend/internal/models"
	"oishii/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// PhotoResponse describes one uploaded review photo.
type PhotoResponse struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

// ReviewAuthor is the compact author block attached to reviews and feed items.
type ReviewAuthor struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// ReviewResponse describes a saved review.
type ReviewResponse struct {
	ID            uint            `json:"id"`
	RestaurantID  uint            `json:"restaurant_id"`
	OverallRating int             `json:"overall_rating"`
	Food          *int            `json:"food,omitempty"`
	Service       *int            `json:"service,omitempty"`
	Value         *int            `json:"value,omitempty"`
	Atmosphere    *int            `json:"atmosphere,omitempty"`
	Text          string          `json:"text,omitempty"`
	WouldGoAgain  *bool           `json:"would_go_again,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Author        *ReviewAuthor   `json:"author,omitempty"`
	Photos        []PhotoResponse `json:"photos"`
}

// MyReviewResponse adds the restaurant for the "my reviews" page.
type MyReviewResponse struct {
	ReviewResponse
	Restaurant RestaurantResponse `json:"restaurant"`
}

func newReviewAuthor(u models.User) *ReviewAuthor {
	author := ReviewAuthor{ID: u.ID, Username: u.Username}
	if u.Profile != nil {
		author.DisplayName = u.Profile.DisplayName
		author.AvatarURL = u.Profile.AvatarURL
	}
	return &author
}

func newReviewResponse(r models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:            r.ID,
		RestaurantID:  r.RestaurantID,
		OverallRating: r.OverallRating,
		Food:          r.Food,
		Service:       r.Service,
		Value:         r.Value,
		Atmosphere:    r.Atmosphere,
		Text:          r.Text,
		WouldGoAgain:  r.WouldGoAgain,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Photos:        []PhotoResponse{},
	}
	if r.User.ID != 0 {
		resp.Author = newReviewAuthor(r.User)
	}
	for _, p := range r.Photos {
		resp.Photos = append(resp.Photos, PhotoResponse{ID: p.ID, URL: p.URL})
	}
	return resp
}

// endregion

// region --- Helpers ---

func formInt(c *gin.Context, key string) (*int, bool) {
	raw := c.PostForm(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value for " + key})
		return nil, false
	}
	return &v, true
}

func formBool(c *gin.Context, key string) (*bool, bool) {
	raw := c.PostForm(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value for " + key})
		return nil, false
	}
	return &v, true
}

// endregion

// region --- Review Handlers ---

// UpsertReview godoc
// @Summary      Create or update a review
// @Description  Saves the current user's review of a restaurant. One review per restaurant per user; a second submission updates the first. Accepts multipart form data with optional photo uploads.
// @Tags         reviews
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        restaurant_id  formData int    true  "Restaurant ID"
// @Param        overall_rating formData int    true  "Overall rating 1-5"
// @Param        food           formData int    false "Food rating 1-5"
// @Param        service        formData int    false "Service rating 1-5"
// @Param        value          formData int    false "Value rating 1-5"
// @Param        atmosphere     formData int    false "Atmosphere rating 1-5"
// @Param        text           formData string false "Review text"
// @Param        would_go_again formData bool   false "Would go again"
// @Param        photos         formData file   false "Photos"
// @Success      200  {object}  ReviewResponse
// @Failure      400  {object}  ErrorResponse "Invalid rating"
// @Failure      404  {object}  ErrorResponse "Restaurant not found"
// @Router       /reviews [post]
func UpsertReview(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.PostForm("restaurant_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}
	overallRating, err := strconv.Atoi(c.PostForm("overall_rating"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid overall rating"})
		return
	}

	input := store.ReviewInput{
		OverallRating: overallRating,
		Text:          c.PostForm("text"),
	}
	var ok bool
	if input.Food, ok = formInt(c, "food"); !ok {
		return
	}
	if input.Service, ok = formInt(c, "service"); !ok {
		return
	}
	if input.Value, ok = formInt(c, "value"); !ok {
		return
	}
	if input.Atmosphere, ok = formInt(c, "atmosphere"); !ok {
		return
	}
	if input.WouldGoAgain, ok = formBool(c, "would_go_again"); !ok {
		return
	}

	userID := currentUserID(c)
	review, err := reviews.UpsertReview(userID, uint(restaurantID), input)
	if err != nil {
		fail(c, err, "Failed to save review")
		return
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fileHeader := range form.File["photos"] {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded photo"})
				return
			}
			_, err = reviews.SavePhoto(c.Request.Context(), userID, review.ID,
				fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
			file.Close()
			if err != nil {
				fail(c, err, "Failed to store photo")
				return
			}
		}
	}

	saved, err := reviews.GetReview(userID, uint(restaurantID))
	if err != nil {
		fail(c, err, "Failed to load review")
		return
	}
	c.JSON(http.StatusOK, newReviewResponse(*saved))
}

// GetMyReviews godoc
// @Summary      Get my reviews
// @Description  Returns the current user's reviews, newest first.
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max items" default(50)
// @Success      200 {array} MyReviewResponse
// @Router       /reviews/mine [get]
func GetMyReviews(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}

	mine, err := reviews.MyReviews(currentUserID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}

	responses := make([]MyReviewResponse, 0, len(mine))
	for _, r := range mine {
		responses = append(responses, MyReviewResponse{
			ReviewResponse: newReviewResponse(r),
			Restaurant:     newRestaurantResponse(r.Restaurant, false),
		})
	}
	c.JSON(http.StatusOK, responses)
}

// DeletePhoto godoc
// @Summary      Delete a review photo
// @Description  Removes a photo from one of the current user's reviews.
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Photo ID"
// @Success      200 {object} map[string]string "{"message": "Photo deleted"}"
// @Failure      404 {object} ErrorResponse "Photo not found"
// @Router       /photos/{id} [delete]
func DeletePhoto(c *gin.Context) {
	photoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo ID"})
		return
	}

	if err := reviews.DeletePhoto(c.Request.Context(), currentUserID(c), uint(photoID)); err != nil {
		fail(c, err, "Failed to delete photo")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
}

// endregion
