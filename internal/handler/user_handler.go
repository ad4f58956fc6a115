package handler

import (
	"net/http"
	"strconv"
	"strings"

	"oishii/backend/internal/database"
	"oishii/backend/internal/models"
	"oishii/backend/internal/store"
	"oishii/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username string `json:"username" binding:"required" example:"testuser"`
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Login    string `json:"login" binding:"required" example:"testuser"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// ProfileInput defines the editable profile fields.
type ProfileInput struct {
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Email            string   `json:"email" binding:"omitempty,email"`
	DisplayName      string   `json:"display_name"`
	Bio              string   `json:"bio"`
	Location         string   `json:"location"`
	Website          string   `json:"website"`
	FavoriteCuisines []string `json:"favorite_cuisines"`
	FavoriteSpotIDs  []uint   `json:"favorite_spot_ids"`
}

// PublicUserResponse defines the structure for a user's public profile.
type PublicUserResponse struct {
	ID               uint                `json:"id" example:"1"`
	Username         string              `json:"username" example:"testuser"`
	DisplayName      string              `json:"display_name,omitempty"`
	Bio              string              `json:"bio,omitempty"`
	Location         string              `json:"location,omitempty"`
	AvatarURL        string              `json:"avatar_url,omitempty"`
	FollowersCount   int64               `json:"followers_count"`
	FollowingCount   int64               `json:"following_count"`
	RestaurantsCount int64               `json:"restaurants_count"`
	IsFollowing      bool                `json:"is_following"`
	Relationship     *store.Relationship `json:"relationship,omitempty"`
}

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID               uint     `json:"id" example:"1"`
	Username         string   `json:"username" example:"testuser"`
	Email            string   `json:"email" example:"test@example.com"`
	FirstName        string   `json:"first_name,omitempty"`
	LastName         string   `json:"last_name,omitempty"`
	DisplayName      string   `json:"display_name,omitempty"`
	Bio              string   `json:"bio,omitempty"`
	Location         string   `json:"location,omitempty"`
	Website          string   `json:"website,omitempty"`
	AvatarURL        string   `json:"avatar_url,omitempty"`
	FavoriteCuisines []string `json:"favorite_cuisines"`
	FavoriteSpotIDs  []uint   `json:"favorite_spot_ids"`
	FollowersCount   int64    `json:"followers_count"`
	FollowingCount   int64    `json:"following_count"`
}

// PaginatedUserResponse defines the structure for a paginated list of users.
type PaginatedUserResponse struct {
	Data []PublicUserResponse `json:"data"`
	Meta PaginationMeta       `json:"meta"`
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user with their profile and default lists, and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := accounts.Register(input.Username, input.Email, input.Password)
	if err != nil {
		fail(c, err, "Failed to create user")
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with username/email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Router       /auth/login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := accounts.Authenticate(input.Login, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// endregion

// region --- User Handlers ---

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches for users by username or name, annotated with the viewer's friend relation.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Search query"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedUserResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /users [get]
func SearchUsers(c *gin.Context) {
	viewerID := currentUserID(c)
	searchQuery := strings.TrimSpace(c.Query("q"))
	page, limit := pageParams(c)
	offset := (page - 1) * limit

	query := database.DB.Model(&models.User{}).Where("id <> ?", viewerID)
	if searchQuery != "" {
		pattern := "%" + searchQuery + "%"
		query = query.Where(
			"username ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	var users []models.User
	if err := query.Preload("Profile").Order("username").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	userIDs := make([]uint, len(users))
	for i, u := range users {
		userIDs[i] = u.ID
	}
	relationships, err := social.Relationships(viewerID, userIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load relations"})
		return
	}

	responses := make([]PublicUserResponse, 0, len(users))
	for _, u := range users {
		resp := buildPublicUserResponse(u, viewerID)
		if rel, ok := relationships[u.ID]; ok {
			rel := rel
			resp.Relationship = &rel
		}
		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, totalItems, page, limit))
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Description  Retrieves the public profile for a specific user, including follow state and counts.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func GetUserByID(c *gin.Context) {
	viewerID := currentUserID(c)
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if viewerID == uint(targetUserID) {
		GetMe(c)
		return
	}

	target, err := accounts.GetUser(uint(targetUserID))
	if err != nil {
		fail(c, err, "Failed to load user")
		return
	}

	resp := buildPublicUserResponse(*target, viewerID)
	if rel, ok, err := relationshipTo(viewerID, target.ID); err == nil && ok {
		resp.Relationship = &rel
	}
	c.JSON(http.StatusOK, resp)
}

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the private profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	user, err := accounts.GetUser(currentUserID(c))
	if err != nil {
		fail(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, buildPrivateUserResponse(*user))
}

// UpdateMyProfile godoc
// @Summary      Update the current user's profile
// @Description  Edits name, bio, favorite cuisines and favorite spots (max 3).
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ProfileInput true "Profile fields"
// @Success      200  {object}  PrivateUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/profile [put]
func UpdateMyProfile(c *gin.Context) {
	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := accounts.UpdateProfile(currentUserID(c), store.ProfileUpdate{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		DisplayName:      input.DisplayName,
		Bio:              input.Bio,
		Location:         input.Location,
		Website:          input.Website,
		FavoriteCuisines: input.FavoriteCuisines,
		FavoriteSpotIDs:  input.FavoriteSpotIDs,
	})
	if err != nil {
		fail(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, buildPrivateUserResponse(*user))
}

// endregion

// region --- Helpers ---

func buildPublicUserResponse(target models.User, viewerID uint) PublicUserResponse {
	following, followers, _ := social.FollowCounts(target.ID)
	isFollowing, _ := social.IsFollowing(viewerID, target.ID)

	var restaurantsCount int64
	database.DB.Model(&models.Review{}).
		Where("user_id = ?", target.ID).
		Distinct("restaurant_id").
		Count(&restaurantsCount)

	resp := PublicUserResponse{
		ID:               target.ID,
		Username:         target.Username,
		FollowersCount:   followers,
		FollowingCount:   following,
		RestaurantsCount: restaurantsCount,
		IsFollowing:      isFollowing,
	}
	if target.Profile != nil {
		resp.DisplayName = target.Profile.DisplayName
		resp.Bio = target.Profile.Bio
		resp.Location = target.Profile.Location
		resp.AvatarURL = target.Profile.AvatarURL
	}
	return resp
}

func buildPrivateUserResponse(user models.User) PrivateUserResponse {
	following, followers, _ := social.FollowCounts(user.ID)

	resp := PrivateUserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		FollowersCount: followers,
		FollowingCount: following,
	}
	if p := user.Profile; p != nil {
		resp.DisplayName = p.DisplayName
		resp.Bio = p.Bio
		resp.Location = p.Location
		resp.Website = p.Website
		resp.AvatarURL = p.AvatarURL
		if p.FavoriteCuisines != "" {
			resp.FavoriteCuisines = strings.Split(p.FavoriteCuisines, ",")
		}
		for _, spot := range p.FavoriteSpots {
			resp.FavoriteSpotIDs = append(resp.FavoriteSpotIDs, spot.ID)
		}
	}
	if resp.FavoriteCuisines == nil {
		resp.FavoriteCuisines = []string{}
	}
	return resp
}

func relationshipTo(viewerID, targetID uint) (store.Relationship, bool, error) {
	relationships, err := social.Relationships(viewerID, []uint{targetID})
	if err != nil {
		return store.Relationship{}, false, err
	}
	rel, ok := relationships[targetID]
	return rel, ok, nil
}

// endregion
