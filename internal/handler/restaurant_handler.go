package handler

import (
	"net/http"
	"strconv"
	"strings"

	"oishii/backend/internal/database"
	"oishii/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// RestaurantInput defines the admin-editable restaurant fields.
type RestaurantInput struct {
	Name         string   `json:"name" binding:"required"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	Country      string   `json:"country"`
	Cuisine      string   `json:"cuisine"`
	Category     string   `json:"category"`
	Price        string   `json:"price"`
	OpeningHours string   `json:"opening_hours"`
	Website      string   `json:"website"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	ExternalID   string   `json:"external_id"`
}

// RestaurantResponse describes a venue for catalog pages.
type RestaurantResponse struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address,omitempty"`
	City         string   `json:"city,omitempty"`
	Country      string   `json:"country,omitempty"`
	Cuisine      string   `json:"cuisine,omitempty"`
	Category     string   `json:"category"`
	Price        string   `json:"price,omitempty"`
	OpeningHours string   `json:"opening_hours,omitempty"`
	Website      string   `json:"website,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	IsPinned     bool     `json:"is_pinned"`
}

// RestaurantDetailResponse adds the viewer-scoped reviews.
type RestaurantDetailResponse struct {
	RestaurantResponse
	Reviews []ReviewResponse `json:"reviews"`
}

// ListPickerRow is one list in the picker modal data.
type ListPickerRow struct {
	ListID  uint   `json:"list_id"`
	Title   string `json:"title"`
	Present bool   `json:"present"`
}

func newRestaurantResponse(r models.Restaurant, pinned bool) RestaurantResponse {
	return RestaurantResponse{
		ID:           r.ID,
		Name:         r.Name,
		Address:      r.Address,
		City:         r.City,
		Country:      r.Country,
		Cuisine:      r.Cuisine,
		Category:     r.Category,
		Price:        r.Price,
		OpeningHours: r.OpeningHours,
		Website:      r.Website,
		Lat:          r.Lat,
		Lng:          r.Lng,
		IsPinned:     pinned,
	}
}

// endregion

func pathRestaurantID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return 0, false
	}
	return uint(id), true
}

// region --- Catalog Handlers ---

// GetRestaurants godoc
// @Summary      Browse restaurants
// @Description  Returns recent restaurants, optionally filtered by a free-text search over name, cuisine, city and address. Works without a token; with one, results carry the viewer's pin state.
// @Tags         restaurants
// @Produce      json
// @Param        search query     string  false  "Search query"
// @Param        page   query     int     false  "Page number" default(1)
// @Param        limit  query     int     false  "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[RestaurantResponse]
// @Router       /restaurants [get]
func GetRestaurants(c *gin.Context) {
	viewerID := currentUserID(c)
	searchQuery := strings.TrimSpace(c.Query("search"))
	page, limit := pageParams(c)
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Restaurant{})
	if searchQuery != "" {
		pattern := "%" + searchQuery + "%"
		query = query.Where(
			"name ILIKE ? OR cuisine ILIKE ? OR city ILIKE ? OR address ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count restaurants"})
		return
	}

	var restaurants []models.Restaurant
	if err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve restaurants"})
		return
	}

	ids := make([]uint, len(restaurants))
	for i, r := range restaurants {
		ids[i] = r.ID
	}
	pinned, err := lists.PinnedRestaurantIDs(viewerID, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pins"})
		return
	}

	responses := make([]RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		responses = append(responses, newRestaurantResponse(r, pinned[r.ID]))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(responses, totalItems, page, limit))
}

// GetRestaurantByID godoc
// @Summary      Get a restaurant
// @Description  Retrieves a venue together with reviews from the viewer and the people they follow. Works without a token; anonymous viewers see the venue without reviews or pin state.
// @Tags         restaurants
// @Produce      json
// @Param        id path int true "Restaurant ID"
// @Success      200 {object} RestaurantDetailResponse
// @Failure      404 {object} ErrorResponse "Restaurant not found"
// @Router       /restaurants/{id} [get]
func GetRestaurantByID(c *gin.Context) {
	viewerID := currentUserID(c)
	restaurantID, ok := pathRestaurantID(c)
	if !ok {
		return
	}

	var restaurant models.Restaurant
	if err := database.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	visible, err := reviews.RestaurantReviews(viewerID, restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}

	pinned, err := lists.PinnedRestaurantIDs(viewerID, []uint{restaurantID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pins"})
		return
	}

	resp := RestaurantDetailResponse{
		RestaurantResponse: newRestaurantResponse(restaurant, pinned[restaurantID]),
		Reviews:            []ReviewResponse{},
	}
	for _, r := range visible {
		resp.Reviews = append(resp.Reviews, newReviewResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// TogglePin godoc
// @Summary      Pin or unpin a restaurant
// @Description  Toggles the viewer's default pin for a restaurant.
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Restaurant ID"
// @Success      200 {object} map[string]bool "{"pinned": true}"
// @Failure      404 {object} ErrorResponse "Restaurant not found"
// @Router       /restaurants/{id}/pin [post]
func TogglePin(c *gin.Context) {
	restaurantID, ok := pathRestaurantID(c)
	if !ok {
		return
	}

	var restaurant models.Restaurant
	if err := database.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	pinned, err := lists.TogglePin(currentUserID(c), restaurantID)
	if err != nil {
		fail(c, err, "Failed to toggle pin")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pinned": pinned})
}

// GetListPicker godoc
// @Summary      List membership for a restaurant
// @Description  Returns the viewer's lists and whether each one contains the restaurant.
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Restaurant ID"
// @Success      200 {array} ListPickerRow
// @Router       /restaurants/{id}/lists [get]
func GetListPicker(c *gin.Context) {
	restaurantID, ok := pathRestaurantID(c)
	if !ok {
		return
	}

	myLists, present, err := lists.ListsContaining(currentUserID(c), restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lists"})
		return
	}

	rows := make([]ListPickerRow, 0, len(myLists))
	for _, l := range myLists {
		rows = append(rows, ListPickerRow{ListID: l.ID, Title: l.Title, Present: present[l.ID]})
	}
	c.JSON(http.StatusOK, rows)
}

// ToggleInList godoc
// @Summary      Toggle a restaurant in a list
// @Description  Adds or removes the restaurant from one of the viewer's lists.
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id     path int true "Restaurant ID"
// @Param        listID path int true "List ID"
// @Success      200 {object} map[string]bool "{"present": true}"
// @Failure      404 {object} ErrorResponse "Restaurant or list not found"
// @Router       /restaurants/{id}/lists/{listID} [post]
func ToggleInList(c *gin.Context) {
	restaurantID, ok := pathRestaurantID(c)
	if !ok {
		return
	}
	listID, err := strconv.ParseUint(c.Param("listID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID"})
		return
	}

	var restaurant models.Restaurant
	if err := database.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	present, err := lists.ToggleInList(currentUserID(c), uint(listID), restaurantID)
	if err != nil {
		fail(c, err, "Failed to toggle list membership")
		return
	}
	c.JSON(http.StatusOK, gin.H{"present": present})
}

// endregion

// region --- Admin Handlers ---

// CreateRestaurant godoc
// @Summary      Create a restaurant
// @Description  Adds a venue to the catalog.
// @Tags         admin-restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RestaurantInput true "Restaurant Info"
// @Success      201  {object}  RestaurantResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /admin/restaurants [post]
func CreateRestaurant(c *gin.Context) {
	var input RestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := models.Restaurant{
		Name:         input.Name,
		Address:      input.Address,
		City:         input.City,
		Country:      input.Country,
		Cuisine:      input.Cuisine,
		Category:     input.Category,
		Price:        input.Price,
		OpeningHours: input.OpeningHours,
		Website:      input.Website,
		Lat:          input.Lat,
		Lng:          input.Lng,
		ExternalID:   input.ExternalID,
	}
	if restaurant.Category == "" {
		restaurant.Category = models.CategoryRestaurant
	}

	if err := database.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, newRestaurantResponse(restaurant, false))
}

// UpdateRestaurant godoc
// @Summary      Update a restaurant
// @Description  Edits a venue's details.
// @Tags         admin-restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Restaurant ID"
// @Param        input body      RestaurantInput true  "New Restaurant Info"
// @Success      200   {object}  RestaurantResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Admin access required"
// @Failure      404   {object}  ErrorResponse "Restaurant not found"
// @Router       /admin/restaurants/{id} [put]
func UpdateRestaurant(c *gin.Context) {
	restaurantID, ok := pathRestaurantID(c)
	if !ok {
		return
	}

	var restaurant models.Restaurant
	if err := database.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var input RestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant.Name = input.Name
	restaurant.Address = input.Address
	restaurant.City = input.City
	restaurant.Country = input.Country
	restaurant.Cuisine = input.Cuisine
	restaurant.Category = input.Category
	restaurant.Price = input.Price
	restaurant.OpeningHours = input.OpeningHours
	restaurant.Website = input.Website
	restaurant.Lat = input.Lat
	restaurant.Lng = input.Lng
	restaurant.ExternalID = input.ExternalID

	if err := database.DB.Save(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		return
	}
	c.JSON(http.StatusOK, newRestaurantResponse(restaurant, false))
}

// DeleteRestaurant godoc
// @Summary      Delete a restaurant
// @Description  Removes a venue from the catalog.
// @Tags         admin-restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Restaurant ID"
// @Success      200 {object} map[string]string "{"message": "Restaurant deleted"}"
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Failure      404 {object} ErrorResponse "Restaurant not found"
// @Router       /admin/restaurants/{id} [delete]
func DeleteRestaurant(c *gin.Context) {
	restaurantID, ok := pathRestaurantID(c)
	if !ok {
		return
	}

	result := database.DB.Delete(&models.Restaurant{}, restaurantID)
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted"})
}

// endregion
