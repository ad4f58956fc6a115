package handler

import (
	"net/http"
	"strconv"
	"time"

	"oishii/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// ListInput defines the editable list fields.
type ListInput struct {
	Title    string `json:"title" binding:"required" example:"Date night"`
	IsPublic bool   `json:"is_public"`
}

// ListResponse describes one of the user's lists.
type ListResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

// PinResponse describes one pinned restaurant inside a list.
type PinResponse struct {
	ID         uint               `json:"id"`
	Note       string             `json:"note,omitempty"`
	Rating     *int               `json:"rating,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	Restaurant RestaurantResponse `json:"restaurant"`
}

// ListDetailResponse is a list together with its pins, newest first.
type ListDetailResponse struct {
	ListResponse
	Pins []PinResponse `json:"pins"`
}

func newListResponse(l models.List) ListResponse {
	return ListResponse{ID: l.ID, Title: l.Title, IsPublic: l.IsPublic, CreatedAt: l.CreatedAt}
}

// endregion

func pathListID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID"})
		return 0, false
	}
	return uint(id), true
}

// CreateList godoc
// @Summary      Create a list
// @Description  Creates a named list for the current user. Titles are unique per user.
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ListInput true "List Info"
// @Success      201  {object}  ListResponse
// @Failure      400  {object}  ErrorResponse "Empty or duplicate title"
// @Router       /lists [post]
func CreateList(c *gin.Context) {
	var input ListInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := lists.CreateList(currentUserID(c), input.Title, input.IsPublic)
	if err != nil {
		fail(c, err, "Failed to create list")
		return
	}
	c.JSON(http.StatusCreated, newListResponse(*list))
}

// GetLists godoc
// @Summary      Get my lists
// @Description  Returns all of the current user's lists ordered by title.
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} ListResponse
// @Router       /lists [get]
func GetLists(c *gin.Context) {
	myLists, err := lists.ListsForOwner(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lists"})
		return
	}

	responses := make([]ListResponse, 0, len(myLists))
	for _, l := range myLists {
		responses = append(responses, newListResponse(l))
	}
	c.JSON(http.StatusOK, responses)
}

// GetListByID godoc
// @Summary      Get a list with its pins
// @Description  Returns one of the current user's lists with pinned restaurants, newest first.
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "List ID"
// @Success      200 {object} ListDetailResponse
// @Failure      404 {object} ErrorResponse "List not found"
// @Router       /lists/{id} [get]
func GetListByID(c *gin.Context) {
	listID, ok := pathListID(c)
	if !ok {
		return
	}
	ownerID := currentUserID(c)

	list, err := lists.GetList(ownerID, listID)
	if err != nil {
		fail(c, err, "Failed to load list")
		return
	}
	pins, err := lists.ListPins(ownerID, listID)
	if err != nil {
		fail(c, err, "Failed to load pins")
		return
	}

	resp := ListDetailResponse{ListResponse: newListResponse(*list), Pins: []PinResponse{}}
	for _, p := range pins {
		resp.Pins = append(resp.Pins, PinResponse{
			ID:         p.ID,
			Note:       p.Note,
			Rating:     p.Rating,
			CreatedAt:  p.CreatedAt,
			Restaurant: newRestaurantResponse(p.Restaurant, true),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateList godoc
// @Summary      Update a list
// @Description  Renames a list or changes its visibility.
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int       true "List ID"
// @Param        input body ListInput true "New List Info"
// @Success      200  {object}  ListResponse
// @Failure      400  {object}  ErrorResponse "Empty or duplicate title"
// @Failure      404  {object}  ErrorResponse "List not found"
// @Router       /lists/{id} [put]
func UpdateList(c *gin.Context) {
	listID, ok := pathListID(c)
	if !ok {
		return
	}
	var input ListInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := lists.UpdateList(currentUserID(c), listID, input.Title, input.IsPublic)
	if err != nil {
		fail(c, err, "Failed to update list")
		return
	}
	c.JSON(http.StatusOK, newListResponse(*list))
}

// DeleteList godoc
// @Summary      Delete a list
// @Description  Deletes one of the current user's lists. The default lists cannot be deleted.
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "List ID"
// @Success      200 {object} map[string]string "{"message": "List deleted"}"
// @Failure      400 {object} ErrorResponse "Protected list"
// @Failure      404 {object} ErrorResponse "List not found"
// @Router       /lists/{id} [delete]
func DeleteList(c *gin.Context) {
	listID, ok := pathListID(c)
	if !ok {
		return
	}
	if err := lists.DeleteList(currentUserID(c), listID); err != nil {
		fail(c, err, "Failed to delete list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "List deleted"})
}

// DeletePin godoc
// @Summary      Remove a pin from a list
// @Description  Removes a single pinned restaurant from one of the current user's lists.
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int true "List ID"
// @Param        pinID path int true "Pin ID"
// @Success      200 {object} map[string]string "{"message": "Pin removed"}"
// @Failure      404 {object} ErrorResponse "List or pin not found"
// @Router       /lists/{id}/pins/{pinID} [delete]
func DeletePin(c *gin.Context) {
	listID, ok := pathListID(c)
	if !ok {
		return
	}
	pinID, err := strconv.ParseUint(c.Param("pinID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pin ID"})
		return
	}

	if err := lists.DeletePin(currentUserID(c), listID, uint(pinID)); err != nil {
		fail(c, err, "Failed to remove pin")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pin removed"})
}
