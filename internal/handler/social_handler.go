package handler

import (
	"net/http"
	"strconv"

	"oishii/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// FriendEntry is one row on the friends page.
type FriendEntry struct {
	User   PublicUserResponse `json:"user"`
	Status string             `json:"status"`
}

// FriendsOverviewResponse groups friendships by state.
type FriendsOverviewResponse struct {
	Friends  []FriendEntry `json:"friends"`
	Outgoing []FriendEntry `json:"outgoing"`
	Incoming []FriendEntry `json:"incoming"`
}

func pathUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return uint(id), true
}

// ToggleFollow godoc
// @Summary      Follow or unfollow a user
// @Description  Toggles a one-directional follow edge. Following yourself is rejected.
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  map[string]bool "{"following": true}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/follow [post]
func ToggleFollow(c *gin.Context) {
	targetID, ok := pathUserID(c)
	if !ok {
		return
	}
	following, err := social.ToggleFollow(currentUserID(c), targetID)
	if err != nil {
		fail(c, err, "Failed to toggle follow")
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

// SendFriendRequest godoc
// @Summary      Send friend request
// @Description  Creates a pending request unless a relation already exists in either direction.
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      201  {object}  map[string]string "{"message": "Request sent"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /users/{id}/friend-request [post]
func SendFriendRequest(c *gin.Context) {
	targetID, ok := pathUserID(c)
	if !ok {
		return
	}
	if _, err := social.SendFriendRequest(currentUserID(c), targetID); err != nil {
		fail(c, err, "Failed to send request")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Request sent"})
}

// AcceptFriendRequest godoc
// @Summary      Accept friend request
// @Description  Accepts a pending friend request from the given user.
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Requesting User ID"
// @Success      200  {object}  map[string]string "{"message": "Request accepted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Router       /users/{id}/accept [post]
func AcceptFriendRequest(c *gin.Context) {
	requesterID, ok := pathUserID(c)
	if !ok {
		return
	}
	if err := social.AcceptFriendRequest(currentUserID(c), requesterID); err != nil {
		fail(c, err, "Failed to accept request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
}

// RejectFriendRequest godoc
// @Summary      Reject friend request
// @Description  Rejects a pending friend request from the given user.
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Requesting User ID"
// @Success      200  {object}  map[string]string "{"message": "Request rejected"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Router       /users/{id}/reject [post]
func RejectFriendRequest(c *gin.Context) {
	requesterID, ok := pathUserID(c)
	if !ok {
		return
	}
	if err := social.RejectFriendRequest(currentUserID(c), requesterID); err != nil {
		fail(c, err, "Failed to reject request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request rejected"})
}

// CancelFriendRequest godoc
// @Summary      Cancel friend request
// @Description  Cancels a pending request the current user sent.
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  map[string]string "{"message": "Request cancelled"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Router       /users/{id}/cancel-request [post]
func CancelFriendRequest(c *gin.Context) {
	targetID, ok := pathUserID(c)
	if !ok {
		return
	}
	if err := social.CancelFriendRequest(currentUserID(c), targetID); err != nil {
		fail(c, err, "Failed to cancel request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request cancelled"})
}

// RemoveFriend godoc
// @Summary      Remove a friend
// @Description  Deletes an accepted friendship; either party may do this.
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friend User ID"
// @Success      200  {object}  map[string]string "{"message": "Friend removed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Friendship not found"
// @Router       /users/{id}/unfriend [post]
func RemoveFriend(c *gin.Context) {
	otherID, ok := pathUserID(c)
	if !ok {
		return
	}
	if err := social.DeleteFriend(currentUserID(c), otherID); err != nil {
		fail(c, err, "Failed to remove friend")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

// GetFriends godoc
// @Summary      Get the friends overview
// @Description  Returns accepted friends plus the outgoing and incoming pending queues.
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  FriendsOverviewResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friends [get]
func GetFriends(c *gin.Context) {
	viewerID := currentUserID(c)
	overview, err := social.Overview(viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load friends"})
		return
	}

	resp := FriendsOverviewResponse{
		Friends:  []FriendEntry{},
		Outgoing: []FriendEntry{},
		Incoming: []FriendEntry{},
	}
	for _, f := range overview.Friends {
		counterpart := f.TargetUser
		if f.TargetUserID == viewerID {
			counterpart = f.RequestingUser
		}
		resp.Friends = append(resp.Friends, friendEntry(counterpart, f, viewerID))
	}
	for _, f := range overview.Outgoing {
		resp.Outgoing = append(resp.Outgoing, friendEntry(f.TargetUser, f, viewerID))
	}
	for _, f := range overview.Incoming {
		resp.Incoming = append(resp.Incoming, friendEntry(f.RequestingUser, f, viewerID))
	}
	c.JSON(http.StatusOK, resp)
}

func friendEntry(counterpart models.User, f models.Friend, viewerID uint) FriendEntry {
	return FriendEntry{
		User:   buildPublicUserResponse(counterpart, viewerID),
		Status: string(f.Status),
	}
}
