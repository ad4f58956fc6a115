package handler

import (
	"errors"
	"net/http"

	"oishii/backend/internal/hub"
	"oishii/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// Stores used by the handlers, wired once at startup.
var (
	accounts *store.AccountStore
	lists    *store.ListStore
	reviews  *store.ReviewStore
	social   *store.SocialStore
	feed     *store.FeedStore
	notifier *store.Notifier
	events   *hub.Hub
)

// Init wires the handler package to its stores.
func Init(a *store.AccountStore, l *store.ListStore, r *store.ReviewStore, s *store.SocialStore, f *store.FeedStore, n *store.Notifier, h *hub.Hub) {
	accounts, lists, reviews, social, feed, notifier, events = a, l, r, s, f, n, h
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// fail maps store errors onto HTTP statuses. Ownership failures arrive as
// store.ErrNotFound and stay a 404.
func fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, store.ErrSelfAction),
		errors.Is(err, store.ErrDuplicateTitle),
		errors.Is(err, store.ErrEmptyTitle),
		errors.Is(err, store.ErrProtectedList),
		errors.Is(err, store.ErrEmptyComment),
		errors.Is(err, store.ErrInvalidRating),
		errors.Is(err, store.ErrTooManySpots),
		errors.Is(err, store.ErrRelationExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// currentUserID returns the authenticated user, or zero on routes where auth
// is optional and no token was sent.
func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	if id, ok := userID.(uint); ok {
		return id
	}
	return 0
}
