package store

import "errors"

// Errors returned by the stores. Handlers map these onto HTTP statuses;
// anything owned by another user surfaces as ErrNotFound so existence is not
// leaked.
var (
	ErrNotFound       = errors.New("record not found")
	ErrSelfAction     = errors.New("cannot perform this action on yourself")
	ErrDuplicateTitle = errors.New("a list with this title already exists")
	ErrEmptyTitle     = errors.New("list title must not be empty")
	ErrProtectedList  = errors.New("default lists cannot be deleted")
	ErrEmptyComment   = errors.New("comment text must not be empty")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrTooManySpots   = errors.New("at most 3 favorite spots are allowed")
	ErrUserExists     = errors.New("username or email already exists")
	ErrRelationExists = errors.New("a friend relation already exists between these users")
)
