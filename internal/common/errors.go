package common

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrForbidden      = errors.New("action not permitted for this user")
	ErrEditConflict   = errors.New("unable to update the record due to an edit conflict")
)

// Author is the public projection of a user attached to content and comments.
type Author struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
