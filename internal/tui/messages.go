package tui

import (
	"errors"

	"github.com/mmcdole/flightdeck/internal/domain"
)

// Message types for the TUI

// FetchedMsg signals that a tab finished loading from the API
type FetchedMsg struct {
	Tab int
	Err error
}

// DeletedMsg signals that a delete finished. The mutation layer has
// already notified the outcome; Err is kept for errors raised before it ran.
type DeletedMsg struct {
	Title string
	Err   error
}

// CacheChangedMsg signals that a cache entry changed
type CacheChangedMsg struct {
	Key domain.CacheKey
}

// ToastMsg signals that a new toast was pushed
type ToastMsg struct{}

// toastTickMsg re-renders the footer so expired toasts disappear
type toastTickMsg struct{}

var errReadOnly = errors.New("list is read-only")
