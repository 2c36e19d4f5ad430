package store

import "errors"

// Store-level errors. Listing operations never return errors: transport
// failures there degrade to the fallback dataset. User operations always
// surface theirs.
var (
	ErrNotLoggedIn = errors.New("not logged in")
)
