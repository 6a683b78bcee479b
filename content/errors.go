package content

import "errors"

// ErrNotFound is returned when a requested slug does not exist within its
// kind. Callers are expected to handle it and present a not-found state; it
// never propagates as a panic.
var ErrNotFound = errors.New("content: not found")

// ErrConflict is returned by album mutations when the caller's expected
// version no longer matches the stored document, i.e. another writer got
// there first.
var ErrConflict = errors.New("content: version conflict")

// ErrExists is returned when creating an album whose slug is already taken.
var ErrExists = errors.New("content: already exists")
