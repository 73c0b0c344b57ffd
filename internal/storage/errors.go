package storage

import "errors"

// ErrNotFound is returned by Backend.Read when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")
