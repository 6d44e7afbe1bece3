package store

import "errors"

// ErrNotFound is returned when a record does not exist. Callers treat it as
// a normal "absent" outcome, distinct from infrastructure failures.
var ErrNotFound = errors.New("not found")
