package repository

import "errors"

// ErrNotFound is returned when a row does not exist under the predicate a
// query was scoped by. For owner-scoped lookups this deliberately covers
// both "no such row" and "row owned by someone else".
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("already exists")
