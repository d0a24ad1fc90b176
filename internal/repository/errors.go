package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is returned by the in-memory store when an ID is reused.
var ErrDuplicateID = errors.New("duplicate id")
