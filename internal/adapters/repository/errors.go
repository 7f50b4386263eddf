package repository

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrNotFound reports that the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a composite-key or unique-field collision. The
	// store is left unchanged when it is returned.
	ErrConflict = errors.New("already exists")
	// ErrForeignKey reports a reference to a student, course or institute
	// that does not exist.
	ErrForeignKey = errors.New("referenced entity not found")
)
