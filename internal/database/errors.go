package database

import "errors"

var (
	// ErrNotFound indicates no record carries the requested uuid
	ErrNotFound = errors.New("task not found")

	// ErrSchemaTooNew indicates the database was created by a newer version
	ErrSchemaTooNew = errors.New("database schema is newer than this build supports")

	// ErrCorruptRecord indicates a stored record holds a value no build writes
	ErrCorruptRecord = errors.New("corrupt task record")
)
