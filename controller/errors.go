package controller

import "errors"

// Roster transition failures. Every transition either fully succeeds or fails
// with exactly one of these; there is no partial state to roll back because
// each transition is a single store operation.
var (
	// ErrAlreadyJoined - join attempted with an existing participation row.
	ErrAlreadyJoined = errors.New("user already joined this match")
	// ErrNotJoined - leave or an organizer action aimed at a row that does
	// not exist (or is not in the required status).
	ErrNotJoined = errors.New("user has not joined this match")
	// ErrMatchFull - approve attempted with the confirmed roster at capacity.
	ErrMatchFull = errors.New("match is already full")
	// ErrForbidden - an organizer-only action attempted by someone else.
	ErrForbidden = errors.New("only the match organizer can do that")
	// ErrStoreConflict - the store rejected the write (row vanished under a
	// race, constraint violation). Surfaced as-is, never retried.
	ErrStoreConflict = errors.New("conflicting update, try again")
)

// ErrInvalidInput wraps request validation failures so the web layer can tell
// them apart from internal errors.
var ErrInvalidInput = errors.New("invalid input")
