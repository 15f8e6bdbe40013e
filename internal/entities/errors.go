// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrUnknownCommand is returned when a comment does not match the command grammar.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMergeRequestNotFound signals that a referenced merge request does not exist.
	ErrMergeRequestNotFound = errors.New("merge request not found")
	// ErrNotFound signals a missing store row.
	ErrNotFound = errors.New("not found")
	// ErrUnrepresentableTime signals a datetime that does not exist in the local timezone.
	ErrUnrepresentableTime = errors.New("unrepresentable local time")
)
