package registry

import "errors"

var (
	// ErrSubscribersExceeded indicates the subscriber table cannot take a
	// new entry.
	ErrSubscribersExceeded = errors.New("registry: subscriber table full")
	// ErrNotSubscribed indicates an unsubscribe for an identity that never
	// held an active slot.
	ErrNotSubscribed = errors.New("registry: not subscribed")
	// ErrCapacityExceeded indicates the module threshold table is full.
	ErrCapacityExceeded = errors.New("registry: module threshold table full")
	// ErrInvalidIdentity indicates an empty identity was supplied.
	ErrInvalidIdentity = errors.New("registry: empty identity")
)
