package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownStep is returned when a navigation target is not defined in the
// active graph.
var ErrUnknownStep = errors.New("unknown step")

// ErrUnknownGraph is returned when a graph ID is not registered.
var ErrUnknownGraph = errors.New("unknown graph")
