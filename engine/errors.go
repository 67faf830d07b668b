// Engine error taxonomy.
//
// Information Hiding:
// - Callers branch on three sentinels, never on provider error shapes

package engine

import "errors"

var (
	// ErrInvalidInput means the caller's request is malformed (empty
	// message, bad session ID).
	ErrInvalidInput = errors.New("engine: invalid input")

	// ErrUpstreamUnavailable means the model provider could not be reached
	// within the retry budget. The caller may apologize and invite a retry.
	ErrUpstreamUnavailable = errors.New("engine: upstream unavailable")

	// ErrInternalFault means the engine or provider broke protocol (a turn
	// with neither answer nor tool requests, a fatally rejected request, a
	// persistence failure).
	ErrInternalFault = errors.New("engine: internal fault")
)
