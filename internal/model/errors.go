package model

import "errors"

var (
	// ErrEmptySeries means no usable observation was left for a symbol.
	ErrEmptySeries = errors.New("empty series")
	// ErrMalformedObservation marks a provider row without a usable close.
	ErrMalformedObservation = errors.New("malformed observation")
	// ErrInsufficientHistory means a requested value is undefined at the
	// requested index because the window is longer than the history.
	ErrInsufficientHistory = errors.New("insufficient history")
)
